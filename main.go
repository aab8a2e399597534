package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/dalinks/runticket-backend/config"
	"github.com/dalinks/runticket-backend/controllers"
	"github.com/dalinks/runticket-backend/database"
	"github.com/dalinks/runticket-backend/middleware"
	"github.com/dalinks/runticket-backend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	allowlist := config.LoadAllowlist()
	mailer := utils.NewMailer()
	attachmentValidator := utils.NewAttachmentValidator()

	ctx := context.Background()
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal("ensure indexes: ", err)
	}
	// Assign roles to admin accounts created before the roles collection
	// existed, before any traffic is served.
	usersCol := database.OpenCollection("users")
	rolesCol := database.OpenCollection("user_roles")
	if err := utils.MigrateLegacyAdmins(ctx, usersCol, rolesCol, allowlist); err != nil {
		log.Fatal("admin role migration: ", err)
	}

	r := gin.New()

	origins := os.Getenv("ALLOWED_ORIGINS")
	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(origins, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	// Public: students submit and track complaints without an account.
	r.POST("/tickets", controllers.CreateTicket(attachmentValidator, mailer, allowlist))
	r.GET("/tickets/track", controllers.TrackTicket())
	r.POST("/files/upload", controllers.UploadAttachment(attachmentValidator))

	r.POST("/auth/signup", controllers.SignUp(allowlist))
	r.POST("/auth/signin", controllers.SignIn())
	r.POST("/auth/password-reset/request", controllers.RequestPasswordReset(mailer))
	r.GET("/auth/password-reset/verify", controllers.VerifyResetToken())
	r.POST("/auth/password-reset", controllers.ResetPassword())

	authed := r.Group("/auth")
	authed.Use(middleware.SessionMiddleware())
	{
		authed.POST("/signout", controllers.SignOut())
		authed.GET("/session", controllers.CurrentSession())
	}

	admin := r.Group("/admin")
	admin.Use(middleware.SessionMiddleware())
	{
		admin.GET("/tickets", controllers.GetTickets())
		admin.GET("/tickets/:ticket_id", controllers.GetTicketByTicketID())
		admin.PATCH("/tickets/:id", controllers.UpdateTicket(mailer))

		admin.GET("/admins", controllers.GetAdmins())
		admin.POST("/admins/assignments", controllers.AddAssignment())
		admin.DELETE("/admins/assignments", controllers.RemoveAssignment())
		admin.POST("/admins/:id/promote", controllers.Promote())
		admin.POST("/admins/:id/demote", controllers.Demote())
		admin.POST("/roles/assign", controllers.AssignRoleManually())

		admin.GET("/stats", controllers.GetAdminStats())
	}

	r.Run()
}
