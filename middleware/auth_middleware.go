package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dalinks/runticket-backend/auth"
	"github.com/dalinks/runticket-backend/database"
	"github.com/dalinks/runticket-backend/models"
)

// SessionMiddleware authenticates admin requests. The bearer token is the
// opaque session id; it is re-verified against the sessions collection on
// every request — existence first, then expiry. Both failures are a 401, but
// with the distinct reason in the body: session errors carry no user
// enumeration risk.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}
		sessionID := strings.TrimPrefix(header, "Bearer ")

		sessionsCol := database.OpenCollection("sessions")
		var sess models.Session
		err := sessionsCol.FindOne(c.Request.Context(), bson.M{"_id": sessionID}).Decode(&sess)
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				log.Printf("session lookup failed: %v", err)
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidSession.Error()})
			return
		}

		if err := auth.CheckSession(&sess, time.Now()); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		// The user behind the session may have been deleted since sign-in;
		// such an orphaned session is invalid, not a role-less one.
		usersCol := database.OpenCollection("users")
		var user *models.User
		var u models.User
		err = usersCol.FindOne(c.Request.Context(), bson.M{"_id": sess.UserID}).Decode(&u)
		switch {
		case err == nil:
			user = &u
		case !errors.Is(err, mongo.ErrNoDocuments):
			log.Printf("session user lookup failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidSession.Error()})
			return
		}
		if err := auth.CheckSessionOwner(user); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set("sessionID", sess.ID)
		c.Set("userID", sess.UserID.Hex())
		c.Set("email", sess.Email)
		c.Next()
	}
}
