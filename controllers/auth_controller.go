package controllers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dalinks/runticket-backend/auth"
	"github.com/dalinks/runticket-backend/config"
	"github.com/dalinks/runticket-backend/database"
	"github.com/dalinks/runticket-backend/dto"
	"github.com/dalinks/runticket-backend/models"
	"github.com/dalinks/runticket-backend/utils"
)

// SignUp registers an allowlisted admin. Validation is ordered and
// fail-fast; user creation and role assignment are two separate writes, so a
// role failure triggers a compensating delete of the fresh user.
func SignUp(allowlist *config.Allowlist) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SignUpDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		email := strings.TrimSpace(body.Email)

		if !utils.ValidEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email format"})
			return
		}
		if err := utils.ValidatePasswordStrength(body.Password); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		count, err := usersCol.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing user"})
			return
		}
		if count > 0 {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}

		if !allowlist.IsAuthorizedAdmin(email) {
			c.JSON(http.StatusForbidden, gin.H{"error": "This email is not authorized as an admin. Please contact IT support."})
			return
		}

		hash, err := utils.HashPassword(body.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		user := models.User{
			ID:           bson.NewObjectID(),
			Email:        email,
			PasswordHash: hash,
			CreatedAt:    time.Now().UTC(),
		}
		if _, err := usersCol.InsertOne(ctx, user); err != nil {
			if utils.IsDuplicateKey(err) {
				// Lost the check-then-insert race; the unique index is the
				// real arbiter.
				c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
			return
		}

		if err := assignSignupRole(ctx, user.ID, email, allowlist); err != nil {
			log.Printf("role assignment for %s failed: %v", email, err)
			if _, delErr := usersCol.DeleteOne(ctx, bson.M{"_id": user.ID}); delErr != nil {
				// The compensating delete failed too: the store now holds a
				// user with no role. Needs operator attention.
				log.Printf("ALERT: failed to roll back user %s after role assignment failure: %v", email, delErr)
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to assign admin role. Please try again."})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"userId": user.ID, "email": user.Email})
	}
}

// assignSignupRole inserts the allowlist-derived role rows for a new signup.
// Reaching "no departments" here means the signup gate and this one have
// drifted apart; that is an internal error, never silently tolerated.
func assignSignupRole(ctx context.Context, userID bson.ObjectID, email string, allowlist *config.Allowlist) error {
	rolesCol := database.OpenCollection("user_roles")
	now := time.Now().UTC()

	departments := allowlist.DepartmentsForEmail(email)
	if departments == nil {
		_, err := rolesCol.InsertOne(ctx, models.RoleAssignment{
			ID:         bson.NewObjectID(),
			UserID:     userID,
			Role:       models.RoleSuperAdmin,
			AssignedAt: now,
		})
		return err
	}
	if len(departments) == 0 {
		return errors.New("email passed the signup gate but matches no allowlist entry")
	}
	for _, dept := range departments {
		_, err := rolesCol.InsertOne(ctx, models.RoleAssignment{
			ID:         bson.NewObjectID(),
			UserID:     userID,
			Role:       models.RoleDepartmentAdmin,
			Department: dept,
			AssignedAt: now,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// SignIn verifies credentials and opens a 24-hour session. An unknown email
// still pays for a full bcrypt comparison against DummyHash so the response
// is indistinguishable from a wrong password, and the error never says which
// one it was.
func SignIn() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.SignInDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		var user models.User
		found := true
		err := usersCol.FindOne(ctx, bson.M{"email": strings.TrimSpace(body.Email)}).Decode(&user)
		if err != nil {
			if !errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "sign in failed"})
				return
			}
			found = false
		}

		hashToCheck := user.PasswordHash
		if !found || hashToCheck == "" {
			hashToCheck = utils.DummyHash
		}
		passwordErr := utils.CheckPassword(hashToCheck, body.Password)
		if !found || passwordErr != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}

		now := time.Now().UTC()
		sess := models.Session{
			ID:        uuid.NewString(),
			UserID:    user.ID,
			Email:     user.Email,
			CreatedAt: now,
			ExpiresAt: now.Add(auth.SessionTTL),
		}
		sessionsCol := database.OpenCollection("sessions")
		if _, err := sessionsCol.InsertOne(ctx, sess); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"userId":    user.ID,
			"email":     user.Email,
			"sessionId": sess.ID,
		})
	}
}

// SignOut deletes the caller's session. Deleting an already-gone session is
// still a successful sign-out.
func SignOut() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, _ := c.Get("sessionID")
		sessionsCol := database.OpenCollection("sessions")
		if _, err := sessionsCol.DeleteOne(c.Request.Context(), bson.M{"_id": sessionID}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete session"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// CurrentSession reports the caller's resolved role. Super admins get
// departments: null — the legacy convention for "all departments".
func CurrentSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		access, _, ok := currentAccess(c)
		if !ok {
			return
		}
		email, _ := c.Get("email")

		displayName := "Department Admin"
		switch access.Kind {
		case auth.AllDepartments:
			displayName = "Super Admin"
		case auth.DepartmentSet:
			displayName = strings.Join(access.Departments, ", ") + " Admin"
		case auth.NoAccess:
			displayName = "No Role"
		}

		c.JSON(http.StatusOK, gin.H{
			"email":       email,
			"role":        access.Role(),
			"departments": access.DepartmentsJSON(),
			"displayName": displayName,
		})
	}
}

// RequestPasswordReset always answers success so the endpoint cannot be used
// to probe which emails have accounts. The token only ever leaves via email.
func RequestPasswordReset(mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.RequestPasswordResetDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		var user models.User
		err := usersCol.FindOne(ctx, bson.M{"email": strings.TrimSpace(body.Email)}).Decode(&user)
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": true})
			return
		}

		token, err := auth.NewResetToken()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue reset token"})
			return
		}

		tokensCol := database.OpenCollection("password_reset_tokens")
		_, err = tokensCol.InsertOne(ctx, models.PasswordResetToken{
			ID:        bson.NewObjectID(),
			UserID:    user.ID,
			Token:     token,
			ExpiresAt: time.Now().UTC().Add(auth.ResetTokenTTL),
			Used:      false,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue reset token"})
			return
		}

		go mailer.SendPasswordResetEmail(user.Email, token)

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// VerifyResetToken lets the reset form check a token before asking for a new
// password.
func VerifyResetToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"valid": false, "error": auth.ErrTokenInvalid.Error()})
			return
		}

		tok, err := findResetToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "verification failed"})
			return
		}
		if checkErr := auth.CheckResetToken(tok, time.Now()); checkErr != nil {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": checkErr.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"valid": true})
	}
}

// ResetPassword consumes a one-time token. A used token stays dead even if
// its time window has not passed.
func ResetPassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.ResetPasswordDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := utils.ValidatePasswordStrength(body.NewPassword); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		tok, err := findResetToken(ctx, body.Token)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "reset failed"})
			return
		}
		if err := auth.CheckResetToken(tok, time.Now()); err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, auth.ErrTokenUsed) {
				status = http.StatusConflict
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		hash, err := utils.HashPassword(body.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}

		usersCol := database.OpenCollection("users")
		if _, err := usersCol.UpdateByID(ctx, tok.UserID, bson.M{
			"$set": bson.M{"passwordHash": hash},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update password"})
			return
		}

		tokensCol := database.OpenCollection("password_reset_tokens")
		if _, err := tokensCol.UpdateByID(ctx, tok.ID, bson.M{
			"$set": bson.M{"used": true},
		}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to consume token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

func findResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	tokensCol := database.OpenCollection("password_reset_tokens")
	var tok models.PasswordResetToken
	err := tokensCol.FindOne(ctx, bson.M{"token": token}).Decode(&tok)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &tok, nil
}
