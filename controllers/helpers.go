package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dalinks/runticket-backend/auth"
	"github.com/dalinks/runticket-backend/database"
	"github.com/dalinks/runticket-backend/models"
)

func loadRoles(ctx context.Context, userID bson.ObjectID) ([]models.RoleAssignment, error) {
	rolesCol := database.OpenCollection("user_roles")
	cursor, err := rolesCol.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	var roles []models.RoleAssignment
	if err := cursor.All(ctx, &roles); err != nil {
		return nil, err
	}
	return roles, nil
}

// currentAccess resolves the authenticated caller's entitlement. Role rows
// are re-read from the store on every call; nothing is cached across
// requests.
func currentAccess(c *gin.Context) (auth.Access, bson.ObjectID, bool) {
	userIDStr, ok := c.Get("userID")
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing auth context"})
		return auth.Access{}, bson.ObjectID{}, false
	}
	userID, err := bson.ObjectIDFromHex(userIDStr.(string))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid auth context"})
		return auth.Access{}, bson.ObjectID{}, false
	}
	roles, err := loadRoles(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roles"})
		return auth.Access{}, bson.ObjectID{}, false
	}
	return auth.ResolveAccess(roles), userID, true
}

// requireSuperAdmin gates the management handlers. Answers 403 and returns
// false for anything short of a super admin.
func requireSuperAdmin(c *gin.Context) (bson.ObjectID, bool) {
	access, userID, ok := currentAccess(c)
	if !ok {
		return bson.ObjectID{}, false
	}
	if access.Kind != auth.AllDepartments {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only super admins can perform this action"})
		return bson.ObjectID{}, false
	}
	return userID, true
}
