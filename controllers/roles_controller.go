package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dalinks/runticket-backend/auth"
	"github.com/dalinks/runticket-backend/database"
	"github.com/dalinks/runticket-backend/dto"
	"github.com/dalinks/runticket-backend/models"
)

// GetAdmins lists every user that holds at least one role, with the resolved
// role and departments (null departments for super admins, as the clients
// expect). Super admin only.
func GetAdmins() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireSuperAdmin(c); !ok {
			return
		}
		ctx := c.Request.Context()

		usersCol := database.OpenCollection("users")
		cursor, err := usersCol.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
			return
		}
		var users []models.User
		if err := cursor.All(ctx, &users); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode users"})
			return
		}

		admins := []gin.H{}
		for _, user := range users {
			roles, err := loadRoles(ctx, user.ID)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roles"})
				return
			}
			if len(roles) == 0 {
				continue
			}
			access := auth.ResolveAccess(roles)
			admins = append(admins, gin.H{
				"userId":      user.ID,
				"email":       user.Email,
				"role":        access.Role(),
				"departments": access.DepartmentsJSON(),
			})
		}

		c.JSON(http.StatusOK, gin.H{"items": admins})
	}
}

// AddAssignment grants an existing admin one more department. The target
// must have signed up already, must not be a super admin, and must not hold
// the pair yet.
func AddAssignment() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireSuperAdmin(c); !ok {
			return
		}

		var body dto.AddAssignmentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		usersCol := database.OpenCollection("users")

		var user models.User
		if err := usersCol.FindOne(ctx, bson.M{"email": body.Email}).Decode(&user); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "User not found. The admin must sign up first before assignment."})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up user"})
			return
		}

		roles, err := loadRoles(ctx, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roles"})
			return
		}
		for _, r := range roles {
			if r.Role == models.RoleSuperAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify super admin assignments"})
				return
			}
		}
		for _, r := range roles {
			if r.Role == models.RoleDepartmentAdmin && r.Department == body.Department {
				c.JSON(http.StatusConflict, gin.H{"error": "This user is already assigned to this department"})
				return
			}
		}

		rolesCol := database.OpenCollection("user_roles")
		_, err = rolesCol.InsertOne(ctx, models.RoleAssignment{
			ID:         bson.NewObjectID(),
			UserID:     user.ID,
			Role:       models.RoleDepartmentAdmin,
			Department: body.Department,
			AssignedAt: time.Now().UTC(),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add assignment"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// RemoveAssignment revokes one (user, department) pair. Removing a pair that
// does not exist is an error, not a silent success.
func RemoveAssignment() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireSuperAdmin(c); !ok {
			return
		}

		var body dto.RemoveAssignmentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		targetID, err := bson.ObjectIDFromHex(body.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		ctx := c.Request.Context()
		roles, err := loadRoles(ctx, targetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roles"})
			return
		}
		for _, r := range roles {
			if r.Role == models.RoleSuperAdmin {
				c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify super admin assignments"})
				return
			}
		}

		rolesCol := database.OpenCollection("user_roles")
		res, err := rolesCol.DeleteOne(ctx, bson.M{
			"userId":     targetID,
			"role":       models.RoleDepartmentAdmin,
			"department": body.Department,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove assignment"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Assignment not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Promote grants the target a super_admin row.
func Promote() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireSuperAdmin(c); !ok {
			return
		}

		targetID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		ctx := c.Request.Context()
		roles, err := loadRoles(ctx, targetID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roles"})
			return
		}
		for _, r := range roles {
			if r.Role == models.RoleSuperAdmin {
				c.JSON(http.StatusConflict, gin.H{"error": "User already has the super admin role"})
				return
			}
		}

		rolesCol := database.OpenCollection("user_roles")
		_, err = rolesCol.InsertOne(ctx, models.RoleAssignment{
			ID:         bson.NewObjectID(),
			UserID:     targetID,
			Role:       models.RoleSuperAdmin,
			AssignedAt: time.Now().UTC(),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to promote user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// Demote strips the target's super_admin rows, optionally converting them to
// a department admin. Self-demotion is rejected outright so a super admin
// can never lock themselves out in a single action.
func Demote() gin.HandlerFunc {
	return func(c *gin.Context) {
		callerID, ok := requireSuperAdmin(c)
		if !ok {
			return
		}

		targetID, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}
		if targetID == callerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "You cannot demote yourself"})
			return
		}

		var body dto.DemoteDTO
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
		}
		if body.ConvertToDepartmentAdmin && len(body.Departments) == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Department admins must have at least one department"})
			return
		}

		ctx := c.Request.Context()
		rolesCol := database.OpenCollection("user_roles")

		res, err := rolesCol.DeleteMany(ctx, bson.M{
			"userId": targetID,
			"role":   models.RoleSuperAdmin,
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to demote user"})
			return
		}
		if res.DeletedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "User is not a super admin"})
			return
		}

		if body.ConvertToDepartmentAdmin {
			now := time.Now().UTC()
			for _, dept := range body.Departments {
				_, err := rolesCol.InsertOne(ctx, models.RoleAssignment{
					ID:         bson.NewObjectID(),
					UserID:     targetID,
					Role:       models.RoleDepartmentAdmin,
					Department: dept,
					AssignedAt: now,
				})
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to convert role"})
					return
				}
			}
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// AssignRoleManually inserts role rows directly, bypassing the email
// allowlist. Super admin rows take no department; department admin rows need
// a non-empty department list, one row per department.
func AssignRoleManually() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireSuperAdmin(c); !ok {
			return
		}

		var body dto.AssignRoleDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		targetID, err := bson.ObjectIDFromHex(body.UserID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
			return
		}

		ctx := c.Request.Context()
		rolesCol := database.OpenCollection("user_roles")
		now := time.Now().UTC()

		switch models.Role(body.Role) {
		case models.RoleSuperAdmin:
			_, err := rolesCol.InsertOne(ctx, models.RoleAssignment{
				ID:         bson.NewObjectID(),
				UserID:     targetID,
				Role:       models.RoleSuperAdmin,
				AssignedAt: now,
			})
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign role"})
				return
			}
		case models.RoleDepartmentAdmin:
			if len(body.Departments) == 0 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Department admins must have at least one department"})
				return
			}
			for _, dept := range body.Departments {
				_, err := rolesCol.InsertOne(ctx, models.RoleAssignment{
					ID:         bson.NewObjectID(),
					UserID:     targetID,
					Role:       models.RoleDepartmentAdmin,
					Department: dept,
					AssignedAt: now,
				})
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to assign role"})
					return
				}
			}
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
