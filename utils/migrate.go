package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dalinks/runticket-backend/config"
	"github.com/dalinks/runticket-backend/models"
)

// MigrateLegacyAdmins assigns role rows to admin accounts that predate the
// user_roles collection. Users that already hold a role are left alone.
// Runs once at boot, before the server accepts traffic.
func MigrateLegacyAdmins(ctx context.Context, usersCol, rolesCol *mongo.Collection, allowlist *config.Allowlist) error {
	cursor, err := usersCol.Find(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}
	var users []models.User
	if err := cursor.All(ctx, &users); err != nil {
		return fmt.Errorf("decode users: %w", err)
	}

	migrated, skipped := 0, 0
	for _, user := range users {
		count, err := rolesCol.CountDocuments(ctx, bson.M{"userId": user.ID})
		if err != nil {
			return fmt.Errorf("count roles for %s: %w", user.Email, err)
		}
		if count > 0 {
			skipped++
			continue
		}

		departments := allowlist.DepartmentsForEmail(user.Email)
		now := time.Now().UTC()

		if departments == nil {
			_, err := rolesCol.InsertOne(ctx, models.RoleAssignment{
				ID:         bson.NewObjectID(),
				UserID:     user.ID,
				Role:       models.RoleSuperAdmin,
				AssignedAt: now,
			})
			if err != nil {
				return fmt.Errorf("assign super_admin to %s: %w", user.Email, err)
			}
			log.Printf("assigned super_admin role to %s", user.Email)
			migrated++
		} else if len(departments) > 0 {
			for _, dept := range departments {
				_, err := rolesCol.InsertOne(ctx, models.RoleAssignment{
					ID:         bson.NewObjectID(),
					UserID:     user.ID,
					Role:       models.RoleDepartmentAdmin,
					Department: dept,
					AssignedAt: now,
				})
				if err != nil {
					return fmt.Errorf("assign department_admin to %s: %w", user.Email, err)
				}
			}
			log.Printf("assigned department_admin role to %s for: %v", user.Email, departments)
			migrated++
		} else {
			log.Printf("skipping %s - not authorized as admin", user.Email)
			skipped++
		}
	}

	log.Printf("admin role migration complete: %d migrated, %d skipped", migrated, skipped)
	return nil
}
