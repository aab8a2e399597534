package controllers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/dalinks/runticket-backend/database"
	"github.com/dalinks/runticket-backend/models"
)

// buildDepartmentMetrics folds tickets into per-department status totals.
// avgResponseTime keeps the legacy placeholder semantics: a unit cost per
// responded ticket, so it reads 1 when the department has any staff response
// and 0 otherwise.
func buildDepartmentMetrics(tickets []models.Ticket, adminCounts map[string]int) gin.H {
	metrics := gin.H{}
	for _, dept := range models.TicketNatures {
		total, pending, inProgress, resolved, closed, responded := 0, 0, 0, 0, 0, 0
		for _, t := range tickets {
			if t.NatureOfComplaint != dept {
				continue
			}
			total++
			if t.StaffResponse != "" {
				responded++
			}
			switch t.Status {
			case models.TicketStatusPending:
				pending++
			case models.TicketStatusInProgress:
				inProgress++
			case models.TicketStatusResolved:
				resolved++
			case models.TicketStatusClosed:
				closed++
			}
		}
		avgResponseTime := 0
		if responded > 0 {
			avgResponseTime = 1
		}
		metrics[dept] = gin.H{
			"total":           total,
			"pending":         pending,
			"inProgress":      inProgress,
			"resolved":        resolved,
			"closed":          closed,
			"adminCount":      adminCounts[dept],
			"avgResponseTime": avgResponseTime,
		}
	}
	return metrics
}

// GetAdminStats aggregates role and ticket activity for the super admin
// dashboard: admin headcounts, department distribution, recent role changes
// and per-department ticket status totals.
func GetAdminStats() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := requireSuperAdmin(c); !ok {
			return
		}
		ctx := c.Request.Context()

		rolesCol := database.OpenCollection("user_roles")
		cursor, err := rolesCol.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load roles"})
			return
		}
		var allRoles []models.RoleAssignment
		if err := cursor.All(ctx, &allRoles); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode roles"})
			return
		}

		superAdminCount := 0
		departmentAdminIDs := map[bson.ObjectID]struct{}{}
		departmentDistribution := map[string]int{}
		for _, r := range allRoles {
			switch r.Role {
			case models.RoleSuperAdmin:
				superAdminCount++
			case models.RoleDepartmentAdmin:
				departmentAdminIDs[r.UserID] = struct{}{}
				if r.Department != "" {
					departmentDistribution[r.Department]++
				}
			}
		}

		// Role changes of the last 30 days, most recent 20, with user emails.
		thirtyDaysAgo := time.Now().UTC().Add(-30 * 24 * time.Hour)
		recent := []models.RoleAssignment{}
		for _, r := range allRoles {
			if r.AssignedAt.After(thirtyDaysAgo) {
				recent = append(recent, r)
			}
		}
		sort.Slice(recent, func(i, j int) bool { return recent[i].AssignedAt.After(recent[j].AssignedAt) })
		if len(recent) > 20 {
			recent = recent[:20]
		}

		usersCol := database.OpenCollection("users")
		recentChanges := []gin.H{}
		for _, r := range recent {
			email := "Unknown"
			var user models.User
			if err := usersCol.FindOne(ctx, bson.M{"_id": r.UserID}).Decode(&user); err == nil {
				email = user.Email
			}
			recentChanges = append(recentChanges, gin.H{
				"email":      email,
				"role":       r.Role,
				"department": r.Department,
				"assignedAt": r.AssignedAt,
			})
		}

		ticketsCol := database.OpenCollection("tickets")
		tCursor, err := ticketsCol.Find(ctx, bson.M{})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load tickets"})
			return
		}
		var allTickets []models.Ticket
		if err := tCursor.All(ctx, &allTickets); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode tickets"})
			return
		}

		departmentMetrics := buildDepartmentMetrics(allTickets, departmentDistribution)

		c.JSON(http.StatusOK, gin.H{
			"totalAdmins":            superAdminCount + len(departmentAdminIDs),
			"superAdminCount":        superAdminCount,
			"departmentAdminCount":   len(departmentAdminIDs),
			"departmentDistribution": departmentDistribution,
			"recentRoleChanges":      recentChanges,
			"departmentMetrics":      departmentMetrics,
			"totalTickets":           len(allTickets),
		})
	}
}
