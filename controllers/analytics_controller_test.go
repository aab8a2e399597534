package controllers

import (
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/dalinks/runticket-backend/models"
)

func TestBuildDepartmentMetrics(t *testing.T) {
	tickets := []models.Ticket{
		{NatureOfComplaint: "Library", Status: models.TicketStatusPending},
		{NatureOfComplaint: "Library", Status: models.TicketStatusResolved, StaffResponse: "Renewed the loan."},
		{NatureOfComplaint: "Library", Status: models.TicketStatusClosed},
		{NatureOfComplaint: "Registrar", Status: models.TicketStatusInProgress},
	}
	adminCounts := map[string]int{"Library": 2}

	metrics := buildDepartmentMetrics(tickets, adminCounts)

	library, ok := metrics["Library"].(gin.H)
	if !ok {
		t.Fatal("missing Library metrics")
	}
	if library["total"] != 3 || library["pending"] != 1 || library["resolved"] != 1 || library["closed"] != 1 {
		t.Fatalf("Library metrics = %v", library)
	}
	if library["adminCount"] != 2 {
		t.Fatalf("Library adminCount = %v", library["adminCount"])
	}
	if library["avgResponseTime"] != 1 {
		t.Fatalf("Library avgResponseTime = %v, want 1 with a responded ticket", library["avgResponseTime"])
	}

	registrar := metrics["Registrar"].(gin.H)
	if registrar["total"] != 1 || registrar["inProgress"] != 1 {
		t.Fatalf("Registrar metrics = %v", registrar)
	}
	if registrar["avgResponseTime"] != 0 {
		t.Fatalf("Registrar avgResponseTime = %v, want 0 with no responses", registrar["avgResponseTime"])
	}

	// Every department appears even with zero tickets.
	others := metrics["Others"].(gin.H)
	if others["total"] != 0 || others["avgResponseTime"] != 0 {
		t.Fatalf("Others metrics = %v", others)
	}
}
