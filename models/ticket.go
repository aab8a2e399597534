package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type TicketStatus string

const (
	TicketStatusPending    TicketStatus = "Pending"
	TicketStatusInProgress TicketStatus = "In Progress"
	TicketStatusResolved   TicketStatus = "Resolved"
	TicketStatusClosed     TicketStatus = "Closed"
)

func ValidTicketStatus(s string) bool {
	switch TicketStatus(s) {
	case TicketStatusPending, TicketStatusInProgress, TicketStatusResolved, TicketStatusClosed:
		return true
	}
	return false
}

// Natures of complaint. Each ticket is routed to exactly one of these; the
// same values act as the department scope of department_admin roles.
var TicketNatures = []string{
	"ICT/Portal",
	"Payment/Bursary",
	"Exams/Results",
	"Hostel/Accommodation",
	"Library",
	"Registrar",
	"Others",
}

func ValidTicketNature(n string) bool {
	for _, allowed := range TicketNatures {
		if n == allowed {
			return true
		}
	}
	return false
}

type Ticket struct {
	ID                bson.ObjectID `bson:"_id,omitempty" json:"id"`
	TicketID          string        `bson:"ticket_id" json:"ticket_id"`
	MatricNumber      string        `bson:"matric_number,omitempty" json:"matric_number,omitempty"`
	JambNumber        string        `bson:"jamb_number,omitempty" json:"jamb_number,omitempty"`
	Name              string        `bson:"name" json:"name"`
	Email             string        `bson:"email" json:"email"`
	Phone             string        `bson:"phone,omitempty" json:"phone,omitempty"`
	Department        string        `bson:"department" json:"department"`
	NatureOfComplaint string        `bson:"nature_of_complaint" json:"nature_of_complaint"`
	Subject           string        `bson:"subject" json:"subject"`
	Message           string        `bson:"message" json:"message"`
	Status            TicketStatus  `bson:"status" json:"status"`
	StaffResponse     string        `bson:"staff_response,omitempty" json:"staff_response,omitempty"`
	AttachmentURL     string        `bson:"attachment_url,omitempty" json:"attachment_url,omitempty"`
	CreatedAt         time.Time     `bson:"createdAt" json:"createdAt"`
}
