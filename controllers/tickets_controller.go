package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dalinks/runticket-backend/auth"
	"github.com/dalinks/runticket-backend/config"
	"github.com/dalinks/runticket-backend/database"
	"github.com/dalinks/runticket-backend/dto"
	"github.com/dalinks/runticket-backend/models"
	"github.com/dalinks/runticket-backend/utils"
)

// CreateTicket is the public submission endpoint — no auth. Accepts either a
// JSON body or multipart form-data with a "data" JSON field plus an optional
// "attachment" file. Confirmation and staff emails go out in the background;
// their failure never fails the submission.
func CreateTicket(v *utils.FileValidator, mailer *utils.Mailer, allowlist *config.Allowlist) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var body dto.CreateTicketDTO
		if dataStr := c.PostForm("data"); dataStr != "" {
			if err := json.Unmarshal([]byte(dataStr), &body); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid data json", "details": err.Error()})
				return
			}
		} else if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		utils.NormalizeTicket(&body)
		if err := utils.ValidateTicket(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// Optional attachment, uploaded before the insert so the document
		// carries its URL from the start.
		if file, errFile := c.FormFile("attachment"); errFile == nil && file != nil {
			if _, err := v.ValidateFile(file); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			gcs, bucket, err := utils.NewGCSClient(ctx)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to init storage client"})
				return
			}
			url, err := utils.UploadTicketAttachmentToGCS(ctx, gcs, bucket, file)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "attachment upload failed", "details": err.Error()})
				return
			}
			body.AttachmentURL = url
		}

		now := time.Now().UTC()
		ticketID, err := utils.NewTicketID(now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket. Please try again."})
			return
		}

		ticket := models.Ticket{
			ID:                bson.NewObjectID(),
			TicketID:          ticketID,
			MatricNumber:      body.MatricNumber,
			JambNumber:        body.JambNumber,
			Name:              body.Name,
			Email:             body.Email,
			Phone:             body.Phone,
			Department:        body.Department,
			NatureOfComplaint: body.NatureOfComplaint,
			Subject:           body.Subject,
			Message:           body.Message,
			Status:            models.TicketStatusPending,
			AttachmentURL:     body.AttachmentURL,
			CreatedAt:         now,
		}

		ticketsCol := database.OpenCollection("tickets")
		if _, err := ticketsCol.InsertOne(ctx, ticket); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create ticket. Please try again."})
			return
		}

		go mailer.SendTicketEmails(ticket, allowlist.StaffEmailFor(ticket.NatureOfComplaint))

		c.JSON(http.StatusCreated, gin.H{"ticketId": ticket.ID, "ticket_id": ticket.TicketID})
	}
}

// TrackTicket is the public status lookup: the ticket code alone is not
// enough, the submitter's email has to match too.
func TrackTicket() gin.HandlerFunc {
	return func(c *gin.Context) {
		ticketID := c.Query("ticket_id")
		email := c.Query("email")
		if ticketID == "" || email == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "ticket_id and email are required"})
			return
		}

		ticketsCol := database.OpenCollection("tickets")
		var ticket models.Ticket
		err := ticketsCol.FindOne(c.Request.Context(), bson.M{
			"ticket_id": ticketID,
			"email":     email,
		}).Decode(&ticket)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found or email does not match"})
			return
		}

		c.JSON(http.StatusOK, ticket)
	}
}

// GetTickets lists tickets visible to the authenticated admin, newest first.
// Super admins see everything; department admins see their departments'
// natures only. No departments at all is a denial, not an empty list.
func GetTickets() gin.HandlerFunc {
	return func(c *gin.Context) {
		access, _, ok := currentAccess(c)
		if !ok {
			return
		}

		filter := bson.M{}
		switch access.Kind {
		case auth.AllDepartments:
			// unrestricted
		case auth.DepartmentSet:
			filter["nature_of_complaint"] = bson.M{"$in": access.Departments}
		case auth.NoAccess:
			c.JSON(http.StatusForbidden, gin.H{"error": "No departments assigned"})
			return
		}

		ticketsCol := database.OpenCollection("tickets")
		opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := ticketsCol.Find(c.Request.Context(), filter, opts)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list tickets"})
			return
		}
		tickets := []models.Ticket{}
		if err := cursor.All(c.Request.Context(), &tickets); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to decode tickets"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"items": tickets})
	}
}

// GetTicketByTicketID reads one ticket by its human-readable code, gated by
// the caller's department access.
func GetTicketByTicketID() gin.HandlerFunc {
	return func(c *gin.Context) {
		access, _, ok := currentAccess(c)
		if !ok {
			return
		}

		ticketsCol := database.OpenCollection("tickets")
		var ticket models.Ticket
		err := ticketsCol.FindOne(c.Request.Context(), bson.M{"ticket_id": c.Param("ticket_id")}).Decode(&ticket)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ticket"})
			return
		}

		if !access.CanAccess(ticket.NatureOfComplaint) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this ticket's department"})
			return
		}

		c.JSON(http.StatusOK, ticket)
	}
}

// UpdateTicket lets an authorized admin change status and/or record a staff
// response. A status change notifies the student in the background.
func UpdateTicket(mailer *utils.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		access, _, ok := currentAccess(c)
		if !ok {
			return
		}

		id, err := bson.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ticket id"})
			return
		}

		var body dto.UpdateTicketDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		if body.Status == nil && body.StaffResponse == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
			return
		}
		if body.Status != nil && !models.ValidTicketStatus(*body.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}

		ctx := c.Request.Context()
		ticketsCol := database.OpenCollection("tickets")

		var ticket models.Ticket
		if err := ticketsCol.FindOne(ctx, bson.M{"_id": id}).Decode(&ticket); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				c.JSON(http.StatusNotFound, gin.H{"error": "ticket not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ticket"})
			return
		}

		if !access.CanAccess(ticket.NatureOfComplaint) {
			c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this ticket's department"})
			return
		}

		updates := bson.M{}
		if body.Status != nil {
			updates["status"] = *body.Status
		}
		if body.StaffResponse != nil {
			updates["staff_response"] = *body.StaffResponse
		}

		if _, err := ticketsCol.UpdateByID(ctx, id, bson.M{"$set": updates}); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update ticket"})
			return
		}

		oldStatus := string(ticket.Status)
		if body.Status != nil {
			ticket.Status = models.TicketStatus(*body.Status)
		}
		if body.StaffResponse != nil {
			ticket.StaffResponse = *body.StaffResponse
		}

		if body.Status != nil && *body.Status != oldStatus {
			go mailer.SendStatusUpdateEmail(ticket, oldStatus, *body.Status)
		}

		c.JSON(http.StatusOK, gin.H{"id": id})
	}
}
