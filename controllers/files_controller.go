package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dalinks/runticket-backend/utils"
)

// UploadAttachment stores a complaint attachment and returns its public URL
// for the client to carry into the ticket submission. Public, like ticket
// creation itself; the validator is the gate.
func UploadAttachment(v *utils.FileValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing file"})
			return
		}
		if _, err := v.ValidateFile(file); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx := c.Request.Context()
		gcs, bucket, err := utils.NewGCSClient(ctx)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to init storage client"})
			return
		}

		url, err := utils.UploadTicketAttachmentToGCS(ctx, gcs, bucket, file)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "upload failed", "details": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"url": url})
	}
}
