package dto

type CreateTicketDTO struct {
	MatricNumber      string `json:"matric_number"`
	JambNumber        string `json:"jamb_number"`
	Name              string `json:"name" binding:"required"`
	Email             string `json:"email" binding:"required"`
	Phone             string `json:"phone"`
	Department        string `json:"department" binding:"required"`
	NatureOfComplaint string `json:"nature_of_complaint" binding:"required"`
	Subject           string `json:"subject" binding:"required"`
	Message           string `json:"message" binding:"required"`
	AttachmentURL     string `json:"attachment_url"`
}

type UpdateTicketDTO struct {
	Status        *string `json:"status"`
	StaffResponse *string `json:"staff_response"`
}
