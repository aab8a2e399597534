package dto

type AddAssignmentDTO struct {
	Email      string `json:"email" binding:"required"`
	Department string `json:"department" binding:"required"`
}

type RemoveAssignmentDTO struct {
	UserID     string `json:"userId" binding:"required"`
	Department string `json:"department" binding:"required"`
}

type AssignRoleDTO struct {
	UserID      string   `json:"userId" binding:"required"`
	Role        string   `json:"role" binding:"required"`
	Departments []string `json:"departments"`
}

type DemoteDTO struct {
	ConvertToDepartmentAdmin bool     `json:"convertToDepartmentAdmin"`
	Departments              []string `json:"departments"`
}
