package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

type Role string

const (
	RoleSuperAdmin      Role = "super_admin"
	RoleDepartmentAdmin Role = "department_admin"
)

// RoleAssignment is one (user, role, department?) row. A department_admin
// row always carries a department; a super_admin row never does. A user may
// hold several department_admin rows, one per department.
type RoleAssignment struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     bson.ObjectID `bson:"userId" json:"userId"`
	Role       Role          `bson:"role" json:"role"`
	Department string        `bson:"department,omitempty" json:"department,omitempty"`
	AssignedAt time.Time     `bson:"assignedAt" json:"assignedAt"`
}
