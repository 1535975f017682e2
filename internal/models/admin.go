package models

import "time"

type AdminRole string

const (
	AdminRoleStaff      AdminRole = "staff"
	AdminRoleSuperAdmin AdminRole = "superadmin"
)

type Admin struct {
	ID           string
	Name         string
	Email        string
	PasswordHash []byte
	Role         AdminRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
