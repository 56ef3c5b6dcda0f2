package entity

import "time"

// Kullanıcı rolleri.
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
	RoleHRManager  = "hr_manager"
	RoleManager    = "manager"
	RoleEmployee   = "employee"
)

// Kullanıcı durumları.
const (
	UserActive    = "active"
	UserInactive  = "inactive"
	UserSuspended = "suspended"
)

// IsValidRole rolün tanımlı olup olmadığını söyler.
func IsValidRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// User sisteme giriş yapan kullanıcı (bir Company'ye aittir).
type User struct {
	ID           string     `json:"id" bson:"_id"`
	CompanyID    string     `json:"company_id" bson:"company_id"`
	Email        string     `json:"email" bson:"email"`
	PasswordHash string     `json:"-" bson:"password_hash"` // bcrypt
	Name         string     `json:"name" bson:"name"`
	Role         string     `json:"role" bson:"role"`
	Status       string     `json:"status" bson:"status"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty" bson:"last_login_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}
