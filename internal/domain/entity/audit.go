package entity

import "time"

// Denetim eylemleri.
const (
	ActionCreate  = "create"
	ActionUpdate  = "update"
	ActionDelete  = "delete"
	ActionLogin   = "login"
	ActionLogout  = "logout"
	ActionApprove = "approve"
	ActionReject  = "reject"
	ActionCancel  = "cancel"
	ActionImport  = "import"
	ActionExport  = "export"
)

// AuditLog değiştirilemez denetim kaydı.
type AuditLog struct {
	ID         string         `json:"id" bson:"_id"`
	CompanyID  string         `json:"company_id" bson:"company_id"`
	UserID     string         `json:"user_id" bson:"user_id"`
	Action     string         `json:"action" bson:"action"`
	EntityType string         `json:"entity_type" bson:"entity_type"`
	EntityID   string         `json:"entity_id" bson:"entity_id"`
	Changes    map[string]any `json:"changes,omitempty" bson:"changes,omitempty"`
	IPAddress  string         `json:"ip_address" bson:"ip_address"`
	UserAgent  string         `json:"user_agent" bson:"user_agent"`
	CreatedAt  time.Time      `json:"created_at" bson:"created_at"`
}

// Activity insan tarafından okunabilir akış kaydı ("Ahmet Yılmaz izin talebi oluşturdu").
type Activity struct {
	ID          string    `json:"id" bson:"_id"`
	CompanyID   string    `json:"company_id" bson:"company_id"`
	UserID      string    `json:"user_id" bson:"user_id"`
	ActorName   string    `json:"actor_name" bson:"actor_name"`
	Action      string    `json:"action" bson:"action"`
	EntityType  string    `json:"entity_type" bson:"entity_type"`
	EntityID    string    `json:"entity_id" bson:"entity_id"`
	Description string    `json:"description" bson:"description"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
