package entity

import "time"

// Bildirim tipleri.
const (
	NotificationLeave       = "leave"
	NotificationPayroll     = "payroll"
	NotificationPerformance = "performance"
	NotificationTraining    = "training"
	NotificationRecruitment = "recruitment"
	NotificationSystem      = "system"
)

// Notification bir kullanıcıya gönderilen uygulama içi bildirim.
type Notification struct {
	ID         string     `json:"id" bson:"_id"`
	CompanyID  string     `json:"company_id" bson:"company_id"`
	UserID     string     `json:"user_id" bson:"user_id"`
	Type       string     `json:"type" bson:"type"`
	Title      string     `json:"title" bson:"title"`
	Message    string     `json:"message" bson:"message"`
	Link       string     `json:"link,omitempty" bson:"link"`
	EntityType string     `json:"entity_type,omitempty" bson:"entity_type"`
	EntityID   string     `json:"entity_id,omitempty" bson:"entity_id"`
	IsRead     bool       `json:"is_read" bson:"is_read"`
	ReadAt     *time.Time `json:"read_at,omitempty" bson:"read_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at" bson:"created_at"`
}
