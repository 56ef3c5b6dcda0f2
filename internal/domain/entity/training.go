package entity

import "time"

// Eğitim durumları.
const (
	TrainingPlanned   = "planned"
	TrainingOngoing   = "ongoing"
	TrainingCompleted = "completed"
	TrainingCancelled = "cancelled"
)

// IsValidTrainingStatus eğitim durumu doğrulaması.
func IsValidTrainingStatus(s string) bool {
	switch s {
	case TrainingPlanned, TrainingOngoing, TrainingCompleted, TrainingCancelled:
		return true
	}
	return false
}

// Training şirket içi eğitim. Capacity 0 ise kontenjan sınırsızdır.
type Training struct {
	ID          string    `json:"id" bson:"_id"`
	CompanyID   string    `json:"company_id" bson:"company_id"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Trainer     string    `json:"trainer" bson:"trainer"`
	Location    string    `json:"location" bson:"location"`
	StartDate   time.Time `json:"start_date" bson:"start_date"`
	EndDate     time.Time `json:"end_date" bson:"end_date"`
	Capacity    int       `json:"capacity" bson:"capacity"`
	Status      string    `json:"status" bson:"status"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// TrainingParticipant eğitime kayıtlı personel.
type TrainingParticipant struct {
	ID          string     `json:"id" bson:"_id"`
	CompanyID   string     `json:"company_id" bson:"company_id"`
	TrainingID  string     `json:"training_id" bson:"training_id"`
	EmployeeID  string     `json:"employee_id" bson:"employee_id"`
	Completed   bool       `json:"completed" bson:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty" bson:"completed_at,omitempty"`
	EnrolledAt  time.Time  `json:"enrolled_at" bson:"enrolled_at"`
}
