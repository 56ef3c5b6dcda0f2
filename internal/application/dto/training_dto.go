package dto

// TrainingRequest eğitim oluşturma/güncelleme girdisi.
type TrainingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Trainer     string `json:"trainer"`
	Location    string `json:"location"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
}

// TrainingQuery liste filtreleri.
type TrainingQuery struct {
	PageRequest
	Status string `query:"status"`
}

// AddParticipantRequest katılımcı ekleme.
type AddParticipantRequest struct {
	EmployeeID string `json:"employee_id"`
}

// UpdateParticipantRequest tamamlama bilgisi.
type UpdateParticipantRequest struct {
	Completed bool `json:"completed"`
}

// ParticipantResponse personel adıyla birlikte katılımcı.
type ParticipantResponse struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Completed    bool   `json:"completed"`
	EnrolledAt   string `json:"enrolled_at"`
	CompletedAt  string `json:"completed_at,omitempty"`
}
