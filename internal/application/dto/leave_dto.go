package dto

// CreateLeaveRequest izin talebi. EmployeeID boşsa talep eden kendi kaydıdır.
type CreateLeaveRequest struct {
	EmployeeID string `json:"employee_id"`
	Type       string `json:"type"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

// UpdateLeaveRequest yalnızca bekleyen talepler güncellenebilir.
type UpdateLeaveRequest struct {
	Type      *string `json:"type"`
	StartDate *string `json:"start_date"`
	EndDate   *string `json:"end_date"`
	Reason    *string `json:"reason"`
}

// RejectLeaveRequest ret gerekçesi zorunludur.
type RejectLeaveRequest struct {
	Reason string `json:"reason"`
}

// LeaveQuery izin listesi sorgu parametreleri.
type LeaveQuery struct {
	PageRequest
	EmployeeID string `query:"employee_id"`
	Status     string `query:"status"`
	Type       string `query:"type"`
	From       string `query:"from"`
	To         string `query:"to"`
}

// LeaveBalanceResponse yıllık izin bakiyesi.
type LeaveBalanceResponse struct {
	EmployeeID   string `json:"employee_id"`
	Year         int    `json:"year"`
	ServiceYears int    `json:"service_years"`
	Entitlement  int    `json:"entitlement"`
	Used         int    `json:"used"`
	Pending      int    `json:"pending"`
	Remaining    int    `json:"remaining"`
}
