package entity

import "time"

// İzin türleri.
const (
	LeaveAnnual      = "annual"
	LeaveSick        = "sick"
	LeaveMaternity   = "maternity"
	LeavePaternity   = "paternity"
	LeaveUnpaid      = "unpaid"
	LeaveMarriage    = "marriage"
	LeaveBereavement = "bereavement"
	LeaveOther       = "other"
)

// İzin durumları.
const (
	LeavePending   = "pending"
	LeaveApproved  = "approved"
	LeaveRejected  = "rejected"
	LeaveCancelled = "cancelled"
)

// IsValidLeaveType izin türü doğrulaması.
func IsValidLeaveType(t string) bool {
	switch t {
	case LeaveAnnual, LeaveSick, LeaveMaternity, LeavePaternity,
		LeaveUnpaid, LeaveMarriage, LeaveBereavement, LeaveOther:
		return true
	}
	return false
}

// IsValidLeaveStatus izin durumu doğrulaması.
func IsValidLeaveStatus(s string) bool {
	switch s {
	case LeavePending, LeaveApproved, LeaveRejected, LeaveCancelled:
		return true
	}
	return false
}

var leaveTransitions = map[string][]string{
	LeavePending:  {LeaveApproved, LeaveRejected, LeaveCancelled},
	LeaveApproved: {LeaveCancelled},
}

// Leave bir personelin izin talebi.
type Leave struct {
	ID              string     `json:"id" bson:"_id"`
	CompanyID       string     `json:"company_id" bson:"company_id"`
	EmployeeID      string     `json:"employee_id" bson:"employee_id"`
	Type            string     `json:"type" bson:"type"`
	StartDate       time.Time  `json:"start_date" bson:"start_date"`
	EndDate         time.Time  `json:"end_date" bson:"end_date"`
	Days            int        `json:"days" bson:"days"` // iş günü
	Reason          string     `json:"reason" bson:"reason"`
	Status          string     `json:"status" bson:"status"`
	ReviewedBy      *string    `json:"reviewed_by,omitempty" bson:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty" bson:"reviewed_at,omitempty"`
	RejectionReason string     `json:"rejection_reason,omitempty" bson:"rejection_reason"`
	CreatedBy       string     `json:"created_by" bson:"created_by"`
	CreatedAt       time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" bson:"updated_at"`
}

// CanTransitionTo mevcut durumdan hedef duruma geçişe izin verilip verilmediğini söyler.
func (l *Leave) CanTransitionTo(target string) bool {
	return allowed(leaveTransitions, l.Status, target)
}

func allowed(table map[string][]string, from, to string) bool {
	for _, s := range table[from] {
		if s == to {
			return true
		}
	}
	return false
}
