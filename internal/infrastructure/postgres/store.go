package postgres

import "github.com/jhoicas/ik-portal/internal/domain/repository"

// NewStore tüm PostgreSQL repolarını verilen Querier (havuz ya da işlem) üzerinde kurar.
func NewStore(q Querier) repository.Store {
	return repository.Store{
		Companies:     NewCompanyRepository(q),
		Departments:   NewDepartmentRepository(q),
		Users:         NewUserRepository(q),
		Employees:     NewEmployeeRepository(q),
		Leaves:        NewLeaveRepository(q),
		Performance:   NewPerformanceRepository(q),
		Payrolls:      NewPayrollRepository(q),
		Jobs:          NewJobRepository(q),
		Applications:  NewApplicationRepository(q),
		Trainings:     NewTrainingRepository(q),
		Notifications: NewNotificationRepository(q),
		AuditLogs:     NewAuditLogRepository(q),
		Activities:    NewActivityRepository(q),
		Settings:      NewSettingRepository(q),
		Analytics:     NewAnalyticsRepository(q),
	}
}
