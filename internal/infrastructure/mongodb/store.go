package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jhoicas/ik-portal/internal/domain/repository"
)

// NewStore tüm MongoDB repolarını aynı veritabanı üzerinde kurar.
func NewStore(db *mongo.Database) repository.Store {
	return repository.Store{
		Companies:     NewCompanyRepository(db),
		Departments:   NewDepartmentRepository(db),
		Users:         NewUserRepository(db),
		Employees:     NewEmployeeRepository(db),
		Leaves:        NewLeaveRepository(db),
		Performance:   NewPerformanceRepository(db),
		Payrolls:      NewPayrollRepository(db),
		Jobs:          NewJobRepository(db),
		Applications:  NewApplicationRepository(db),
		Trainings:     NewTrainingRepository(db),
		Notifications: NewNotificationRepository(db),
		AuditLogs:     NewAuditLogRepository(db),
		Activities:    NewActivityRepository(db),
		Settings:      NewSettingRepository(db),
		Analytics:     NewAnalyticsRepository(db),
	}
}
