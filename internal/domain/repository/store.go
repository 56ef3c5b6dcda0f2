package repository

import "context"

// Store tek bir kalıcılık sürücüsünün (postgres ya da mongo) tüm portlarını gruplar.
type Store struct {
	Companies     CompanyRepository
	Departments   DepartmentRepository
	Users         UserRepository
	Employees     EmployeeRepository
	Leaves        LeaveRepository
	Performance   PerformanceRepository
	Payrolls      PayrollRepository
	Jobs          JobRepository
	Applications  ApplicationRepository
	Trainings     TrainingRepository
	Notifications NotificationRepository
	AuditLogs     AuditLogRepository
	Activities    ActivityRepository
	Settings      SettingRepository
	Analytics     AnalyticsRepository
}

// TxRunner fn'i tek bir işlem (transaction) içinde çalıştırır. fn'e verilen
// ctx ve Store işlem kapsamındadır; fn hata dönerse değişiklikler geri alınır.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
