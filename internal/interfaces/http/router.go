package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/ik-portal/internal/application/analytics"
	"github.com/jhoicas/ik-portal/internal/application/auth"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
	"github.com/jhoicas/ik-portal/internal/domain/entity"
)

// Dakikalık istek sınırları.
const (
	loginRateLimit  = 10
	publicRateLimit = 30
)

// RouterDeps router bağımlılıkları.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	CompanyUC      *usecase.CompanyUseCase
	ModuleService  *usecase.ModuleService
	UserUC         *usecase.UserUseCase
	DepartmentUC   *usecase.DepartmentUseCase
	EmployeeUC     *usecase.EmployeeUseCase
	LeaveUC        *usecase.LeaveUseCase
	PerformanceUC  *usecase.PerformanceUseCase
	PayrollUC      *usecase.PayrollUseCase
	PayrollDocsUC  *usecase.PayrollDocumentUseCase
	JobUC          *usecase.JobUseCase
	ApplicationUC  *usecase.ApplicationUseCase
	TrainingUC     *usecase.TrainingUseCase
	NotificationUC *usecase.NotificationUseCase
	AuditUC        *usecase.AuditUseCase
	SettingUC      *usecase.SettingUseCase
	DashboardUC    *appanalytics.DashboardUseCase
	Users          SessionUsers
	JWTSecret      string
	Cookie         CookieConfig
}

// Router API rotalarını kaydeder.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	perm := RequirePermission
	module := func(name string) fiber.Handler { return RequireModule(name, deps.ModuleService) }

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, deps.Cookie)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", OptionalAuth(deps.JWTSecret, deps.Cookie.Name, deps.Users), authHandler.Register)
	authGroup.Post("/login", RateLimit(loginRateLimit), authHandler.Login)

	// Herkese açık kariyer sayfası
	jobHandler := NewJobHandler(deps.JobUC, deps.ApplicationUC)
	public := api.Group("/public", RateLimit(publicRateLimit))
	public.Get("/companies/:companyId/jobs", jobHandler.ListPublic)
	public.Get("/jobs/:id", jobHandler.GetPublic)
	public.Post("/jobs/:id/apply", jobHandler.Apply)
	public.Post("/jobs/:id/cv-upload-url", jobHandler.CVUploadURL)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.Cookie.Name, deps.Users))

	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Put("/auth/password", authHandler.ChangePassword)

	// Şirketler ve modüller
	companyHandler := NewCompanyHandler(deps.CompanyUC, deps.ModuleService)
	companies := protected.Group("/companies")
	companies.Get("/", perm(entity.PermCompaniesManage), companyHandler.List)
	companies.Post("/", perm(entity.PermCompaniesManage), companyHandler.Create)
	companies.Get("/:id", perm(entity.PermCompanyRead), companyHandler.GetByID)
	companies.Put("/:id", perm(entity.PermCompanyWrite), companyHandler.Update)
	companies.Delete("/:id", perm(entity.PermCompaniesManage), companyHandler.Delete)
	companies.Get("/:id/modules", perm(entity.PermCompanyRead), companyHandler.Modules)
	companies.Put("/:id/modules", perm(entity.PermCompaniesManage), companyHandler.ToggleModule)

	// Kullanıcılar
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Get("/", perm(entity.PermUsersRead), userHandler.List)
	users.Get("/:id", perm(entity.PermUsersRead), userHandler.GetByID)
	users.Post("/", perm(entity.PermUsersWrite), userHandler.Create)
	users.Put("/:id", perm(entity.PermUsersWrite), userHandler.Update)
	users.Delete("/:id", perm(entity.PermUsersWrite), userHandler.Delete)

	// Departmanlar
	departmentHandler := NewDepartmentHandler(deps.DepartmentUC)
	departments := protected.Group("/departments")
	departments.Get("/", perm(entity.PermDepartmentsRead), departmentHandler.List)
	departments.Get("/:id", perm(entity.PermDepartmentsRead), departmentHandler.GetByID)
	departments.Post("/", perm(entity.PermDepartmentsWrite), departmentHandler.Create)
	departments.Put("/:id", perm(entity.PermDepartmentsWrite), departmentHandler.Update)
	departments.Delete("/:id", perm(entity.PermDepartmentsWrite), departmentHandler.Delete)

	// Personel; okuma yetkisi olmayan yalnızca kendi kaydını görür (use case kontrol eder)
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees := protected.Group("/employees", module(entity.ModuleEmployees))
	employees.Get("/", perm(entity.PermEmployeesRead), employeeHandler.List)
	employees.Get("/me", employeeHandler.Me)
	employees.Post("/import", perm(entity.PermEmployeesWrite), employeeHandler.Import)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Post("/", perm(entity.PermEmployeesWrite), employeeHandler.Create)
	employees.Put("/:id", perm(entity.PermEmployeesWrite), employeeHandler.Update)
	employees.Post("/:id/terminate", perm(entity.PermEmployeesWrite), employeeHandler.Terminate)
	employees.Delete("/:id", perm(entity.PermEmployeesWrite), employeeHandler.Delete)

	// İzinler
	leaveHandler := NewLeaveHandler(deps.LeaveUC)
	leaves := protected.Group("/leaves", module(entity.ModuleLeave))
	leaves.Get("/", perm(entity.PermLeavesRead), leaveHandler.List)
	leaves.Get("/balance/:employeeId", perm(entity.PermLeavesRead), leaveHandler.Balance)
	leaves.Get("/:id", perm(entity.PermLeavesRead), leaveHandler.GetByID)
	leaves.Post("/", perm(entity.PermLeavesWrite), leaveHandler.Create)
	leaves.Put("/:id", perm(entity.PermLeavesWrite), leaveHandler.Update)
	leaves.Post("/:id/approve", perm(entity.PermLeavesApprove), leaveHandler.Approve)
	leaves.Post("/:id/reject", perm(entity.PermLeavesApprove), leaveHandler.Reject)
	leaves.Post("/:id/cancel", perm(entity.PermLeavesWrite), leaveHandler.Cancel)
	leaves.Delete("/:id", perm(entity.PermLeavesWrite), leaveHandler.Delete)

	// Performans
	performanceHandler := NewPerformanceHandler(deps.PerformanceUC)
	performance := protected.Group("/performance", module(entity.ModulePerformance))
	performance.Get("/", perm(entity.PermPerformanceRead), performanceHandler.List)
	performance.Get("/summary/:employeeId", perm(entity.PermPerformanceRead), performanceHandler.Summary)
	performance.Get("/:id", perm(entity.PermPerformanceRead), performanceHandler.GetByID)
	performance.Post("/", perm(entity.PermPerformanceWrite), performanceHandler.Create)
	performance.Put("/:id", perm(entity.PermPerformanceWrite), performanceHandler.Update)
	performance.Post("/:id/submit", perm(entity.PermPerformanceWrite), performanceHandler.Submit)
	performance.Post("/:id/acknowledge", perm(entity.PermPerformanceRead), performanceHandler.Acknowledge)
	performance.Delete("/:id", perm(entity.PermPerformanceWrite), performanceHandler.Delete)

	// Bordro
	payrollHandler := NewPayrollHandler(deps.PayrollUC, deps.PayrollDocsUC)
	payroll := protected.Group("/payroll", module(entity.ModulePayroll))
	payroll.Get("/", perm(entity.PermPayrollRead), payrollHandler.List)
	payroll.Get("/export.xml", perm(entity.PermPayrollWrite), payrollHandler.ExportXML)
	payroll.Get("/export.zip", perm(entity.PermPayrollWrite), payrollHandler.ExportArchive)
	payroll.Post("/generate", perm(entity.PermPayrollWrite), payrollHandler.Generate)
	payroll.Get("/:id", perm(entity.PermPayrollRead), payrollHandler.GetByID)
	payroll.Get("/:id/payslip.pdf", perm(entity.PermPayrollRead), payrollHandler.Payslip)
	payroll.Post("/", perm(entity.PermPayrollWrite), payrollHandler.Create)
	payroll.Put("/:id", perm(entity.PermPayrollWrite), payrollHandler.Update)
	payroll.Post("/:id/approve", perm(entity.PermPayrollApprove), payrollHandler.Approve)
	payroll.Post("/:id/pay", perm(entity.PermPayrollApprove), payrollHandler.MarkPaid)
	payroll.Delete("/:id", perm(entity.PermPayrollWrite), payrollHandler.Delete)

	// İşe alım
	jobs := protected.Group("/jobs", module(entity.ModuleRecruitment))
	jobs.Get("/", perm(entity.PermJobsRead), jobHandler.List)
	jobs.Get("/:id", perm(entity.PermJobsRead), jobHandler.GetByID)
	jobs.Post("/", perm(entity.PermJobsWrite), jobHandler.Create)
	jobs.Put("/:id", perm(entity.PermJobsWrite), jobHandler.Update)
	jobs.Delete("/:id", perm(entity.PermJobsWrite), jobHandler.Delete)

	applicationHandler := NewApplicationHandler(deps.ApplicationUC)
	applications := protected.Group("/applications", module(entity.ModuleRecruitment))
	applications.Get("/", perm(entity.PermApplicationsRead), applicationHandler.List)
	applications.Get("/:id", perm(entity.PermApplicationsRead), applicationHandler.GetByID)
	applications.Get("/:id/cv-url", perm(entity.PermApplicationsRead), applicationHandler.CVURL)
	applications.Put("/:id", perm(entity.PermApplicationsWrite), applicationHandler.Update)
	applications.Post("/:id/evaluate", perm(entity.PermApplicationsWrite), applicationHandler.Evaluate)
	applications.Delete("/:id", perm(entity.PermApplicationsWrite), applicationHandler.Delete)

	// Eğitimler
	trainingHandler := NewTrainingHandler(deps.TrainingUC)
	trainings := protected.Group("/trainings", module(entity.ModuleTraining))
	trainings.Get("/", perm(entity.PermTrainingsRead), trainingHandler.List)
	trainings.Get("/:id", perm(entity.PermTrainingsRead), trainingHandler.GetByID)
	trainings.Post("/", perm(entity.PermTrainingsWrite), trainingHandler.Create)
	trainings.Put("/:id", perm(entity.PermTrainingsWrite), trainingHandler.Update)
	trainings.Delete("/:id", perm(entity.PermTrainingsWrite), trainingHandler.Delete)
	trainings.Get("/:id/participants", perm(entity.PermTrainingsRead), trainingHandler.Participants)
	trainings.Post("/:id/participants", perm(entity.PermTrainingsWrite), trainingHandler.AddParticipant)
	trainings.Put("/:id/participants/:employeeId", perm(entity.PermTrainingsWrite), trainingHandler.UpdateParticipant)
	trainings.Delete("/:id/participants/:employeeId", perm(entity.PermTrainingsWrite), trainingHandler.RemoveParticipant)

	// Bildirimler (yalnızca kendi bildirimleri)
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications := protected.Group("/notifications")
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", notificationHandler.Delete)

	// Denetim ve etkinlik
	auditHandler := NewAuditHandler(deps.AuditUC)
	protected.Get("/audit-logs", perm(entity.PermAuditRead), auditHandler.List)
	protected.Get("/activities", perm(entity.PermDashboardRead), auditHandler.Activities)

	// Ayarlar
	settingHandler := NewSettingHandler(deps.SettingUC)
	settings := protected.Group("/settings")
	settings.Get("/", perm(entity.PermSettingsRead), settingHandler.List)
	settings.Get("/:key", perm(entity.PermSettingsRead), settingHandler.Get)
	settings.Put("/:key", perm(entity.PermSettingsWrite), settingHandler.Upsert)
	settings.Delete("/:key", perm(entity.PermSettingsWrite), settingHandler.Delete)

	// Gösterge paneli
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard/summary", perm(entity.PermDashboardRead), dashboardHandler.GetSummary)
}
