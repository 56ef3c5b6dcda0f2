package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/ik-portal/docs"
	appanalytics "github.com/jhoicas/ik-portal/internal/application/analytics"
	"github.com/jhoicas/ik-portal/internal/application/auth"
	"github.com/jhoicas/ik-portal/internal/application/ports"
	"github.com/jhoicas/ik-portal/internal/application/usecase"
	infraai "github.com/jhoicas/ik-portal/internal/infrastructure/ai"
	"github.com/jhoicas/ik-portal/internal/infrastructure/archive"
	"github.com/jhoicas/ik-portal/internal/infrastructure/csvimport"
	infrapdf "github.com/jhoicas/ik-portal/internal/infrastructure/pdf"
	"github.com/jhoicas/ik-portal/internal/infrastructure/rabbitmq"
	infras3 "github.com/jhoicas/ik-portal/internal/infrastructure/s3"
	"github.com/jhoicas/ik-portal/internal/infrastructure/xmlexport"
	httpRouter "github.com/jhoicas/ik-portal/internal/interfaces/http"
	"github.com/jhoicas/ik-portal/pkg/config"
	"github.com/jhoicas/ik-portal/pkg/logger"
)

// @title			İK Portal API
// @version		1.0
// @description	Çok kiracılı insan kaynakları API'si.
// @BasePath		/
// @securityDefinitions.apikey	Bearer
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("yapılandırma yüklenemedi: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("uygulama başlatılıyor")

	ctx := context.Background()
	store, txRunner, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("veritabanı bağlantısı")
	}
	defer closeStore()

	// Kuyruk opsiyonel: yoksa bildirimler yalnızca veritabanına yazılır.
	var publisher ports.NotificationPublisher
	if cfg.Rabbit.URI != "" {
		p, err := rabbitmq.NewPublisher(cfg.Rabbit.URI, cfg.Rabbit.NotificationQueue)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq yayıncısı")
		}
		defer func() { _ = p.Close() }()
		publisher = p
	}

	var fileStorage ports.FileStorage
	if cfg.S3.Bucket != "" {
		fileStorage, err = infras3.NewFileStorage(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("S3 istemcisi")
		}
	} else {
		log.Warn().Msg("S3_BUCKET tanımlı değil; CV yükleme devre dışı")
	}

	evaluator, err := infraai.NewEvaluator(cfg.AI)
	if err != nil {
		log.Fatal().Err(err).Msg("AI değerlendirici")
	}
	if evaluator == nil {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("AI anahtarı yok; aday değerlendirme devre dışı")
	}

	recorder := usecase.NewRecorder(store.AuditLogs, store.Activities, store.Users, log)
	notifier := usecase.NewNotifier(store.Notifications, store.Users, publisher, log)

	companyUC := usecase.NewCompanyUseCase(store.Companies, recorder)
	moduleSvc := usecase.NewModuleService(store.Companies, recorder)
	userUC := usecase.NewUserUseCase(store.Users, recorder)
	departmentUC := usecase.NewDepartmentUseCase(store.Departments, store.Employees, recorder)
	settingUC := usecase.NewSettingUseCase(store.Settings, recorder)
	employeeUC := usecase.NewEmployeeUseCase(store.Employees, store.Departments, store.Users, csvimport.NewEmployeeParser(), recorder)
	leaveUC := usecase.NewLeaveUseCase(store.Leaves, store.Employees, settingUC, notifier, recorder)
	performanceUC := usecase.NewPerformanceUseCase(store.Performance, store.Employees, notifier, recorder)
	payrollUC := usecase.NewPayrollUseCase(store.Payrolls, store.Employees, txRunner, settingUC, notifier, recorder)
	payrollDocsUC := usecase.NewPayrollDocumentUseCase(
		payrollUC, store.Payrolls, store.Companies, store.Employees, store.Departments,
		infrapdf.NewMarotoPDFGenerator(), xmlexport.NewPayrollExporter(), archive.NewZipArchiver(), recorder,
	)
	jobUC := usecase.NewJobUseCase(store.Jobs, store.Departments, moduleSvc, recorder)
	applicationUC := usecase.NewApplicationUseCase(store.Applications, jobUC, fileStorage, evaluator, notifier, recorder, log)
	trainingUC := usecase.NewTrainingUseCase(store.Trainings, store.Employees, txRunner, notifier, recorder)
	notificationUC := usecase.NewNotificationUseCase(store.Notifications)
	auditUC := usecase.NewAuditUseCase(store.AuditLogs, store.Activities)
	dashboardUC := appanalytics.NewDashboardUseCase(store.Analytics, store.Activities)
	authUC := auth.NewAuthUseCase(store.Users, store.Companies, recorder, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ErrorHandler: httpRouter.ErrorHandler,
		BodyLimit:    10 * 1024 * 1024,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(corsConfig(cfg.HTTP.AllowedOriginList())))
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "İK Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": cfg.Storage.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		CompanyUC:      companyUC,
		ModuleService:  moduleSvc,
		UserUC:         userUC,
		DepartmentUC:   departmentUC,
		EmployeeUC:     employeeUC,
		LeaveUC:        leaveUC,
		PerformanceUC:  performanceUC,
		PayrollUC:      payrollUC,
		PayrollDocsUC:  payrollDocsUC,
		JobUC:          jobUC,
		ApplicationUC:  applicationUC,
		TrainingUC:     trainingUC,
		NotificationUC: notificationUC,
		AuditUC:        auditUC,
		SettingUC:      settingUC,
		DashboardUC:    dashboardUC,
		Users:          store.Users,
		JWTSecret:      cfg.JWT.Secret,
		Cookie: httpRouter.CookieConfig{
			Name:   cfg.Auth.CookieName,
			Secure: cfg.Auth.CookieSecure,
		},
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP sunucusu sonlandı")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("kapatma sinyali alındı, sunucu kapatılıyor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("sunucu kapatma")
	}

	log.Info().Msg("uygulama durduruldu")
}

// corsConfig çerezli oturum için kimlik bilgisine izin verir. Liste boşsa
// tüm kökenler açılır ve fiber'ın kuralı gereği kimlik bilgisi kapatılır.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{AllowHeaders: "Origin, Content-Type, Accept, Authorization"}
	if len(origins) == 0 {
		c.AllowOrigins = "*"
		return c
	}
	c.AllowOrigins = strings.Join(origins, ",")
	c.AllowCredentials = true
	return c
}
