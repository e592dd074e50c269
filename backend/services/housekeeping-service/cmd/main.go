package main

import (
	"context"
	"net/http"
	_ "time/tzdata"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/app"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/config"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/constants"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/controllers"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/routes"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/services"
	internal_utils "github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/utils"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/services/housekeeping-service/internal/utils/billing"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-middleware"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-models"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-repositories"
	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-utils"
	"github.com/bsm/redislock"
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	cron "github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sendgrid/sendgrid-go"
	twilio "github.com/twilio/twilio-go"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize housekeeping-service:", err)
	}
	defer application.Close()

	staffRepo := repositories.NewStaffMemberRepository(application.DB)
	taskRepo := repositories.NewTaskLogRepository(application.DB)
	punchRepo := repositories.NewPunchLogRepository(application.DB)
	supplyRepo := repositories.NewSupplyRequestRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		if err := app.SeedDefaultStaffIfNeeded(context.Background(), staffRepo); err != nil {
			utils.Logger.WithError(err).Fatal("Failed to seed test data")
		} else {
			utils.Logger.Info("Seeded test data successfully")
		}
	}

	// Redis backs the billing cache and the reconcile lock. Both degrade to
	// in-process behaviour without it.
	var (
		billingCache billing.Cache
		locker       *redislock.Client
	)
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			utils.Logger.WithError(err).Warn("Redis unreachable at boot; cache and lock calls will retry per use")
		}
		billingCache = billing.NewRedisCache(rdb, constants.ActiveFlatsCacheKey, constants.ActiveFlatsCacheTTL)
		locker = redislock.New(rdb)
	}

	var activeFlats services.ActiveFlatSource
	if cfg.BillingAPIURL != "" {
		billingClient, err := billing.NewClient(
			cfg.BillingAPIURL, cfg.BillingAPIKey,
			constants.BillingMaxRetries, constants.BillingRetryInitial, billingCache,
		)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to create billing client")
		}
		activeFlats = billingClient
	}

	var uploader services.ObjectUploader
	if cfg.GCSBucket != "" {
		gcs, err := internal_utils.NewGCSUploader(context.Background(), cfg.GCSBucket, cfg.GCSCredentialsJSON)
		if err != nil {
			utils.Logger.WithError(err).Fatal("Failed to create GCS uploader")
		}
		defer gcs.Close()
		uploader = gcs
	} else {
		utils.Logger.Warn("GCS_BUCKET not set, proof images will be returned inline")
	}

	var rater services.ProofRater
	if cfg.LDFlag_OpenAIProofRating {
		rater = services.NewOpenAIService(cfg.OpenAIAPIKey)
	}

	var notifier services.SupplyNotifier
	if cfg.LDFlag_SupplyAlerts {
		var twClient *twilio.RestClient
		if cfg.TwilioAccountSID != "" {
			twClient = twilio.NewRestClientWithParams(twilio.ClientParams{
				Username: cfg.TwilioAccountSID,
				Password: cfg.TwilioAuthToken,
			})
		}
		var sgClient *sendgrid.Client
		if cfg.SendGridAPIKey != "" {
			sgClient = sendgrid.NewSendClient(cfg.SendGridAPIKey)
		}
		notifier = services.NewNotificationService(services.NotificationConfig{
			OrganizationName: cfg.OrganizationName,
			FromPhone:        cfg.TwilioFromPhone,
			FromEmail:        cfg.SendgridFromEmail,
			ManagerPhone:     cfg.ManagerPhone,
			ManagerEmail:     cfg.ManagerEmail,
			SendgridSandbox:  cfg.LDFlag_SendgridSandboxMode,
			Location:         cfg.SocietyLocation,
		}, twClient, sgClient)
	}

	topology := models.DefaultTopology()
	catalog := models.DefaultCatalog()

	store := services.NewActivityStore(staffRepo, taskRepo, punchRepo, supplyRepo, cfg.SocietyLocation, nil)
	store.Refresh(context.Background())

	progressService := services.NewProgressService(store, topology, catalog, activeFlats)
	dashboardService := services.NewDashboardService(store, progressService)
	taskLogService := services.NewTaskLogService(store, taskRepo, topology, catalog, rater)
	punchService := services.NewPunchService(store, punchRepo, services.Geofence{
		Enabled:   cfg.LDFlag_PunchGeofence,
		Latitude:  cfg.SocietyLatitude,
		Longitude: cfg.SocietyLongitude,
	})
	supplyService := services.NewSupplyService(store, supplyRepo, notifier)
	staffService := services.NewStaffService(store, staffRepo, catalog)
	proofService := services.NewProofImageService(uploader, cfg.SocietyLocation, nil)
	reportService := services.NewReportService(store, progressService, catalog)
	reconcileService := services.NewReconcileService(store, taskRepo, punchRepo, supplyRepo, locker)
	adminService := services.NewAdminService(store, reconcileService)

	healthController := controllers.NewHealthController(application)
	progressController := controllers.NewProgressController(progressService, dashboardService, cfg.SocietyLocation)
	taskLogsController := controllers.NewTaskLogsController(taskLogService)
	attendanceController := controllers.NewAttendanceController(punchService)
	suppliesController := controllers.NewSuppliesController(supplyService)
	staffController := controllers.NewStaffController(staffService)
	proofsController := controllers.NewProofsController(proofService)
	reportsController := controllers.NewReportsController(reportService, cfg.SocietyLocation, nil)
	adminController := controllers.NewAdminController(adminService)

	router := mux.NewRouter()

	// Public
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	secured := router.NewRoute().Subrouter()
	secured.Use(middleware.AuthMiddleware(cfg.RSAPublicKey))

	secured.HandleFunc(routes.Topology, progressController.TopologyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProgressDaily, progressController.DailyHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProgressBlocks, progressController.BlocksHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProgressFloors, progressController.FloorsHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.ProgressFloor, progressController.FloorTasksHandler).Methods(http.MethodGet)

	secured.HandleFunc(routes.TaskLogs, taskLogsController.ListTodayHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.TaskLogs, taskLogsController.LogTaskHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.AttendancePunch, attendanceController.MyStatusHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.AttendancePunch, attendanceController.PunchHandler).Methods(http.MethodPost)
	secured.HandleFunc(routes.Proofs, proofsController.UploadHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Supplies, suppliesController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.Supplies, suppliesController.CreateHandler).Methods(http.MethodPost)

	secured.HandleFunc(routes.Staff, staffController.ListHandler).Methods(http.MethodGet)
	secured.HandleFunc(routes.StaffLogs, staffController.LogsHandler).Methods(http.MethodGet)

	// Manager only
	admin := secured.NewRoute().Subrouter()
	admin.Use(middleware.RequireRole(utils.RoleAdmin))

	admin.HandleFunc(routes.Dashboard, progressController.DashboardHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.Attendance, attendanceController.OverviewHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.SupplyApprove, suppliesController.ApproveHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.SupplyReject, suppliesController.RejectHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.Staff, staffController.AddHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.ReportDaily, reportsController.DailyHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.AdminRefresh, adminController.RefreshHandler).Methods(http.MethodPost)
	admin.HandleFunc(routes.AdminReconcile, adminController.ReconcileHandler).Methods(http.MethodPost)

	c := cron.New()
	if _, err := c.AddFunc(constants.ReconcileSchedule, func() {
		reconcileService.Reconcile(context.Background())
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule reconcile cron")
	}
	if _, err := c.AddFunc(constants.RefreshSchedule, func() {
		store.Refresh(context.Background())
	}); err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule refresh cron")
	}
	c.Start()
	defer c.Stop()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("housekeeping-service failed to start:", err)
	}
}
