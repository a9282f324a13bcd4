package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelReservationHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/cancel_reservation"
	createReservationHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/create_reservation"
	getAvailabilityHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/get_availability"
	getAvailableSlotsHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/get_available_slots"
	getClinicConfigHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/get_clinic_config"
	getClinicReservationsHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/get_clinic_reservations"
	getPatientReservationsHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/get_patient_reservations"
	getReservationHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/get_reservation"
	updateClinicConfigHandler "github.com/10xBlitz/chia-sub002/internal/api/handlers/update_clinic_config"
	"github.com/10xBlitz/chia-sub002/internal/api/middleware"
	"github.com/10xBlitz/chia-sub002/internal/config"
	configRepo "github.com/10xBlitz/chia-sub002/internal/infra/storage/clinicconfig"
	reservationRepo "github.com/10xBlitz/chia-sub002/internal/infra/storage/reservation"
	workingHoursRepo "github.com/10xBlitz/chia-sub002/internal/infra/storage/workinghours"
	clinicServiceClient "github.com/10xBlitz/chia-sub002/internal/integrations/clinicservice"
	configService "github.com/10xBlitz/chia-sub002/internal/service/clinicconfig"
	reservationsService "github.com/10xBlitz/chia-sub002/internal/service/reservations"
	createReservationUC "github.com/10xBlitz/chia-sub002/internal/usecase/create_reservation"
	getAvailabilityUC "github.com/10xBlitz/chia-sub002/internal/usecase/get_availability"
	getAvailableSlotsUC "github.com/10xBlitz/chia-sub002/internal/usecase/get_available_slots"
	"github.com/10xBlitz/chia-sub002/pkg/dbmetrics"
	"github.com/10xBlitz/chia-sub002/pkg/logger"
	"github.com/10xBlitz/chia-sub002/pkg/metrics"
	"github.com/10xBlitz/chia-sub002/pkg/simpletxmanager"
	"github.com/10xBlitz/chia-sub002/pkg/txmanager"
)

func main() {
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting clinic scheduling service...")
	log.Info("Configuration loaded from config.toml")

	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	clinicClient := clinicServiceClient.NewClient(
		cfg.ClinicService.URL,
		time.Duration(cfg.ClinicService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (ClinicService=%s timeout=%ds)",
		cfg.ClinicService.URL, cfg.ClinicService.Timeout)

	var (
		reservationRepository  *reservationRepo.Repository
		workingHoursRepository *workingHoursRepo.Repository
		configRepository       *configRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Database.DBName, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		workingHoursRepository = workingHoursRepo.NewRepository(wrappedDB)
		configRepository = configRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		workingHoursRepository = workingHoursRepo.NewRepository(db)
		configRepository = configRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	reservationSvc := reservationsService.NewService(
		reservationRepository,
		clinicClient,
		log,
	)
	configSvc := configService.NewService(
		configRepository,
		clinicClient,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		workingHoursRepository,
		configRepository,
		clinicClient,
		txMgr,
		log,
	)
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		reservationRepository,
		workingHoursRepository,
		configRepository,
		clinicClient,
		log,
	)
	getAvailabilityUseCase := getAvailabilityUC.NewUseCase(
		reservationRepository,
		workingHoursRepository,
		configRepository,
		clinicClient,
		log,
	)

	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getAvailability := getAvailabilityHandler.NewHandler(getAvailabilityUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getPatientReservations := getPatientReservationsHandler.NewHandler(reservationSvc, log)
	getClinicReservations := getClinicReservationsHandler.NewHandler(reservationSvc, log)
	getClinicConfig := getClinicConfigHandler.NewHandler(configSvc, log)
	updateClinicConfig := updateClinicConfigHandler.NewHandler(configSvc, log)

	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES
	// ============================================================

	// Calendar roll-up per day
	api.HandleFunc("/clinics/{clinicId}/availability",
		getAvailability.Handle).Methods(http.MethodGet)

	// Bookable slots of one date
	api.HandleFunc("/clinics/{clinicId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Effective scheduling configuration
	api.HandleFunc("/clinics/{clinicId}/config",
		getClinicConfig.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (require X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Reservations ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// Patient history
	protected.HandleFunc("/patients/{patientId}/reservations", getPatientReservations.Handle).Methods(http.MethodGet)

	// --- Clinic management (owner only) ---
	protected.HandleFunc("/clinics/{clinicId}/reservations", getClinicReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/clinics/{clinicId}/configs", getClinicConfig.HandleList).Methods(http.MethodGet)
	protected.HandleFunc("/clinics/{clinicId}/config", updateClinicConfig.Handle).Methods(http.MethodPut)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
