// Package app собирает зависимости сервиса из конфигурации
package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/clinic-scheduling-service/internal/api"
	"github.com/m04kA/clinic-scheduling-service/internal/config"
	"github.com/m04kA/clinic-scheduling-service/internal/domain"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/lock"
	appointmentRepo "github.com/m04kA/clinic-scheduling-service/internal/infra/storage/appointment"
	appointmentEventRepo "github.com/m04kA/clinic-scheduling-service/internal/infra/storage/appointmentevent"
	availabilityRepo "github.com/m04kA/clinic-scheduling-service/internal/infra/storage/availability"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/memory"
	"github.com/m04kA/clinic-scheduling-service/internal/infra/storage/migrations"
	appointmentsService "github.com/m04kA/clinic-scheduling-service/internal/service/appointments"
	availabilityService "github.com/m04kA/clinic-scheduling-service/internal/service/availability"
	createBookingUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/get_available_slots"
	setAvailabilityUC "github.com/m04kA/clinic-scheduling-service/internal/usecase/set_availability"
	"github.com/m04kA/clinic-scheduling-service/pkg/clock"
	"github.com/m04kA/clinic-scheduling-service/pkg/dbmetrics"
	"github.com/m04kA/clinic-scheduling-service/pkg/logger"
	"github.com/m04kA/clinic-scheduling-service/pkg/metrics"
	"github.com/m04kA/clinic-scheduling-service/pkg/txmanager"
)

const migrateTimeout = 30 * time.Second

// App собранные зависимости сервиса
type App struct {
	Config  *config.Config
	Logger  *logger.Logger
	Metrics *metrics.Metrics // nil, если метрики выключены
	Clock   *clock.Clock

	DB    *dbmetrics.DB // nil для хранилища в памяти
	Redis *redis.Client // nil, если Redis выключен

	AvailabilityService *availabilityService.Service
	AppointmentService  *appointmentsService.Service
	GetAvailableSlots   *getAvailableSlotsUC.UseCase
	CreateBooking       *createBookingUC.UseCase
	SetAvailability     *setAvailabilityUC.UseCase

	stopMetricsCh chan struct{}
}

// Репозитории, общие для обоих драйверов хранилища
type repositories struct {
	availability availabilityService.Repository
	appointments appointmentsService.AppointmentRepository
	events       appointmentsService.EventRepository
	tx           appointmentsService.TransactionManager
}

// New собирает приложение: хранилище, блокировки, сервисы и use cases
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	loc, err := cfg.Scheduling.Location()
	if err != nil {
		return nil, fmt.Errorf("load clinic timezone: %w", err)
	}

	a := &App{
		Config:        cfg,
		Logger:        log,
		Clock:         clock.New(loc),
		stopMetricsCh: make(chan struct{}),
	}

	// Инициализируем метрики (если включены)
	if cfg.Metrics.Enabled {
		a.Metrics = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Инициализируем хранилище
	repos, err := a.openStorage(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	// Инициализируем блокировки слотов
	locker, err := a.openLocker()
	if err != nil {
		a.Close()
		return nil, err
	}

	// Инициализируем сервисы
	a.AvailabilityService = availabilityService.NewService(repos.availability, repos.tx, log)
	a.AppointmentService = appointmentsService.NewService(
		repos.appointments,
		repos.events,
		locker,
		repos.tx,
		a.Clock,
		a.Metrics,
		log,
	)

	// Инициализируем use cases
	policy := domain.SlotPolicy{
		MinBookingNoticeMinutes: cfg.Scheduling.MinBookingNoticeMinutes,
		AdvanceBookingDays:      cfg.Scheduling.AdvanceBookingDays,
	}
	a.GetAvailableSlots = getAvailableSlotsUC.NewUseCase(a.AvailabilityService, repos.appointments, policy, a.Clock, log)
	a.CreateBooking = createBookingUC.NewUseCase(a.GetAvailableSlots, a.AppointmentService, log)
	a.SetAvailability = setAvailabilityUC.NewUseCase(a.AvailabilityService, log)

	log.Info("Application initialized (storage=%s, redis=%t, timezone=%s)",
		cfg.Storage.Driver, a.Redis != nil, loc)

	return a, nil
}

func (a *App) openStorage(ctx context.Context) (*repositories, error) {
	cfg, log := a.Config, a.Logger

	if cfg.Storage.Driver == config.StorageDriverMemory {
		log.Warn("Using in-memory storage, data is lost on restart")
		return &repositories{
			availability: memory.NewAvailabilityRepository(),
			appointments: memory.NewAppointmentRepository(),
			events:       memory.NewAppointmentEventRepository(),
			tx:           memory.NewTxManager(),
		}, nil
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	a.DB = dbmetrics.WrapWithDefault(db, a.Metrics, cfg.Metrics.ServiceName, a.stopMetricsCh)

	// Проверяем соединение
	if err := a.DB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	if cfg.Database.AutoMigrate {
		migrateCtx, cancel := context.WithTimeout(ctx, migrateTimeout)
		defer cancel()

		if err := migrations.Apply(migrateCtx, a.DB); err != nil {
			return nil, err
		}
		log.Info("Database schema is up to date")
	}

	return &repositories{
		availability: availabilityRepo.NewRepository(a.DB),
		appointments: appointmentRepo.NewRepository(a.DB),
		events:       appointmentEventRepo.NewRepository(a.DB),
		tx:           txmanager.NewTransactionManager(a.DB),
	}, nil
}

func (a *App) openLocker() (appointmentsService.SlotLocker, error) {
	cfg := a.Config.Redis

	if !cfg.Enabled {
		a.Logger.Info("Redis disabled, using in-process slot locks")
		return lock.NewLocalSlotLocker(), nil
	}

	client, err := lock.NewRedisClient(cfg.Addr, cfg.Username, cfg.Password)
	if err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	a.Redis = client
	a.Logger.Info("Connected to Redis at %s (lock_ttl=%s)", cfg.Addr, cfg.LockTTL.Duration)

	return lock.NewRedisSlotLocker(client, cfg.LockTTL.Duration), nil
}

// Router собирает HTTP роутер приложения
func (a *App) Router(version string) *mux.Router {
	routerCfg := api.RouterConfig{
		AvailabilityService: a.AvailabilityService,
		AppointmentService:  a.AppointmentService,
		GetAvailableSlots:   a.GetAvailableSlots,
		CreateBooking:       a.CreateBooking,
		SetAvailability:     a.SetAvailability,
		Logger:              a.Logger,
	}

	// Интерфейсы не должны получить типизированный nil
	var (
		db    api.DBPinger
		cache api.RedisPinger
	)
	if a.DB != nil {
		db = a.DB
	}
	if a.Redis != nil {
		cache = a.Redis
	}
	routerCfg.Health = api.NewHealthHandler(db, cache, version)

	if a.Metrics != nil {
		routerCfg.HTTPMetrics = a.Metrics
		routerCfg.MetricsHandler = promhttp.Handler()
		routerCfg.MetricsPath = a.Config.Metrics.Path
	}

	return api.NewRouter(routerCfg)
}

// Close освобождает соединения и останавливает фоновый сбор метрик
func (a *App) Close() {
	select {
	case <-a.stopMetricsCh:
	default:
		close(a.stopMetricsCh)
	}

	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			a.Logger.Error("Failed to close redis: %v", err)
		}
	}
	if a.DB != nil {
		if err := a.DB.Unwrap().Close(); err != nil {
			a.Logger.Error("Failed to close database: %v", err)
		}
	}
}
