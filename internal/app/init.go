package app

import (
	"fmt"
	"net/http"

	server "github.com/admin/tg-bots/ruz-bot/internal/adapters/primary/http"
	adminController "github.com/admin/tg-bots/ruz-bot/internal/adapters/primary/http/controllers/admin"
	healthcheckController "github.com/admin/tg-bots/ruz-bot/internal/adapters/primary/http/controllers/healthcheck"
	ruzapiAdapter "github.com/admin/tg-bots/ruz-bot/internal/adapters/secondary/ruzapi"
	"github.com/admin/tg-bots/ruz-bot/internal/adapters/secondary/storage/pg"
	redisAdapter "github.com/admin/tg-bots/ruz-bot/internal/adapters/secondary/storage/redis"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/cache"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/repository"
	"github.com/admin/tg-bots/ruz-bot/internal/ports/service"
	groupRepo "github.com/admin/tg-bots/ruz-bot/internal/repository/group"
	lessonRepo "github.com/admin/tg-bots/ruz-bot/internal/repository/lesson"
	userRepo "github.com/admin/tg-bots/ruz-bot/internal/repository/user"
	jobScheduler "github.com/admin/tg-bots/ruz-bot/internal/services/jobs"
	ruzapiService "github.com/admin/tg-bots/ruz-bot/internal/services/ruzapi"
	scheduleUsecase "github.com/admin/tg-bots/ruz-bot/internal/usecases/schedule"
	"github.com/jmoiron/sqlx"
)

type Dependencies struct {
	DB           *sqlx.DB
	HTTPServer   *http.Server
	Cache        cache.Cache
	JobScheduler *jobScheduler.Scheduler
}

// initDependencies инициализирует все зависимости приложения
func (a *App) initDependencies() (*Dependencies, error) {
	db, err := a.initPostgres()
	if err != nil {
		return nil, fmt.Errorf("failed to init postgres: %w", err)
	}

	repos := a.initRepositories(db)
	externalServices, err := a.initExternalServices()
	if err != nil {
		return nil, fmt.Errorf("failed to init external services: %w", err)
	}

	scheduleService := a.initUseCases(repos, externalServices)
	httpServer := a.initHTTP(db, scheduleService)
	scheduler := a.initJobScheduler(scheduleService)

	return &Dependencies{
		DB:           db,
		HTTPServer:   httpServer,
		Cache:        externalServices.Cache,
		JobScheduler: scheduler,
	}, nil
}

// repositories содержит инициализированные репозитории
type repositories struct {
	Lesson repository.ILessonRepo
	User   repository.IUserRepo
	Group  repository.IGroupRepo
}

// initRepositories инициализирует репозитории для работы с БД
func (a *App) initRepositories(db *sqlx.DB) *repositories {
	persistenceLayer := pg.NewDB(db)
	return &repositories{
		Lesson: lessonRepo.New(persistenceLayer, a.Log),
		User:   userRepo.New(persistenceLayer, a.Log),
		Group:  groupRepo.New(persistenceLayer, a.Log),
	}
}

// externalServices содержит внешние сервисы (кэш опционален)
type externalServices struct {
	RuzAPI service.IRuzAPIService
	Cache  cache.Cache
}

// initExternalServices инициализирует клиент РУЗ и Redis
func (a *App) initExternalServices() (*externalServices, error) {
	services := &externalServices{}

	// РУЗ API - обязательный
	if a.Cfg.RuzAPI == nil {
		return nil, fmt.Errorf("ruz API configuration is missing")
	}
	ruzClient := ruzapiAdapter.NewClient(a.Cfg.RuzAPI, a.Log)
	services.RuzAPI = ruzapiService.New(ruzClient, a.Log)

	// Redis Cache - опциональный
	if a.Cfg.Redis != nil {
		redisClient, err := a.Cfg.Redis.NewConnection()
		if err != nil {
			a.Log.Warn("failed to init redis cache, continuing without cache", "error", err)
		} else {
			services.Cache = redisAdapter.NewClient(redisClient)
			a.Log.Info("redis cache connected successfully")
		}
	}

	return services, nil
}

// initUseCases инициализирует UseCases приложения
func (a *App) initUseCases(
	repos *repositories,
	externalServices *externalServices,
) *scheduleUsecase.Service {
	scheduleService := scheduleUsecase.New(
		repos.Lesson,
		repos.User,
		repos.Group,
		externalServices.RuzAPI,
		externalServices.Cache, // может быть nil
		a.Log,
	)

	if a.Cfg.Refresher != nil && a.Cfg.Refresher.Cooldown > 0 {
		scheduleService.RefreshCooldown = a.Cfg.Refresher.Cooldown
	}

	return scheduleService
}

// initHTTP инициализирует HTTP сервер и контроллеры
func (a *App) initHTTP(
	db *sqlx.DB,
	scheduleService *scheduleUsecase.Service,
) *http.Server {
	controllers := []server.Controller{
		healthcheckController.New(db, a.Log),
		adminController.New(scheduleService, a.Cfg.Admin, a.Log),
	}

	return server.NewHTTPServer(a.Cfg.Server, a.Log, controllers...)
}

// initJobScheduler инициализирует планировщик джоб
func (a *App) initJobScheduler(scheduleService *scheduleUsecase.Service) *jobScheduler.Scheduler {
	scheduler := jobScheduler.NewScheduler(a.Log)

	refresher := jobScheduler.NewScheduleRefresher(scheduleService, a.Cfg.Refresher, a.Log)
	scheduler.Register(refresher)
	a.Log.Info("schedule refresher job registered")

	return scheduler
}
