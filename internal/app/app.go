package app

import (
	"context"
	"errors"
	"lms_backend/internal/config"
	"lms_backend/internal/controller"
	"lms_backend/internal/curriculum"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"lms_backend/pkg/configwatcher"
	"lms_backend/pkg/database"
	"lms_backend/pkg/lock"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/security"
	"lms_backend/pkg/tracing"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configDir       string
	services        *services
	tracer          *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	category   *repository.CategoryRepository
	course     *repository.CourseRepository
	module     *repository.ModuleRepository
	subModule  *repository.SubModuleRepository
	lesson     *repository.LessonRepository
	quiz       *repository.QuizRepository
	enrollment *repository.EnrollmentRepository
	analytics  *repository.AnalyticsRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	storage    *service.StorageService
	upload     *service.UploadService
	category   *service.CategoryService
	course     *service.CourseService
	module     *service.ModuleService
	subModule  *service.SubModuleService
	lesson     *service.LessonService
	quiz       *service.QuizService
	enrollment *service.EnrollmentService
	search     *service.SearchService
}

type controllers struct {
	auth      *controller.AuthController
	user      *controller.UserController
	category  *controller.CategoryController
	course    *controller.CourseController
	module    *controller.ModuleController
	subModule *controller.SubModuleController
	lesson    *controller.LessonController
	quiz      *controller.QuizController
	search    *controller.SearchController
	upload    *controller.UploadController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		category:   repository.NewCategoryRepository(db),
		course:     repository.NewCourseRepository(db),
		module:     repository.NewModuleRepository(db),
		subModule:  repository.NewSubModuleRepository(db),
		lesson:     repository.NewLessonRepository(db),
		quiz:       repository.NewQuizRepository(db),
		enrollment: repository.NewEnrollmentRepository(db),
		analytics:  repository.NewAnalyticsRepository(db),
	}
}

func initServices(repos *repositories, cfg *config.Config, db *gorm.DB, locker lock.Locker) *services {
	s := &services{}

	placement := service.NewPlacementResolver(repos.module, repos.subModule)

	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.storage = service.NewStorageService(cfg)
	s.category = service.NewCategoryService(db, repos.category)
	s.course = service.NewCourseService(repos.course, repos.category, repos.enrollment)
	s.module = service.NewModuleService(db, repos.module, repos.course)
	s.subModule = service.NewSubModuleService(repos.subModule, repos.module)
	s.lesson = service.NewLessonService(repos.lesson, placement)
	s.quiz = service.NewQuizService(repos.quiz, repos.course, repos.enrollment, placement)
	s.enrollment = service.NewEnrollmentService(db, repos.enrollment, repos.course, repos.lesson, repos.analytics, locker)
	s.search = service.NewSearchService(repos.course, repos.lesson, repos.quiz)
	s.upload = service.NewUploadService(s.storage, s.lesson, cfg)

	return s
}

func initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		user:      controller.NewUserController(s.user, s.enrollment),
		category:  controller.NewCategoryController(s.category),
		course:    controller.NewCourseController(s.course, s.module, s.quiz, s.enrollment),
		module:    controller.NewModuleController(s.module, s.subModule, s.lesson, s.quiz),
		subModule: controller.NewSubModuleController(s.subModule, s.lesson, s.quiz),
		lesson:    controller.NewLessonController(s.lesson, s.enrollment, s.upload),
		quiz:      controller.NewQuizController(s.quiz),
		search:    controller.NewSearchController(s.search),
		upload:    controller.NewUploadController(s.upload),
		health:    controller.NewHealthController(db),
	}
}

func setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

// newRouter wires repositories, services and controllers on db and returns the engine
// with every route registered.
func newRouter(cfg *config.Config, db *gorm.DB, locker lock.Locker) (*gin.Engine, *services) {
	repos := initRepositories(db)
	svcs := initServices(repos, cfg, db, locker)
	ctrls := initControllers(svcs, db)

	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	setupMiddlewares(router, cfg)
	registerRoutes(router, ctrls, cfg)

	if cfg.Storage.Type == util.StorageLocal && cfg.Storage.LocalPath != "" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}
	return router, svcs
}

func NewApp(cfg *config.Config, configDir string) *App {
	logger.InitLogger(cfg)
	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == gin.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	app := &App{
		Config:    cfg,
		DB:        db,
		configDir: configDir,
	}
	if cfg.MigrateOnly {
		return app
	}

	var locker lock.Locker = lock.NopLocker{}
	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Warn("Redis unavailable, enrollment locks disabled", zap.Error(err))
		} else {
			app.Redis = rdb
			locker = lock.NewRedisLocker(rdb)
		}
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer(tracing.ServiceName, cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Error("Failed to initialize tracing", zap.Error(err))
		} else {
			app.tracer = tp
		}
	}

	router, svcs := newRouter(cfg, db, locker)
	app.Router = router
	app.services = svcs

	if err := svcs.auth.EnsureAdmin(context.Background()); err != nil {
		logger.Log.Error("Failed to ensure admin account", zap.Error(err))
	}

	app.RegisterConfigCallback(logger.SetLevel)

	return app
}

// Seed imports the YAML catalogue at path.
func (a *App) Seed(ctx context.Context, path string) error {
	if a.services == nil {
		return errors.New("seeding is unavailable in migrate-only mode")
	}
	catalogue, err := curriculum.Load(path)
	if err != nil {
		return err
	}
	importer := &curriculum.Importer{
		Categories: a.services.category,
		Courses:    a.services.course,
		Modules:    a.services.module,
		SubModules: a.services.subModule,
		Lessons:    a.services.lesson,
		Quizzes:    a.services.quiz,
	}
	_, err = importer.Import(ctx, catalogue)
	return err
}

func (a *App) reloadConfig(cfg *config.Config) {
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

// Run serves HTTP until SIGINT or SIGTERM and then shuts down gracefully.
func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := configwatcher.WatchConfig(ctx, a.configDir, a.reloadConfig); err != nil {
			logger.Log.Warn("Config hot reload disabled", zap.Error(err))
		}
	}()

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatal("Listen failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", zap.Error(err))
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(shutdownCtx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		sqlDB.Close()
	}

	logger.Log.Info("Server exiting")
}
