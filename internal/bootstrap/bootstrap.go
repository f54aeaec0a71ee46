package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	appControllers "github.com/lppm/research-portal/internal/app/controllers"
	"github.com/lppm/research-portal/internal/app/importers"
	appMigrations "github.com/lppm/research-portal/internal/app/migrations"
	appRepos "github.com/lppm/research-portal/internal/app/repositories"
	appRoutes "github.com/lppm/research-portal/internal/app/routes"
	appServices "github.com/lppm/research-portal/internal/app/services"
	"github.com/lppm/research-portal/internal/config"
	"github.com/lppm/research-portal/internal/db"
	appMiddleware "github.com/lppm/research-portal/internal/middleware"
	pkgAuth "github.com/lppm/research-portal/internal/pkg/auth"
	"github.com/lppm/research-portal/internal/pkg/filestorage"
	"github.com/lppm/research-portal/internal/pkg/logger"
	"github.com/lppm/research-portal/internal/pkg/metrics"
	"github.com/lppm/research-portal/internal/pkg/validation"
	"github.com/lppm/research-portal/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	JWTService     *pkgAuth.JWTService
	AuthService    *appServices.AuthService
	ImportService  appServices.ImportService
	FileStorage    filestorage.FileStorage
	Registry       *prometheus.Registry
	Metrics        *metrics.Metrics
	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", filepath.Join("configs", "config.yaml"))
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	if err := logger.Configure(logger.Config{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Service: "lppm-portal",
	}); err != nil {
		return nil, zerolog.Logger{}, err
	}

	lgr := logger.Get()
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, runs migrations and seeds defaults.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		database.Close()
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	lgr.Info().Str("path", migrationsDir).Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(database)
	if err := seed.CreateDefaultData(ctx, cfg, repos.UserRepository, repos.StudyProgramRepository, lgr); err != nil {
		// Seeding is best effort; a half seeded database still serves requests.
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return database, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database)
	repos := deps.Repos

	var err error
	deps.FileStorage, err = filestorage.New(context.Background(), cfg)
	if err != nil {
		lgr.Error().Err(err).Str("driver", cfg.Storage.Driver).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	deps.Metrics = metrics.New(deps.Registry)

	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token expiration: %w", err)
	}
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(
		repos.UserRepository,
		repos.TokenRepository,
		deps.JWTService,
		logger.Component("auth"),
	)
	userService := appServices.NewUserService(repos.UserRepository, repos.TokenRepository, logger.Component("users"))

	authorService := appServices.NewAuthorService(database, repos.AuthorRepository, repos.StudyProgramRepository)
	studyProgramService := appServices.NewStudyProgramService(repos.StudyProgramRepository)
	bookService := appServices.NewBookService(database, repos.BookRepository, repos.AuthorRepository)
	hkiService := appServices.NewHKIService(database, repos.HKIRepository, repos.AuthorRepository)
	publicationService := appServices.NewPublicationService(database, repos.PublicationRepository, repos.AuthorRepository)
	googlePublicationService := appServices.NewGooglePublicationService(database, repos.GooglePublicationRepository, repos.AuthorRepository)
	researchService := appServices.NewResearchService(database, repos.ResearchRepository, repos.AuthorRepository)
	communityService := appServices.NewCommunityServiceService(database, repos.ServiceRepository, repos.AuthorRepository)
	categoryService := appServices.NewCategoryService(repos.CategoryRepository)
	pageService := appServices.NewPageService(database, repos.PageRepository)
	postService := appServices.NewPostService(repos.PostRepository, repos.PageRepository, repos.CategoryRepository)

	aggregateService := appServices.NewAggregateService(
		map[string]appServices.OutputStore{
			appServices.EntityBooks:              repos.BookRepository,
			appServices.EntityHKIs:               repos.HKIRepository,
			appServices.EntityPublications:       repos.PublicationRepository,
			appServices.EntityGooglePublications: repos.GooglePublicationRepository,
			appServices.EntityResearch:           repos.ResearchRepository,
			appServices.EntityServices:           repos.ServiceRepository,
		},
		map[string]appServices.Counter{
			appServices.EntityAuthors:       repos.AuthorRepository,
			appServices.EntityStudyPrograms: repos.StudyProgramRepository,
			appServices.EntityPosts:         repos.PostRepository,
		},
	)

	policies := make(map[string]importers.Policy, len(cfg.Import.Policies))
	for entity, name := range cfg.Import.Policies {
		p, err := importers.ParsePolicy(name)
		if err != nil {
			return nil, fmt.Errorf("import policy for %s: %w", entity, err)
		}
		policies[entity] = p
	}

	deps.ImportService = appServices.NewImportService(appServices.ImportDeps{
		Tx:                 database,
		Authors:            repos.AuthorRepository,
		StudyPrograms:      repos.StudyProgramRepository,
		Books:              repos.BookRepository,
		HKIs:               repos.HKIRepository,
		Publications:       repos.PublicationRepository,
		GooglePublications: repos.GooglePublicationRepository,
		Research:           repos.ResearchRepository,
		Services:           repos.ServiceRepository,
		Storage:            deps.FileStorage,
		Recorder:           deps.Metrics,
		Logger:             logger.Component("import"),
		Policies:           policies,
	})

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.AuthService)

	deps.Controllers = appRoutes.Controllers{
		Auth:              appControllers.NewAuthController(deps.AuthService, logger.Component("auth")),
		User:              appControllers.NewUserController(userService),
		Author:            appControllers.NewAuthorController(authorService),
		StudyProgram:      appControllers.NewStudyProgramController(studyProgramService),
		Book:              appControllers.NewBookController(bookService),
		HKI:               appControllers.NewHKIController(hkiService),
		Publication:       appControllers.NewPublicationController(publicationService),
		GooglePublication: appControllers.NewGooglePublicationController(googlePublicationService),
		Research:          appControllers.NewResearchController(researchService),
		Service:           appControllers.NewCommunityServiceController(communityService),
		Category:          appControllers.NewCategoryController(categoryService),
		Page:              appControllers.NewPageController(pageService),
		Post:              appControllers.NewPostController(postService),
		Aggregate:         appControllers.NewAggregateController(aggregateService),
		Import:            appControllers.NewImportController(deps.ImportService, cfg.Server.MaxUploadSize),
		Health:            appControllers.NewHealthController(database),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	validation.Register()

	router := gin.New()
	router.MaxMultipartMemory = cfg.Server.MaxUploadSize
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		lgr.Warn().Err(err).Strs("proxies", cfg.Server.TrustedProxies).Msg("Ignoring invalid trusted proxies")
	}
	router.Use(
		appMiddleware.Recovery(lgr),
		appMiddleware.RequestLogger(logger.Component("http")),
		appMiddleware.Metrics(deps.Metrics),
	)

	metricsHandler := promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{Registry: deps.Registry})
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, metricsHandler)

	return router
}
