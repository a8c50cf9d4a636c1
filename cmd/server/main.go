package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitcoach/coaching-api/internal/api"
	"fitcoach/coaching-api/internal/config"
	"fitcoach/coaching-api/internal/logging"
	"fitcoach/coaching-api/internal/metrics"
	"fitcoach/coaching-api/internal/repository"
	"fitcoach/coaching-api/internal/repository/memory"
	"fitcoach/coaching-api/internal/repository/mongo"
	"fitcoach/coaching-api/internal/service"
	"fitcoach/coaching-api/internal/storage"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// repositories is the set of collections the services are built on,
// whichever driver backs them.
type repositories struct {
	accounts        repository.AccountRepository
	users           repository.UserRepository
	trainers        repository.TrainerRepository
	trainerProfiles repository.TrainerProfileRepository
	trainingPlans   repository.TrainingPlanRepository
	nutritionPlans  repository.NutritionPlanRepository
	progress        repository.ProgressRepository
}

// @title Coaching API
// @version 1.0
// @description API for tracking users' progress against their training and nutrition plans.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	logging.Setup(cfg.Log)
	log.Info("starting coaching API server")

	if err := api.RegisterValidators(); err != nil {
		log.Fatalf("could not register validators: %v", err)
	}
	m := metrics.New()

	// --- Repositories ---
	repos, closeDB := openRepositories(cfg.Database)
	defer closeDB()

	// --- Storage ---
	var files storage.FileStorage // Stays nil without a bucket: media endpoints answer 503
	if cfg.S3.Enabled() {
		files, err = storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("failed to initialize S3 storage: %v", err)
		}
	} else {
		log.Warn("s3.bucket_name is empty, image endpoints are disabled")
	}

	// --- Services ---
	validator := service.NewReferenceValidator(repos.users, repos.trainers, repos.trainingPlans, repos.nutritionPlans)
	services := api.Services{
		Auth:           service.NewAuthService(repos.accounts, repos.users, repos.trainerProfiles, cfg.JWT.Secret, cfg.JWT.Expiration),
		Users:          service.NewUserService(repos.users),
		Trainers:       service.NewTrainerService(repos.trainers),
		TrainerProfile: service.NewTrainerProfileService(repos.trainerProfiles),
		TrainingPlans:  service.NewTrainingPlanService(repos.trainingPlans, validator),
		NutritionPlans: service.NewNutritionPlanService(repos.nutritionPlans, validator),
		Progress:       service.NewProgressService(repos.progress, validator, files, m),
		Media: service.NewMediaService(files, map[string]service.MediaTarget{
			api.ResourceProgress: {
				Kind:   service.KindProgress,
				Exists: service.ExistsFromGet(repos.progress.GetByID),
				Images: repos.progress,
			},
			api.ResourceUsers: {
				Kind:   service.KindUser,
				Exists: repos.users.Exists,
				Images: repos.users,
			},
			api.ResourceTrainers: {
				Kind:   service.KindTrainer,
				Exists: repos.trainers.Exists,
				Images: repos.trainers,
			},
			api.ResourceTrainingPlan: {
				Kind:   service.KindTrainingPlan,
				Exists: service.ExistsFromGet(repos.trainingPlans.GetByID),
				Images: repos.trainingPlans,
			},
			api.ResourceNutritionPlan: {
				Kind:   service.KindNutritionPlan,
				Exists: repos.nutritionPlans.Exists,
				Images: repos.nutritionPlans,
			},
		}),
	}

	// --- Gin Engine ---
	if logging.GetLevel(cfg.Log.Level) < log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger(), api.RequestMetrics(m))

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}
	api.SetupRoutes(router, cfg.JWT.Secret, services, m, metricsPath)

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down server")

	// In-flight requests get 5 seconds to finish.
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Errorf("server forced to shutdown: %v", err)
	}
	log.Info("server exiting")
}

// openRepositories connects the configured driver. The returned func
// releases the connection.
func openRepositories(cfg config.DatabaseConfig) (*repositories, func()) {
	if cfg.Driver == config.DriverMemory {
		log.Warn("using the in-memory driver, data is lost on restart")
		r := memory.NewRepositories()
		return &repositories{
			accounts:        r.Accounts,
			users:           r.Users,
			trainers:        r.Trainers,
			trainerProfiles: r.TrainerProfiles,
			trainingPlans:   r.TrainingPlans,
			nutritionPlans:  r.NutritionPlans,
			progress:        r.Progress,
		}, func() {}
	}

	client, db, err := mongo.Connect(cfg)
	if err != nil {
		log.Fatalf("could not connect to MongoDB: %v", err)
	}
	log.WithField("database", cfg.Name).Info("database connection established")

	go func() { // Index creation runs in the background
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, db)
	}()

	repos := &repositories{
		accounts:        mongo.NewMongoAccountRepository(db),
		users:           mongo.NewMongoUserRepository(db),
		trainers:        mongo.NewMongoTrainerRepository(db),
		trainerProfiles: mongo.NewMongoTrainerProfileRepository(db),
		trainingPlans:   mongo.NewMongoTrainingPlanRepository(db),
		nutritionPlans:  mongo.NewMongoNutritionPlanRepository(db),
		progress:        mongo.NewMongoProgressRepository(db),
	}
	return repos, func() {
		log.Info("disconnecting MongoDB")
		if err := mongo.Disconnect(client); err != nil {
			log.Errorf("failed to disconnect MongoDB: %v", err)
		}
	}
}
