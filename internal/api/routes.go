package api

import (
	"net/http"

	"fitcoach/coaching-api/internal/domain" // Needed for RoleMiddleware
	"fitcoach/coaching-api/internal/metrics"
	"fitcoach/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services groups everything the handlers depend on.
type Services struct {
	Auth           service.AuthService
	Users          service.UserService
	Trainers       service.TrainerService
	TrainerProfile service.TrainerProfileService
	TrainingPlans  service.TrainingPlanService
	NutritionPlans service.NutritionPlanService
	Progress       service.ProgressService
	Media          service.MediaService
}

// Resource path names, also used as the media resource names.
const (
	ResourceProgress      = "progreso"
	ResourceUsers         = "usuarios"
	ResourceTrainers      = "entrenadores"
	ResourceTrainingPlan  = "plan-entrenamiento"
	ResourceNutritionPlan = "plan-nutricional"
)

// SetupRoutes registers every route. A nil m or empty metricsPath leaves
// the metrics endpoint out.
func SetupRoutes(router *gin.Engine, jwtSecret string, svc Services, m *metrics.Metrics, metricsPath string) {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users)
	trainerHandler := NewTrainerHandler(svc.Trainers, svc.TrainerProfile)
	planHandler := NewPlanHandler(svc.TrainingPlans, svc.NutritionPlans)
	progressHandler := NewProgressHandler(svc.Progress)
	mediaHandler := NewMediaHandler(svc.Media)

	authMiddleware := AuthMiddleware(jwtSecret)
	trainerOnly := RoleMiddleware(domain.RoleTrainer)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	if m != nil && metricsPath != "" {
		router.GET(metricsPath, gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})))
	}

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", authHandler.Me)

		// --- Progress Routes ---
		progressGroup := protected.Group("/" + ResourceProgress)
		{
			progressGroup.POST("", progressHandler.Create)
			progressGroup.POST("/registrar", progressHandler.Register)
			progressGroup.GET("", progressHandler.List)
			progressGroup.GET("/usuario/:usuarioId", progressHandler.History)
			progressGroup.GET("/usuario/:usuarioId/evolucion", progressHandler.Evolution)
			progressGroup.GET("/:id", progressHandler.Get)
			progressGroup.PATCH("/:id", progressHandler.Update)
			progressGroup.DELETE("/:id", progressHandler.Delete)
			mediaHandler.mount(progressGroup, ResourceProgress)
		}

		userGroup := protected.Group("/" + ResourceUsers)
		{
			userGroup.POST("", userHandler.Create)
			userGroup.GET("", userHandler.List)
			userGroup.GET("/:id", userHandler.Get)
			userGroup.PATCH("/:id", userHandler.Update)
			userGroup.DELETE("/:id", userHandler.Delete)
			mediaHandler.mount(userGroup, ResourceUsers)
		}

		trainerGroup := protected.Group("/" + ResourceTrainers)
		{
			trainerGroup.POST("", trainerHandler.Create)
			trainerGroup.GET("", trainerHandler.List)
			trainerGroup.GET("/:id", trainerHandler.Get)
			trainerGroup.PATCH("/:id", trainerHandler.Update)
			trainerGroup.DELETE("/:id", trainerHandler.Delete)
			mediaHandler.mount(trainerGroup, ResourceTrainers)
		}

		profileGroup := protected.Group("/entrenador-profile")
		{
			profileGroup.GET("/me", trainerHandler.GetMyProfile)
			profileGroup.PUT("/me", trainerOnly, trainerHandler.UpdateMyProfile)
			profileGroup.GET("", trainerHandler.ListProfiles)
			profileGroup.GET("/:accountId", trainerHandler.GetProfile)
		}

		// --- Plan Routes ---
		// Reads are open to every account; writes need the trainer role.
		trainingGroup := protected.Group("/" + ResourceTrainingPlan)
		{
			trainingGroup.GET("", planHandler.ListTrainingPlans)
			trainingGroup.GET("/usuario/:usuarioId", planHandler.ListTrainingPlansByUser)
			trainingGroup.GET("/nivel/:nivel", planHandler.ListTrainingPlansByLevel)
			trainingGroup.GET("/:id", planHandler.GetTrainingPlan)
			trainingGroup.POST("", trainerOnly, planHandler.CreateTrainingPlan)
			trainingGroup.PATCH("/:id", trainerOnly, planHandler.UpdateTrainingPlan)
			trainingGroup.PATCH("/:id/usuario", trainerOnly, planHandler.AssignUser)
			trainingGroup.PATCH("/:id/plan-nutricional", trainerOnly, planHandler.LinkNutritionPlan)
			trainingGroup.DELETE("/:id", trainerOnly, planHandler.DeleteTrainingPlan)
			mediaHandler.mount(trainingGroup, ResourceTrainingPlan)
		}

		nutritionGroup := protected.Group("/" + ResourceNutritionPlan)
		{
			nutritionGroup.GET("", planHandler.ListNutritionPlans)
			nutritionGroup.GET("/:id", planHandler.GetNutritionPlan)
			nutritionGroup.POST("", trainerOnly, planHandler.CreateNutritionPlan)
			nutritionGroup.PATCH("/:id", trainerOnly, planHandler.UpdateNutritionPlan)
			nutritionGroup.DELETE("/:id", trainerOnly, planHandler.DeleteNutritionPlan)
			mediaHandler.mount(nutritionGroup, ResourceNutritionPlan)
		}
	}
}
