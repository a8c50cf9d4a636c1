package api

import (
	"net/http"

	"fitcoach/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler serves training and nutrition plans.
type PlanHandler struct {
	trainingService  service.TrainingPlanService
	nutritionService service.NutritionPlanService
}

func NewPlanHandler(trainingService service.TrainingPlanService, nutritionService service.NutritionPlanService) *PlanHandler {
	return &PlanHandler{trainingService: trainingService, nutritionService: nutritionService}
}

// --- DTOs ---

// TrainingPlanRequest is shared by create and update. On update an empty
// user or nutritionPlan removes the link.
type TrainingPlanRequest struct {
	Name          *string          `json:"name" binding:"omitempty,notblank"`
	Description   *string          `json:"description" binding:"omitempty,notblank"`
	Trainer       *string          `json:"trainer"`
	User          *string          `json:"user"`
	NutritionPlan *string          `json:"nutritionPlan"`
	DurationWeeks *int             `json:"durationWeeks" binding:"omitempty,gt=0"`
	Level         *string          `json:"level"`
	Exercises     []map[string]any `json:"exercises"`
}

func (r TrainingPlanRequest) patch() service.TrainingPlanPatch {
	return service.TrainingPlanPatch{
		Name:            r.Name,
		Description:     r.Description,
		TrainerID:       r.Trainer,
		UserID:          r.User,
		NutritionPlanID: r.NutritionPlan,
		DurationWeeks:   r.DurationWeeks,
		Level:           r.Level,
		Exercises:       r.Exercises,
	}
}

type AssignUserRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type LinkNutritionPlanRequest struct {
	NutritionPlanID string `json:"nutritionPlanId" binding:"required"`
}

type NutritionPlanRequest struct {
	Name        *string          `json:"name" binding:"omitempty,notblank"`
	Description *string          `json:"description" binding:"omitempty,notblank"`
	Trainer     *string          `json:"trainer"`
	Calories    *float64         `json:"calories" binding:"omitempty,gte=0"`
	Macros      map[string]any   `json:"macros"`
	Meals       []map[string]any `json:"meals"`
}

func (r NutritionPlanRequest) patch() service.NutritionPlanPatch {
	return service.NutritionPlanPatch{
		Name:        r.Name,
		Description: r.Description,
		TrainerID:   r.Trainer,
		Calories:    r.Calories,
		Macros:      r.Macros,
		Meals:       r.Meals,
	}
}

// --- Training plans ---

// CreateTrainingPlan godoc
// @Summary Create a training plan
// @Tags Plan Entrenamiento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body TrainingPlanRequest true "Plan"
// @Success 201 {object} domain.TrainingPlan
// @Failure 404 {object} gin.H "Trainer, user or nutrition plan not found"
// @Router /plan-entrenamiento [post]
func (h *PlanHandler) CreateTrainingPlan(c *gin.Context) {
	var req TrainingPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.trainingService.Create(c.Request.Context(), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) ListTrainingPlans(c *gin.Context) {
	plans, err := h.trainingService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) GetTrainingPlan(c *gin.Context) {
	plan, err := h.trainingService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) ListTrainingPlansByUser(c *gin.Context) {
	plans, err := h.trainingService.ListByUser(c.Request.Context(), c.Param("usuarioId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) ListTrainingPlansByLevel(c *gin.Context) {
	plans, err := h.trainingService.ListByLevel(c.Request.Context(), c.Param("nivel"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) UpdateTrainingPlan(c *gin.Context) {
	var req TrainingPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.trainingService.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// AssignUser godoc
// @Summary Assign a training plan to a user
// @Tags Plan Entrenamiento
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Plan ID"
// @Param body body AssignUserRequest true "User"
// @Success 200 {object} domain.TrainingPlan
// @Router /plan-entrenamiento/{id}/usuario [patch]
func (h *PlanHandler) AssignUser(c *gin.Context) {
	var req AssignUserRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.trainingService.AssignUser(c.Request.Context(), c.Param("id"), req.UserID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) LinkNutritionPlan(c *gin.Context) {
	var req LinkNutritionPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.trainingService.LinkNutritionPlan(c.Request.Context(), c.Param("id"), req.NutritionPlanID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) DeleteTrainingPlan(c *gin.Context) {
	if err := h.trainingService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Nutrition plans ---

func (h *PlanHandler) CreateNutritionPlan(c *gin.Context) {
	var req NutritionPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.nutritionService.Create(c.Request.Context(), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) ListNutritionPlans(c *gin.Context) {
	plans, err := h.nutritionService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) GetNutritionPlan(c *gin.Context) {
	plan, err := h.nutritionService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) UpdateNutritionPlan(c *gin.Context) {
	var req NutritionPlanRequest
	if !bindJSON(c, &req) {
		return
	}
	plan, err := h.nutritionService.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) DeleteNutritionPlan(c *gin.Context) {
	if err := h.nutritionService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
