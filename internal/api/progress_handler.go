package api

import (
	"net/http"
	"time"

	"fitcoach/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
)

type ProgressHandler struct {
	progressService service.ProgressService
}

func NewProgressHandler(progressService service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

// --- DTOs ---

// CreateProgressRequest mirrors the stored record. References are plain ids.
type CreateProgressRequest struct {
	User           string         `json:"user" binding:"required"`
	TrainingPlan   string         `json:"trainingPlan"`
	NutritionPlan  string         `json:"nutritionPlan"`
	Type           string         `json:"type"`
	Value          *float64       `json:"value"`
	Unit           string         `json:"unit"`
	Weight         *float64       `json:"weight" binding:"omitempty,gt=0"`
	Measurements   map[string]any `json:"measurements"`
	Date           *time.Time     `json:"date"`
	Notes          string         `json:"notes"`
	Image          string         `json:"image" binding:"omitempty,url"`
	ImageThumbnail string         `json:"imageThumbnail" binding:"omitempty,url"`
}

// RegisterProgressRequest logs a single value. planId and trainingPlanId
// are aliases.
type RegisterProgressRequest struct {
	UserID         string   `json:"userId" binding:"required"`
	Type           string   `json:"type" binding:"required,notblank"`
	Value          *float64 `json:"value" binding:"required"`
	Unit           string   `json:"unit"`
	PlanID         string   `json:"planId"`
	TrainingPlanID string   `json:"trainingPlanId"`
	Notes          string   `json:"notes"`
}

// UpdateProgressRequest is a partial update. An empty plan id removes the link.
type UpdateProgressRequest struct {
	User          *string        `json:"user"` // Rejected: the owner is immutable
	TrainingPlan  *string        `json:"trainingPlan"`
	NutritionPlan *string        `json:"nutritionPlan"`
	Date          *time.Time     `json:"date"`
	Type          *string        `json:"type"`
	Weight        *float64       `json:"weight" binding:"omitempty,gt=0"`
	Measurements  map[string]any `json:"measurements"`
	Notes         *string        `json:"notes"`
}

// --- Handler Methods ---

// Create godoc
// @Summary Create a progress record
// @Tags Progreso
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param progress body CreateProgressRequest true "Progress record"
// @Success 201 {object} domain.ProgressDetails
// @Failure 400 {object} gin.H "Invalid reference, ownership mismatch or validation error"
// @Failure 404 {object} gin.H "Referenced entity not found"
// @Router /progreso [post]
func (h *ProgressHandler) Create(c *gin.Context) {
	var req CreateProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	details, err := h.progressService.Create(c.Request.Context(), service.CreateProgressInput{
		UserID:          req.User,
		TrainingPlanID:  req.TrainingPlan,
		NutritionPlanID: req.NutritionPlan,
		Type:            req.Type,
		Value:           req.Value,
		Unit:            req.Unit,
		Weight:          req.Weight,
		Measurements:    req.Measurements,
		Date:            req.Date,
		Notes:           req.Notes,
		Image:           req.Image,
		ImageThumbnail:  req.ImageThumbnail,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

// Register godoc
// @Summary Register a single measured value
// @Description The record is dated now. Weight values go to weight, any other type to measurements.
// @Tags Progreso
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param progress body RegisterProgressRequest true "Measured value"
// @Success 201 {object} domain.ProgressDetails
// @Failure 400 {object} gin.H "Invalid reference, ownership mismatch or ambiguous plan ids"
// @Failure 404 {object} gin.H "Referenced entity not found"
// @Router /progreso/registrar [post]
func (h *ProgressHandler) Register(c *gin.Context) {
	var req RegisterProgressRequest
	if !bindJSON(c, &req) {
		return
	}

	details, err := h.progressService.Create(c.Request.Context(), service.RegisterProgressInput{
		UserID:         req.UserID,
		Type:           req.Type,
		Value:          *req.Value,
		Unit:           req.Unit,
		PlanID:         req.PlanID,
		TrainingPlanID: req.TrainingPlanID,
		Notes:          req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, details)
}

func (h *ProgressHandler) List(c *gin.Context) {
	records, err := h.progressService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *ProgressHandler) Get(c *gin.Context) {
	details, err := h.progressService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// Update godoc
// @Summary Update a progress record
// @Description The owning user cannot be changed. Plan links are checked against the record's user.
// @Tags Progreso
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Progress ID"
// @Param progress body UpdateProgressRequest true "Fields to change"
// @Success 200 {object} domain.ProgressDetails
// @Router /progreso/{id} [patch]
func (h *ProgressHandler) Update(c *gin.Context) {
	var req UpdateProgressRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.User != nil {
		abortWithError(c, http.StatusBadRequest, kindValidationFailed, "user cannot be changed")
		return
	}

	details, err := h.progressService.Update(c.Request.Context(), c.Param("id"), service.ProgressPatch{
		TrainingPlanID:  req.TrainingPlan,
		NutritionPlanID: req.NutritionPlan,
		Date:            req.Date,
		Type:            req.Type,
		Weight:          req.Weight,
		Measurements:    req.Measurements,
		Notes:           req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *ProgressHandler) Delete(c *gin.Context) {
	if err := h.progressService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// History godoc
// @Summary A user's progress records, newest first
// @Tags Progreso
// @Produce json
// @Security BearerAuth
// @Param usuarioId path string true "User ID"
// @Success 200 {array} domain.ProgressDetails
// @Failure 400 {object} gin.H "Malformed user id"
// @Router /progreso/usuario/{usuarioId} [get]
func (h *ProgressHandler) History(c *gin.Context) {
	records, err := h.progressService.History(c.Request.Context(), c.Param("usuarioId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Evolution godoc
// @Summary Evolution statistics over a user's progress history
// @Tags Progreso
// @Produce json
// @Security BearerAuth
// @Param usuarioId path string true "User ID"
// @Success 200 {object} domain.Evolution
// @Router /progreso/usuario/{usuarioId}/evolucion [get]
func (h *ProgressHandler) Evolution(c *gin.Context) {
	evo, err := h.progressService.Evolution(c.Request.Context(), c.Param("usuarioId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, evo)
}
