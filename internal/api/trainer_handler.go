// internal/api/trainer_handler.go
package api

import (
	"net/http"

	"fitcoach/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
)

type TrainerHandler struct {
	trainerService service.TrainerService
	profileService service.TrainerProfileService
}

func NewTrainerHandler(trainerService service.TrainerService, profileService service.TrainerProfileService) *TrainerHandler {
	return &TrainerHandler{
		trainerService: trainerService,
		profileService: profileService,
	}
}

// --- DTOs ---

type TrainerRequest struct {
	Name           *string  `json:"name" binding:"omitempty,notblank"`
	Specialty      *string  `json:"specialty"`
	Certifications []string `json:"certifications"`
	Email          *string  `json:"email" binding:"omitempty,email"`
	Phone          *string  `json:"phone"`
}

func (r TrainerRequest) patch() service.TrainerPatch {
	return service.TrainerPatch{
		Name:           r.Name,
		Specialty:      r.Specialty,
		Certifications: r.Certifications,
		Email:          r.Email,
		Phone:          r.Phone,
	}
}

// TrainerProfileRequest is what a trainer may change on their own profile.
type TrainerProfileRequest struct {
	FullName       *string  `json:"fullName" binding:"omitempty,notblank"`
	Phone          *string  `json:"phone"`
	Specialty      *string  `json:"specialty"`
	Certifications []string `json:"certifications"`
	Experience     *string  `json:"experience"`
	IsActive       *bool    `json:"isActive"`
}

// --- Trainers ---

// Create godoc
// @Summary Create a trainer
// @Tags Entrenadores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param trainer body TrainerRequest true "Trainer"
// @Success 201 {object} domain.Trainer
// @Router /entrenadores [post]
func (h *TrainerHandler) Create(c *gin.Context) {
	var req TrainerRequest
	if !bindJSON(c, &req) {
		return
	}
	trainer, err := h.trainerService.Create(c.Request.Context(), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, trainer)
}

func (h *TrainerHandler) List(c *gin.Context) {
	trainers, err := h.trainerService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainers)
}

func (h *TrainerHandler) Get(c *gin.Context) {
	trainer, err := h.trainerService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) Update(c *gin.Context) {
	var req TrainerRequest
	if !bindJSON(c, &req) {
		return
	}
	trainer, err := h.trainerService.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, trainer)
}

func (h *TrainerHandler) Delete(c *gin.Context) {
	if err := h.trainerService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Trainer profiles ---

// GetMyProfile godoc
// @Summary Get the authenticated trainer's profile
// @Tags Entrenador Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} domain.TrainerProfile
// @Failure 404 {object} gin.H "The account has no trainer profile"
// @Router /entrenador-profile/me [get]
func (h *TrainerHandler) GetMyProfile(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, kindUnauthorized, "Unable to identify account from token.")
		return
	}
	profile, err := h.profileService.GetMine(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateMyProfile godoc
// @Summary Update the authenticated trainer's profile
// @Tags Entrenador Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body TrainerProfileRequest true "Fields to change"
// @Success 200 {object} domain.TrainerProfile
// @Failure 403 {object} gin.H "Not a trainer"
// @Router /entrenador-profile/me [put]
func (h *TrainerHandler) UpdateMyProfile(c *gin.Context) {
	var req TrainerProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, kindUnauthorized, "Unable to identify account from token.")
		return
	}
	profile, err := h.profileService.UpdateMine(c.Request.Context(), accountID, service.TrainerProfilePatch{
		FullName:       req.FullName,
		Phone:          req.Phone,
		Specialty:      req.Specialty,
		Certifications: req.Certifications,
		Experience:     req.Experience,
		IsActive:       req.IsActive,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *TrainerHandler) ListProfiles(c *gin.Context) {
	profiles, err := h.profileService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *TrainerHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileService.GetByAccountID(c.Request.Context(), c.Param("accountId"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}
