package api

import (
	"net/http"

	"fitcoach/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UserRequest is shared by create and update; on update absent fields are kept.
type UserRequest struct {
	Name   *string  `json:"name" binding:"omitempty,notblank"`
	Email  *string  `json:"email" binding:"omitempty,email"`
	Phone  *string  `json:"phone"`
	Weight *float64 `json:"weight" binding:"omitempty,gt=0"`
	Height *float64 `json:"height" binding:"omitempty,gt=0"`
	Age    *int     `json:"age" binding:"omitempty,gte=0"`
	Goals  []string `json:"goals"`
}

func (r UserRequest) patch() service.UserPatch {
	return service.UserPatch{
		Name:   r.Name,
		Email:  r.Email,
		Phone:  r.Phone,
		Weight: r.Weight,
		Height: r.Height,
		Age:    r.Age,
		Goals:  r.Goals,
	}
}

// Create godoc
// @Summary Create a user
// @Tags Usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param user body UserRequest true "User"
// @Success 201 {object} domain.User
// @Failure 409 {object} gin.H "Email already in use"
// @Router /usuarios [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Create(c.Request.Context(), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Update(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), req.patch())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
