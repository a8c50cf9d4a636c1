package api

import (
	"net/http"

	"fitcoach/coaching-api/internal/domain" // For domain.Role
	"fitcoach/coaching-api/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

// RegisterRequest creates an account and its profile in one call.
// Trainers must send a specialty; the body metrics only apply to users.
type RegisterRequest struct {
	Email          string      `json:"email" binding:"required,email"`
	Password       string      `json:"password" binding:"required,min=6"`
	Role           domain.Role `json:"role" binding:"required,oneof=user trainer"`
	Name           string      `json:"name" binding:"required,notblank"`
	Phone          string      `json:"phone"`
	Age            *int        `json:"age" binding:"omitempty,gte=0"`
	Weight         *float64    `json:"weight" binding:"omitempty,gt=0"`
	Height         *float64    `json:"height" binding:"omitempty,gt=0"`
	Goals          []string    `json:"goals"`
	Specialty      string      `json:"specialty"`
	Certifications []string    `json:"certifications"`
	Experience     string      `json:"experience"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account *domain.Account `json:"account"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new account (user or trainer)
// @Description Creates the account and the matching user or trainer profile.
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body RegisterRequest true "Registration details"
// @Success 201 {object} domain.Account "Account created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Email:          req.Email,
		Password:       req.Password,
		Role:           req.Role,
		Name:           req.Name,
		Phone:          req.Phone,
		Age:            req.Age,
		Weight:         req.Weight,
		Height:         req.Height,
		Goals:          req.Goals,
		Specialty:      req.Specialty,
		Certifications: req.Certifications,
		Experience:     req.Experience,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, account)
}

// Login godoc
// @Summary Log in
// @Description Authenticates an account and returns a JWT token.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, account, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{Token: token, Account: account})
}

// Me godoc
// @Summary The authenticated account and its profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.Me
// @Failure 401 {object} gin.H "Missing or invalid token"
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	accountID, err := getAccountIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, kindUnauthorized, "Unable to identify account from token.")
		return
	}

	me, err := h.authService.Me(c.Request.Context(), accountID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, me)
}
