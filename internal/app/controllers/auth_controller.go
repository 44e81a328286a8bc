package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oguzk/noteshub/internal/app/models/dto"
	"github.com/oguzk/noteshub/internal/app/repositories"
	"github.com/oguzk/noteshub/internal/app/services"
	"github.com/oguzk/noteshub/internal/middleware"
	"github.com/oguzk/noteshub/internal/pkg/apperrors"
)

// AuthController exposes login, registration and token refresh endpoints.
type AuthController struct {
	authService *services.AuthService
	userRepo    repositories.UserRepository
}

// NewAuthController creates a new AuthController.
func NewAuthController(authService *services.AuthService, userRepo repositories.UserRepository) *AuthController {
	return &AuthController{authService: authService, userRepo: userRepo}
}

// LoginStudent handles POST /auth/student/login.
func (ac *AuthController) LoginStudent(c *gin.Context) {
	var req dto.StudentLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	resp, err := ac.authService.LoginStudent(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// LoginTeacher handles POST /auth/teacher/login.
func (ac *AuthController) LoginTeacher(c *gin.Context) {
	var req dto.TeacherLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	resp, err := ac.authService.LoginTeacher(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// RegisterStudent handles POST /auth/student/register. Open to the public.
func (ac *AuthController) RegisterStudent(c *gin.Context) {
	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	resp, err := ac.authService.RegisterStudent(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// RegisterTeacher handles POST /auth/teacher/register. Admin only; the
// service re-checks the caller's role.
func (ac *AuthController) RegisterTeacher(c *gin.Context) {
	caller, err := loadCaller(c, ac.userRepo)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.RegisterTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	profile, err := ac.authService.RegisterTeacher(c.Request.Context(), caller, &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.APIResponse{Data: profile})
}

// RefreshToken handles POST /auth/refresh.
func (ac *AuthController) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError(err.Error()))
		return
	}

	resp, err := ac.authService.RefreshToken(c.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
