package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Register a new user
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "Account"
// @Success 201 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response "Invalid input or email already registered"
// @Router /api/auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req service.RegisterRequest
	if !bind(ctx, &req) {
		return
	}
	resp, err := c.AuthService.Register(ctx.Request.Context(), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, resp)
}

// Login godoc
// @Summary Log in and obtain a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "Credentials"
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 401 {object} util.Response
// @Router /api/auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req service.LoginRequest
	if !bind(ctx, &req) {
		return
	}
	resp, err := c.AuthService.Login(ctx.Request.Context(), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, resp)
}

// Me godoc
// @Summary Profile of the current user
// @Tags Auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/auth/me [get]
func (c *AuthController) Me(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	profile, err := c.AuthService.CurrentUser(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, profile)
}
