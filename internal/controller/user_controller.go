package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService       *service.UserService
	EnrollmentService *service.EnrollmentService
}

func NewUserController(userService *service.UserService, enrollmentService *service.EnrollmentService) *UserController {
	return &UserController{
		UserService:       userService,
		EnrollmentService: enrollmentService,
	}
}

// GetMyEnrollments godoc
// @Summary Enrollments of the current user with progress
// @Tags Enrollment
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.ListResponse{data=[]service.EnrollmentSummary}
// @Router /api/users/me/enrollments [get]
func (c *UserController) GetMyEnrollments(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	enrollments, err := c.EnrollmentService.MyEnrollments(ctx.Request.Context(), user.UserID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, enrollments, len(enrollments), int64(len(enrollments)), util.Page{Page: 1, Limit: len(enrollments)})
}

// GetUsers godoc
// @Summary List users
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Name or email contains"
// @Success 200 {object} util.ListResponse{data=[]model.User}
// @Router /api/admin/users [get]
func (c *UserController) GetUsers(ctx *gin.Context) {
	page := util.ParsePage(ctx)
	users, total, err := c.UserService.List(ctx.Request.Context(), ctx.Query("search"), page)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, users, len(users), total, page)
}

// @Summary Get a user
// @Tags Admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/admin/users/{id} [get]
func (c *UserController) GetUser(ctx *gin.Context) {
	user, err := c.UserService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, user)
}

// @Summary Update a user's name, role or subscription
// @Tags Admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "User ID"
// @Param body body service.UpdateUserRequest true "User"
// @Success 200 {object} util.Response{data=model.User}
// @Router /api/admin/users/{id} [put]
func (c *UserController) UpdateUser(ctx *gin.Context) {
	var req service.UpdateUserRequest
	if !bind(ctx, &req) {
		return
	}
	user, err := c.UserService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, user)
}
