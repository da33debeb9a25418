package controller

import (
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService     *service.CourseService
	ModuleService     *service.ModuleService
	QuizService       *service.QuizService
	EnrollmentService *service.EnrollmentService
}

func NewCourseController(
	courseService *service.CourseService,
	moduleService *service.ModuleService,
	quizService *service.QuizService,
	enrollmentService *service.EnrollmentService,
) *CourseController {
	return &CourseController{
		CourseService:     courseService,
		ModuleService:     moduleService,
		QuizService:       quizService,
		EnrollmentService: enrollmentService,
	}
}

// ListCourses godoc
// @Summary List courses
// @Tags Courses
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param categoryId query string false "Category filter"
// @Param level query string false "Level filter"
// @Param featured query bool false "Featured filter"
// @Param search query string false "Title or description contains"
// @Success 200 {object} util.ListResponse{data=[]model.Course}
// @Router /api/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	page := util.ParsePage(ctx)
	filter := repository.CourseFilter{
		CategoryID: ctx.Query("categoryId"),
		Level:      ctx.Query("level"),
		Search:     ctx.Query("search"),
	}
	if raw := ctx.Query("featured"); raw != "" {
		featured, err := strconv.ParseBool(raw)
		if err != nil {
			util.Fail(ctx, util.NewValidationError("featured must be a boolean", "featured"))
			return
		}
		filter.Featured = &featured
	}

	courses, total, err := c.CourseService.List(ctx.Request.Context(), filter, page)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, courses, len(courses), total, page)
}

// GetFeaturedCourses godoc
// @Summary List featured courses
// @Tags Courses
// @Produce json
// @Param limit query int false "Maximum number of courses" default(10)
// @Success 200 {object} util.ListResponse{data=[]model.Course}
// @Router /api/courses/featured [get]
func (c *CourseController) GetFeaturedCourses(ctx *gin.Context) {
	page := util.ParsePage(ctx)
	courses, err := c.CourseService.Featured(ctx.Request.Context(), page.Limit)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, courses, len(courses), int64(len(courses)), util.Page{Page: 1, Limit: page.Limit})
}

// GetCourse godoc
// @Summary Get a course with its modules and submodules
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=model.Course}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetCourseModules godoc
// @Summary List the modules of a course
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.ListResponse{data=[]model.Module}
// @Router /api/courses/{id}/modules [get]
func (c *CourseController) GetCourseModules(ctx *gin.Context) {
	modules, err := c.ModuleService.ListByCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, modules, len(modules), int64(len(modules)), util.Page{Page: 1, Limit: len(modules)})
}

// GetCourseQuizzes godoc
// @Summary List every quiz in a course
// @Description Correct answers are only included for admins
// @Tags Courses
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} util.ListResponse{data=[]service.QuizView}
// @Router /api/courses/{id}/quizzes [get]
func (c *CourseController) GetCourseQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListByCourse(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	views := service.NewQuizViews(quizzes, util.GetUserFromContext(ctx).IsAdmin())
	util.List(ctx, views, len(views), int64(len(views)), util.Page{Page: 1, Limit: len(views)})
}

// CreateCourse godoc
// @Summary Create a course
// @Description The course is appended to the end of its category
// @Tags Courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CourseRequest true "Course"
// @Success 201 {object} util.Response{data=model.Course}
// @Failure 400 {object} util.Response
// @Router /api/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if !bind(ctx, &req) {
		return
	}
	course, err := c.CourseService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags Courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Param body body service.CourseRequest true "Course"
// @Success 200 {object} util.Response{data=model.Course}
// @Router /api/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	var req service.CourseRequest
	if !bind(ctx, &req) {
		return
	}
	course, err := c.CourseService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Refused while users are enrolled or modules, lessons or quizzes remain
// @Tags Courses
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Course still referenced"
// @Router /api/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	if err := c.CourseService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Course deleted successfully")
}

// ReorderCourses godoc
// @Summary Reorder courses within their category
// @Tags Courses
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ReorderRequest true "New positions"
// @Success 200 {object} util.Response
// @Router /api/courses/reorder [put]
func (c *CourseController) ReorderCourses(ctx *gin.Context) {
	var req service.ReorderRequest
	if !bind(ctx, &req) {
		return
	}
	if err := c.CourseService.Reorder(ctx.Request.Context(), req); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Courses reordered successfully")
}

// Enroll godoc
// @Summary Enroll the current user in a course
// @Description Idempotent. Returns 201 for a new enrollment and 200 when already enrolled
// @Tags Enrollment
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=service.EnrollmentView}
// @Success 201 {object} util.Response{data=service.EnrollmentView}
// @Failure 404 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (c *CourseController) Enroll(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	info := service.ClientInfo{
		UserAgent: ctx.Request.UserAgent(),
		Referrer:  ctx.Request.Referer(),
		IP:        ctx.ClientIP(),
	}
	enrollment, created, err := c.EnrollmentService.Enroll(ctx.Request.Context(), user.UserID, ctx.Param("id"), info)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	view := service.NewEnrollmentView(enrollment)
	if created {
		util.Created(ctx, view)
		return
	}
	util.Success(ctx, view)
}

// GetProgress godoc
// @Summary Progress of the current user in a course
// @Tags Enrollment
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Course ID"
// @Success 200 {object} util.Response{data=service.Progress}
// @Failure 404 {object} util.Response "Course missing or not enrolled"
// @Router /api/courses/{id}/progress [get]
func (c *CourseController) GetProgress(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	progress, err := c.EnrollmentService.Progress(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, progress)
}
