package controller

import (
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService     *service.LessonService
	EnrollmentService *service.EnrollmentService
	UploadService     *service.UploadService
}

func NewLessonController(
	lessonService *service.LessonService,
	enrollmentService *service.EnrollmentService,
	uploadService *service.UploadService,
) *LessonController {
	return &LessonController{
		LessonService:     lessonService,
		EnrollmentService: enrollmentService,
		UploadService:     uploadService,
	}
}

// ListLessons godoc
// @Summary List lessons
// @Tags Lessons
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Title or description contains"
// @Param categoryId query string false "Category of the owning course"
// @Param level query string false "Level of the owning course"
// @Success 200 {object} util.ListResponse{data=[]model.Lesson}
// @Router /api/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	page := util.ParsePage(ctx)
	filter := repository.ContentFilter{
		Search:     ctx.Query("search"),
		CategoryID: ctx.Query("categoryId"),
		Level:      ctx.Query("level"),
	}
	lessons, total, err := c.LessonService.List(ctx.Request.Context(), filter, page)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, lessons, len(lessons), total, page)
}

// GetLesson godoc
// @Summary Get a lesson
// @Tags Lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	lesson, err := c.LessonService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// CreateLesson godoc
// @Summary Create a lesson in a module or submodule
// @Description Exactly one scope is required. The lesson is appended to its sibling group
// @Tags Lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.LessonRequest true "Lesson"
// @Success 201 {object} util.Response{data=model.Lesson}
// @Failure 400 {object} util.Response
// @Router /api/lessons [post]
func (c *LessonController) CreateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if !bind(ctx, &req) {
		return
	}
	lesson, err := c.LessonService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Description A different scope moves the lesson to the end of the new sibling group
// @Tags Lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Lesson ID"
// @Param body body service.LessonRequest true "Lesson"
// @Success 200 {object} util.Response{data=model.Lesson}
// @Router /api/lessons/{id} [put]
func (c *LessonController) UpdateLesson(ctx *gin.Context) {
	var req service.LessonRequest
	if !bind(ctx, &req) {
		return
	}
	lesson, err := c.LessonService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}

// @Summary Delete a lesson
// @Tags Lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id} [delete]
func (c *LessonController) DeleteLesson(ctx *gin.Context) {
	if err := c.LessonService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Lesson deleted successfully")
}

// @Summary Reorder lessons within their scope
// @Tags Lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ReorderRequest true "New positions"
// @Success 200 {object} util.Response
// @Router /api/lessons/reorder [put]
func (c *LessonController) ReorderLessons(ctx *gin.Context) {
	var req service.ReorderRequest
	if !bind(ctx, &req) {
		return
	}
	if err := c.LessonService.Reorder(ctx.Request.Context(), req); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Lessons reordered successfully")
}

// CompleteLesson godoc
// @Summary Mark a lesson as completed by the current user
// @Tags Enrollment
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response{data=service.Progress}
// @Failure 404 {object} util.Response "Lesson missing or not enrolled"
// @Router /api/lessons/{id}/complete [post]
func (c *LessonController) CompleteLesson(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	progress, err := c.EnrollmentService.CompleteLesson(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// UploadVideo godoc
// @Summary Upload the video of a lesson
// @Description Duration and thumbnail are derived with ffmpeg when it is installed
// @Tags Lessons
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Lesson ID"
// @Param file formData file true "Video file"
// @Success 200 {object} util.Response{data=service.VideoUploadResult}
// @Failure 400 {object} util.Response
// @Router /api/lessons/{id}/video [post]
func (c *LessonController) UploadVideo(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		util.Fail(ctx, util.NewValidationError("missing file", "file"))
		return
	}
	result, err := c.UploadService.UploadLessonVideo(ctx.Request.Context(), ctx.Param("id"), fh)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, result)
}
