package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubModuleController struct {
	SubModuleService *service.SubModuleService
	LessonService    *service.LessonService
	QuizService      *service.QuizService
}

func NewSubModuleController(
	subModuleService *service.SubModuleService,
	lessonService *service.LessonService,
	quizService *service.QuizService,
) *SubModuleController {
	return &SubModuleController{
		SubModuleService: subModuleService,
		LessonService:    lessonService,
		QuizService:      quizService,
	}
}

// @Summary Get a submodule
// @Tags SubModules
// @Produce json
// @Param id path string true "SubModule ID"
// @Success 200 {object} util.Response{data=service.SubModuleView}
// @Failure 404 {object} util.Response
// @Router /api/submodules/{id} [get]
func (c *SubModuleController) GetSubModule(ctx *gin.Context) {
	subModule, err := c.SubModuleService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, service.NewSubModuleView(subModule, util.GetUserFromContext(ctx).IsAdmin()))
}

// @Summary List the lessons of a submodule
// @Tags SubModules
// @Produce json
// @Param id path string true "SubModule ID"
// @Success 200 {object} util.ListResponse{data=[]model.Lesson}
// @Router /api/submodules/{id}/lessons [get]
func (c *SubModuleController) GetLessons(ctx *gin.Context) {
	lessons, err := c.LessonService.ListBySubModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, lessons, len(lessons), int64(len(lessons)), util.Page{Page: 1, Limit: len(lessons)})
}

// @Summary List the quizzes of a submodule
// @Tags SubModules
// @Produce json
// @Param id path string true "SubModule ID"
// @Success 200 {object} util.ListResponse{data=[]service.QuizView}
// @Router /api/submodules/{id}/quizzes [get]
func (c *SubModuleController) GetQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListBySubModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	views := service.NewQuizViews(quizzes, util.GetUserFromContext(ctx).IsAdmin())
	util.List(ctx, views, len(views), int64(len(views)), util.Page{Page: 1, Limit: len(views)})
}

// @Summary Create a submodule at the end of its module
// @Tags SubModules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateSubModuleRequest true "SubModule"
// @Success 201 {object} util.Response{data=model.SubModule}
// @Router /api/submodules [post]
func (c *SubModuleController) CreateSubModule(ctx *gin.Context) {
	var req service.CreateSubModuleRequest
	if !bind(ctx, &req) {
		return
	}
	subModule, err := c.SubModuleService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, subModule)
}

// @Summary Update a submodule
// @Tags SubModules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "SubModule ID"
// @Param body body service.UpdateModuleRequest true "SubModule"
// @Success 200 {object} util.Response{data=model.SubModule}
// @Router /api/submodules/{id} [put]
func (c *SubModuleController) UpdateSubModule(ctx *gin.Context) {
	var req service.UpdateModuleRequest
	if !bind(ctx, &req) {
		return
	}
	subModule, err := c.SubModuleService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, subModule)
}

// @Summary Delete an empty submodule
// @Tags SubModules
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "SubModule ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Lessons or quizzes still reference it"
// @Router /api/submodules/{id} [delete]
func (c *SubModuleController) DeleteSubModule(ctx *gin.Context) {
	if err := c.SubModuleService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "SubModule deleted successfully")
}

// @Summary Reorder submodules within their module
// @Tags SubModules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ReorderRequest true "New positions"
// @Success 200 {object} util.Response
// @Router /api/submodules/reorder [put]
func (c *SubModuleController) ReorderSubModules(ctx *gin.Context) {
	var req service.ReorderRequest
	if !bind(ctx, &req) {
		return
	}
	if err := c.SubModuleService.Reorder(ctx.Request.Context(), req); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "SubModules reordered successfully")
}
