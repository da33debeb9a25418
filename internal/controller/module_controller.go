package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService    *service.ModuleService
	SubModuleService *service.SubModuleService
	LessonService    *service.LessonService
	QuizService      *service.QuizService
}

func NewModuleController(
	moduleService *service.ModuleService,
	subModuleService *service.SubModuleService,
	lessonService *service.LessonService,
	quizService *service.QuizService,
) *ModuleController {
	return &ModuleController{
		ModuleService:    moduleService,
		SubModuleService: subModuleService,
		LessonService:    lessonService,
		QuizService:      quizService,
	}
}

// GetModule godoc
// @Summary Get a module with its submodules and direct lessons and quizzes
// @Tags Modules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} util.Response{data=service.ModuleView}
// @Failure 404 {object} util.Response
// @Router /api/modules/{id} [get]
func (c *ModuleController) GetModule(ctx *gin.Context) {
	module, err := c.ModuleService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, service.NewModuleView(module, util.GetUserFromContext(ctx).IsAdmin()))
}

// @Summary List the submodules of a module
// @Tags Modules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} util.ListResponse{data=[]model.SubModule}
// @Router /api/modules/{id}/submodules [get]
func (c *ModuleController) GetSubModules(ctx *gin.Context) {
	subModules, err := c.SubModuleService.ListByModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, subModules, len(subModules), int64(len(subModules)), util.Page{Page: 1, Limit: len(subModules)})
}

// @Summary List lessons placed directly in a module
// @Tags Modules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} util.ListResponse{data=[]model.Lesson}
// @Router /api/modules/{id}/lessons [get]
func (c *ModuleController) GetLessons(ctx *gin.Context) {
	lessons, err := c.LessonService.ListByModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, lessons, len(lessons), int64(len(lessons)), util.Page{Page: 1, Limit: len(lessons)})
}

// @Summary List quizzes placed directly in a module
// @Tags Modules
// @Produce json
// @Param id path string true "Module ID"
// @Success 200 {object} util.ListResponse{data=[]service.QuizView}
// @Router /api/modules/{id}/quizzes [get]
func (c *ModuleController) GetQuizzes(ctx *gin.Context) {
	quizzes, err := c.QuizService.ListByModule(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	views := service.NewQuizViews(quizzes, util.GetUserFromContext(ctx).IsAdmin())
	util.List(ctx, views, len(views), int64(len(views)), util.Page{Page: 1, Limit: len(views)})
}

// CreateModule godoc
// @Summary Create a module at the end of its course
// @Tags Modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CreateModuleRequest true "Module"
// @Success 201 {object} util.Response{data=model.Module}
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/modules [post]
func (c *ModuleController) CreateModule(ctx *gin.Context) {
	var req service.CreateModuleRequest
	if !bind(ctx, &req) {
		return
	}
	module, err := c.ModuleService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, module)
}

// @Summary Update a module
// @Tags Modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Module ID"
// @Param body body service.UpdateModuleRequest true "Module"
// @Success 200 {object} util.Response{data=model.Module}
// @Router /api/modules/{id} [put]
func (c *ModuleController) UpdateModule(ctx *gin.Context) {
	var req service.UpdateModuleRequest
	if !bind(ctx, &req) {
		return
	}
	module, err := c.ModuleService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, module)
}

// DeleteModule godoc
// @Summary Delete a module and its empty submodules
// @Description Refused while any lesson or quiz references the module or one of its submodules
// @Tags Modules
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Module ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Content still references the module"
// @Router /api/modules/{id} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	if err := c.ModuleService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Module deleted successfully")
}

// @Summary Reorder modules within their course
// @Tags Modules
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ReorderRequest true "New positions"
// @Success 200 {object} util.Response
// @Router /api/modules/reorder [put]
func (c *ModuleController) ReorderModules(ctx *gin.Context) {
	var req service.ReorderRequest
	if !bind(ctx, &req) {
		return
	}
	if err := c.ModuleService.Reorder(ctx.Request.Context(), req); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Modules reordered successfully")
}
