package controller

import (
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// includeAnswers decides whether correct answers may be shown: always for admins, and
// for review=true once the caller has a graded attempt.
func (c *QuizController) includeAnswers(ctx *gin.Context, quizID string) (bool, error) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		return false, nil
	}
	if user.IsAdmin() {
		return true, nil
	}
	if ctx.Query("review") != "true" {
		return false, nil
	}
	return c.QuizService.CanReview(ctx.Request.Context(), user.UserID, quizID)
}

// ListQuizzes godoc
// @Summary List quizzes
// @Tags Quizzes
// @Produce json
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Param search query string false "Title or description contains"
// @Success 200 {object} util.ListResponse{data=[]service.QuizView}
// @Router /api/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	page := util.ParsePage(ctx)
	filter := repository.ContentFilter{
		Search:     ctx.Query("search"),
		CategoryID: ctx.Query("categoryId"),
		Level:      ctx.Query("level"),
	}
	quizzes, total, err := c.QuizService.List(ctx.Request.Context(), filter, page)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	views := service.NewQuizViews(quizzes, util.GetUserFromContext(ctx).IsAdmin())
	util.List(ctx, views, len(views), total, page)
}

// GetQuiz godoc
// @Summary Get a quiz
// @Description correctAnswer is omitted unless the caller is an admin or reviews after an attempt
// @Tags Quizzes
// @Produce json
// @Param id path string true "Quiz ID"
// @Param review query bool false "Include answers after a graded attempt"
// @Success 200 {object} util.Response{data=service.QuizView}
// @Failure 404 {object} util.Response
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	quiz, err := c.QuizService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	include, err := c.includeAnswers(ctx, quiz.ID)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, service.NewQuizView(quiz, include))
}

// CreateQuiz godoc
// @Summary Create a quiz in a module or submodule
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.QuizRequest true "Quiz"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Failure 400 {object} util.Response
// @Router /api/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if !bind(ctx, &req) {
		return
	}
	quiz, err := c.QuizService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary Update a quiz
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param body body service.QuizRequest true "Quiz"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var req service.QuizRequest
	if !bind(ctx, &req) {
		return
	}
	quiz, err := c.QuizService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary Delete a quiz
// @Tags Quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Success 200 {object} util.Response
// @Router /api/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.QuizService.Delete(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Quiz deleted successfully")
}

// @Summary Reorder quizzes within their scope
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ReorderRequest true "New positions"
// @Success 200 {object} util.Response
// @Router /api/quizzes/reorder [put]
func (c *QuizController) ReorderQuizzes(ctx *gin.Context) {
	var req service.ReorderRequest
	if !bind(ctx, &req) {
		return
	}
	if err := c.QuizService.Reorder(ctx.Request.Context(), req); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Quizzes reordered successfully")
}

// SubmitQuiz godoc
// @Summary Submit an attempt
// @Description Grades the answers and returns per-question feedback including correct answers
// @Tags Quizzes
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Quiz ID"
// @Param body body service.SubmitQuizRequest true "Answers by question position"
// @Success 200 {object} util.Response{data=service.GradingResult}
// @Failure 404 {object} util.Response "Quiz missing or not enrolled"
// @Router /api/quizzes/{id}/submit [post]
func (c *QuizController) SubmitQuiz(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	var req service.SubmitQuizRequest
	if !bind(ctx, &req) {
		return
	}
	result, err := c.QuizService.Submit(ctx.Request.Context(), user.UserID, ctx.Param("id"), req.Answers)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetResults godoc
// @Summary Results of the current user
// @Description Pass a quiz ID in the path to restrict to one quiz
// @Tags Quizzes
// @Produce json
// @Security ApiKeyAuth
// @Param id path string false "Quiz ID"
// @Success 200 {object} util.ListResponse{data=[]model.QuizResult}
// @Router /api/quizzes/{id}/results [get]
func (c *QuizController) GetResults(ctx *gin.Context) {
	user, ok := caller(ctx)
	if !ok {
		return
	}
	results, err := c.QuizService.Results(ctx.Request.Context(), user.UserID, ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, results, len(results), int64(len(results)), util.Page{Page: 1, Limit: len(results)})
}
