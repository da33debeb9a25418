package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	CategoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{CategoryService: categoryService}
}

// ListCategories godoc
// @Summary List categories
// @Description Categories ordered by featured order, then name
// @Tags Categories
// @Produce json
// @Success 200 {object} util.ListResponse{data=[]model.Category}
// @Router /api/categories [get]
func (c *CategoryController) ListCategories(ctx *gin.Context) {
	categories, err := c.CategoryService.List(ctx.Request.Context())
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, categories, len(categories), int64(len(categories)), util.Page{Page: 1, Limit: len(categories)})
}

// ListCategoriesWithCourses godoc
// @Summary List categories with their courses
// @Tags Categories
// @Produce json
// @Success 200 {object} util.ListResponse{data=[]model.Category}
// @Router /api/categories/with-courses [get]
func (c *CategoryController) ListCategoriesWithCourses(ctx *gin.Context) {
	categories, err := c.CategoryService.ListWithCourses(ctx.Request.Context())
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.List(ctx, categories, len(categories), int64(len(categories)), util.Page{Page: 1, Limit: len(categories)})
}

// GetCategory godoc
// @Summary Get a category with its courses
// @Tags Categories
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} util.Response{data=model.Category}
// @Failure 404 {object} util.Response
// @Router /api/categories/{id} [get]
func (c *CategoryController) GetCategory(ctx *gin.Context) {
	category, err := c.CategoryService.Get(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// CreateCategory godoc
// @Summary Create a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CategoryRequest true "Category"
// @Success 201 {object} util.Response{data=model.Category}
// @Failure 400 {object} util.Response "Invalid input or duplicate name"
// @Router /api/categories [post]
func (c *CategoryController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if !bind(ctx, &req) {
		return
	}
	category, err := c.CategoryService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, category)
}

// UpdateCategory godoc
// @Summary Update a category
// @Tags Categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Category ID"
// @Param body body service.CategoryRequest true "Category"
// @Success 200 {object} util.Response{data=model.Category}
// @Router /api/categories/{id} [put]
func (c *CategoryController) UpdateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if !bind(ctx, &req) {
		return
	}
	category, err := c.CategoryService.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Success(ctx, category)
}

// DeleteCategory godoc
// @Summary Delete a category
// @Description Refused while courses reference the category unless force=true, which detaches them
// @Tags Categories
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "Category ID"
// @Param force query bool false "Detach courses and delete"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "Courses still assigned"
// @Router /api/categories/{id} [delete]
func (c *CategoryController) DeleteCategory(ctx *gin.Context) {
	force := ctx.Query("force") == "true"
	if err := c.CategoryService.Delete(ctx.Request.Context(), ctx.Param("id"), force); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Category deleted successfully")
}

// ReorderCategories godoc
// @Summary Reorder featured categories
// @Tags Categories
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ReorderRequest true "New positions"
// @Success 200 {object} util.Response
// @Router /api/categories/reorder [put]
func (c *CategoryController) ReorderCategories(ctx *gin.Context) {
	var req service.ReorderRequest
	if !bind(ctx, &req) {
		return
	}
	if err := c.CategoryService.Reorder(ctx.Request.Context(), req); err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Message(ctx, "Categories reordered successfully")
}
