package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SearchController struct {
	SearchService *service.SearchService
}

func NewSearchController(searchService *service.SearchService) *SearchController {
	return &SearchController{SearchService: searchService}
}

// Search godoc
// @Summary Search courses, lessons and quizzes
// @Description With type=all each entity type is paged separately and the results are concatenated
// @Tags Search
// @Produce json
// @Param q query string false "Text to look for in titles and descriptions"
// @Param type query string false "all, course, lesson or quiz" default(all)
// @Param categoryId query string false "Category filter"
// @Param level query string false "Level filter"
// @Param page query int false "Page" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} util.ListResponse{data=[]service.SearchHit}
// @Failure 400 {object} util.Response "Unknown type"
// @Router /api/search [get]
func (c *SearchController) Search(ctx *gin.Context) {
	page := util.ParsePage(ctx)
	query := service.SearchQuery{
		Q:          ctx.Query("q"),
		Type:       ctx.DefaultQuery("type", service.SearchAll),
		CategoryID: ctx.Query("categoryId"),
		Level:      ctx.Query("level"),
	}
	hits, total, err := c.SearchService.Search(ctx.Request.Context(), query, page)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	if hits == nil {
		hits = []service.SearchHit{}
	}
	util.List(ctx, hits, len(hits), total, page)
}
