package controller

import (
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// bind decodes the JSON body into req and writes a ValidationError on failure.
func bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		util.Fail(ctx, util.BindingError(err))
		return false
	}
	return true
}

// caller returns the authenticated user. Routes using it sit behind AuthMiddleware,
// so a missing user is answered with 401.
func caller(ctx *gin.Context) (*util.Claims, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return nil, false
	}
	return user, true
}
