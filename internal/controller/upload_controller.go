package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

var uploadFolders = map[string]bool{
	"images":     true,
	"documents":  true,
	"thumbnails": true,
}

type UploadController struct {
	UploadService *service.UploadService
}

func NewUploadController(uploadService *service.UploadService) *UploadController {
	return &UploadController{UploadService: uploadService}
}

// Upload godoc
// @Summary Upload an image or PDF to the object store
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "File"
// @Param folder formData string false "images, documents or thumbnails" default(images)
// @Success 201 {object} util.Response{data=service.UploadResult}
// @Failure 400 {object} util.Response
// @Router /api/uploads [post]
func (c *UploadController) Upload(ctx *gin.Context) {
	fh, err := ctx.FormFile("file")
	if err != nil {
		util.Fail(ctx, util.NewValidationError("missing file", "file"))
		return
	}
	folder := ctx.DefaultPostForm("folder", "images")
	if !uploadFolders[folder] {
		util.Fail(ctx, util.NewValidationError("folder must be one of images, documents, thumbnails", "folder"))
		return
	}
	result, err := c.UploadService.Upload(ctx.Request.Context(), fh, folder)
	if err != nil {
		util.Fail(ctx, err)
		return
	}
	util.Created(ctx, result)
}
