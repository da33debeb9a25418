package service

import (
	"context"
	"io"
	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UploadResult struct {
	URL         string `json:"url"`
	Key         string `json:"key"`
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type VideoUploadResult struct {
	Lesson    *model.Lesson `json:"lesson"`
	Duration  float64       `json:"duration"`
	Thumbnail string        `json:"thumbnail,omitempty"`
}

type UploadService struct {
	Storage *StorageService
	Lessons *LessonService
	Cfg     *config.Config
}

func NewUploadService(storage *StorageService, lessons *LessonService, cfg *config.Config) *UploadService {
	return &UploadService{Storage: storage, Lessons: lessons, Cfg: cfg}
}

func (s *UploadService) maxSize() int64 {
	mb := s.Cfg.Upload.MaxSizeMB
	if mb <= 0 {
		mb = 200
	}
	return mb << 20
}

func objectKey(folder, filename string) string {
	return path.Join(folder, uuid.New().String()+strings.ToLower(filepath.Ext(filename)))
}

// Upload stores an image or PDF after sniffing its content type.
func (s *UploadService) Upload(ctx context.Context, fh *multipart.FileHeader, folder string) (*UploadResult, error) {
	if fh.Size > s.maxSize() {
		return nil, util.NewValidationError("file exceeds the upload size limit", "file")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	contentType, err := util.ValidateMimeType(f, util.AllowedUploadTypes)
	if err != nil {
		return nil, err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	key := objectKey(folder, fh.Filename)
	url, err := s.Storage.Upload(ctx, key, f, fh.Size, contentType)
	if err != nil {
		return nil, err
	}

	return &UploadResult{URL: url, Key: key, ContentType: contentType, Size: fh.Size}, nil
}

// UploadLessonVideo stores the video, probes its duration and a thumbnail with ffmpeg when
// available, and attaches the result to the lesson.
func (s *UploadService) UploadLessonVideo(ctx context.Context, lessonID string, fh *multipart.FileHeader) (*VideoUploadResult, error) {
	if !util.IsAllowedVideoExt(fh.Filename) {
		return nil, util.ErrInvalidVideoExt
	}
	if fh.Size > s.maxSize() {
		return nil, util.NewValidationError("file exceeds the upload size limit", "file")
	}
	if _, err := s.Lessons.Get(ctx, lessonID); err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "lesson-video-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	localPath := filepath.Join(tmpDir, "video"+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := saveMultipart(fh, localPath); err != nil {
		return nil, err
	}

	var duration float64
	if info, err := util.GetVideoInfo(localPath); err != nil {
		logger.Log.Warn("Video probe failed", zap.String("lesson_id", lessonID), zap.Error(err))
	} else {
		duration = info.Duration
	}

	var thumbnailURL string
	thumbPath := filepath.Join(tmpDir, "thumbnail.jpg")
	if err := util.GenerateThumbnail(localPath, thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("Thumbnail generation failed", zap.String("lesson_id", lessonID), zap.Error(err))
	} else if url, err := s.Storage.UploadFile(ctx, objectKey("thumbnails", thumbPath), thumbPath, "image/jpeg"); err == nil {
		thumbnailURL = url
	}

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" || !util.IsVideo(contentType) {
		contentType = util.MimeOctetStream
	}
	videoURL, err := s.Storage.UploadFile(ctx, objectKey("videos", fh.Filename), localPath, contentType)
	if err != nil {
		return nil, err
	}

	lesson, err := s.Lessons.AttachVideo(ctx, lessonID, videoURL, duration, thumbnailURL)
	if err != nil {
		return nil, err
	}
	return &VideoUploadResult{Lesson: lesson, Duration: duration, Thumbnail: thumbnailURL}, nil
}

func saveMultipart(fh *multipart.FileHeader, dst string) error {
	src, err := fh.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, src)
	return err
}
