package service

import (
	"lms_backend/internal/config"
	"lms_backend/internal/repository"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db          *gorm.DB
	cfg         *config.Config
	categories  *CategoryService
	courses     *CourseService
	modules     *ModuleService
	subModules  *SubModuleService
	lessons     *LessonService
	quizzes     *QuizService
	enrollments *EnrollmentService
	search      *SearchService
	auth        *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.NewDB(t)

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	categoryRepo := repository.NewCategoryRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	subModuleRepo := repository.NewSubModuleRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	userRepo := repository.NewUserRepository(db)

	placement := NewPlacementResolver(moduleRepo, subModuleRepo)

	return &fixture{
		db:          db,
		cfg:         cfg,
		categories:  NewCategoryService(db, categoryRepo),
		courses:     NewCourseService(courseRepo, categoryRepo, enrollmentRepo),
		modules:     NewModuleService(db, moduleRepo, courseRepo),
		subModules:  NewSubModuleService(subModuleRepo, moduleRepo),
		lessons:     NewLessonService(lessonRepo, placement),
		quizzes:     NewQuizService(quizRepo, courseRepo, enrollmentRepo, placement),
		enrollments: NewEnrollmentService(db, enrollmentRepo, courseRepo, lessonRepo, analyticsRepo, nil),
		search:      NewSearchService(courseRepo, lessonRepo, quizRepo),
		auth:        NewAuthService(userRepo, cfg),
	}
}

func assertKind(t *testing.T, err error, kind util.ErrorKind) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, kind, util.KindOf(err), err.Error())
}
