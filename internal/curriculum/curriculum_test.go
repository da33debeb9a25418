package curriculum

import (
	"context"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/service"
	"lms_backend/internal/testutil"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const sample = `
categories:
  - name: Programming
    courses:
      - title: Go basics
        level: beginner
        featured: true
        modules:
          - title: Syntax
            lessons:
              - title: Variables
              - title: Functions
            quizzes:
              - title: Syntax check
                questions:
                  - question: "Which keyword declares a constant?"
                    options: [var, const]
                    correctAnswer: 1
            submodules:
              - title: Deep dive
                lessons:
                  - title: Closures
      - title: Go internals
        level: advanced
courses:
  - title: Orientation
`

func newImporter(db *gorm.DB) *Importer {
	categoryRepo := repository.NewCategoryRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	subModuleRepo := repository.NewSubModuleRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	quizRepo := repository.NewQuizRepository(db)
	enrollmentRepo := repository.NewEnrollmentRepository(db)
	placement := service.NewPlacementResolver(moduleRepo, subModuleRepo)

	return &Importer{
		Categories: service.NewCategoryService(db, categoryRepo),
		Courses:    service.NewCourseService(courseRepo, categoryRepo, enrollmentRepo),
		Modules:    service.NewModuleService(db, moduleRepo, courseRepo),
		SubModules: service.NewSubModuleService(subModuleRepo, moduleRepo),
		Lessons:    service.NewLessonService(lessonRepo, placement),
		Quizzes:    service.NewQuizService(quizRepo, courseRepo, enrollmentRepo, placement),
	}
}

func TestParse_RejectsInvalidCatalogue(t *testing.T) {
	_, err := Parse([]byte("courses:\n  - description: no title\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("courses:\n  - title: x\n    level: expert\n"))
	assert.Error(t, err)

	nested := `
courses:
  - title: x
    modules:
      - title: m
        submodules:
          - title: s
            submodules:
              - title: too deep
`
	_, err = Parse([]byte(nested))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot contain submodules")
}

func TestImport(t *testing.T) {
	db := testutil.NewDB(t)
	catalogue, err := Parse([]byte(sample))
	require.NoError(t, err)

	stats, err := newImporter(db).Import(context.Background(), catalogue)
	require.NoError(t, err)
	assert.Equal(t, Stats{Categories: 1, Courses: 3, Modules: 1, SubModules: 1, Lessons: 3, Quizzes: 1}, stats)

	var courses []model.Course
	require.NoError(t, db.Where("category_id IS NOT NULL").Order("`order` ASC").Find(&courses).Error)
	require.Len(t, courses, 2)
	assert.Equal(t, "Go basics", courses[0].Title)
	assert.Equal(t, 0, courses[0].Order)
	assert.Equal(t, 1, courses[1].Order)
	assert.Equal(t, model.LevelAdvanced, courses[1].Level)

	var lessons []model.Lesson
	require.NoError(t, db.Where("sub_module_id IS NULL").Order("`order` ASC").Find(&lessons).Error)
	require.Len(t, lessons, 2)
	assert.Equal(t, "Variables", lessons[0].Title)
	assert.Equal(t, 1, lessons[1].Order)

	var closure model.Lesson
	require.NoError(t, db.Where("title = ?", "Closures").First(&closure).Error)
	require.NotNil(t, closure.SubModuleID)
	assert.Equal(t, courses[0].ID, closure.CourseID)
	assert.Equal(t, 0, closure.Order)
}

func TestImport_StopsOnInvalidAnswer(t *testing.T) {
	db := testutil.NewDB(t)
	catalogue, err := Parse([]byte(`
courses:
  - title: x
    modules:
      - title: m
        quizzes:
          - title: q
            questions:
              - question: "?"
                options: [a, b]
                correctAnswer: 2
`))
	require.NoError(t, err)

	stats, err := newImporter(db).Import(context.Background(), catalogue)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `quiz "q"`)
	assert.Equal(t, 1, stats.Modules)
	assert.Zero(t, stats.Quizzes)
}
