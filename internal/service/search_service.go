package service

import (
	"context"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
)

const (
	SearchAll    = "all"
	SearchCourse = "course"
	SearchLesson = "lesson"
	SearchQuiz   = "quiz"
)

type SearchQuery struct {
	Q          string
	Type       string
	CategoryID string
	Level      string
}

type SearchHit struct {
	Type        string  `json:"type"`
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	CourseID    string  `json:"courseId,omitempty"`
	ModuleID    string  `json:"moduleId,omitempty"`
	SubModuleID *string `json:"subModuleId,omitempty"`
}

type SearchService struct {
	Courses *repository.CourseRepository
	Lessons *repository.LessonRepository
	Quizzes *repository.QuizRepository
}

func NewSearchService(courses *repository.CourseRepository, lessons *repository.LessonRepository, quizzes *repository.QuizRepository) *SearchService {
	return &SearchService{Courses: courses, Lessons: lessons, Quizzes: quizzes}
}

// Search pages through each requested entity type with the same offset and limit.
// For type "all" the hits of every type are concatenated and total is their sum.
func (s *SearchService) Search(ctx context.Context, q SearchQuery, p util.Page) ([]SearchHit, int64, error) {
	kind := q.Type
	if kind == "" {
		kind = SearchAll
	}
	switch kind {
	case SearchAll, SearchCourse, SearchLesson, SearchQuiz:
	default:
		return nil, 0, util.NewValidationError("type must be one of all, course, lesson, quiz", "type")
	}

	var (
		hits  []SearchHit
		total int64
	)

	if kind == SearchAll || kind == SearchCourse {
		courses, n, err := s.Courses.List(ctx, repository.CourseFilter{
			CategoryID: q.CategoryID,
			Level:      q.Level,
			Search:     q.Q,
		}, p.Offset(), p.Limit)
		if err != nil {
			return nil, 0, err
		}
		for _, c := range courses {
			hits = append(hits, SearchHit{Type: SearchCourse, ID: c.ID, Title: c.Title, Description: c.Description, CourseID: c.ID})
		}
		total += n
	}

	filter := repository.ContentFilter{Search: q.Q, CategoryID: q.CategoryID, Level: q.Level}

	if kind == SearchAll || kind == SearchLesson {
		lessons, n, err := s.Lessons.List(ctx, filter, p.Offset(), p.Limit)
		if err != nil {
			return nil, 0, err
		}
		for _, l := range lessons {
			hits = append(hits, SearchHit{
				Type: SearchLesson, ID: l.ID, Title: l.Title, Description: l.Description,
				CourseID: l.CourseID, ModuleID: l.ModuleID, SubModuleID: l.SubModuleID,
			})
		}
		total += n
	}

	if kind == SearchAll || kind == SearchQuiz {
		quizzes, n, err := s.Quizzes.List(ctx, filter, p.Offset(), p.Limit)
		if err != nil {
			return nil, 0, err
		}
		for _, qz := range quizzes {
			hits = append(hits, SearchHit{
				Type: SearchQuiz, ID: qz.ID, Title: qz.Title, Description: qz.Description,
				CourseID: qz.CourseID, ModuleID: qz.ModuleID, SubModuleID: qz.SubModuleID,
			})
		}
		total += n
	}

	if hits == nil {
		hits = []SearchHit{}
	}
	return hits, total, nil
}
