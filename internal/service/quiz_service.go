package service

import (
	"context"
	"fmt"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"
	"lms_backend/pkg/monitoring"
	"lms_backend/pkg/tracing"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

type QuestionRequest struct {
	Question      string   `json:"question" binding:"required"`
	Options       []string `json:"options" binding:"required,min=2"`
	CorrectAnswer int      `json:"correctAnswer" binding:"min=0"`
}

type QuizRequest struct {
	ScopeRequest
	Title       string            `json:"title" binding:"required,max=255"`
	Description string            `json:"description"`
	Questions   []QuestionRequest `json:"questions" binding:"dive"`
}

type SubmitQuizRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

type QuizService struct {
	Repo        *repository.QuizRepository
	Courses     *repository.CourseRepository
	Enrollments *repository.EnrollmentRepository
	Placement   *PlacementResolver
}

func NewQuizService(
	repo *repository.QuizRepository,
	courses *repository.CourseRepository,
	enrollments *repository.EnrollmentRepository,
	placement *PlacementResolver,
) *QuizService {
	return &QuizService{
		Repo:        repo,
		Courses:     courses,
		Enrollments: enrollments,
		Placement:   placement,
	}
}

func toQuestions(reqs []QuestionRequest) ([]model.Question, error) {
	questions := make([]model.Question, len(reqs))
	for i, q := range reqs {
		if q.CorrectAnswer >= len(q.Options) {
			return nil, util.NewValidationError("correct answer is not one of the options",
				fmt.Sprintf("questions[%d].correctAnswer", i))
		}
		questions[i] = model.Question{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return questions, nil
}

func (s *QuizService) Create(ctx context.Context, req QuizRequest) (*model.Quiz, error) {
	questions, err := toQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	placement, err := s.Placement.Resolve(ctx, req.ScopeRequest)
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.NextOrder(ctx, placement.Scope)
	if err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:       req.Title,
		Description: req.Description,
		Questions:   questions,
		Order:       order,
	}
	quiz.Place(placement)

	if err := s.Repo.Create(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(ctx context.Context, id string) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "quiz")
	}
	return quiz, nil
}

func (s *QuizService) List(ctx context.Context, f repository.ContentFilter, p util.Page) ([]model.Quiz, int64, error) {
	return s.Repo.List(ctx, f, p.Offset(), p.Limit)
}

func (s *QuizService) ListByCourse(ctx context.Context, courseID string) ([]model.Quiz, error) {
	exists, err := s.Courses.Exists(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, util.NewNotFoundError("course")
	}
	return s.Repo.ListByCourse(ctx, courseID)
}

// ListByModule returns only the quizzes owned directly by the module.
func (s *QuizService) ListByModule(ctx context.Context, moduleID string) ([]model.Quiz, error) {
	if _, err := s.Placement.Resolve(ctx, ScopeRequest{ModuleID: moduleID}); err != nil {
		return nil, err
	}
	return s.Repo.ListByScope(ctx, model.ModuleScope(moduleID))
}

func (s *QuizService) ListBySubModule(ctx context.Context, subModuleID string) ([]model.Quiz, error) {
	if _, err := s.Placement.Resolve(ctx, ScopeRequest{SubModuleID: subModuleID}); err != nil {
		return nil, err
	}
	return s.Repo.ListByScope(ctx, model.SubModuleScope(subModuleID))
}

func (s *QuizService) Update(ctx context.Context, id string, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, util.NotFoundOr(err, "quiz")
	}

	questions, err := toQuestions(req.Questions)
	if err != nil {
		return nil, err
	}

	if req.IsSet() {
		placement, err := s.Placement.Resolve(ctx, req.ScopeRequest)
		if err != nil {
			return nil, err
		}
		if placement.Scope != quiz.Scope() {
			order, err := s.Repo.NextOrder(ctx, placement.Scope)
			if err != nil {
				return nil, err
			}
			quiz.Place(placement)
			quiz.Order = order
			if err := s.Repo.UpdatePlacement(ctx, quiz); err != nil {
				return nil, err
			}
		}
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.Questions = questions
	if err := s.Repo.Update(ctx, quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

// Delete keeps existing quiz results as attempt history.
func (s *QuizService) Delete(ctx context.Context, id string) error {
	if _, err := s.Repo.FindByID(ctx, id); err != nil {
		return util.NotFoundOr(err, "quiz")
	}
	return s.Repo.Delete(ctx, id)
}

func (s *QuizService) Reorder(ctx context.Context, req ReorderRequest) error {
	return reorderError("quiz", s.Repo.Reorder(ctx, req.Items))
}

// Submit grades an attempt and folds it into the caller's result for the quiz.
// The caller must be enrolled in the quiz's course.
func (s *QuizService) Submit(ctx context.Context, userID, quizID string, answers []int) (*GradingResult, error) {
	ctx, span := tracing.StartSpan(ctx, "QuizService.Submit", attribute.String("quiz.id", quizID))
	defer span.End()

	quiz, err := s.Repo.FindByID(ctx, quizID)
	if err != nil {
		return nil, util.NotFoundOr(err, "quiz")
	}

	enrollment, err := s.Enrollments.Find(ctx, userID, quiz.CourseID)
	if err != nil {
		return nil, util.NotFoundOr(err, "enrollment")
	}

	total := len(quiz.Questions)
	score, results := Grade(quiz.Questions, answers)

	record, err := s.Enrollments.RecordQuizAttempt(ctx, enrollment.ID, quiz.ID, userID, score, total)
	if err != nil {
		return nil, err
	}

	monitoring.QuizAttemptsTotal.Inc()
	logger.Log.Info("Quiz attempt graded",
		zap.String("user_id", userID),
		zap.String("quiz_id", quizID),
		zap.Int("score", score),
		zap.Int("total", total),
		zap.Int("attempts", record.Attempts),
	)

	return &GradingResult{
		QuizID:          quiz.ID,
		Score:           score,
		TotalQuestions:  total,
		ScorePercentage: ScorePercentage(score, total),
		Attempts:        record.Attempts,
		BestScore:       record.BestScore,
		Results:         results,
	}, nil
}

// Results lists the caller's quiz results, optionally for a single quiz.
func (s *QuizService) Results(ctx context.Context, userID, quizID string) ([]model.QuizResult, error) {
	if quizID != "" {
		if _, err := s.Repo.FindByID(ctx, quizID); err != nil {
			return nil, util.NotFoundOr(err, "quiz")
		}
	}
	return s.Enrollments.ListQuizResultsByUser(ctx, userID, quizID)
}

// CanReview reports whether the user has at least one graded attempt on the quiz.
func (s *QuizService) CanReview(ctx context.Context, userID, quizID string) (bool, error) {
	attempts, err := s.Enrollments.QuizAttempts(ctx, userID, quizID)
	if err != nil {
		return false, err
	}
	return attempts > 0, nil
}
