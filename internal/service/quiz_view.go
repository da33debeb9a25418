package service

import (
	"lms_backend/internal/model"
	"time"
)

type QuestionView struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer,omitempty"`
}

// QuizView is the client representation of a quiz. Correct answers are only present
// when the view is built for review.
type QuizView struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	CourseID    string         `json:"courseId"`
	ModuleID    string         `json:"moduleId"`
	SubModuleID *string        `json:"subModuleId"`
	Order       int            `json:"order"`
	Questions   []QuestionView `json:"questions"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

func NewQuizView(q *model.Quiz, includeAnswers bool) QuizView {
	questions := make([]QuestionView, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = QuestionView{
			Question: question.Question,
			Options:  question.Options,
		}
		if includeAnswers {
			answer := question.CorrectAnswer
			questions[i].CorrectAnswer = &answer
		}
	}

	return QuizView{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		CourseID:    q.CourseID,
		ModuleID:    q.ModuleID,
		SubModuleID: q.SubModuleID,
		Order:       q.Order,
		Questions:   questions,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}
}

func NewQuizViews(quizzes []model.Quiz, includeAnswers bool) []QuizView {
	views := make([]QuizView, len(quizzes))
	for i := range quizzes {
		views[i] = NewQuizView(&quizzes[i], includeAnswers)
	}
	return views
}

// SubModuleView is a submodule whose quizzes pass through NewQuizView.
type SubModuleView struct {
	model.SubModule
	Quizzes []QuizView `json:"quizzes,omitempty"`
}

func NewSubModuleView(s *model.SubModule, includeAnswers bool) SubModuleView {
	view := SubModuleView{SubModule: *s}
	view.SubModule.Quizzes = nil
	if len(s.Quizzes) > 0 {
		view.Quizzes = NewQuizViews(s.Quizzes, includeAnswers)
	}
	return view
}

// ModuleView is a module whose quizzes, including those of its submodules, pass through NewQuizView.
type ModuleView struct {
	model.Module
	SubModules []SubModuleView `json:"subModules,omitempty"`
	Quizzes    []QuizView      `json:"quizzes,omitempty"`
}

func NewModuleView(m *model.Module, includeAnswers bool) ModuleView {
	view := ModuleView{Module: *m}
	view.Module.SubModules = nil
	view.Module.Quizzes = nil
	for i := range m.SubModules {
		view.SubModules = append(view.SubModules, NewSubModuleView(&m.SubModules[i], includeAnswers))
	}
	if len(m.Quizzes) > 0 {
		view.Quizzes = NewQuizViews(m.Quizzes, includeAnswers)
	}
	return view
}
