package service

import (
	"context"
	"encoding/json"
	"lms_backend/internal/model"
	"lms_backend/internal/testutil"
	"lms_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoQuestions() []model.Question {
	return []model.Question{
		{Question: "2+2?", Options: []string{"3", "4"}, CorrectAnswer: 1},
		{Question: "3+3?", Options: []string{"5", "6"}, CorrectAnswer: 1},
	}
}

func TestGrade(t *testing.T) {
	score, results := Grade(twoQuestions(), []int{1, 0})
	assert.Equal(t, 1, score)
	require.Len(t, results, 2)
	assert.True(t, results[0].IsCorrect)
	assert.False(t, results[1].IsCorrect)
	assert.Equal(t, 1, results[1].CorrectAnswer)
	assert.Equal(t, 0, *results[1].SubmittedAnswer)
}

func TestGrade_MissingAndOutOfRangeAnswers(t *testing.T) {
	questions := twoQuestions()
	questions[1].CorrectAnswer = 5 // corrupt definition never matches

	score, results := Grade(questions, []int{-1})
	assert.Zero(t, score)
	assert.Nil(t, results[1].SubmittedAnswer)

	score, _ = Grade(questions, []int{1, 5, 1})
	assert.Equal(t, 1, score)
}

func TestScorePercentage(t *testing.T) {
	assert.Equal(t, 50.0, ScorePercentage(1, 2))
	assert.Equal(t, 0.0, ScorePercentage(0, 0))
	assert.Equal(t, 33.33, ScorePercentage(1, 3))
}

func setupQuiz(t *testing.T, f *fixture, questions ...model.Question) (*model.User, *model.Quiz) {
	t.Helper()
	user := testutil.CreateUser(t, f.db, "learner@example.com", model.RoleUser)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	quiz := testutil.CreateQuiz(t, f.db, testutil.ModulePlacement(mod), "check", questions...)
	return user, quiz
}

func TestSubmit_TracksAttemptsAndBestScore(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, quiz := setupQuiz(t, f, twoQuestions()...)

	_, _, err := f.enrollments.Enroll(ctx, user.ID, quiz.CourseID, ClientInfo{})
	require.NoError(t, err)

	res, err := f.quizzes.Submit(ctx, user.ID, quiz.ID, []int{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 50.0, res.ScorePercentage)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 1, res.BestScore)

	res, err = f.quizzes.Submit(ctx, user.ID, quiz.ID, []int{1, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, 2, res.BestScore)

	res, err = f.quizzes.Submit(ctx, user.ID, quiz.ID, []int{0, 0})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 3, res.Attempts)
	assert.Equal(t, 2, res.BestScore)

	results, err := f.quizzes.Results(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 3, results[0].Attempts)
	assert.Equal(t, 0, results[0].Score)
	assert.Equal(t, 2, results[0].BestScore)
	assert.Equal(t, 2, results[0].TotalQuestions)
}

func TestSubmit_ZeroQuestionQuiz(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, quiz := setupQuiz(t, f)

	_, _, err := f.enrollments.Enroll(ctx, user.ID, quiz.CourseID, ClientInfo{})
	require.NoError(t, err)

	res, err := f.quizzes.Submit(ctx, user.ID, quiz.ID, []int{})
	require.NoError(t, err)
	assert.Equal(t, 0, res.Score)
	assert.Equal(t, 0.0, res.ScorePercentage)
	assert.Empty(t, res.Results)
}

func TestSubmit_RequiresEnrollment(t *testing.T) {
	f := newFixture(t)
	user, quiz := setupQuiz(t, f, twoQuestions()...)

	_, err := f.quizzes.Submit(context.Background(), user.ID, quiz.ID, []int{1, 1})
	assertKind(t, err, util.KindNotFound)

	_, err = f.quizzes.Submit(context.Background(), user.ID, "missing", []int{1})
	assertKind(t, err, util.KindNotFound)
}

func TestCanReview_AfterFirstAttempt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user, quiz := setupQuiz(t, f, twoQuestions()...)
	_, _, err := f.enrollments.Enroll(ctx, user.ID, quiz.CourseID, ClientInfo{})
	require.NoError(t, err)

	ok, err := f.quizzes.CanReview(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = f.quizzes.Submit(ctx, user.ID, quiz.ID, []int{0, 0})
	require.NoError(t, err)

	ok, err = f.quizzes.CanReview(ctx, user.ID, quiz.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestQuizCreate_ValidatesCorrectAnswer(t *testing.T) {
	f := newFixture(t)
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)

	_, err := f.quizzes.Create(context.Background(), QuizRequest{
		ScopeRequest: ScopeRequest{ModuleID: mod.ID},
		Title:        "bad",
		Questions:    []QuestionRequest{{Question: "?", Options: []string{"a", "b"}, CorrectAnswer: 2}},
	})
	assertKind(t, err, util.KindValidation)
	assert.Contains(t, err.Error(), "questions[0].correctAnswer")
}

func TestQuizCreate_OrdersIndependentlyOfLessons(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	course := testutil.CreateCourse(t, f.db, "Go", nil, 0)
	mod := testutil.CreateModule(t, f.db, course.ID, "m", 0)
	testutil.CreateLesson(t, f.db, testutil.ModulePlacement(mod), "l", 0)

	quiz, err := f.quizzes.Create(ctx, QuizRequest{ScopeRequest: ScopeRequest{ModuleID: mod.ID}, Title: "q"})
	require.NoError(t, err)
	assert.Equal(t, 0, quiz.Order)
	assert.Equal(t, course.ID, quiz.CourseID)
}

func TestQuizView_Redaction(t *testing.T) {
	quiz := &model.Quiz{Title: "check", Questions: twoQuestions()}

	redacted, err := json.Marshal(NewQuizView(quiz, false))
	require.NoError(t, err)
	assert.NotContains(t, string(redacted), "correctAnswer")

	full, err := json.Marshal(NewQuizView(quiz, true))
	require.NoError(t, err)
	assert.Contains(t, string(full), `"correctAnswer":1`)
}
