package service

import (
	"math"

	"lms_backend/internal/model"
)

// QuestionResult is the per-question feedback returned after an attempt. It always carries
// the correct answer.
type QuestionResult struct {
	Question        string   `json:"question"`
	Options         []string `json:"options"`
	SubmittedAnswer *int     `json:"submittedAnswer"`
	CorrectAnswer   int      `json:"correctAnswer"`
	IsCorrect       bool     `json:"isCorrect"`
}

type GradingResult struct {
	QuizID          string           `json:"quizId"`
	Score           int              `json:"score"`
	TotalQuestions  int              `json:"totalQuestions"`
	ScorePercentage float64          `json:"scorePercentage"`
	Attempts        int              `json:"attempts"`
	BestScore       int              `json:"bestScore"`
	Results         []QuestionResult `json:"results"`
}

// Grade compares answers to questions position by position. A missing answer or an
// option index outside the question's options counts as incorrect.
func Grade(questions []model.Question, answers []int) (int, []QuestionResult) {
	score := 0
	results := make([]QuestionResult, len(questions))
	for i, q := range questions {
		res := QuestionResult{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
		}
		if i < len(answers) {
			answer := answers[i]
			res.SubmittedAnswer = &answer
			res.IsCorrect = answer >= 0 && answer < len(q.Options) && answer == q.CorrectAnswer
		}
		if res.IsCorrect {
			score++
		}
		results[i] = res
	}
	return score, results
}

// ScorePercentage is score/total*100 rounded to two decimals, and 0 for an empty quiz.
func ScorePercentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(score)/float64(total)*10000) / 100
}
