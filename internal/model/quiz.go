package model

import "gorm.io/datatypes"

// swagger:model Question
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	ScopedRefs
	Title       string                       `gorm:"size:255;not null" json:"title"`
	Description string                       `gorm:"type:text" json:"description"`
	Questions   datatypes.JSONSlice[Question] `json:"questions"`
	Order       int                          `gorm:"default:0" json:"order"`
}

func (Quiz) TableName() string {
	return "quizzes"
}
