package model

import "time"

// swagger:model Enrollment
type Enrollment struct {
	UUIDBase
	UserID           string             `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID         string             `gorm:"type:varchar(36);not null;uniqueIndex:idx_enrollment_user_course;index" json:"courseId"`
	EnrolledAt       time.Time          `json:"enrolledAt"`
	CompletedLessons []LessonCompletion `gorm:"foreignKey:EnrollmentID" json:"-"`
	QuizResults      []QuizResult       `gorm:"foreignKey:EnrollmentID" json:"quizResults"`
}

func (Enrollment) TableName() string {
	return "enrollments"
}

func (e *Enrollment) CompletedLessonIDs() []string {
	ids := make([]string, 0, len(e.CompletedLessons))
	for _, c := range e.CompletedLessons {
		ids = append(ids, c.LessonID)
	}
	return ids
}

// LessonCompletion is one member of an enrollment's completed-lesson set.
type LessonCompletion struct {
	UUIDBase
	EnrollmentID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_completion_enrollment_lesson" json:"enrollmentId"`
	LessonID     string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_completion_enrollment_lesson" json:"lessonId"`
	CompletedAt  time.Time `json:"completedAt"`
}

func (LessonCompletion) TableName() string {
	return "lesson_completions"
}

// swagger:model QuizResult
type QuizResult struct {
	UUIDBase
	EnrollmentID   string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_quiz_result_enrollment_quiz" json:"enrollmentId"`
	QuizID         string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_quiz_result_enrollment_quiz" json:"quizId"`
	UserID         string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	Attempts       int       `gorm:"default:0" json:"attempts"`
	Score          int       `gorm:"default:0" json:"score"`
	BestScore      int       `gorm:"default:0" json:"bestScore"`
	TotalQuestions int       `gorm:"default:0" json:"totalQuestions"`
	CompletedAt    time.Time `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
