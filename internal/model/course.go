package model

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// swagger:model Course
type Course struct {
	UUIDBase
	Title           string      `gorm:"size:255;not null" json:"title"`
	Description     string      `gorm:"type:text" json:"description"`
	Featured        bool        `gorm:"default:false;index" json:"featured"`
	Level           CourseLevel `gorm:"size:20;default:'beginner';index" json:"level"`
	Duration        string      `gorm:"size:50" json:"duration"`
	Thumbnail       string      `gorm:"size:500" json:"thumbnail"`
	CategoryID      *string     `gorm:"type:varchar(36);index" json:"categoryId"`
	Category        *Category   `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Order           int         `gorm:"default:0" json:"order"`
	EnrollmentCount int         `gorm:"default:0" json:"enrollmentCount"`
	Modules         []Module    `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}
