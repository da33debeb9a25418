package model

// swagger:model Lesson
type Lesson struct {
	UUIDBase
	ScopedRefs
	Title         string  `gorm:"size:255;not null" json:"title"`
	Description   string  `gorm:"type:text" json:"description"`
	Content       string  `gorm:"type:longtext" json:"content"`
	VideoURL      string  `gorm:"size:500" json:"videoUrl"`
	VideoDuration float64 `gorm:"default:0" json:"videoDuration"`
	Thumbnail     string  `gorm:"size:500" json:"thumbnail"`
	Order         int     `gorm:"default:0" json:"order"`
}

func (Lesson) TableName() string {
	return "lessons"
}
