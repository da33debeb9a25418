package model

// swagger:model Module
type Module struct {
	UUIDBase
	Title       string      `gorm:"size:255;not null" json:"title"`
	Description string      `gorm:"type:text" json:"description"`
	CourseID    string      `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Order       int         `gorm:"default:0" json:"order"`
	SubModules  []SubModule `gorm:"foreignKey:ModuleID" json:"subModules,omitempty"`
	Lessons     []Lesson    `gorm:"foreignKey:ModuleID" json:"lessons,omitempty"`
	Quizzes     []Quiz      `gorm:"foreignKey:ModuleID" json:"quizzes,omitempty"`
}

func (Module) TableName() string {
	return "modules"
}

// swagger:model SubModule
type SubModule struct {
	UUIDBase
	Title       string   `gorm:"size:255;not null" json:"title"`
	Description string   `gorm:"type:text" json:"description"`
	ModuleID    string   `gorm:"type:varchar(36);index;not null" json:"moduleId"`
	Order       int      `gorm:"default:0" json:"order"`
	Lessons     []Lesson `gorm:"foreignKey:SubModuleID" json:"lessons,omitempty"`
	Quizzes     []Quiz   `gorm:"foreignKey:SubModuleID" json:"quizzes,omitempty"`
}

func (SubModule) TableName() string {
	return "sub_modules"
}
