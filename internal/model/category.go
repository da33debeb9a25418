package model

// swagger:model Category
type Category struct {
	UUIDBase
	Name          string   `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description   string   `gorm:"type:text" json:"description"`
	Image         string   `gorm:"size:500" json:"image"`
	FeaturedOrder int      `gorm:"default:0" json:"featuredOrder"`
	Courses       []Course `gorm:"foreignKey:CategoryID" json:"courses,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
