package model

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// swagger:model User
type User struct {
	UUIDBase
	Name        string       `gorm:"size:100;not null" json:"name"`
	Email       string       `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password    string       `gorm:"size:100;not null" json:"-"`
	Role        UserRole     `gorm:"size:20;default:'user'" json:"role"`
	Subscribed  bool         `gorm:"default:false" json:"subscribed"`
	Enrollments []Enrollment `gorm:"foreignKey:UserID" json:"enrollments,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
