package model

import "time"

const (
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
	DeviceDesktop = "desktop"
	DeviceUnknown = "unknown"
)

// EnrollmentAnalytics is append-only telemetry written once per enroll event.
type EnrollmentAnalytics struct {
	UUIDBase
	UserID           string    `gorm:"type:varchar(36);index;not null" json:"userId"`
	CourseID         string    `gorm:"type:varchar(36);index;not null" json:"courseId"`
	EnrolledAt       time.Time `json:"enrolledAt"`
	ReferralSource   string    `gorm:"size:100;default:'direct'" json:"referralSource"`
	DeviceType       string    `gorm:"size:20;default:'unknown'" json:"deviceType"`
	IPAddress        string    `gorm:"size:64" json:"ipAddress"`
	UserAgent        string    `gorm:"size:500" json:"userAgent"`
	CompletionStatus string    `gorm:"size:20;default:'in_progress'" json:"completionStatus"`
	EngagementScore  int       `gorm:"default:0" json:"engagementScore"`
}

func (EnrollmentAnalytics) TableName() string {
	return "enrollment_analytics"
}
