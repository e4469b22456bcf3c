package model

// Exam is a configured exam template. Status is free text; anything matching an
// open synonym ("mo", "mở", "open", any casing) counts as open.
// swagger:model Exam
type Exam struct {
	BaseModel
	Title         string `gorm:"size:200;not null" json:"title"`
	TopicID       uint   `gorm:"index;type:bigint unsigned" json:"topicId"`
	Topic         *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
	QuestionCount int    `gorm:"not null" json:"questionCount"`
	// Duration in minutes.
	Duration              int    `gorm:"not null" json:"duration"`
	Status                string `gorm:"size:20;default:'Open'" json:"status"`
	AllowMultipleAttempts bool   `gorm:"default:true" json:"allowMultipleAttempts"`
}

func (Exam) TableName() string {
	return "exams"
}
