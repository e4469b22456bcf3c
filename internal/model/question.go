package model

// swagger:model Question
type Question struct {
	BaseModel
	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `gorm:"size:255" json:"imageUrl,omitempty"`
	AudioURL string `gorm:"size:255" json:"audioUrl,omitempty"`
	OptionA  string `gorm:"type:text;not null" json:"optionA"`
	OptionB  string `gorm:"type:text;not null" json:"optionB"`
	OptionC  string `gorm:"type:text" json:"optionC,omitempty"`
	OptionD  string `gorm:"type:text" json:"optionD,omitempty"`
	// One of "A", "B", "C", "D". Compared case-insensitively everywhere.
	CorrectAnswer string `gorm:"size:1;not null" json:"correctAnswer"`
	TopicID       uint   `gorm:"index;type:bigint unsigned" json:"topicId"`
	Topic         *Topic `gorm:"foreignKey:TopicID" json:"topic,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}
