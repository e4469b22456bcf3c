package model

// Topic groups questions and exams by subject.
// swagger:model Topic
type Topic struct {
	BaseModel
	Name        string `gorm:"size:150;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

func (Topic) TableName() string {
	return "topics"
}
