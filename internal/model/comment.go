package model

// swagger:model Comment
type Comment struct {
	BaseModel
	ExamID  uint   `gorm:"index;type:bigint unsigned" json:"examId"`
	Exam    *Exam  `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	UserID  uint   `gorm:"index;type:bigint unsigned" json:"userId"`
	User    *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Content string `gorm:"size:500;not null" json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}
