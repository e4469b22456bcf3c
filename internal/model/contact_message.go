package model

import "time"

// swagger:model ContactMessage
type ContactMessage struct {
	BaseModel
	UserID  uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	User    *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Subject string    `gorm:"size:200;not null" json:"subject"`
	Content string    `gorm:"type:text;not null" json:"content"`
	SentAt  time.Time `json:"sentAt"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}
