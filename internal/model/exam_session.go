package model

import "time"

const (
	SessionInProgress = "InProgress"
	SessionCompleted  = "Completed"
)

// ExamSession is one user's attempt at an exam.
//
// ActiveExamID mirrors ExamID while the session is InProgress and is cleared on
// submit. MySQL unique indexes ignore NULLs, so the composite index below allows
// any number of completed sessions but at most one InProgress row per (user, exam)
// even under concurrent start calls.
// swagger:model ExamSession
type ExamSession struct {
	BaseModel
	UserID       uint  `gorm:"index;type:bigint unsigned;uniqueIndex:idx_user_exam_active" json:"userId"`
	User         *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	ExamID       uint  `gorm:"index;type:bigint unsigned" json:"examId"`
	Exam         *Exam `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	ActiveExamID *uint `gorm:"type:bigint unsigned;uniqueIndex:idx_user_exam_active" json:"-"`

	// Score on the 0-10 scale, rounded to two decimals at submit time.
	Score        float64    `json:"score"`
	CorrectCount int        `json:"correctCount"`
	StartedAt    time.Time  `json:"startedAt"`
	SubmittedAt  *time.Time `json:"submittedAt,omitempty"`
	Status       string     `gorm:"size:20;default:'InProgress'" json:"status"`

	Answers []ExamSessionAnswer `gorm:"foreignKey:SessionID" json:"answers,omitempty"`
}

func (ExamSession) TableName() string {
	return "exam_sessions"
}

// ExamSessionAnswer is one sampled question's slot within a session. The set of
// rows for a session is fixed at creation and never grows or shrinks.
// swagger:model ExamSessionAnswer
type ExamSessionAnswer struct {
	BaseModel
	SessionID  uint      `gorm:"index;type:bigint unsigned" json:"sessionId"`
	QuestionID uint      `gorm:"index;type:bigint unsigned" json:"questionId"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	// Selected answer label, nil until the user answers.
	SelectedAnswer *string `gorm:"size:1" json:"selectedAnswer,omitempty"`
	IsCorrect      *bool   `json:"isCorrect,omitempty"`
}

func (ExamSessionAnswer) TableName() string {
	return "exam_session_answers"
}
