package service

import (
	"context"
	"strings"
	"testing"

	"quizhub_backend/internal/config"
	"quizhub_backend/internal/model"
	"quizhub_backend/internal/util"

	"go.uber.org/zap"
)

func completedSession() (*model.ExamSession, *model.Exam) {
	correct := true
	wrong := false
	selectedA := "A"
	selectedB := "B"

	exam := &model.Exam{BaseModel: model.BaseModel{ID: 1}, Title: "Go basics"}
	session := &model.ExamSession{
		BaseModel:    model.BaseModel{ID: 10},
		UserID:       7,
		ExamID:       1,
		Score:        5,
		CorrectCount: 1,
		Status:       model.SessionCompleted,
		Answers: []model.ExamSessionAnswer{
			{
				QuestionID:     1,
				Question:       &model.Question{BaseModel: model.BaseModel{ID: 1}, Content: "What does := do?", OptionA: "declare and assign", OptionB: "compare", CorrectAnswer: "A"},
				SelectedAnswer: &selectedA,
				IsCorrect:      &correct,
			},
			{
				QuestionID:     2,
				Question:       &model.Question{BaseModel: model.BaseModel{ID: 2}, Content: "Is Go garbage collected?", OptionA: "yes", OptionB: "no", CorrectAnswer: "A"},
				SelectedAnswer: &selectedB,
				IsCorrect:      &wrong,
			},
		},
	}
	return session, exam
}

func TestFallbackSummaryCompleted(t *testing.T) {
	session, exam := completedSession()

	summary := FallbackSummary(session, exam)
	if !strings.Contains(summary, "5.00/10") {
		t.Errorf("summary missing score: %q", summary)
	}
	if !strings.Contains(summary, `"Go basics"`) {
		t.Errorf("summary missing exam title: %q", summary)
	}
	if !strings.Contains(summary, "Is Go garbage collected?") {
		t.Errorf("summary missing missed question: %q", summary)
	}
	if strings.Contains(summary, "What does := do?") {
		t.Errorf("summary lists a correctly answered question: %q", summary)
	}
}

func TestExplainSessionRequiresSubmission(t *testing.T) {
	exam := openExam(3, true)
	svc, store := newEngine(exam, 5)
	chat := NewChatService(store,
		&fakeExamStore{exams: map[uint]*model.Exam{exam.ID: exam}},
		config.AIConfig{}, zap.NewNop())

	view, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	owner := &util.Claims{UserID: 7}
	if _, err := chat.ExplainSession(context.Background(), owner, view.SessionID, "how did I do?"); err != util.ErrSessionInProgress {
		t.Fatalf("unsubmitted explain err = %v, want ErrSessionInProgress", err)
	}

	if _, err := svc.SubmitSession(7, view.SessionID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	result, err := chat.ExplainSession(context.Background(), owner, view.SessionID, "how did I do?")
	if err != nil {
		t.Fatalf("submitted explain: %v", err)
	}
	if result.Source != "fallback" {
		t.Fatalf("source = %q, want fallback without a configured provider", result.Source)
	}
}

func TestBuildSessionTranscript(t *testing.T) {
	session, exam := completedSession()

	transcript := buildSessionTranscript(session, exam)
	for _, want := range []string{
		"Exam: Go basics",
		"Q1: What does := do?",
		"Student answered: A",
		"Correct answer: A",
		"Q2: Is Go garbage collected?",
		"Student answered: B",
	} {
		if !strings.Contains(transcript, want) {
			t.Errorf("transcript missing %q:\n%s", want, transcript)
		}
	}
}
