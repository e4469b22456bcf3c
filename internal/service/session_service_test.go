package service

import (
	"fmt"
	"testing"

	"quizhub_backend/internal/model"
	"quizhub_backend/internal/util"

	"go.uber.org/zap"
)

type fakeExamStore struct {
	exams map[uint]*model.Exam
}

func (f *fakeExamStore) FindByID(id uint) (*model.Exam, error) {
	exam, ok := f.exams[id]
	if !ok {
		return nil, nil
	}
	return exam, nil
}

type fakeQuestionStore struct {
	byTopic map[uint][]model.Question
}

func (f *fakeQuestionStore) ListByTopic(topicID uint) ([]model.Question, error) {
	return f.byTopic[topicID], nil
}

type fakeSessionStore struct {
	nextID   uint
	sessions map[uint]*model.ExamSession
	// hideInProgressOnce makes the next FindInProgress miss, simulating the
	// read-then-insert window two concurrent starts race through.
	hideInProgressOnce bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{nextID: 1, sessions: make(map[uint]*model.ExamSession)}
}

func (f *fakeSessionStore) FindInProgress(userID, examID uint) (*model.ExamSession, error) {
	if f.hideInProgressOnce {
		f.hideInProgressOnce = false
		return nil, nil
	}
	for _, s := range f.sessions {
		if s.UserID == userID && s.ExamID == examID && s.Status == model.SessionInProgress {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSessionStore) HasCompleted(userID, examID uint) (bool, error) {
	for _, s := range f.sessions {
		if s.UserID == userID && s.ExamID == examID && s.Status == model.SessionCompleted {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSessionStore) CreateWithAnswers(session *model.ExamSession, answers []model.ExamSessionAnswer) error {
	if session.ActiveExamID != nil {
		for _, s := range f.sessions {
			if s.UserID == session.UserID && s.ActiveExamID != nil && *s.ActiveExamID == *session.ActiveExamID {
				return fmt.Errorf("Duplicate entry '%d-%d' for key 'idx_user_exam_active'", session.UserID, *session.ActiveExamID)
			}
		}
	}
	session.ID = f.nextID
	f.nextID++
	for i := range answers {
		answers[i].ID = f.nextID
		f.nextID++
		answers[i].SessionID = session.ID
	}
	session.Answers = answers
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) FindOwned(id uint) (*model.ExamSession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, nil
	}
	return session, nil
}

func (f *fakeSessionStore) FindAnswer(sessionID, questionID uint) (*model.ExamSessionAnswer, error) {
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	for i := range session.Answers {
		if session.Answers[i].QuestionID == questionID {
			return &session.Answers[i], nil
		}
	}
	return nil, nil
}

func (f *fakeSessionStore) SaveAnswer(answer *model.ExamSessionAnswer) error {
	return nil
}

func (f *fakeSessionStore) Complete(session *model.ExamSession, answers []model.ExamSessionAnswer) error {
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) ListByUser(userID uint, page, limit int) ([]model.ExamSession, int64, error) {
	var out []model.ExamSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeSessionStore) ListAll(examID uint, page, limit int) ([]model.ExamSession, int64, error) {
	var out []model.ExamSession
	for _, s := range f.sessions {
		if examID == 0 || s.ExamID == examID {
			out = append(out, *s)
		}
	}
	return out, int64(len(out)), nil
}

func makeQuestions(topicID uint, n int) []model.Question {
	questions := make([]model.Question, 0, n)
	for i := 1; i <= n; i++ {
		questions = append(questions, model.Question{
			BaseModel:     model.BaseModel{ID: uint(i)},
			Content:       fmt.Sprintf("question %d", i),
			OptionA:       "a",
			OptionB:       "b",
			OptionC:       "c",
			OptionD:       "d",
			CorrectAnswer: "A",
			TopicID:       topicID,
		})
	}
	return questions
}

func newEngine(exam *model.Exam, poolSize int) (*SessionService, *fakeSessionStore) {
	exams := &fakeExamStore{exams: map[uint]*model.Exam{exam.ID: exam}}
	questions := &fakeQuestionStore{byTopic: map[uint][]model.Question{
		exam.TopicID: makeQuestions(exam.TopicID, poolSize),
	}}
	store := newFakeSessionStore()
	return NewSessionService(exams, questions, store, zap.NewNop()), store
}

func openExam(questionCount int, allowRetake bool) *model.Exam {
	return &model.Exam{
		BaseModel:             model.BaseModel{ID: 1},
		Title:                 "Go basics",
		TopicID:               1,
		QuestionCount:         questionCount,
		Duration:              30,
		Status:                "Open",
		AllowMultipleAttempts: allowRetake,
	}
}

func TestStartSessionSamplesConfiguredCount(t *testing.T) {
	svc, _ := newEngine(openExam(5, true), 10)

	view, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if len(view.Questions) != 5 {
		t.Fatalf("got %d questions, want 5", len(view.Questions))
	}

	seen := make(map[uint]bool)
	for _, q := range view.Questions {
		if seen[q.ID] {
			t.Fatalf("question %d sampled twice", q.ID)
		}
		seen[q.ID] = true
	}
}

func TestStartSessionClampsToPoolSize(t *testing.T) {
	svc, _ := newEngine(openExam(20, true), 7)

	view, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if len(view.Questions) != 7 {
		t.Fatalf("got %d questions, want the whole pool of 7", len(view.Questions))
	}
}

func TestStartSessionResumesInProgress(t *testing.T) {
	svc, _ := newEngine(openExam(5, true), 10)

	first, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	second, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("second start: %v", err)
	}
	if first.SessionID != second.SessionID {
		t.Fatalf("second start created session %d, want resumed %d", second.SessionID, first.SessionID)
	}

	firstIDs := make(map[uint]bool)
	for _, q := range first.Questions {
		firstIDs[q.ID] = true
	}
	for _, q := range second.Questions {
		if !firstIDs[q.ID] {
			t.Fatalf("resumed session contains question %d not in the original sample", q.ID)
		}
	}
}

func TestStartSessionBlocksRetakeWhenDisallowed(t *testing.T) {
	svc, _ := newEngine(openExam(3, false), 5)

	view, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitSession(7, view.SessionID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.StartSession(7, 1); err != util.ErrAlreadyCompleted {
		t.Fatalf("retake err = %v, want ErrAlreadyCompleted", err)
	}
}

func TestStartSessionAllowsRetakeWhenAllowed(t *testing.T) {
	svc, _ := newEngine(openExam(3, true), 5)

	first, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.SubmitSession(7, first.SessionID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	second, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("retake: %v", err)
	}
	if second.SessionID == first.SessionID {
		t.Fatal("retake reused the completed session")
	}
}

func TestStartSessionRejectsClosedExam(t *testing.T) {
	exam := openExam(3, true)
	exam.Status = "Closed"
	svc, _ := newEngine(exam, 5)

	if _, err := svc.StartSession(7, 1); err != util.ErrExamNotFound {
		t.Fatalf("err = %v, want ErrExamNotFound", err)
	}
}

func TestStartSessionAcceptsOpenStatusSynonyms(t *testing.T) {
	for _, status := range []string{"Open", "open", " MO ", "mở"} {
		exam := openExam(3, true)
		exam.Status = status
		svc, _ := newEngine(exam, 5)
		if _, err := svc.StartSession(7, 1); err != nil {
			t.Errorf("status %q: %v", status, err)
		}
	}
}

func TestStartSessionRejectsUnconfiguredCount(t *testing.T) {
	svc, _ := newEngine(openExam(0, true), 5)

	if _, err := svc.StartSession(7, 1); err != util.ErrBadQuestionCount {
		t.Fatalf("err = %v, want ErrBadQuestionCount", err)
	}
}

func TestStartSessionEmptyTopic(t *testing.T) {
	svc, _ := newEngine(openExam(3, true), 0)

	if _, err := svc.StartSession(7, 1); err != util.ErrNoQuestionsInTopic {
		t.Fatalf("err = %v, want ErrNoQuestionsInTopic", err)
	}
}

func TestRecordAnswerGradesCaseInsensitively(t *testing.T) {
	svc, _ := newEngine(openExam(3, true), 5)

	view, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	review, err := svc.RecordAnswer(7, view.SessionID, view.Questions[0].ID, " a ")
	if err != nil {
		t.Fatalf("RecordAnswer: %v", err)
	}
	if !review.IsCorrect {
		t.Fatal("lowercase 'a' not matched against stored 'A'")
	}
	if *review.SelectedAnswer != "A" {
		t.Fatalf("stored label %q, want normalized A", *review.SelectedAnswer)
	}
}

func TestRecordAnswerOverwrites(t *testing.T) {
	svc, _ := newEngine(openExam(3, true), 5)

	view, _ := svc.StartSession(7, 1)
	qid := view.Questions[0].ID

	if _, err := svc.RecordAnswer(7, view.SessionID, qid, "B"); err != nil {
		t.Fatalf("first record: %v", err)
	}
	review, err := svc.RecordAnswer(7, view.SessionID, qid, "A")
	if err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if !review.IsCorrect {
		t.Fatal("overwrite did not regrade")
	}
}

func TestRecordAnswerValidation(t *testing.T) {
	svc, _ := newEngine(openExam(3, true), 5)
	view, _ := svc.StartSession(7, 1)

	if _, err := svc.RecordAnswer(7, view.SessionID, view.Questions[0].ID, "E"); err != util.ErrBadAnswerLabel {
		t.Fatalf("label E: err = %v, want ErrBadAnswerLabel", err)
	}
	if _, err := svc.RecordAnswer(7, view.SessionID, 9999, "A"); err != util.ErrQuestionNotFound {
		t.Fatalf("foreign question: err = %v, want ErrQuestionNotFound", err)
	}
	if _, err := svc.RecordAnswer(8, view.SessionID, view.Questions[0].ID, "A"); err != util.ErrPermissionDenied {
		t.Fatalf("other user: err = %v, want ErrPermissionDenied", err)
	}
}

func TestSubmitSessionScoring(t *testing.T) {
	tests := []struct {
		name      string
		total     int
		answered  int
		wantScore float64
	}{
		{"all correct", 3, 3, 10},
		{"three of five", 5, 3, 6},
		{"one of three", 3, 1, 3.33},
		{"none answered", 4, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newEngine(openExam(tt.total, true), tt.total)

			view, err := svc.StartSession(7, 1)
			if err != nil {
				t.Fatalf("start: %v", err)
			}
			for i := 0; i < tt.answered; i++ {
				if _, err := svc.RecordAnswer(7, view.SessionID, view.Questions[i].ID, "A"); err != nil {
					t.Fatalf("record %d: %v", i, err)
				}
			}

			report, err := svc.SubmitSession(7, view.SessionID)
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			if report.Score != tt.wantScore {
				t.Errorf("score = %v, want %v", report.Score, tt.wantScore)
			}
			if report.CorrectCount != tt.answered {
				t.Errorf("correct = %d, want %d", report.CorrectCount, tt.answered)
			}
			if report.TotalCount != tt.total {
				t.Errorf("total = %d, want %d", report.TotalCount, tt.total)
			}
			if report.SubmittedAt == nil {
				t.Error("SubmittedAt not set")
			}
		})
	}
}

func TestSubmitSessionIsTerminal(t *testing.T) {
	svc, store := newEngine(openExam(3, true), 5)

	view, _ := svc.StartSession(7, 1)
	qid := view.Questions[0].ID
	if _, err := svc.SubmitSession(7, view.SessionID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	if _, err := svc.SubmitSession(7, view.SessionID); err != util.ErrSessionSubmitted {
		t.Fatalf("resubmit err = %v, want ErrSessionSubmitted", err)
	}
	if _, err := svc.RecordAnswer(7, view.SessionID, qid, "A"); err != util.ErrSessionSubmitted {
		t.Fatalf("record after submit err = %v, want ErrSessionSubmitted", err)
	}

	session := store.sessions[view.SessionID]
	if session.ActiveExamID != nil {
		t.Error("ActiveExamID not cleared on submit")
	}
	if session.Status != model.SessionCompleted {
		t.Errorf("status = %q, want Completed", session.Status)
	}
}

func TestStartSessionDuplicateRaceResolvesToWinner(t *testing.T) {
	svc, store := newEngine(openExam(3, true), 5)

	// Simulate a concurrent winner already holding the active slot.
	active := uint(1)
	winner := &model.ExamSession{
		UserID:       7,
		ExamID:       1,
		ActiveExamID: &active,
		Status:       model.SessionInProgress,
	}
	if err := store.CreateWithAnswers(winner, []model.ExamSessionAnswer{{QuestionID: 1}}); err != nil {
		t.Fatalf("seed winner: %v", err)
	}

	store.hideInProgressOnce = true
	view, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("StartSession after race: %v", err)
	}
	if view.SessionID != winner.ID {
		t.Fatalf("got session %d, want winner %d", view.SessionID, winner.ID)
	}
}

func TestGetResultOwnership(t *testing.T) {
	svc, _ := newEngine(openExam(3, true), 5)

	view, _ := svc.StartSession(7, 1)
	svc.SubmitSession(7, view.SessionID)

	owner := &util.Claims{UserID: 7}
	if _, err := svc.GetResult(owner, view.SessionID); err != nil {
		t.Fatalf("owner read: %v", err)
	}

	stranger := &util.Claims{UserID: 8}
	if _, err := svc.GetResult(stranger, view.SessionID); err != util.ErrPermissionDenied {
		t.Fatalf("stranger err = %v, want ErrPermissionDenied", err)
	}

	admin := &util.Claims{UserID: 8, Roles: []string{model.RoleAdmin}}
	if _, err := svc.GetResult(admin, view.SessionID); err != nil {
		t.Fatalf("admin read: %v", err)
	}
}

func TestGetResultRequiresSubmission(t *testing.T) {
	svc, _ := newEngine(openExam(3, true), 5)

	view, err := svc.StartSession(7, 1)
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	owner := &util.Claims{UserID: 7}
	if _, err := svc.GetResult(owner, view.SessionID); err != util.ErrSessionInProgress {
		t.Fatalf("unsubmitted read err = %v, want ErrSessionInProgress", err)
	}

	if _, err := svc.SubmitSession(7, view.SessionID); err != nil {
		t.Fatalf("submit: %v", err)
	}
	report, err := svc.GetResult(owner, view.SessionID)
	if err != nil {
		t.Fatalf("submitted read: %v", err)
	}
	if len(report.Details) == 0 {
		t.Fatal("submitted report has no details")
	}
}

func TestScaleScore(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{0, 0, 0},
		{0, 10, 0},
		{10, 10, 10},
		{3, 5, 6},
		{1, 3, 3.33},
		{2, 3, 6.67},
		{7, 9, 7.78},
	}
	for _, tt := range tests {
		if got := ScaleScore(tt.correct, tt.total); got != tt.want {
			t.Errorf("ScaleScore(%d, %d) = %v, want %v", tt.correct, tt.total, got, tt.want)
		}
	}
}
