package service

import (
	"testing"

	"quizhub_backend/internal/util"
)

func TestParseQuestionRow(t *testing.T) {
	tests := []struct {
		name       string
		cells      []string
		wantReason string
	}{
		{
			name:  "valid row",
			cells: []string{"What is 2+2?", "3", "4", "5", "6", "b"},
		},
		{
			name:  "valid two-option row",
			cells: []string{"Go has classes?", "yes", "no", "", "", "B"},
		},
		{
			name:       "missing content",
			cells:      []string{"", "a", "b", "", "", "A"},
			wantReason: "question content is empty",
		},
		{
			name:       "missing option B",
			cells:      []string{"q", "a", "", "", "", "A"},
			wantReason: "options A and B are required",
		},
		{
			name:       "bad correct label",
			cells:      []string{"q", "a", "b", "", "", "X"},
			wantReason: "correct answer must be one of A, B, C, D",
		},
		{
			name:       "correct label points at empty option",
			cells:      []string{"q", "a", "b", "", "", "C"},
			wantReason: "correct answer points at an empty option",
		},
		{
			name:       "short row",
			cells:      []string{"q", "a"},
			wantReason: "options A and B are required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			question, rowErr := parseQuestionRow(2, tt.cells, 1)
			if tt.wantReason == "" {
				if rowErr != nil {
					t.Fatalf("unexpected row error: %v", rowErr.Reason)
				}
				if question.TopicID != 1 {
					t.Errorf("topic = %d, want 1", question.TopicID)
				}
				if question.CorrectAnswer != "B" {
					t.Errorf("correct = %q, want normalized B", question.CorrectAnswer)
				}
				return
			}
			if rowErr == nil {
				t.Fatal("expected row error, got none")
			}
			if rowErr.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", rowErr.Reason, tt.wantReason)
			}
			if rowErr.Row != 2 {
				t.Errorf("row = %d, want 2", rowErr.Row)
			}
		})
	}
}

func TestNormalizeAnswerLabel(t *testing.T) {
	for _, raw := range []string{"a", "A", " b ", "C", "d"} {
		if _, err := normalizeAnswerLabel(raw); err != nil {
			t.Errorf("%q rejected: %v", raw, err)
		}
	}
	for _, raw := range []string{"", "E", "AB", "1", " "} {
		if _, err := normalizeAnswerLabel(raw); err != util.ErrBadAnswerLabel {
			t.Errorf("%q: err = %v, want ErrBadAnswerLabel", raw, err)
		}
	}
}

func TestIsOpenStatus(t *testing.T) {
	open := []string{"open", "Open", "OPEN", " mo ", "Mo", "mở", "Mở"}
	for _, s := range open {
		if !IsOpenStatus(s) {
			t.Errorf("IsOpenStatus(%q) = false, want true", s)
		}
	}
	closed := []string{"", "closed", "Closed", "dong", "draft"}
	for _, s := range closed {
		if IsOpenStatus(s) {
			t.Errorf("IsOpenStatus(%q) = true, want false", s)
		}
	}
}
