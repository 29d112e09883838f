package app_test

import (
	"testing"

	"quiz-builder/internal/app"
	"quiz-builder/internal/domain"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{60, "00:01:00"},
		{3661, "01:01:01"},
		{86400, "24:00:00"},
		{360000, "100:00:00"},
		{-5, "00:00:00"},
	}
	for _, tt := range tests {
		if got := app.FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestBuildReviewMarksOptions(t *testing.T) {
	quiz := sampleQuiz()
	q1, q2, q3 := quiz.Questions[0], quiz.Questions[1], quiz.Questions[2]
	attempt := domain.Attempt{
		ID:               "att_1",
		QuizID:           quiz.ID,
		Score:            1,
		Total:            5,
		TimeTakenSeconds: 3661,
		Answers: []domain.AnswerRecord{
			{QuestionID: q1.ID, SelectedOptionID: q1.CorrectOptionID, CorrectOptionID: q1.CorrectOptionID},
			{QuestionID: q2.ID, SelectedOptionID: "o4", CorrectOptionID: q2.CorrectOptionID},
			{QuestionID: q3.ID, CorrectOptionID: q3.CorrectOptionID},
			// question 4 and 5 have no record at all
		},
	}

	review := app.BuildReview(quiz, attempt)
	if review.TimeTaken != "01:01:01" || review.Score != 1 || review.Total != 5 {
		t.Fatalf("unexpected header %+v", review)
	}
	if len(review.Questions) != len(quiz.Questions) {
		t.Fatalf("expected every quiz question, got %d", len(review.Questions))
	}

	marks := func(i int) map[string]app.OptionMark {
		out := map[string]app.OptionMark{}
		for _, o := range review.Questions[i].Options {
			out[o.ID] = o.Mark
		}
		return out
	}

	m := marks(0)
	if m[q1.CorrectOptionID] != app.MarkCorrect {
		t.Fatalf("correct choice should be marked correct: %v", m)
	}
	for id, mark := range m {
		if id != q1.CorrectOptionID && mark != app.MarkNeutral {
			t.Fatalf("other options should be neutral: %v", m)
		}
	}

	m = marks(1)
	if m["o4"] != app.MarkIncorrectChoice || m[q2.CorrectOptionID] != app.MarkCorrect {
		t.Fatalf("wrong choice and answer not marked: %v", m)
	}
	if review.Questions[1].Options[3].Mark.Label() != "Your choice" {
		t.Fatalf("unexpected label %q", review.Questions[1].Options[3].Mark.Label())
	}

	for _, i := range []int{2, 3, 4} {
		rq := review.Questions[i]
		if rq.Answered {
			t.Fatalf("question %d should be unanswered", rq.Number)
		}
		for _, o := range rq.Options {
			if o.Mark == app.MarkIncorrectChoice {
				t.Fatalf("unanswered question %d has an incorrect choice", rq.Number)
			}
		}
	}
}
