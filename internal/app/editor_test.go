package app_test

import (
	"errors"
	"testing"
	"time"

	"quiz-builder/internal/app"
	"quiz-builder/internal/domain"
)

func TestNewEditorStartsWithOneBlankQuestion(t *testing.T) {
	e := app.NewEditor(&domain.SequenceGenerator{})
	if e.Editing() {
		t.Fatalf("new editor must be in create mode")
	}
	qs := e.Questions()
	if len(qs) != 1 || len(qs[0].Options) != 4 || qs[0].CorrectOptionID != "" {
		t.Fatalf("expected one blank question, got %+v", qs)
	}
}

func TestEditorUpdatesOnlyTarget(t *testing.T) {
	e := app.NewEditor(&domain.SequenceGenerator{})
	second := e.AddQuestion()
	before := e.Questions()
	first := before[0]

	if err := e.UpdateQuestionText(second, "Second?"); err != nil {
		t.Fatalf("update text: %v", err)
	}
	optID := before[1].Options[2].ID
	if err := e.UpdateOptionText(second, optID, "Third option"); err != nil {
		t.Fatalf("update option: %v", err)
	}
	if err := e.SetCorrectOption(second, optID); err != nil {
		t.Fatalf("set correct: %v", err)
	}

	after := e.Questions()
	if len(after) != 2 || after[1].ID != second {
		t.Fatalf("question order changed: %+v", after)
	}
	if after[0].ID != first.ID || after[0].Text != first.Text {
		t.Fatalf("unrelated question changed: %+v", after[0])
	}
	if after[1].Text != "Second?" || after[1].CorrectOptionID != optID {
		t.Fatalf("target question not updated: %+v", after[1])
	}
	for i, o := range after[1].Options {
		if o.ID != before[1].Options[i].ID {
			t.Fatalf("option identity changed at %d", i)
		}
		if i != 2 && o.Text != "" {
			t.Fatalf("unrelated option %d changed: %q", i, o.Text)
		}
	}
}

func TestEditorUnknownIDs(t *testing.T) {
	e := app.NewEditor(&domain.SequenceGenerator{})
	qid := e.Questions()[0].ID

	if err := e.UpdateQuestionText("nope", "x"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
	if err := e.SetCorrectOption(qid, "nope"); !errors.Is(err, domain.ErrOptionNotFound) {
		t.Fatalf("expected option not found, got %v", err)
	}
	if err := e.UpdateOptionText(qid, "nope", "x"); !errors.Is(err, domain.ErrOptionNotFound) {
		t.Fatalf("expected option not found, got %v", err)
	}
	if err := e.RemoveQuestion("nope"); !errors.Is(err, domain.ErrQuestionNotFound) {
		t.Fatalf("expected question not found, got %v", err)
	}
}

func TestEditorRemoveAllThenSaveFails(t *testing.T) {
	e := app.NewEditor(&domain.SequenceGenerator{})
	e.SetTitle("Empty")
	if err := e.RemoveQuestion(e.Questions()[0].ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(e.Questions()) != 0 {
		t.Fatalf("expected no questions")
	}
	if _, err := e.Save(time.Now()); !errors.Is(err, domain.ErrNoQuestions) {
		t.Fatalf("expected no-questions error, got %v", err)
	}
}

func TestEditorSaveFailureKeepsDraft(t *testing.T) {
	e := app.NewEditor(&domain.SequenceGenerator{})
	e.SetTitle("Draft")
	qid := e.Questions()[0].ID
	_ = e.UpdateQuestionText(qid, "Half written")

	_, err := e.Save(time.Now())
	if !domain.IsValidation(err) || err.Error() != "Each question must have a correct answer" {
		t.Fatalf("unexpected save error %v", err)
	}
	if e.Title() != "Draft" || e.Questions()[0].Text != "Half written" {
		t.Fatalf("draft must be preserved")
	}
}

func TestEditorSaveNewQuiz(t *testing.T) {
	ids := &domain.SequenceGenerator{}
	e := app.NewEditor(ids)
	fillDraft(t, e, "  Capitals  ")
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	quiz, err := e.Save(now)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if quiz.ID == "" || quiz.Title != "Capitals" || !quiz.CreatedAt.Equal(now) {
		t.Fatalf("unexpected quiz %+v", quiz)
	}

	// later draft edits must not leak into the saved quiz
	_ = e.UpdateQuestionText(quiz.Questions[0].ID, "changed")
	if quiz.Questions[0].Text == "changed" {
		t.Fatalf("saved quiz shares storage with the draft")
	}
}

func TestEditorForKeepsIdentity(t *testing.T) {
	created := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	original := domain.SampleQuizzes(&domain.SequenceGenerator{}, created)[0]
	e := app.EditorFor(original, &domain.SequenceGenerator{})
	if !e.Editing() || e.Title() != original.Title {
		t.Fatalf("expected edit mode with original title")
	}

	e.SetTitle("Renamed")
	_ = e.UpdateOptionText(original.Questions[0].ID, "o1", "Lyon")
	quiz, err := e.Save(time.Now())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if quiz.ID != original.ID || !quiz.CreatedAt.Equal(created) {
		t.Fatalf("edit must keep id and createdAt, got %s %v", quiz.ID, quiz.CreatedAt)
	}
	if original.Questions[0].Options[0].Text != "Paris" || original.Title == "Renamed" {
		t.Fatalf("editing must not mutate the source quiz")
	}
}

// fillDraft makes every question in the draft valid.
func fillDraft(t *testing.T, e *app.Editor, title string) {
	t.Helper()
	e.SetTitle(title)
	for _, q := range e.Questions() {
		if err := e.UpdateQuestionText(q.ID, "Question "+q.ID); err != nil {
			t.Fatalf("update text: %v", err)
		}
		for _, o := range q.Options {
			if err := e.UpdateOptionText(q.ID, o.ID, "Option "+o.ID); err != nil {
				t.Fatalf("update option: %v", err)
			}
		}
		if err := e.SetCorrectOption(q.ID, q.Options[0].ID); err != nil {
			t.Fatalf("set correct: %v", err)
		}
	}
}
