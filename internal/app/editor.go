package app

import (
	"strings"
	"time"

	"quiz-builder/internal/domain"
)

// Editor holds a mutable quiz draft. It starts either from one blank question
// (create mode) or from a copy of an existing quiz (edit mode).
type Editor struct {
	ids       domain.IDGenerator
	original  *domain.Quiz
	title     string
	questions []domain.Question
}

// NewEditor starts a draft for a brand-new quiz.
func NewEditor(ids domain.IDGenerator) *Editor {
	return &Editor{
		ids:       ids,
		questions: []domain.Question{domain.BlankQuestion(ids)},
	}
}

// EditorFor starts a draft from an existing quiz. The quiz itself is never mutated.
func EditorFor(quiz domain.Quiz, ids domain.IDGenerator) *Editor {
	copied := quiz.Clone()
	return &Editor{
		ids:       ids,
		original:  &copied,
		title:     copied.Title,
		questions: copied.Clone().Questions,
	}
}

// Editing reports whether the draft was opened from an existing quiz.
func (e *Editor) Editing() bool { return e.original != nil }

// Title returns the draft title as typed.
func (e *Editor) Title() string { return e.title }

// Questions returns a copy of the draft questions.
func (e *Editor) Questions() []domain.Question {
	out := make([]domain.Question, len(e.questions))
	for i, q := range e.questions {
		out[i] = q.Clone()
	}
	return out
}

func (e *Editor) SetTitle(title string) {
	e.title = title
}

func (e *Editor) UpdateQuestionText(questionID, text string) error {
	i, err := e.indexOf(questionID)
	if err != nil {
		return err
	}
	e.questions[i].Text = text
	return nil
}

// SetCorrectOption marks which option of the question is the right answer.
func (e *Editor) SetCorrectOption(questionID, optionID string) error {
	i, err := e.indexOf(questionID)
	if err != nil {
		return err
	}
	if _, ok := e.questions[i].Option(optionID); !ok {
		return domain.ErrOptionNotFound
	}
	e.questions[i].CorrectOptionID = optionID
	return nil
}

func (e *Editor) UpdateOptionText(questionID, optionID, text string) error {
	i, err := e.indexOf(questionID)
	if err != nil {
		return err
	}
	q := e.questions[i].Clone()
	for j := range q.Options {
		if q.Options[j].ID == optionID {
			q.Options[j].Text = text
			e.questions[i] = q
			return nil
		}
	}
	return domain.ErrOptionNotFound
}

// AddQuestion appends a blank question and returns its id.
func (e *Editor) AddQuestion() string {
	q := domain.BlankQuestion(e.ids)
	e.questions = append(e.questions, q)
	return q.ID
}

// RemoveQuestion drops a question. Removing the last one is allowed; Save
// will reject the empty draft.
func (e *Editor) RemoveQuestion(questionID string) error {
	i, err := e.indexOf(questionID)
	if err != nil {
		return err
	}
	e.questions = append(e.questions[:i:i], e.questions[i+1:]...)
	return nil
}

// Validate runs the draft through domain.Validate without side effects.
func (e *Editor) Validate() error {
	return domain.Validate(e.title, e.questions)
}

// Save validates the draft and returns the finalized quiz. On failure the
// draft is left untouched.
func (e *Editor) Save(now time.Time) (domain.Quiz, error) {
	if err := e.Validate(); err != nil {
		return domain.Quiz{}, err
	}
	quiz := domain.Quiz{
		Title:     strings.TrimSpace(e.title),
		Questions: e.Questions(),
	}
	if e.original != nil {
		quiz.ID = e.original.ID
		quiz.CreatedAt = e.original.CreatedAt
	} else {
		quiz.ID = e.ids.NewID(domain.PrefixQuiz)
		quiz.CreatedAt = now
	}
	return quiz, nil
}

func (e *Editor) indexOf(questionID string) (int, error) {
	for i := range e.questions {
		if e.questions[i].ID == questionID {
			return i, nil
		}
	}
	return -1, domain.ErrQuestionNotFound
}
