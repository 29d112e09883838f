package app

import (
	"time"

	"quiz-builder/internal/domain"
)

// Player walks a fixed quiz and records one selection per question.
type Player struct {
	quiz       domain.Quiz
	index      int
	selections map[string]string
	startedAt  time.Time
}

// NewPlayer starts a play session; now is captured as the start time.
func NewPlayer(quiz domain.Quiz, now time.Time) (*Player, error) {
	if len(quiz.Questions) == 0 {
		return nil, domain.ErrEmptyQuiz
	}
	return &Player{
		quiz:       quiz.Clone(),
		selections: make(map[string]string),
		startedAt:  now,
	}, nil
}

func (p *Player) Quiz() domain.Quiz { return p.quiz }

// Index is the 0-based position of the current question.
func (p *Player) Index() int { return p.index }

func (p *Player) Total() int { return len(p.quiz.Questions) }

func (p *Player) Current() domain.Question { return p.quiz.Questions[p.index] }

func (p *Player) StartedAt() time.Time { return p.startedAt }

// Selection returns the option chosen for a question, if any.
func (p *Player) Selection(questionID string) (string, bool) {
	id, ok := p.selections[questionID]
	return id, ok
}

// Answered counts questions with a selection.
func (p *Player) Answered() int { return len(p.selections) }

// Select records or overwrites the choice for a question. It does not advance.
func (p *Player) Select(questionID, optionID string) error {
	q, ok := p.quiz.Question(questionID)
	if !ok {
		return domain.ErrQuestionNotFound
	}
	if _, ok := q.Option(optionID); !ok {
		return domain.ErrOptionNotFound
	}
	p.selections[questionID] = optionID
	return nil
}

// Next moves forward one question; no-op on the last one.
func (p *Player) Next() {
	if p.index < len(p.quiz.Questions)-1 {
		p.index++
	}
}

// Prev moves back one question; no-op on the first one.
func (p *Player) Prev() {
	if p.index > 0 {
		p.index--
	}
}

// Submit scores the session. Every quiz question gets an answer record, in
// quiz order, whether or not it was answered; the correct option is copied
// from the question as it is now.
func (p *Player) Submit(attemptID string, now time.Time) domain.Attempt {
	elapsed := int(now.Sub(p.startedAt) / time.Second)
	if elapsed < 0 {
		elapsed = 0
	}

	answers := make([]domain.AnswerRecord, 0, len(p.quiz.Questions))
	score := 0
	for _, q := range p.quiz.Questions {
		rec := domain.AnswerRecord{
			QuestionID:       q.ID,
			SelectedOptionID: p.selections[q.ID],
			CorrectOptionID:  q.CorrectOptionID,
		}
		if rec.IsCorrect() {
			score++
		}
		answers = append(answers, rec)
	}

	return domain.Attempt{
		ID:               attemptID,
		QuizID:           p.quiz.ID,
		TakenAt:          now,
		Score:            score,
		Total:            len(p.quiz.Questions),
		TimeTakenSeconds: elapsed,
		Answers:          answers,
	}
}
