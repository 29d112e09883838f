package app

import (
	"fmt"

	"quiz-builder/internal/domain"
)

// OptionMark classifies an option on the review screen.
type OptionMark string

const (
	MarkNeutral         OptionMark = "neutral"
	MarkCorrect         OptionMark = "correct"
	MarkIncorrectChoice OptionMark = "incorrect"
)

// Label is the short annotation shown next to a marked option.
func (m OptionMark) Label() string {
	switch m {
	case MarkCorrect:
		return "Correct"
	case MarkIncorrectChoice:
		return "Your choice"
	default:
		return ""
	}
}

type ReviewOption struct {
	ID   string     `json:"id"`
	Text string     `json:"text"`
	Mark OptionMark `json:"mark"`
}

type ReviewQuestion struct {
	Number           int            `json:"number"`
	ID               string         `json:"id"`
	Text             string         `json:"text"`
	SelectedOptionID string         `json:"selectedOptionId,omitempty"`
	Answered         bool           `json:"answered"`
	Options          []ReviewOption `json:"options"`
}

// Review is the per-question comparison of an attempt against its quiz.
type Review struct {
	QuizID    string           `json:"quizId"`
	QuizTitle string           `json:"quizTitle"`
	AttemptID string           `json:"attemptId"`
	Score     int              `json:"score"`
	Total     int              `json:"total"`
	TimeTaken string           `json:"timeTaken"`
	Questions []ReviewQuestion `json:"questions"`
}

// BuildReview renders an attempt against the quiz in quiz order. Questions
// without an answer record are shown as unanswered. Option marks follow the
// quiz's current answer key; Score and Total are the attempt's stored values.
func BuildReview(quiz domain.Quiz, attempt domain.Attempt) Review {
	review := Review{
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		AttemptID: attempt.ID,
		Score:     attempt.Score,
		Total:     attempt.Total,
		TimeTaken: FormatTime(attempt.TimeTakenSeconds),
		Questions: make([]ReviewQuestion, 0, len(quiz.Questions)),
	}
	for i, q := range quiz.Questions {
		rec, _ := attempt.Answer(q.ID)
		rq := ReviewQuestion{
			Number:           i + 1,
			ID:               q.ID,
			Text:             q.Text,
			SelectedOptionID: rec.SelectedOptionID,
			Answered:         rec.Answered(),
			Options:          make([]ReviewOption, 0, len(q.Options)),
		}
		for _, o := range q.Options {
			rq.Options = append(rq.Options, ReviewOption{
				ID:   o.ID,
				Text: o.Text,
				Mark: markOption(o.ID, q.CorrectOptionID, rec.SelectedOptionID),
			})
		}
		review.Questions = append(review.Questions, rq)
	}
	return review
}

func markOption(optionID, correctID, selectedID string) OptionMark {
	switch {
	case optionID == correctID:
		return MarkCorrect
	case selectedID != "" && optionID == selectedID:
		return MarkIncorrectChoice
	default:
		return MarkNeutral
	}
}

// FormatTime renders seconds as HH:MM:SS. Hours are not capped at 24.
func FormatTime(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
