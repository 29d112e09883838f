package app

import (
	"fmt"
	"time"

	"quiz-builder/internal/domain"
)

// QuizSummary is a list-screen row.
type QuizSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	CreatedAt     time.Time `json:"createdAt"`
	QuestionCount int       `json:"questionCount"`
}

// EditorView is the draft as shown on the create/edit screen.
type EditorView struct {
	Editing   bool              `json:"editing"`
	Title     string            `json:"title"`
	Questions []domain.Question `json:"questions"`
}

// PlayQuestion is a question with its answer key stripped.
type PlayQuestion struct {
	ID      string          `json:"id"`
	Text    string          `json:"text"`
	Options []domain.Option `json:"options"`
}

// PlayView is the play screen: the current question plus progress.
type PlayView struct {
	QuizID           string       `json:"quizId"`
	QuizTitle        string       `json:"quizTitle"`
	Index            int          `json:"index"`
	Total            int          `json:"total"`
	Progress         string       `json:"progress"`
	Answered         int          `json:"answered"`
	Question         PlayQuestion `json:"question"`
	SelectedOptionID string       `json:"selectedOptionId,omitempty"`
}

// View is a JSON-ready snapshot of whatever screen is active.
type View struct {
	Mode    Mode           `json:"mode"`
	Quizzes []QuizSummary  `json:"quizzes,omitempty"`
	History []HistoryEntry `json:"history,omitempty"`
	Editor  *EditorView    `json:"editor,omitempty"`
	Play    *PlayView      `json:"play,omitempty"`
	Review  *Review        `json:"review,omitempty"`
}

// View snapshots the current screen.
func (c *Controller) View() View {
	v := View{Mode: c.Mode()}
	switch s := c.screen.(type) {
	case listScreen:
		quizzes := c.Quizzes()
		v.Quizzes = make([]QuizSummary, 0, len(quizzes))
		for _, q := range quizzes {
			v.Quizzes = append(v.Quizzes, QuizSummary{
				ID:            q.ID,
				Title:         q.Title,
				CreatedAt:     q.CreatedAt,
				QuestionCount: len(q.Questions),
			})
		}
		v.History = c.History()
	case editorScreen:
		v.Editor = &EditorView{
			Editing:   s.editor.Editing(),
			Title:     s.editor.Title(),
			Questions: s.editor.Questions(),
		}
	case playScreen:
		v.Play = newPlayView(s.player)
	case reviewScreen:
		review := BuildReview(s.quiz, s.attempt)
		v.Review = &review
	}
	return v
}

func newPlayView(p *Player) *PlayView {
	quiz := p.Quiz()
	current := p.Current()
	selected, _ := p.Selection(current.ID)
	return &PlayView{
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		Index:     p.Index(),
		Total:     p.Total(),
		Progress:  fmt.Sprintf("Question %d / %d", p.Index()+1, p.Total()),
		Answered:  p.Answered(),
		Question: PlayQuestion{
			ID:      current.ID,
			Text:    current.Text,
			Options: append([]domain.Option(nil), current.Options...),
		},
		SelectedOptionID: selected,
	}
}
