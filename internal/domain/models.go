package domain

import "time"

// OptionsPerQuestion is the fixed number of options every question carries.
const OptionsPerQuestion = 4

// Option represents a possible answer for a question.
type Option struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Question models an MCQ question with exactly four options and one correct option.
type Question struct {
	ID              string   `json:"id"`
	Text            string   `json:"text"`
	Options         []Option `json:"options"`
	CorrectOptionID string   `json:"correctOptionId"`
}

// NewQuestion builds a question, rejecting anything but exactly four options
// and a correct option id that points outside the question.
func NewQuestion(id, text string, options []Option, correctOptionID string) (Question, error) {
	if len(options) != OptionsPerQuestion {
		return Question{}, ErrOptionCount
	}
	q := Question{
		ID:              id,
		Text:            text,
		Options:         append([]Option(nil), options...),
		CorrectOptionID: correctOptionID,
	}
	if correctOptionID != "" {
		if _, ok := q.Option(correctOptionID); !ok {
			return Question{}, ErrOptionNotFound
		}
	}
	return q, nil
}

// BlankQuestion returns a question with four empty options and no correct answer.
func BlankQuestion(ids IDGenerator) Question {
	options := make([]Option, OptionsPerQuestion)
	for i := range options {
		options[i] = Option{ID: ids.NewID(PrefixOption)}
	}
	return Question{ID: ids.NewID(PrefixQuestion), Options: options}
}

// Option looks up an option by id.
func (q Question) Option(id string) (Option, bool) {
	for _, o := range q.Options {
		if o.ID == id {
			return o, true
		}
	}
	return Option{}, false
}

// Clone returns a copy that shares no slices with q.
func (q Question) Clone() Question {
	q.Options = append([]Option(nil), q.Options...)
	return q
}

// Quiz is a titled, ordered collection of questions.
type Quiz struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	CreatedAt time.Time  `json:"createdAt"`
	Questions []Question `json:"questions"`
}

// Question looks up a question by id.
func (q Quiz) Question(id string) (Question, bool) {
	for _, question := range q.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return Question{}, false
}

// Clone returns a deep copy of the quiz.
func (q Quiz) Clone() Quiz {
	questions := make([]Question, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = question.Clone()
	}
	q.Questions = questions
	return q
}

// AnswerRecord is the per-question outcome stored with an attempt.
// CorrectOptionID is a snapshot taken at submission time.
type AnswerRecord struct {
	QuestionID       string `json:"questionId"`
	SelectedOptionID string `json:"selectedOptionId,omitempty"`
	CorrectOptionID  string `json:"correctOptionId"`
}

// Answered reports whether an option was selected for the question.
func (a AnswerRecord) Answered() bool {
	return a.SelectedOptionID != ""
}

// IsCorrect reports whether the selection matches the snapshot answer.
func (a AnswerRecord) IsCorrect() bool {
	return a.Answered() && a.SelectedOptionID == a.CorrectOptionID
}

// Attempt is an immutable record of one completed play session.
type Attempt struct {
	ID               string         `json:"id"`
	QuizID           string         `json:"quizId"`
	TakenAt          time.Time      `json:"takenAt"`
	Score            int            `json:"score"`
	Total            int            `json:"total"`
	TimeTakenSeconds int            `json:"timeTakenSeconds"`
	Answers          []AnswerRecord `json:"answers"`
}

// Answer returns the record for a question, if any.
func (a Attempt) Answer(questionID string) (AnswerRecord, bool) {
	for _, rec := range a.Answers {
		if rec.QuestionID == questionID {
			return rec, true
		}
	}
	return AnswerRecord{}, false
}

// Correct recomputes the score from the answer records.
func (a Attempt) Correct() int {
	n := 0
	for _, rec := range a.Answers {
		if rec.IsCorrect() {
			n++
		}
	}
	return n
}
