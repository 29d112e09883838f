package domain

import "strings"

// Validate checks a quiz draft. Rules run in a fixed order and the first
// failure is returned; nil means the draft can be saved.
func Validate(title string, questions []Question) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleRequired
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}
	for _, q := range questions {
		if strings.TrimSpace(q.Text) == "" {
			return ErrQuestionText
		}
		if len(q.Options) != OptionsPerQuestion {
			return ErrQuestionOptions
		}
		if q.CorrectOptionID == "" {
			return ErrCorrectAnswer
		}
		// a set id that names no option can never be answered correctly
		if _, ok := q.Option(q.CorrectOptionID); !ok {
			return ErrCorrectAnswer
		}
		for _, o := range q.Options {
			if strings.TrimSpace(o.Text) == "" {
				return ErrOptionText
			}
		}
	}
	return nil
}
