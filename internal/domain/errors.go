package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz is not in the collection.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrAttemptNotFound indicates the attempt is not in the collection.
	ErrAttemptNotFound = errors.New("attempt not found")
	// ErrQuestionNotFound indicates a question ID is invalid for the quiz.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates an option ID is invalid for the question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrOptionCount is returned when a question is built without exactly four options.
	ErrOptionCount = errors.New("question must have exactly 4 options")
	// ErrEmptyQuiz is returned when playing a quiz that has no questions.
	ErrEmptyQuiz = errors.New("quiz has no questions")
	// ErrInvalidTransition is returned when an operation is not allowed on the current screen.
	ErrInvalidTransition = errors.New("operation not allowed in current mode")
	// ErrDeleteNotConfirmed is returned when the user declines a delete.
	ErrDeleteNotConfirmed = errors.New("delete not confirmed")
	// ErrUnknownCommand is returned for command types no screen handles.
	ErrUnknownCommand = errors.New("unsupported command")
)

// ValidationError is a user-facing rejection of a quiz draft.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation failures, in the order they are checked.
var (
	ErrTitleRequired   = &ValidationError{Message: "Quiz title is required"}
	ErrNoQuestions     = &ValidationError{Message: "Please add at least one question"}
	ErrQuestionText    = &ValidationError{Message: "Every question needs text"}
	ErrQuestionOptions = &ValidationError{Message: "Each question must have 4 options"}
	ErrCorrectAnswer   = &ValidationError{Message: "Each question must have a correct answer"}
	ErrOptionText      = &ValidationError{Message: "Option text cannot be empty"}
)

// IsValidation reports whether err is a draft validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
