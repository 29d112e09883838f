package app

import (
	"context"
	"fmt"

	"quiz-builder/internal/domain"
)

// Command types accepted by Dispatch.
const (
	CmdCreateNew          = "createNew"
	CmdEditQuiz           = "editQuiz"
	CmdPlayQuiz           = "playQuiz"
	CmdReviewAttempt      = "reviewAttempt"
	CmdDeleteQuiz         = "deleteQuiz"
	CmdSetTitle           = "setTitle"
	CmdUpdateQuestionText = "updateQuestionText"
	CmdSetCorrectOption   = "setCorrectOption"
	CmdUpdateOptionText   = "updateOptionText"
	CmdAddQuestion        = "addQuestion"
	CmdRemoveQuestion     = "removeQuestion"
	CmdSaveQuiz           = "saveQuiz"
	CmdCancelEdit         = "cancelEdit"
	CmdSelectOption       = "selectOption"
	CmdNextQuestion       = "nextQuestion"
	CmdPrevQuestion       = "prevQuestion"
	CmdSubmitAttempt      = "submitAttempt"
	CmdCloseReview        = "closeReview"
)

// Command is a transport-neutral user action. Only the fields relevant to
// Type are read.
type Command struct {
	Type       string `json:"type"`
	QuizID     string `json:"quizId,omitempty"`
	AttemptID  string `json:"attemptId,omitempty"`
	QuestionID string `json:"questionId,omitempty"`
	OptionID   string `json:"optionId,omitempty"`
	Text       string `json:"text,omitempty"`
	// Confirmed answers the delete prompt up front.
	Confirmed bool `json:"confirmed,omitempty"`
}

// Dispatch applies cmd to the controller.
func (c *Controller) Dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Type {
	case CmdCreateNew:
		return c.CreateNew()
	case CmdEditQuiz:
		return c.EditQuiz(cmd.QuizID)
	case CmdPlayQuiz:
		return c.PlayQuiz(cmd.QuizID)
	case CmdReviewAttempt:
		return c.ReviewAttempt(cmd.AttemptID)
	case CmdDeleteQuiz:
		confirmed := cmd.Confirmed
		return c.DeleteQuiz(ctx, cmd.QuizID, ConfirmFunc(func(string) bool { return confirmed }))
	case CmdSetTitle:
		return c.SetTitle(cmd.Text)
	case CmdUpdateQuestionText:
		return c.UpdateQuestionText(cmd.QuestionID, cmd.Text)
	case CmdSetCorrectOption:
		return c.SetCorrectOption(cmd.QuestionID, cmd.OptionID)
	case CmdUpdateOptionText:
		return c.UpdateOptionText(cmd.QuestionID, cmd.OptionID, cmd.Text)
	case CmdAddQuestion:
		_, err := c.AddQuestion()
		return err
	case CmdRemoveQuestion:
		return c.RemoveQuestion(cmd.QuestionID)
	case CmdSaveQuiz:
		_, err := c.SaveQuiz(ctx)
		return err
	case CmdCancelEdit:
		return c.CancelEdit()
	case CmdSelectOption:
		return c.SelectOption(cmd.QuestionID, cmd.OptionID)
	case CmdNextQuestion:
		return c.NextQuestion()
	case CmdPrevQuestion:
		return c.PrevQuestion()
	case CmdSubmitAttempt:
		_, err := c.SubmitAttempt(ctx)
		return err
	case CmdCloseReview:
		return c.CloseReview()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownCommand, cmd.Type)
	}
}
