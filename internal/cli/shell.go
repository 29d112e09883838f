package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"quiz-builder/internal/app"
	"quiz-builder/internal/domain"
	"quiz-builder/internal/storage"
)

// NewShellCmd runs the interactive terminal front end.
func NewShellCmd(configPath, backend *string) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Author and take quizzes from the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig(*configPath, *backend)
			if err != nil {
				return err
			}
			kv, closeKV, err := openKV(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeKV()

			controller, err := app.NewController(ctx, storage.NewCollections(kv))
			if err != nil {
				return err
			}
			return RunShell(ctx, controller, os.Stdin, os.Stdout)
		},
	}
}

var errQuit = errors.New("quit")

type shell struct {
	c   *app.Controller
	in  *bufio.Scanner
	out io.Writer
}

// RunShell reads one command per line from in until EOF or "quit", printing
// the active screen after every command. Quiz, attempt, question and option
// arguments are 1-based positions as printed, or raw ids.
func RunShell(ctx context.Context, c *app.Controller, in io.Reader, out io.Writer) error {
	sh := &shell{c: c, in: bufio.NewScanner(in), out: out}
	sh.render()
	for {
		fmt.Fprintf(out, "%s> ", c.Mode())
		if !sh.in.Scan() {
			fmt.Fprintln(out)
			return sh.in.Err()
		}
		line := strings.TrimSpace(sh.in.Text())
		if line == "" {
			continue
		}
		err := sh.exec(ctx, line)
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
			continue
		}
		sh.render()
	}
}

func (sh *shell) exec(ctx context.Context, line string) error {
	verb, rest, _ := strings.Cut(line, " ")
	verb = strings.ToLower(verb)
	rest = strings.TrimSpace(rest)
	args := strings.Fields(rest)

	switch verb {
	case "quit", "exit":
		return errQuit
	case "help", "?":
		sh.help()
		return nil
	case "show", "ls":
		return nil

	// list screen
	case "new":
		return sh.do(ctx, app.Command{Type: app.CmdCreateNew})
	case "edit", "play", "delete":
		id, err := pick(arg(args, 0), sh.quizIDs())
		if err != nil {
			return err
		}
		switch verb {
		case "edit":
			return sh.do(ctx, app.Command{Type: app.CmdEditQuiz, QuizID: id})
		case "play":
			return sh.do(ctx, app.Command{Type: app.CmdPlayQuiz, QuizID: id})
		}
		err = sh.c.DeleteQuiz(ctx, id, app.ConfirmFunc(sh.confirm))
		if errors.Is(err, domain.ErrDeleteNotConfirmed) {
			fmt.Fprintln(sh.out, "kept")
			return nil
		}
		return err
	case "review":
		id, err := pick(arg(args, 0), sh.attemptIDs())
		if err != nil {
			return err
		}
		return sh.do(ctx, app.Command{Type: app.CmdReviewAttempt, AttemptID: id})

	// editor
	case "title":
		return sh.do(ctx, app.Command{Type: app.CmdSetTitle, Text: rest})
	case "question":
		qid, text, err := sh.questionArg(rest)
		if err != nil {
			return err
		}
		return sh.do(ctx, app.Command{Type: app.CmdUpdateQuestionText, QuestionID: qid, Text: text})
	case "option":
		qid, rest, err := sh.questionArg(rest)
		if err != nil {
			return err
		}
		pos, text, _ := strings.Cut(rest, " ")
		oid, err := sh.draftOptionID(qid, pos)
		if err != nil {
			return err
		}
		return sh.do(ctx, app.Command{Type: app.CmdUpdateOptionText, QuestionID: qid, OptionID: oid, Text: strings.TrimSpace(text)})
	case "correct":
		qid, rest, err := sh.questionArg(rest)
		if err != nil {
			return err
		}
		oid, err := sh.draftOptionID(qid, strings.TrimSpace(rest))
		if err != nil {
			return err
		}
		return sh.do(ctx, app.Command{Type: app.CmdSetCorrectOption, QuestionID: qid, OptionID: oid})
	case "add":
		return sh.do(ctx, app.Command{Type: app.CmdAddQuestion})
	case "remove":
		qid, _, err := sh.questionArg(rest)
		if err != nil {
			return err
		}
		return sh.do(ctx, app.Command{Type: app.CmdRemoveQuestion, QuestionID: qid})
	case "save":
		return sh.do(ctx, app.Command{Type: app.CmdSaveQuiz})
	case "cancel":
		return sh.do(ctx, app.Command{Type: app.CmdCancelEdit})

	// play
	case "select", "1", "2", "3", "4":
		pos := verb
		if verb == "select" {
			pos = arg(args, 0)
		}
		p, ok := sh.c.Player()
		if !ok {
			return fmt.Errorf("not playing a quiz")
		}
		q := p.Current()
		oid, err := pick(pos, optionIDs(q.Options))
		if err != nil {
			return err
		}
		return sh.do(ctx, app.Command{Type: app.CmdSelectOption, QuestionID: q.ID, OptionID: oid})
	case "next", "n":
		return sh.do(ctx, app.Command{Type: app.CmdNextQuestion})
	case "prev", "p":
		return sh.do(ctx, app.Command{Type: app.CmdPrevQuestion})
	case "submit":
		return sh.do(ctx, app.Command{Type: app.CmdSubmitAttempt})

	// review
	case "close", "back":
		return sh.do(ctx, app.Command{Type: app.CmdCloseReview})
	}
	return fmt.Errorf("%w %q, type help", domain.ErrUnknownCommand, verb)
}

func (sh *shell) do(ctx context.Context, cmd app.Command) error {
	return sh.c.Dispatch(ctx, cmd)
}

func (sh *shell) confirm(message string) bool {
	fmt.Fprintf(sh.out, "%s [y/N] ", message)
	if !sh.in.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sh.in.Text()))
	return answer == "y" || answer == "yes"
}

func (sh *shell) quizIDs() []string {
	quizzes := sh.c.Quizzes()
	ids := make([]string, len(quizzes))
	for i, q := range quizzes {
		ids[i] = q.ID
	}
	return ids
}

func (sh *shell) attemptIDs() []string {
	history := sh.c.History()
	ids := make([]string, len(history))
	for i, h := range history {
		ids[i] = h.AttemptID
	}
	return ids
}

// questionArg splits "<question> <rest>" and resolves the question against
// the open draft.
func (sh *shell) questionArg(s string) (string, string, error) {
	e, ok := sh.c.Editor()
	if !ok {
		return "", "", fmt.Errorf("not editing a quiz")
	}
	pos, rest, _ := strings.Cut(strings.TrimSpace(s), " ")
	questions := e.Questions()
	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}
	id, err := pick(pos, ids)
	if err != nil {
		return "", "", err
	}
	return id, strings.TrimSpace(rest), nil
}

func (sh *shell) draftOptionID(questionID, pos string) (string, error) {
	e, _ := sh.c.Editor()
	for _, q := range e.Questions() {
		if q.ID == questionID {
			return pick(pos, optionIDs(q.Options))
		}
	}
	return "", domain.ErrQuestionNotFound
}

func optionIDs(options []domain.Option) []string {
	ids := make([]string, len(options))
	for i, o := range options {
		ids[i] = o.ID
	}
	return ids
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// pick resolves a 1-based position or a literal id.
func pick(s string, ids []string) (string, error) {
	if s == "" {
		return "", fmt.Errorf("missing argument")
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("no item %d (have %d)", n, len(ids))
		}
		return ids[n-1], nil
	}
	// unknown ids are left for the controller to reject
	return s, nil
}

func (sh *shell) help() {
	var usage string
	switch sh.c.Mode() {
	case app.ModeList:
		usage = "new | edit <quiz> | play <quiz> | delete <quiz> | review <attempt>"
	case app.ModeCreate, app.ModeEdit:
		usage = "title <text> | question <q> <text> | option <q> <1-4> <text> | correct <q> <1-4> | add | remove <q> | save | cancel"
	case app.ModePlay:
		usage = "<1-4> | select <1-4> | next | prev | submit"
	case app.ModeReview:
		usage = "close"
	}
	fmt.Fprintf(sh.out, "commands: %s | show | help | quit\n", usage)
}

func (sh *shell) render() {
	v := sh.c.View()
	w := sh.out
	switch v.Mode {
	case app.ModeList:
		fmt.Fprintln(w, "Quizzes")
		if len(v.Quizzes) == 0 {
			fmt.Fprintln(w, "  No quizzes yet. Type 'new' to create one.")
		}
		for i, q := range v.Quizzes {
			fmt.Fprintf(w, "  %d. %s (%d questions, created %s)\n", i+1, q.Title, q.QuestionCount, q.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(w, "Past attempts")
		if len(v.History) == 0 {
			fmt.Fprintln(w, "  No attempts yet.")
		}
		for i, h := range v.History {
			fmt.Fprintf(w, "  %d. %s: %d / %d (%s)\n", i+1, h.QuizTitle, h.Score, h.Total, h.TakenAt.Local().Format("2006-01-02 15:04"))
		}

	case app.ModeCreate, app.ModeEdit:
		if v.Editor.Editing {
			fmt.Fprintln(w, "Edit quiz")
		} else {
			fmt.Fprintln(w, "New quiz")
		}
		fmt.Fprintf(w, "Title: %s\n", v.Editor.Title)
		for i, q := range v.Editor.Questions {
			fmt.Fprintf(w, "Q%d. %s\n", i+1, q.Text)
			for j, o := range q.Options {
				mark := " "
				if o.ID == q.CorrectOptionID {
					mark = "*"
				}
				fmt.Fprintf(w, "   %s %d) %s\n", mark, j+1, o.Text)
			}
		}

	case app.ModePlay:
		p := v.Play
		fmt.Fprintf(w, "%s  %s\n", p.QuizTitle, p.Progress)
		fmt.Fprintln(w, p.Question.Text)
		for j, o := range p.Question.Options {
			mark := " "
			if o.ID == p.SelectedOptionID {
				mark = "x"
			}
			fmt.Fprintf(w, "  [%s] %d) %s\n", mark, j+1, o.Text)
		}

	case app.ModeReview:
		r := v.Review
		fmt.Fprintf(w, "%s\nScore: %d / %d  Time: %s\n", r.QuizTitle, r.Score, r.Total, r.TimeTaken)
		for _, q := range r.Questions {
			fmt.Fprintf(w, "%d. %s\n", q.Number, q.Text)
			if !q.Answered {
				fmt.Fprintln(w, "   (not answered)")
			}
			for j, o := range q.Options {
				label := o.Mark.Label()
				if label != "" {
					label = "  <- " + label
				}
				fmt.Fprintf(w, "   %d) %s%s\n", j+1, o.Text, label)
			}
		}
	}
}
