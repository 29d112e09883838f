package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"quiz-builder/internal/domain"
)

// DeleteConfirmMessage is the prompt shown before a quiz is deleted.
const DeleteConfirmMessage = "Delete quiz? This cannot be undone locally."

// Repository abstracts how the quiz and attempt collections are stored
// (memory, sqlite, Redis, Postgres). Loads are expected to recover from
// corrupt content on their own and only fail when the backend does.
type Repository interface {
	LoadQuizzes(ctx context.Context) ([]domain.Quiz, error)
	SaveQuizzes(ctx context.Context, quizzes []domain.Quiz) error
	LoadAttempts(ctx context.Context) ([]domain.Attempt, error)
	SaveAttempts(ctx context.Context, attempts []domain.Attempt) error
}

// Confirmer asks the user a yes/no question.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(message string) bool

func (f ConfirmFunc) Confirm(message string) bool { return f(message) }

// ControllerOption customizes a Controller.
type ControllerOption func(*Controller)

// WithClock replaces time.Now, mainly for deterministic tests.
func WithClock(now func() time.Time) ControllerOption {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator replaces the default UUID-based generator.
func WithIDGenerator(ids domain.IDGenerator) ControllerOption {
	return func(c *Controller) { c.ids = ids }
}

// Controller is the application state machine. It owns the in-memory
// collections, writes a full snapshot after every mutation and routes between
// the list, editor, player and review screens.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	repo Repository
	ids  domain.IDGenerator
	now  func() time.Time

	quizzes     []domain.Quiz
	attempts    []domain.Attempt
	screen      screen
	lastAttempt *domain.Attempt
}

// NewController loads both collections and starts on the list screen.
func NewController(ctx context.Context, repo Repository, opts ...ControllerOption) (*Controller, error) {
	c := &Controller{
		repo:   repo,
		ids:    domain.UUIDGenerator{},
		now:    time.Now,
		screen: listScreen{},
	}
	for _, opt := range opts {
		opt(c)
	}

	quizzes, err := repo.LoadQuizzes(ctx)
	if err != nil {
		return nil, fmt.Errorf("load quizzes: %w", err)
	}
	attempts, err := repo.LoadAttempts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load attempts: %w", err)
	}
	c.quizzes = quizzes
	c.attempts = attempts
	return c, nil
}

// Mode reports the current screen.
func (c *Controller) Mode() Mode { return c.screen.mode() }

// CreateNew opens the editor with a blank draft.
func (c *Controller) CreateNew() error {
	if _, err := Transition(c.Mode(), EventCreateNew); err != nil {
		return err
	}
	c.screen = editorScreen{editor: NewEditor(c.ids)}
	return nil
}

// EditQuiz opens the editor on a copy of an existing quiz.
func (c *Controller) EditQuiz(quizID string) error {
	if _, err := Transition(c.Mode(), EventEdit); err != nil {
		return err
	}
	quiz, ok := c.quiz(quizID)
	if !ok {
		return domain.ErrQuizNotFound
	}
	c.screen = editorScreen{editor: EditorFor(quiz, c.ids)}
	return nil
}

// PlayQuiz starts a play session; the clock starts now.
func (c *Controller) PlayQuiz(quizID string) error {
	if _, err := Transition(c.Mode(), EventPlay); err != nil {
		return err
	}
	quiz, ok := c.quiz(quizID)
	if !ok {
		return domain.ErrQuizNotFound
	}
	player, err := NewPlayer(quiz, c.now())
	if err != nil {
		return err
	}
	c.screen = playScreen{player: player}
	return nil
}

// ReviewAttempt opens a past attempt. Attempts whose quiz was deleted cannot
// be reviewed and leave the controller on the list.
func (c *Controller) ReviewAttempt(attemptID string) error {
	if _, err := Transition(c.Mode(), EventReviewPast); err != nil {
		return err
	}
	attempt, ok := c.attempt(attemptID)
	if !ok {
		return domain.ErrAttemptNotFound
	}
	quiz, ok := c.quiz(attempt.QuizID)
	if !ok {
		return domain.ErrQuizNotFound
	}
	c.lastAttempt = &attempt
	c.screen = reviewScreen{quiz: quiz, attempt: attempt}
	return nil
}

// SaveQuiz validates the draft and upserts the quiz: an existing id is
// replaced in place, a new quiz is prepended. Validation failures are
// returned as *domain.ValidationError and keep the draft open.
func (c *Controller) SaveQuiz(ctx context.Context) (domain.Quiz, error) {
	if _, err := Transition(c.Mode(), EventSave); err != nil {
		return domain.Quiz{}, err
	}
	editor, err := c.editor()
	if err != nil {
		return domain.Quiz{}, err
	}
	quiz, err := editor.Save(c.now())
	if err != nil {
		return domain.Quiz{}, err
	}

	next := upsertQuiz(c.quizzes, quiz)
	if err := c.repo.SaveQuizzes(ctx, next); err != nil {
		return domain.Quiz{}, fmt.Errorf("save quizzes: %w", err)
	}
	c.quizzes = next
	c.screen = listScreen{}
	return quiz, nil
}

// CancelEdit drops the draft without persisting anything.
func (c *Controller) CancelEdit() error {
	if _, err := Transition(c.Mode(), EventCancel); err != nil {
		return err
	}
	c.screen = listScreen{}
	return nil
}

// DeleteQuiz removes a quiz after confirmation. Attempts that reference it
// are kept and simply drop out of History.
func (c *Controller) DeleteQuiz(ctx context.Context, quizID string, confirm Confirmer) error {
	if c.Mode() != ModeList {
		return fmt.Errorf("%w: delete from %s", domain.ErrInvalidTransition, c.Mode())
	}
	if _, ok := c.quiz(quizID); !ok {
		return domain.ErrQuizNotFound
	}
	if confirm == nil || !confirm.Confirm(DeleteConfirmMessage) {
		return domain.ErrDeleteNotConfirmed
	}

	next := make([]domain.Quiz, 0, len(c.quizzes))
	for _, q := range c.quizzes {
		if q.ID != quizID {
			next = append(next, q)
		}
	}
	if err := c.repo.SaveQuizzes(ctx, next); err != nil {
		return fmt.Errorf("save quizzes: %w", err)
	}
	c.quizzes = next
	return nil
}

func (c *Controller) SetTitle(title string) error {
	editor, err := c.editor()
	if err != nil {
		return err
	}
	editor.SetTitle(title)
	return nil
}

func (c *Controller) UpdateQuestionText(questionID, text string) error {
	editor, err := c.editor()
	if err != nil {
		return err
	}
	return editor.UpdateQuestionText(questionID, text)
}

func (c *Controller) SetCorrectOption(questionID, optionID string) error {
	editor, err := c.editor()
	if err != nil {
		return err
	}
	return editor.SetCorrectOption(questionID, optionID)
}

func (c *Controller) UpdateOptionText(questionID, optionID, text string) error {
	editor, err := c.editor()
	if err != nil {
		return err
	}
	return editor.UpdateOptionText(questionID, optionID, text)
}

// AddQuestion appends a blank question to the draft and returns its id.
func (c *Controller) AddQuestion() (string, error) {
	editor, err := c.editor()
	if err != nil {
		return "", err
	}
	return editor.AddQuestion(), nil
}

func (c *Controller) RemoveQuestion(questionID string) error {
	editor, err := c.editor()
	if err != nil {
		return err
	}
	return editor.RemoveQuestion(questionID)
}

func (c *Controller) SelectOption(questionID, optionID string) error {
	player, err := c.player()
	if err != nil {
		return err
	}
	return player.Select(questionID, optionID)
}

func (c *Controller) NextQuestion() error {
	player, err := c.player()
	if err != nil {
		return err
	}
	player.Next()
	return nil
}

func (c *Controller) PrevQuestion() error {
	player, err := c.player()
	if err != nil {
		return err
	}
	player.Prev()
	return nil
}

// SubmitAttempt scores the running session, prepends the attempt to the
// history and opens its review.
func (c *Controller) SubmitAttempt(ctx context.Context) (domain.Attempt, error) {
	if _, err := Transition(c.Mode(), EventSubmit); err != nil {
		return domain.Attempt{}, err
	}
	player, err := c.player()
	if err != nil {
		return domain.Attempt{}, err
	}
	attempt := player.Submit(c.ids.NewID(domain.PrefixAttempt), c.now())

	next := make([]domain.Attempt, 0, len(c.attempts)+1)
	next = append(next, attempt)
	next = append(next, c.attempts...)
	if err := c.repo.SaveAttempts(ctx, next); err != nil {
		return domain.Attempt{}, fmt.Errorf("save attempts: %w", err)
	}
	c.attempts = next
	c.lastAttempt = &attempt

	quiz, ok := c.quiz(attempt.QuizID)
	if !ok {
		quiz = player.Quiz()
	}
	c.screen = reviewScreen{quiz: quiz, attempt: attempt}
	return attempt, nil
}

func (c *Controller) CloseReview() error {
	if _, err := Transition(c.Mode(), EventClose); err != nil {
		return err
	}
	c.screen = listScreen{}
	return nil
}

// Quizzes returns the collection newest first.
func (c *Controller) Quizzes() []domain.Quiz {
	out := append([]domain.Quiz(nil), c.quizzes...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Attempts returns every stored attempt, newest first, including those whose
// quiz no longer exists.
func (c *Controller) Attempts() []domain.Attempt {
	return append([]domain.Attempt(nil), c.attempts...)
}

// HistoryEntry is an attempt paired with the title of its quiz.
type HistoryEntry struct {
	AttemptID string    `json:"attemptId"`
	QuizID    string    `json:"quizId"`
	QuizTitle string    `json:"quizTitle"`
	Score     int       `json:"score"`
	Total     int       `json:"total"`
	TakenAt   time.Time `json:"takenAt"`
}

// History lists attempts whose quiz still exists, newest first.
func (c *Controller) History() []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(c.attempts))
	for _, a := range c.attempts {
		quiz, ok := c.quiz(a.QuizID)
		if !ok {
			continue
		}
		entries = append(entries, HistoryEntry{
			AttemptID: a.ID,
			QuizID:    a.QuizID,
			QuizTitle: quiz.Title,
			Score:     a.Score,
			Total:     a.Total,
			TakenAt:   a.TakenAt,
		})
	}
	return entries
}

// LastAttempt is the attempt most recently submitted or opened for review.
func (c *Controller) LastAttempt() (domain.Attempt, bool) {
	if c.lastAttempt == nil {
		return domain.Attempt{}, false
	}
	return *c.lastAttempt, true
}

// Editor exposes the draft while on the create or edit screen.
func (c *Controller) Editor() (*Editor, bool) {
	s, ok := c.screen.(editorScreen)
	return s.editor, ok
}

// Player exposes the running session while on the play screen.
func (c *Controller) Player() (*Player, bool) {
	s, ok := c.screen.(playScreen)
	return s.player, ok
}

// Review renders the attempt shown on the review screen.
func (c *Controller) Review() (Review, bool) {
	s, ok := c.screen.(reviewScreen)
	if !ok {
		return Review{}, false
	}
	return BuildReview(s.quiz, s.attempt), true
}

func (c *Controller) editor() (*Editor, error) {
	s, ok := c.screen.(editorScreen)
	if !ok {
		return nil, fmt.Errorf("%w: no draft open in %s", domain.ErrInvalidTransition, c.Mode())
	}
	return s.editor, nil
}

func (c *Controller) player() (*Player, error) {
	s, ok := c.screen.(playScreen)
	if !ok {
		return nil, fmt.Errorf("%w: no quiz playing in %s", domain.ErrInvalidTransition, c.Mode())
	}
	return s.player, nil
}

func (c *Controller) quiz(id string) (domain.Quiz, bool) {
	for _, q := range c.quizzes {
		if q.ID == id {
			return q, true
		}
	}
	return domain.Quiz{}, false
}

func (c *Controller) attempt(id string) (domain.Attempt, bool) {
	for _, a := range c.attempts {
		if a.ID == id {
			return a, true
		}
	}
	return domain.Attempt{}, false
}

func upsertQuiz(quizzes []domain.Quiz, quiz domain.Quiz) []domain.Quiz {
	next := make([]domain.Quiz, 0, len(quizzes)+1)
	replaced := false
	for _, q := range quizzes {
		if q.ID == quiz.ID {
			next = append(next, quiz)
			replaced = true
			continue
		}
		next = append(next, q)
	}
	if replaced {
		return next
	}
	return append([]domain.Quiz{quiz}, next...)
}
