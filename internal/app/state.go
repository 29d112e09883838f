package app

import (
	"fmt"

	"quiz-builder/internal/domain"
)

// Mode is the screen the application is on.
type Mode string

const (
	ModeList   Mode = "list"
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
	ModePlay   Mode = "play"
	ModeReview Mode = "review"
)

// Event is a user action that moves between screens.
type Event string

const (
	EventCreateNew  Event = "createNew"
	EventEdit       Event = "edit"
	EventPlay       Event = "play"
	EventReviewPast Event = "reviewPast"
	EventSave       Event = "save"
	EventCancel     Event = "cancel"
	EventSubmit     Event = "submit"
	EventClose      Event = "close"
)

var transitions = map[Mode]map[Event]Mode{
	ModeList: {
		EventCreateNew:  ModeCreate,
		EventEdit:       ModeEdit,
		EventPlay:       ModePlay,
		EventReviewPast: ModeReview,
	},
	ModeCreate: {
		EventSave:   ModeList,
		EventCancel: ModeList,
	},
	ModeEdit: {
		EventSave:   ModeList,
		EventCancel: ModeList,
	},
	ModePlay: {
		EventSubmit: ModeReview,
	},
	ModeReview: {
		EventClose: ModeList,
	},
}

// Transition returns the mode reached from m on ev, or ErrInvalidTransition.
func Transition(m Mode, ev Event) (Mode, error) {
	next, ok := transitions[m][ev]
	if !ok {
		return m, fmt.Errorf("%w: %s from %s", domain.ErrInvalidTransition, ev, m)
	}
	return next, nil
}

// screen is the state owned by the current mode. Each mode has exactly one
// screen type, so a play screen always carries a player and so on.
type screen interface {
	mode() Mode
}

type listScreen struct{}

func (listScreen) mode() Mode { return ModeList }

type editorScreen struct {
	editor *Editor
}

func (s editorScreen) mode() Mode {
	if s.editor.Editing() {
		return ModeEdit
	}
	return ModeCreate
}

type playScreen struct {
	player *Player
}

func (playScreen) mode() Mode { return ModePlay }

type reviewScreen struct {
	quiz    domain.Quiz
	attempt domain.Attempt
}

func (reviewScreen) mode() Mode { return ModeReview }
