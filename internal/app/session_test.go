package app_test

import (
	"context"
	"sync"
	"testing"

	"quiz-builder/internal/app"
	"quiz-builder/internal/infra/memory"
)

func TestSubscribeReceivesUpdates(t *testing.T) {
	c, _ := newTestController(t, memory.NewKV(nil))
	session := app.NewSession(c)

	ch, cancel := session.Subscribe()
	defer cancel()

	initial := <-ch
	if initial.Mode != app.ModeList {
		t.Fatalf("expected initial list view, got %s", initial.Mode)
	}

	view, err := session.Do(context.Background(), app.Command{Type: app.CmdCreateNew})
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	if view.Mode != app.ModeCreate {
		t.Fatalf("expected create view, got %s", view.Mode)
	}
	update := <-ch
	if update.Mode != app.ModeCreate {
		t.Fatalf("expected broadcast of create view, got %s", update.Mode)
	}
}

func TestFailedCommandIsNotBroadcast(t *testing.T) {
	c, _ := newTestController(t, memory.NewKV(nil))
	session := app.NewSession(c)
	ch, cancel := session.Subscribe()
	defer cancel()
	<-ch

	view, err := session.Do(context.Background(), app.Command{Type: app.CmdSubmitAttempt})
	if err == nil {
		t.Fatalf("expected error submitting from list")
	}
	if view.Mode != app.ModeList {
		t.Fatalf("expected unchanged view, got %s", view.Mode)
	}
	select {
	case v := <-ch:
		t.Fatalf("unexpected broadcast %+v", v)
	default:
	}
}

func TestConcurrentCommandsAreSerialized(t *testing.T) {
	c, _ := newTestController(t, memory.NewKV(nil))
	session := app.NewSession(c)
	quizID := c.Quizzes()[0].ID

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, _ = session.Do(context.Background(), app.Command{Type: app.CmdPlayQuiz, QuizID: quizID})
				_, _ = session.Do(context.Background(), app.Command{Type: app.CmdSubmitAttempt})
				_, _ = session.Do(context.Background(), app.Command{Type: app.CmdCloseReview})
			}
		}()
	}
	wg.Wait()

	var attempts int
	session.Read(func(c *app.Controller) { attempts = len(c.Attempts()) })
	if attempts == 0 || attempts > 80 {
		t.Fatalf("unexpected attempt count %d", attempts)
	}
	if session.View().Mode != app.ModeList {
		t.Fatalf("expected to settle on list")
	}
}

func TestCancelClosesSubscription(t *testing.T) {
	c, _ := newTestController(t, memory.NewKV(nil))
	session := app.NewSession(c)
	ch, cancel := session.Subscribe()
	<-ch
	cancel()
	cancel()
	if _, ok := <-ch; ok {
		t.Fatalf("expected closed channel")
	}
}
