package modal_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-skillswap/internal/modal"
	"github.com/goliatone/go-skillswap/pkg/signup"
	"github.com/goliatone/go-skillswap/pkg/testsupport"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func sequentialIDs() func() string {
	var n int
	return func() string {
		n++
		return fmt.Sprintf("m-%d", n)
	}
}

func TestStore_OpenGetRemove(t *testing.T) {
	var sizes []int
	store := modal.New(
		modal.WithIDs(sequentialIDs()),
		modal.WithSizeObserver(func(open int) { sizes = append(sizes, open) }),
		modal.WithControllerOptions(signup.WithLogger(testsupport.QuietLogger())),
	)

	first := store.Open()
	second := store.Open()
	if first.ID != "m-1" || second.ID != "m-2" {
		t.Fatalf("unexpected ids %q %q", first.ID, second.ID)
	}
	if first.Controller == second.Controller {
		t.Fatalf("each modal needs its own controller")
	}

	if err := first.Controller.SetField(signup.FieldFirstName, "Ada"); err != nil {
		t.Fatalf("set field: %v", err)
	}
	got, ok := store.Get("m-1")
	if !ok || got.Controller.Snapshot().Fields.FirstName != "Ada" {
		t.Fatalf("get returned wrong instance")
	}

	store.Remove("m-1")
	if _, ok := store.Get("m-1"); ok {
		t.Fatalf("removed instance still present")
	}
	if !first.Controller.Closed() {
		t.Fatalf("remove should close the controller")
	}
	store.Remove("m-1")

	if store.Len() != 1 {
		t.Fatalf("len = %d, want 1", store.Len())
	}
	if len(sizes) != 3 || sizes[2] != 1 {
		t.Fatalf("size observations = %v", sizes)
	}
}

func TestStore_SuccessfulSubmitForgetsInstance(t *testing.T) {
	registrar := testsupport.NewScriptedRegistrar(nil)
	store := modal.New(modal.WithControllerOptions(
		signup.WithRegistrar(registrar),
		signup.WithLogger(testsupport.QuietLogger()),
	))
	instance := store.Open()

	outcome, err := instance.Controller.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != signup.StatusSucceeded {
		t.Fatalf("status = %v", outcome.Status)
	}
	if store.Len() != 0 {
		t.Fatalf("closed controller should leave the store")
	}
	notice, ok := instance.Notices.Last()
	if !ok || notice.Title != "Success" {
		t.Fatalf("success notice not recorded: %+v", notice)
	}
}

func TestStore_SweepClosesIdleInstances(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := modal.New(
		modal.WithTTL(10*time.Minute),
		modal.WithClock(clock.Now),
		modal.WithIDs(sequentialIDs()),
	)

	stale := store.Open()
	clock.Advance(6 * time.Minute)
	fresh := store.Open()
	clock.Advance(6 * time.Minute)

	if n := store.Sweep(); n != 1 {
		t.Fatalf("swept %d, want 1", n)
	}
	if !stale.Controller.Closed() || fresh.Controller.Closed() {
		t.Fatalf("sweep closed the wrong instance")
	}

	clock.Advance(3 * time.Minute)
	if _, ok := store.Get(fresh.ID); !ok {
		t.Fatalf("fresh instance missing")
	}
	clock.Advance(9 * time.Minute)
	if n := store.Sweep(); n != 0 {
		t.Fatalf("get should refresh the idle timer, swept %d", n)
	}
}

func TestStore_SweepCancelsInFlightRequest(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	registrar := testsupport.NewGatedRegistrar()
	notices := 0
	store := modal.New(
		modal.WithTTL(time.Minute),
		modal.WithClock(clock.Now),
		modal.WithControllerOptions(
			signup.WithRegistrar(registrar),
			signup.WithLogger(testsupport.QuietLogger()),
		),
	)
	instance := store.Open()

	done := make(chan error, 1)
	go func() {
		_, err := instance.Controller.Submit(context.Background())
		notices = len(instance.Notices.Notices())
		done <- err
	}()
	<-registrar.Started

	clock.Advance(2 * time.Minute)
	store.Sweep()

	select {
	case err := <-done:
		if !errors.Is(err, signup.ErrClosed) {
			t.Fatalf("submit error = %v, want ErrClosed", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("submit did not return after sweep")
	}
	if notices != 0 {
		t.Fatalf("discarded request should not notify")
	}
}

func TestStore_RunClosesEverythingOnShutdown(t *testing.T) {
	store := modal.New()
	instance := store.Open()

	ctx, cancel := context.WithCancel(context.Background())
	finished := make(chan struct{})
	go func() {
		store.Run(ctx, time.Hour)
		close(finished)
	}()
	cancel()

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("run did not stop")
	}
	if !instance.Controller.Closed() || store.Len() != 0 {
		t.Fatalf("shutdown should close open instances")
	}
}
