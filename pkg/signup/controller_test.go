package signup

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-skillswap/pkg/identity"
	"github.com/goliatone/go-skillswap/pkg/notify"
)

type gatedRegistrar struct {
	calls   atomic.Int32
	started chan identity.Registration
	release chan error
}

func newGatedRegistrar() *gatedRegistrar {
	return &gatedRegistrar{
		started: make(chan identity.Registration, 4),
		release: make(chan error, 1),
	}
}

func (g *gatedRegistrar) Register(ctx context.Context, reg identity.Registration) error {
	g.calls.Add(1)
	g.started <- reg
	select {
	case err := <-g.release:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func adaFields(t *testing.T, c *Controller) {
	t.Helper()
	err := c.SetFields(map[FieldName]string{
		FieldFirstName: "Ada",
		FieldLastName:  "Lovelace",
		FieldEmail:     "ada@example.com",
		FieldPassword:  "secret123",
		FieldBio:       "",
	})
	if err != nil {
		t.Fatalf("set fields: %v", err)
	}
	if _, err := c.AddSkill("Math"); err != nil {
		t.Fatalf("add skill: %v", err)
	}
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func TestSubmitSuccessClosesForm(t *testing.T) {
	var got identity.Registration
	recorder := notify.NewRecorder()
	closed := 0
	c := NewController(
		WithRegistrar(identity.RegistrarFunc(func(_ context.Context, reg identity.Registration) error {
			got = reg
			return nil
		})),
		WithNotifier(recorder),
		WithOrigin("https://skillswap.test"),
		WithRequestIDs(func() string { return "req-1" }),
		WithOnClose(func() { closed++ }),
		WithLogger(quietLogger()),
	)
	adaFields(t, c)

	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != StatusSucceeded || outcome.Err != nil {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	want := identity.Registration{
		Email:      "ada@example.com",
		Password:   "secret123",
		RedirectTo: "https://skillswap.test/",
		Profile: identity.Profile{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Bio:       "",
			Skills:    []string{"Math"},
		},
		RequestID: "req-1",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("registration mismatch (-want +got):\n%s", diff)
	}

	wantNotices := []notify.Notice{{
		Title:       "Success",
		Description: "Account created successfully! Please check your email to verify your account.",
		Severity:    notify.SeverityDefault,
	}}
	if diff := cmp.Diff(wantNotices, recorder.Notices()); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}

	snap := c.Snapshot()
	if !snap.Closed || snap.Status != StatusSucceeded {
		t.Fatalf("expected closed succeeded form, got %+v", snap)
	}
	if diff := cmp.Diff(Fields{}, snap.Fields); diff != "" {
		t.Fatalf("fields must be discarded (-want +got):\n%s", diff)
	}
	if len(snap.Skills) != 0 {
		t.Fatalf("skills must be discarded, got %v", snap.Skills)
	}
	if closed != 1 {
		t.Fatalf("expected close hook once, got %d", closed)
	}
}

func TestSubmitDomainErrorKeepsInput(t *testing.T) {
	recorder := notify.NewRecorder()
	c := NewController(
		WithRegistrar(identity.RegistrarFunc(func(context.Context, identity.Registration) error {
			return identity.NewDomainError("Email already registered")
		})),
		WithNotifier(recorder),
		WithLogger(quietLogger()),
	)
	adaFields(t, c)

	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Status != StatusFailed || outcome.Kind() != OutcomeDomain {
		t.Fatalf("unexpected outcome: %+v", outcome)
	}

	wantNotices := []notify.Notice{{
		Title:       "Signup Error",
		Description: "Email already registered",
		Severity:    notify.SeverityDestructive,
	}}
	if diff := cmp.Diff(wantNotices, recorder.Notices()); diff != "" {
		t.Fatalf("notices mismatch (-want +got):\n%s", diff)
	}

	snap := c.Snapshot()
	if snap.Status != StatusIdle || !snap.Editable || snap.Closed {
		t.Fatalf("expected editable idle form, got %+v", snap)
	}
	if snap.Fields.Email != "ada@example.com" || snap.Fields.Password != "secret123" {
		t.Fatalf("fields must be preserved, got %+v", snap.Fields)
	}
	if diff := cmp.Diff([]string{"Math"}, snap.Skills); diff != "" {
		t.Fatalf("skills must be preserved (-want +got):\n%s", diff)
	}
}

func TestSubmitTransportErrorHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:443: connection refused")
	recorder := notify.NewRecorder()
	var logs bytes.Buffer
	var reported []error
	c := NewController(
		WithRegistrar(identity.RegistrarFunc(func(context.Context, identity.Registration) error {
			return cause
		})),
		WithNotifier(recorder),
		WithLogger(log.New(&logs, "", 0)),
		WithErrorReporter(func(err error) { reported = append(reported, err) }),
	)
	adaFields(t, c)

	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind() != OutcomeTransport {
		t.Fatalf("expected transport outcome, got %s", outcome.Kind())
	}
	var transport *TransportError
	if !errors.As(outcome.Err, &transport) || !errors.Is(outcome.Err, cause) {
		t.Fatalf("expected wrapped transport error, got %v", outcome.Err)
	}

	notice, ok := recorder.Last()
	if !ok {
		t.Fatalf("expected a notice")
	}
	if notice.Description != "An unexpected error occurred" {
		t.Fatalf("unexpected description %q", notice.Description)
	}
	if strings.Contains(notice.Description, "dial") {
		t.Fatalf("cause leaked into notice: %q", notice.Description)
	}
	if !strings.Contains(logs.String(), "connection refused") {
		t.Fatalf("expected cause in logs, got %q", logs.String())
	}
	if len(reported) != 1 {
		t.Fatalf("expected one reported error, got %d", len(reported))
	}
	if c.Status() != StatusIdle {
		t.Fatalf("expected idle after failure, got %s", c.Status())
	}
}

func TestSubmitWithoutRegistrarFails(t *testing.T) {
	c := NewController(WithLogger(quietLogger()))
	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if !errors.Is(outcome.Err, identity.ErrUnavailable) {
		t.Fatalf("expected unavailable registrar error, got %v", outcome.Err)
	}
}

func TestSubmitRecoversRegistrarPanic(t *testing.T) {
	recorder := notify.NewRecorder()
	c := NewController(
		WithRegistrar(identity.RegistrarFunc(func(context.Context, identity.Registration) error {
			panic("boom")
		})),
		WithNotifier(recorder),
		WithLogger(quietLogger()),
	)

	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Kind() != OutcomeTransport {
		t.Fatalf("expected transport outcome, got %s", outcome.Kind())
	}
	if c.Status() != StatusIdle {
		t.Fatalf("panic left controller in %s", c.Status())
	}
}

func TestSubmitEmptyDomainMessageFallsBack(t *testing.T) {
	c := NewController(
		WithRegistrar(identity.RegistrarFunc(func(context.Context, identity.Registration) error {
			return &identity.DomainError{Status: 422}
		})),
		WithLogger(quietLogger()),
	)
	outcome, err := c.Submit(context.Background())
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if outcome.Notice.Description != "An unexpected error occurred" {
		t.Fatalf("unexpected description %q", outcome.Notice.Description)
	}
	if outcome.Kind() != OutcomeDomain {
		t.Fatalf("expected domain outcome, got %s", outcome.Kind())
	}
}

func TestResolveKeepsDomainMessageVerbatim(t *testing.T) {
	tests := map[string]string{
		"padded":     "  Email already registered  ",
		"whitespace": " ",
	}
	for name, message := range tests {
		t.Run(name, func(t *testing.T) {
			outcome := Resolve(identity.NewDomainError(message))
			want := notify.Notice{Title: "Signup Error", Description: message, Severity: notify.SeverityDestructive}
			if diff := cmp.Diff(want, outcome.Notice); diff != "" {
				t.Fatalf("notice mismatch (-want +got):\n%s", diff)
			}
			if outcome.Kind() != OutcomeDomain {
				t.Fatalf("expected domain outcome, got %s", outcome.Kind())
			}
		})
	}
}

func TestSubmitWhileInFlightIsRejected(t *testing.T) {
	registrar := newGatedRegistrar()
	c := NewController(WithRegistrar(registrar), WithLogger(quietLogger()))
	adaFields(t, c)
	if err := c.SetPendingSkill("Chess"); err != nil {
		t.Fatalf("set pending: %v", err)
	}

	var wg sync.WaitGroup
	wg.Add(1)
	var first Outcome
	go func() {
		defer wg.Done()
		first, _ = c.Submit(context.Background())
	}()
	<-registrar.started

	before := c.Snapshot()
	if before.Status != StatusInFlight || before.Editable || before.CanAddPending {
		t.Fatalf("expected locked in-flight form, got %+v", before)
	}

	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrSubmissionInFlight) {
		t.Fatalf("second submit: expected ErrSubmissionInFlight, got %v", err)
	}
	mutations := map[string]func() error{
		"field":    func() error { return c.SetField(FieldEmail, "other@example.com") },
		"pending":  func() error { return c.SetPendingSkill("Go") },
		"commit":   func() error { _, err := c.CommitPendingSkill(); return err },
		"add":      func() error { _, err := c.AddSkill("Go"); return err },
		"catalog":  func() error { _, err := c.AddFromCatalog("Yoga"); return err },
		"remove":   func() error { _, err := c.RemoveSkill("Math"); return err },
		"password": c.TogglePassword,
	}
	for name, mutate := range mutations {
		if err := mutate(); !errors.Is(err, ErrSubmissionInFlight) {
			t.Fatalf("%s: expected ErrSubmissionInFlight, got %v", name, err)
		}
	}
	if diff := cmp.Diff(before, c.Snapshot()); diff != "" {
		t.Fatalf("state changed while in flight (-before +after):\n%s", diff)
	}

	registrar.release <- nil
	wg.Wait()

	if got := registrar.calls.Load(); got != 1 {
		t.Fatalf("expected exactly one outbound request, got %d", got)
	}
	if first.Status != StatusSucceeded {
		t.Fatalf("expected first submit to succeed, got %+v", first)
	}
}

func TestCloseCancelsOutstandingRequest(t *testing.T) {
	registrar := newGatedRegistrar()
	recorder := notify.NewRecorder()
	var kinds []OutcomeKind
	var mu sync.Mutex
	hooks := 0
	c := NewController(
		WithRegistrar(registrar),
		WithNotifier(recorder),
		WithLogger(quietLogger()),
		WithOnClose(func() { hooks++ }),
		WithObserver(ObserverFunc(func(kind OutcomeKind, _ time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			kinds = append(kinds, kind)
		})),
	)
	adaFields(t, c)

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background())
		done <- err
	}()
	<-registrar.started

	c.Close()
	c.Close()

	select {
	case err := <-done:
		if !errors.Is(err, ErrClosed) {
			t.Fatalf("expected ErrClosed, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("submit did not return after close")
	}

	if notices := recorder.Notices(); len(notices) != 0 {
		t.Fatalf("late resolution must not notify, got %+v", notices)
	}
	if hooks != 1 {
		t.Fatalf("expected one close hook call, got %d", hooks)
	}
	mu.Lock()
	defer mu.Unlock()
	if diff := cmp.Diff([]OutcomeKind{OutcomeDiscarded}, kinds); diff != "" {
		t.Fatalf("observer mismatch (-want +got):\n%s", diff)
	}
	if err := c.SetField(FieldEmail, "x"); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed after close, got %v", err)
	}
	if _, err := c.Submit(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed on submit after close, got %v", err)
	}
}

func TestFailedStatusVisibleDuringNotify(t *testing.T) {
	var c *Controller
	var during Status
	var mutateErr error
	c = NewController(
		WithRegistrar(identity.RegistrarFunc(func(context.Context, identity.Registration) error {
			return identity.NewDomainError("Password should be at least 6 characters")
		})),
		WithNotifier(notify.SinkFunc(func(context.Context, notify.Notice) {
			during = c.Status()
			mutateErr = c.TogglePassword()
		})),
		WithLogger(quietLogger()),
	)

	if _, err := c.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if during != StatusFailed {
		t.Fatalf("expected failed status during notify, got %s", during)
	}
	if !errors.Is(mutateErr, ErrSubmissionInFlight) {
		t.Fatalf("expected mutations refused during notify, got %v", mutateErr)
	}
	if c.Status() != StatusIdle {
		t.Fatalf("expected idle after notify, got %s", c.Status())
	}
}

func TestTogglePasswordTwiceRestoresMasking(t *testing.T) {
	c := NewController()
	if err := c.SetField(FieldPassword, "secret123"); err != nil {
		t.Fatalf("set password: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := c.TogglePassword(); err != nil {
			t.Fatalf("toggle: %v", err)
		}
	}
	snap := c.Snapshot()
	if snap.ShowPassword {
		t.Fatalf("expected masked password after two toggles")
	}
	if snap.Fields.Password != "secret123" {
		t.Fatalf("password changed: %q", snap.Fields.Password)
	}
}

func TestCatalogPicksAreIdempotent(t *testing.T) {
	c := NewController()
	if err := c.SetPendingSkill("Chess"); err != nil {
		t.Fatalf("set pending: %v", err)
	}
	added, err := c.AddFromCatalog("Guitar")
	if err != nil || !added {
		t.Fatalf("first pick: added=%v err=%v", added, err)
	}
	added, err = c.AddFromCatalog("Guitar")
	if err != nil || added {
		t.Fatalf("second pick: added=%v err=%v", added, err)
	}
	if _, err := c.AddFromCatalog("Rust"); !errors.Is(err, ErrNotInCatalog) {
		t.Fatalf("expected ErrNotInCatalog, got %v", err)
	}
	if c.Snapshot().PendingSkill != "Chess" {
		t.Fatalf("catalog pick must leave pending input alone")
	}

	added, err = c.CommitPendingSkill()
	if err != nil || !added {
		t.Fatalf("commit: added=%v err=%v", added, err)
	}
	snap := c.Snapshot()
	if snap.PendingSkill != "" || snap.CanAddPending {
		t.Fatalf("commit must clear pending input, got %+v", snap)
	}
	if diff := cmp.Diff([]string{"Guitar", "Chess"}, snap.Skills); diff != "" {
		t.Fatalf("skills mismatch (-want +got):\n%s", diff)
	}
}

func TestRejectedAddKeepsPendingInput(t *testing.T) {
	c := NewController()
	_ = c.SetPendingSkill("  ")
	if c.CanAddPending() {
		t.Fatalf("blank pending input must disable add")
	}
	if added, _ := c.CommitPendingSkill(); added {
		t.Fatalf("blank commit must be a no-op")
	}
	if c.Snapshot().PendingSkill != "  " {
		t.Fatalf("pending input must survive a rejected add")
	}
}

func TestSetFieldRejectsUnknownName(t *testing.T) {
	c := NewController()
	if err := c.SetField(FieldName("age"), "42"); !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	err := c.SetFields(map[FieldName]string{FieldEmail: "a@b.c", "nickname": "x"})
	if !errors.Is(err, ErrUnknownField) {
		t.Fatalf("expected ErrUnknownField, got %v", err)
	}
	if c.Snapshot().Fields.Email != "" {
		t.Fatalf("batch edits must be atomic")
	}
}

func TestRedirectTarget(t *testing.T) {
	cases := map[string]string{
		"":                        "/",
		"https://skillswap.test":  "https://skillswap.test/",
		"https://skillswap.test/": "https://skillswap.test/",
		" http://localhost:8080 ": "http://localhost:8080/",
	}
	for origin, want := range cases {
		if got := RedirectTarget(origin); got != want {
			t.Fatalf("RedirectTarget(%q) = %q, want %q", origin, got, want)
		}
	}
}
