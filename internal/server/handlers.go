package server

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/goliatone/go-skillswap/internal/modal"
	"github.com/goliatone/go-skillswap/pkg/notify"
	"github.com/goliatone/go-skillswap/pkg/orchestrator"
	"github.com/goliatone/go-skillswap/pkg/render"
	"github.com/goliatone/go-skillswap/pkg/signup"
)

// Form actions carried by the button that submitted the modal form.
const (
	actionField          = "field"
	actionAddSkill       = "add-skill"
	actionPickSkill      = "pick-skill"
	actionRemoveSkill    = "remove-skill"
	actionTogglePassword = "toggle-password"
	actionSubmit         = "submit"
	actionClose          = "close"
	actionSignIn         = "sign-in"
)

// Event results recorded per action.
const (
	resultApplied  = "applied"
	resultNoop     = "noop"
	resultRejected = "rejected"
	resultFailed   = "failed"
)

const pendingSkillField = "pendingSkill"

var expiredNotice = notify.Notice{
	Title:       "Signup Error",
	Description: "This signup form is no longer open. Please start again.",
	Severity:    notify.SeverityDestructive,
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	var notices []notify.Notice
	if notice, ok := notify.ReadFlash(w, r); ok {
		notices = append(notices, notice)
	}
	s.render(w, r, http.StatusOK, orchestrator.Request{Notices: notices})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, orchestrator.Request{
		Login:         true,
		RenderOptions: render.RenderOptions{Fragment: isHTMX(r)},
	})
}

// handleOpen starts a fresh modal. Nothing typed into an earlier modal carries
// over.
func (s *Server) handleOpen(w http.ResponseWriter, r *http.Request) {
	instance := s.store.Open()
	s.count("open", resultApplied)
	s.renderModal(w, r, http.StatusOK, instance, nil)
}

func (s *Server) handleShow(w http.ResponseWriter, r *http.Request) {
	instance, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		s.renderExpired(w, r)
		return
	}
	s.renderModal(w, r, http.StatusOK, instance, instance.Notices.Drain())
}

func (s *Server) handleAction(w http.ResponseWriter, r *http.Request) {
	instance, ok := s.store.Get(chi.URLParam(r, "id"))
	if !ok {
		s.count("expired", resultRejected)
		s.renderExpired(w, r)
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form payload", http.StatusBadRequest)
		return
	}

	action, argument := parseAction(r.PostForm.Get("action"))
	controller := instance.Controller
	if controller.Snapshot().Editable {
		if err := applyInputs(controller, r); err != nil {
			s.logger.Printf("signup %s: apply inputs: %v", instance.ID, err)
		}
	}

	status := http.StatusOK
	result, err := s.dispatch(r.Context(), controller, action, argument)
	switch {
	case errors.Is(err, errUnknownAction):
		s.count("unknown", resultRejected)
		http.Error(w, "unknown action", http.StatusBadRequest)
		return
	case errors.Is(err, signup.ErrSubmissionInFlight):
		status = http.StatusConflict
	case errors.Is(err, signup.ErrNotInCatalog):
		status = http.StatusUnprocessableEntity
	case err != nil && !errors.Is(err, signup.ErrClosed):
		s.logger.Printf("signup %s: %s: %v", instance.ID, action, err)
	}
	s.count(action, result)

	notices := instance.Notices.Drain()
	if !controller.Closed() {
		s.renderModal(w, r, status, instance, notices)
		return
	}

	if action == actionSignIn {
		s.redirect(w, r, "/login", notices)
		return
	}
	if isHTMX(r) {
		s.render(w, r, http.StatusOK, orchestrator.Request{
			Notices:       notices,
			RenderOptions: render.RenderOptions{Fragment: true},
		})
		return
	}
	s.redirect(w, r, "/", notices)
}

var errUnknownAction = errors.New("server: unknown action")

func (s *Server) dispatch(ctx context.Context, controller *signup.Controller, action, argument string) (string, error) {
	switch action {
	case actionField:
		return resultApplied, nil
	case actionAddSkill:
		return changed(controller.CommitPendingSkill())
	case actionPickSkill:
		return changed(controller.AddFromCatalog(argument))
	case actionRemoveSkill:
		return changed(controller.RemoveSkill(argument))
	case actionTogglePassword:
		if err := controller.TogglePassword(); err != nil {
			return resultRejected, err
		}
		return resultApplied, nil
	case actionSubmit:
		// Only Close cancels the registration, not a dropped connection.
		outcome, err := controller.Submit(context.WithoutCancel(ctx))
		if err != nil {
			return resultRejected, err
		}
		return string(outcome.Kind()), nil
	case actionClose, actionSignIn:
		controller.Close()
		return resultApplied, nil
	default:
		return resultRejected, errUnknownAction
	}
}

func changed(ok bool, err error) (string, error) {
	switch {
	case err != nil:
		return resultRejected, err
	case ok:
		return resultApplied, nil
	default:
		return resultNoop, nil
	}
}

// parseAction splits "pick-skill:Guitar" into its verb and argument. A blank
// action is a plain field update.
func parseAction(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return actionField, ""
	}
	action, argument, _ := strings.Cut(raw, ":")
	return strings.TrimSpace(action), argument
}

// applyInputs copies the posted text inputs onto the controller. Inputs
// missing from the post keep their current value.
func applyInputs(controller *signup.Controller, r *http.Request) error {
	values := make(map[signup.FieldName]string)
	for _, name := range signup.FieldNames() {
		if posted, ok := r.PostForm[string(name)]; ok && len(posted) > 0 {
			values[name] = posted[0]
		}
	}
	if len(values) > 0 {
		if err := controller.SetFields(values); err != nil {
			return err
		}
	}
	if posted, ok := r.PostForm[pendingSkillField]; ok && len(posted) > 0 {
		return controller.SetPendingSkill(posted[0])
	}
	return nil
}

func (s *Server) renderModal(w http.ResponseWriter, r *http.Request, status int, instance *modal.Instance, notices []notify.Notice) {
	s.render(w, r, status, orchestrator.Request{
		Modal: &render.Modal{
			ID:     instance.ID,
			Action: "/signup/" + instance.ID,
			State:  instance.Controller.Snapshot(),
		},
		Notices:       notices,
		RenderOptions: render.RenderOptions{Fragment: isHTMX(r)},
	})
}

func (s *Server) renderExpired(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, orchestrator.Request{
		Notices:       []notify.Notice{expiredNotice},
		RenderOptions: render.RenderOptions{Fragment: isHTMX(r)},
	})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, req orchestrator.Request) {
	req.Accept = r.Header.Get("Accept")
	req.RenderOptions.Variant = s.variant
	output, err := s.pages.Generate(r.Context(), req)
	if err != nil {
		s.logger.Printf("render %s: %v", r.URL.Path, err)
		http.Error(w, "unable to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", output.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(output.Body); err != nil {
		s.logger.Printf("write response: %v", err)
	}
}

// redirect carries the most recent notice over to the next page. htmx requests
// are redirected through the HX-Redirect header.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, target string, notices []notify.Notice) {
	if len(notices) > 0 {
		notify.WriteFlash(w, r, notices[len(notices)-1])
	}
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (s *Server) count(action, result string) {
	if s.metrics != nil {
		s.metrics.CountEvent(action, result)
	}
}

func isHTMX(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}
