package service

import (
	"context"
	"errors"
	"net/http"

	"github.com/devnitht02/top-movies/internal/biz"
	"github.com/devnitht02/top-movies/internal/conf"

	"github.com/gorilla/sessions"
)

const (
	sessionKeyState   = "workflow_state"
	sessionKeyQuery   = "workflow_query"
	sessionKeyMovieID = "workflow_movie_id"
)

// ErrMissingSessionSecret is returned when no signing secret is configured.
var ErrMissingSessionSecret = errors.New("session secret is not configured (set MOVIE_SECRET_KEY)")

// WorkflowStore keeps the add-movie workflow of a browser in a signed cookie.
type WorkflowStore struct {
	store *sessions.CookieStore
	name  string
}

// NewWorkflowStore creates a cookie store signed with the configured secret
func NewWorkflowStore(c *conf.Session) (*WorkflowStore, error) {
	if c.Secret == "" {
		return nil, ErrMissingSessionSecret
	}

	store := sessions.NewCookieStore([]byte(c.Secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   c.MaxAge,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	return &WorkflowStore{store: store, name: c.Name}, nil
}

// Load returns the workflow stored in the request's cookie. A missing,
// expired or tampered cookie yields a fresh workflow.
func (s *WorkflowStore) Load(r *http.Request) *biz.AddMovieWorkflow {
	session, err := s.store.New(r, s.name)
	if err != nil || session.IsNew {
		return biz.NewAddMovieWorkflow()
	}

	wf := biz.NewAddMovieWorkflow()
	if state, ok := session.Values[sessionKeyState].(string); ok && state != "" {
		wf.State = biz.WorkflowState(state)
	}
	if query, ok := session.Values[sessionKeyQuery].(string); ok {
		wf.Query = query
	}
	if id, ok := session.Values[sessionKeyMovieID].(int64); ok {
		wf.MovieID = id
	}
	return wf
}

// Save writes the workflow into a Set-Cookie header on w.
func (s *WorkflowStore) Save(r *http.Request, w http.ResponseWriter, wf *biz.AddMovieWorkflow) error {
	session := sessions.NewSession(s.store, s.name)
	opts := *s.store.Options
	session.Options = &opts
	session.Values[sessionKeyState] = string(wf.State)
	session.Values[sessionKeyQuery] = wf.Query
	session.Values[sessionKeyMovieID] = wf.MovieID
	return s.store.Save(r, w, session)
}

type workflowKey struct{}

// NewWorkflowContext returns a context carrying the request's workflow.
func NewWorkflowContext(ctx context.Context, wf *biz.AddMovieWorkflow) context.Context {
	return context.WithValue(ctx, workflowKey{}, wf)
}

// WorkflowFromContext returns the workflow attached by NewWorkflowContext.
func WorkflowFromContext(ctx context.Context) (*biz.AddMovieWorkflow, bool) {
	wf, ok := ctx.Value(workflowKey{}).(*biz.AddMovieWorkflow)
	return wf, ok
}
