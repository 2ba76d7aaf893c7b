// Package api exposes the assessment flow over HTTP. Each session is one
// state machine instance; the registry maps session tokens to their
// controllers.
package api

import (
	"context"
	"sync"

	"leak-diagnostic/internal/common/logger"
	"leak-diagnostic/internal/session"
)

// Registry owns every live session controller, keyed by session token.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*session.Controller

	loader   session.CatalogLoader
	scorer   session.Scorer
	reporter session.Reporter
	log      logger.Logger
}

func NewRegistry(loader session.CatalogLoader, scorer session.Scorer, reporter session.Reporter, log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Registry{
		sessions: make(map[string]*session.Controller),
		loader:   loader,
		scorer:   scorer,
		reporter: reporter,
		log:      log,
	}
}

// Create starts a new session and registers it under its token.
func (r *Registry) Create(ctx context.Context, ref session.Referral) (*session.Controller, error) {
	ctrl := session.NewController(session.ControllerOptions{
		Loader:   r.loader,
		Scorer:   r.scorer,
		Reporter: r.reporter,
		Logger:   r.log,
	})
	if err := ctrl.Start(ctx, ref); err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.sessions[ctrl.SessionID()] = ctrl
	r.mu.Unlock()
	return ctrl, nil
}

// Get returns the controller for a token, or false when the token is
// unknown.
func (r *Registry) Get(id string) (*session.Controller, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ctrl, ok := r.sessions[id]
	return ctrl, ok
}

// Restart resets a session, re-enters the flow with the surviving profile
// and re-keys the controller under its fresh token. The old token stops
// resolving.
func (r *Registry) Restart(ctx context.Context, id string) (*session.Controller, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ctrl, ok := r.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	if err := ctrl.Restart(); err != nil {
		return nil, err
	}

	profile := ctrl.Snapshot().Profile
	if err := ctrl.Start(ctx, session.Referral{
		Name:    profile.Name,
		Company: profile.Company,
		Email:   profile.Email,
	}); err != nil {
		return nil, err
	}

	delete(r.sessions, id)
	r.sessions[ctrl.SessionID()] = ctrl
	return ctrl, nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
