package session

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"mrcog-admin/internal/config"
	"mrcog-admin/internal/domain"
	"mrcog-admin/internal/dto"
	"mrcog-admin/internal/localstate"
	"mrcog-admin/internal/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Status is the guard's view of the session.
type Status int

const (
	// StatusUnknown means CheckAuth has not run yet.
	StatusUnknown Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusAuthenticated:
		return "authenticated"
	case StatusUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// ErrNoSession is returned by operations that require an authenticated
// session when none exists.
var ErrNoSession = errors.New("no active session")

// User is the identity decoded from the bearer token's claims. No server
// round-trip is needed for the basic check.
type User struct {
	Email string
	Name  string
	Role  string
}

// StateStore is the durable string-keyed storage the guard persists session
// state into.
type StateStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

// AuthAPI is the slice of the REST client the guard needs.
type AuthAPI interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Logout(ctx context.Context) error
}

// Guard owns the client-side session lifecycle: login, logout, token expiry
// checks and the coarse inactivity policy. The token's own expiry claim is
// the authoritative freshness check; the inactivity sweep is best-effort.
type Guard struct {
	mu     sync.Mutex
	store  StateStore
	api    AuthAPI
	cfg    config.SessionConfig
	now    func() time.Time
	user   *User
	status Status

	stopWatcher chan struct{}
	watcherOnce sync.Once
}

// NewGuard creates a Guard over the given state store and auth API.
func NewGuard(store StateStore, api AuthAPI, cfg config.SessionConfig) *Guard {
	return &Guard{
		store:  store,
		api:    api,
		cfg:    cfg,
		now:    time.Now,
		status: StatusUnknown,
	}
}

// Token returns the persisted bearer token, satisfying the REST client's
// token source.
func (g *Guard) Token() (string, bool) {
	token, ok, err := g.store.Get(localstate.KeyAuthToken)
	if err != nil {
		logger.Get().Warn("failed to read persisted token", zap.Error(err))
		return "", false
	}
	return token, ok
}

// Login exchanges credentials for a token and establishes the session. On
// any failure no partial state is persisted and the returned error carries a
// human-readable message.
func (g *Guard) Login(ctx context.Context, email, password string) error {
	resp, err := g.api.Login(ctx, dto.LoginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return domain.NewServerError("login response carried no token")
	}

	user, err := decodeClaims(resp.Token, g.now())
	if err != nil {
		return domain.NewInternalError("login token could not be decoded", err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	nowMillis := millis(g.now())
	if err := g.store.Set(localstate.KeyAuthToken, resp.Token); err != nil {
		return domain.NewInternalError("failed to persist session", err)
	}
	if err := g.store.Set(localstate.KeyLoginTime, nowMillis); err != nil {
		g.purgeLocked()
		return domain.NewInternalError("failed to persist session", err)
	}
	if err := g.store.Set(localstate.KeyLastActivity, nowMillis); err != nil {
		g.purgeLocked()
		return domain.NewInternalError("failed to persist session", err)
	}

	g.user = user
	g.status = StatusAuthenticated
	logger.Get().Info("admin logged in", zap.String("email", user.Email))
	return nil
}

// CheckAuth refreshes the guard's state from the persisted token. It is
// idempotent and safe to call repeatedly: an unchanged valid token yields
// identical results. An expired or undecodable token is treated the same as
// an absent one and the persisted state is purged.
func (g *Guard) CheckAuth() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	token, ok, err := g.store.Get(localstate.KeyAuthToken)
	if err != nil {
		logger.Get().Warn("failed to read persisted token", zap.Error(err))
		g.user = nil
		g.status = StatusUnauthenticated
		return g.status
	}
	if !ok {
		g.user = nil
		g.status = StatusUnauthenticated
		return g.status
	}

	user, err := decodeClaims(token, g.now())
	if err != nil {
		logger.Get().Info("persisted token no longer usable", zap.Error(err))
		g.purgeLocked()
		g.user = nil
		g.status = StatusUnauthenticated
		return g.status
	}

	g.user = user
	g.status = StatusAuthenticated
	return g.status
}

// Logout tears the session down. It is callable from any state and never
// fails: persistence errors are logged, not returned. The backend is
// notified best-effort.
func (g *Guard) Logout(ctx context.Context) {
	g.mu.Lock()
	hadSession := g.status == StatusAuthenticated
	g.purgeLocked()
	if err := g.store.Delete(localstate.KeyLastActivity); err != nil {
		logger.Get().Warn("failed to purge activity state", zap.Error(err))
	}
	g.user = nil
	g.status = StatusUnauthenticated
	g.mu.Unlock()

	if hadSession && g.api != nil {
		if err := g.api.Logout(ctx); err != nil {
			logger.Get().Debug("backend logout call failed", zap.Error(err))
		}
	}
	logger.Get().Info("session ended")
}

// Touch records a qualifying interaction for the inactivity policy.
func (g *Guard) Touch() {
	if err := g.store.Set(localstate.KeyLastActivity, millis(g.now())); err != nil {
		logger.Get().Warn("failed to record activity", zap.Error(err))
	}
}

// Snapshot returns the current user (nil unless authenticated) and status.
func (g *Guard) Snapshot() (*User, Status) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return nil, g.status
	}
	u := *g.user
	return &u, g.status
}

// PurgeToken drops the persisted token and marks the session gone. Wired as
// the REST client's unauthorized hook so a 401 from any call forces logout
// uniformly.
func (g *Guard) PurgeToken() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.purgeLocked()
	g.user = nil
	g.status = StatusUnauthenticated
}

func (g *Guard) purgeLocked() {
	if err := g.store.Delete(localstate.KeyAuthToken); err != nil {
		logger.Get().Warn("failed to purge token", zap.Error(err))
	}
	if err := g.store.Delete(localstate.KeyLoginTime); err != nil {
		logger.Get().Warn("failed to purge login time", zap.Error(err))
	}
}

// StartWatcher launches the periodic inactivity check. The sweep runs once
// per configured interval and logs the session out after the inactivity
// limit elapses without a Touch.
func (g *Guard) StartWatcher(ctx context.Context) {
	g.watcherOnce.Do(func() {
		g.stopWatcher = make(chan struct{})
		go func() {
			ticker := time.NewTicker(g.cfg.SweepInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					g.sweepInactivity(ctx)
				case <-g.stopWatcher:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	})
}

// StopWatcher stops the periodic check.
func (g *Guard) StopWatcher() {
	if g.stopWatcher != nil {
		select {
		case <-g.stopWatcher:
		default:
			close(g.stopWatcher)
		}
	}
}

// sweepInactivity logs out when the last recorded activity is older than
// the inactivity limit. The purge it triggers removes the activity record,
// so one breach produces exactly one logout.
func (g *Guard) sweepInactivity(ctx context.Context) {
	last, ok, err := g.store.Get(localstate.KeyLastActivity)
	if err != nil || !ok {
		return
	}
	lastMillis, err := strconv.ParseInt(last, 10, 64)
	if err != nil {
		return
	}
	idle := g.now().Sub(time.UnixMilli(lastMillis))
	if idle > g.cfg.InactivityLimit {
		logger.Get().Info("session idle past limit, logging out",
			zap.Duration("idle", idle),
			zap.Duration("limit", g.cfg.InactivityLimit))
		g.Logout(ctx)
	}
}

// decodeClaims parses the token payload without signature verification (the
// client holds no signing key) and enforces the expiry claim.
func decodeClaims(token string, now time.Time) (*User, error) {
	claims := &dto.AuthClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	if claims.ExpiresAt == nil {
		return nil, errors.New("token carries no expiry claim")
	}
	if !claims.ExpiresAt.After(now) {
		return nil, errors.New("token expired")
	}
	return &User{
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}, nil
}

func millis(t time.Time) string {
	return strconv.FormatInt(t.UnixMilli(), 10)
}
