package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"rent-server/cache"
	"rent-server/confs"
	"rent-server/db"
)

// Source hands out the Store serving a caller.
type Source interface {
	For(ctx context.Context, userID string) (*Store, error)
}

// StaticSource serves the same Store to every caller.
type StaticSource struct {
	Store *Store
}

func (s StaticSource) For(ctx context.Context, userID string) (*Store, error) {
	return s.Store, nil
}

// closeGrace is how long a replaced database stays open for requests that
// started on it.
const closeGrace = 30 * time.Second

// OptionsFor turns a saved backend, or failing that the environment, into
// connection options. ok is false when neither names a backend.
func OptionsFor(b confs.Backend, env confs.Database) (opts db.Options, ok bool, err error) {
	if !b.Empty() {
		if path, isSQLite := strings.CutPrefix(b.URL, "sqlite://"); isSQLite {
			return db.Options{Driver: db.DriverSQLite, DSN: path}, true, nil
		}
		u, err := url.Parse(b.URL)
		if err != nil {
			return db.Options{}, false, fmt.Errorf("parse backend url: %w", err)
		}
		if b.Key != "" {
			user := "postgres"
			if u.User != nil {
				user = u.User.Username()
			}
			u.User = url.UserPassword(user, b.Key)
		}
		dsn, err := db.PostgresDSN(u.String(), "", "", "", "", "")
		return db.Options{Driver: db.DriverPostgres, DSN: dsn}, true, err
	}

	if env.Driver == db.DriverSQLite && env.Path != "" {
		return db.Options{Driver: db.DriverSQLite, DSN: env.Path}, true, nil
	}
	if env.URL == "" && env.Host == "" {
		return db.Options{}, false, nil
	}
	dsn, err := db.PostgresDSN(env.URL, env.Host, env.Port, env.User, env.Password, env.Name)
	return db.Options{Driver: db.DriverPostgres, DSN: dsn}, true, err
}

// BackendPolicy limits the backends a user may save for themselves. Only
// postgres URLs on one of Hosts are accepted; an empty list accepts none.
// The global backend is set by the operator and is not subject to it.
type BackendPolicy struct {
	Hosts []string
}

// Check rejects a user backend that is not a postgres URL (ErrInvalid) or
// whose host is not allowed (ErrForbidden).
func (p BackendPolicy) Check(b confs.Backend) error {
	u, err := url.Parse(b.URL)
	if err != nil {
		return fmt.Errorf("%w: backend url: %v", ErrInvalid, err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("%w: backend url must be postgres://, got %q", ErrInvalid, u.Scheme)
	}
	if len(p.Hosts) == 0 {
		return fmt.Errorf("%w: per-user backends are disabled", ErrForbidden)
	}
	host := strings.ToLower(u.Hostname())
	for _, allowed := range p.Hosts {
		if strings.EqualFold(strings.TrimSpace(allowed), host) {
			return nil
		}
	}
	return fmt.Errorf("%w: backend host %q is not allowed", ErrForbidden, host)
}

type handle struct {
	store    *Store
	database db.Database
}

// Provider owns the process-wide Store and any per-user override saved in
// the settings file, rebuilding them when the settings change.
type Provider struct {
	env      confs.Database
	settings *confs.Settings
	policy   BackendPolicy
	debug    bool
	open     func(db.Options) (db.Database, error)

	mu     sync.RWMutex
	global *handle
	users  map[string]*handle // nil entry: user has no own backend
}

func NewProvider(env confs.Database, settings *confs.Settings, policy BackendPolicy, debug bool) (*Provider, error) {
	p := &Provider{
		env:      env,
		settings: settings,
		policy:   policy,
		debug:    debug,
		open:     db.Connect,
		users:    make(map[string]*handle),
	}
	global, err := p.build("")
	if err != nil {
		return nil, err
	}
	p.global = global
	if settings != nil {
		settings.OnChange(p.Reload)
	}
	return p, nil
}

func (p *Provider) build(userID string) (*handle, error) {
	var (
		backend confs.Backend
		err     error
	)
	if p.settings != nil {
		if userID == "" {
			backend, err = p.settings.Load("")
		} else {
			backend, err = p.settings.LoadOwn(userID)
		}
		if err != nil {
			return nil, err
		}
	}

	env := p.env
	if userID != "" {
		env = confs.Database{}
		if !backend.Empty() {
			if err := p.policy.Check(backend); err != nil {
				logrus.WithField("user_id", userID).WithError(err).Warn("ignoring saved user backend")
				return nil, nil
			}
		}
	}
	opts, ok, err := OptionsFor(backend, env)
	if err != nil {
		return nil, err
	}
	if !ok {
		if userID != "" {
			return nil, nil
		}
		logrus.Warn("database credentials not configured, using mock data mode")
		return &handle{store: NewMemoryStore(cache.MockData())}, nil
	}

	opts.Debug = p.debug
	database, err := p.open(opts)
	if err != nil {
		return nil, err
	}
	return &handle{store: NewPgStore(database), database: database}, nil
}

// For returns the caller's own store if one is saved, else the global one.
func (p *Provider) For(ctx context.Context, userID string) (*Store, error) {
	p.mu.RLock()
	h, seen := p.users[userID]
	global := p.global
	p.mu.RUnlock()

	if userID == "" || p.settings == nil {
		return global.store, nil
	}
	if !seen {
		built, err := p.build(userID)
		if err != nil {
			logrus.WithField("user_id", userID).WithError(err).Error("could not open user backend")
			return nil, err
		}
		p.mu.Lock()
		if existing, ok := p.users[userID]; ok {
			p.mu.Unlock()
			retire(built)
			built = existing
		} else {
			p.users[userID] = built
			p.mu.Unlock()
		}
		h = built
	}
	if h == nil {
		return global.store, nil
	}
	return h.store, nil
}

// Reload drops the store built for userID ("" for the global store) so the
// next call picks up the saved settings.
func (p *Provider) Reload(userID string) {
	log := logrus.WithField("user_id", userID)
	if userID != "" {
		p.mu.Lock()
		old := p.users[userID]
		delete(p.users, userID)
		p.mu.Unlock()
		retire(old)
		log.Info("backend settings changed, store will be reopened")
		return
	}

	fresh, err := p.build("")
	if err != nil {
		log.WithError(err).Error("could not reopen global store, keeping the current one")
		return
	}
	p.mu.Lock()
	old := p.global
	p.global = fresh
	p.mu.Unlock()
	retire(old)
	log.WithField("mock", fresh.store.Mock).Info("global store reinitialized")
}

// Global returns the process-wide store.
func (p *Provider) Global() *Store {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.global.store
}

// Close closes every open database.
func (p *Provider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	var first error
	closeHandle := func(h *handle) {
		if h == nil || h.database == nil {
			return
		}
		if err := h.database.Close(); err != nil && first == nil {
			first = err
		}
	}
	closeHandle(p.global)
	for _, h := range p.users {
		closeHandle(h)
	}
	return first
}

func retire(h *handle) {
	if h == nil || h.database == nil {
		return
	}
	time.AfterFunc(closeGrace, func() {
		if err := h.database.Close(); err != nil {
			logrus.WithError(err).Warn("closing replaced database")
		}
	})
}
