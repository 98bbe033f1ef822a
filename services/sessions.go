package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/calvinlm/Arco-Prototype/logging"
	"github.com/calvinlm/Arco-Prototype/models"
	"github.com/calvinlm/Arco-Prototype/utils"
)

// Session is one visitor's in-memory workspace: cart, room, settings and
// profile. It is discarded when it ends or sits idle past the registry TTL.
type Session struct {
	ID        uuid.UUID
	CreatedAt time.Time
	Cart      *CartStore
	Room      *RoomBuilder

	mu       sync.Mutex
	lastSeen time.Time
	settings models.Settings
	profile  models.Profile

	done    chan struct{}
	endOnce sync.Once
}

// Done is closed when the session ends.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings applies patch after validating it; the session is left
// unchanged on error.
func (s *Session) UpdateSettings(patch models.SettingsPatch) (models.Settings, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, err := ApplySettingsPatch(s.settings, patch)
	if err != nil {
		return s.settings, err
	}
	s.settings = updated
	return updated, nil
}

func (s *Session) Profile() models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// UpdateProfile validates and stores p, regenerating the avatar when the name changes.
func (s *Session) UpdateProfile(p models.Profile) (models.Profile, error) {
	if err := ValidateProfile(p); err != nil {
		return models.Profile{}, err
	}
	p = NormalizeProfile(p)

	s.mu.Lock()
	defer s.mu.Unlock()
	if p.Name != s.profile.Name || s.profile.AvatarURL == "" {
		p.AvatarURL = utils.AvatarURL(p.Name)
	} else {
		p.AvatarURL = s.profile.AvatarURL
	}
	s.profile = p
	return p, nil
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) end() {
	s.endOnce.Do(func() { close(s.done) })
}

// SessionDefaults seeds new sessions.
type SessionDefaults struct {
	Settings models.Settings
	Profile  models.Profile
	Catalog  *Catalog
}

// SessionRegistry owns every live session.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	ttl      time.Duration
	defaults SessionDefaults
	now      func() time.Time
	logger   *zap.Logger
}

func NewSessionRegistry(ttl time.Duration, defaults SessionDefaults, logger *zap.Logger) *SessionRegistry {
	return &SessionRegistry{
		sessions: make(map[uuid.UUID]*Session),
		ttl:      ttl,
		defaults: defaults,
		now:      time.Now,
		logger:   logging.OrNop(logger),
	}
}

// Create starts a session with an empty cart.
func (r *SessionRegistry) Create() *Session {
	now := r.now()
	profile := r.defaults.Profile
	if profile.AvatarURL == "" && profile.Name != "" {
		profile.AvatarURL = utils.AvatarURL(profile.Name)
	}

	id := uuid.New()
	cart := NewCartStore(r.logger.With(zap.String("session_id", id.String())))
	sess := &Session{
		ID:        id,
		CreatedAt: now,
		Cart:      cart,
		Room:      NewRoomBuilder(r.defaults.Catalog, cart, nil),
		lastSeen:  now,
		settings:  r.defaults.Settings,
		profile:   profile,
		done:      make(chan struct{}),
	}

	r.mu.Lock()
	r.sessions[sess.ID] = sess
	r.mu.Unlock()

	r.logger.Info("session started", zap.String("session_id", sess.ID.String()))
	return sess
}

// Get returns a live session and marks it as active.
func (r *SessionRegistry) Get(id uuid.UUID) (*Session, bool) {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return nil, false
	}
	sess.touch(r.now())
	return sess, true
}

// End discards a session and its cart. It reports whether the session existed.
func (r *SessionRegistry) End(id uuid.UUID) bool {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return false
	}
	sess.end()
	r.logger.Info("session ended", zap.String("session_id", id.String()))
	return true
}

// Sweep ends every session idle for longer than the TTL and returns how many.
func (r *SessionRegistry) Sweep() int {
	cutoff := r.now().Add(-r.ttl)

	r.mu.Lock()
	var expired []*Session
	for id, sess := range r.sessions {
		if sess.idleSince().Before(cutoff) {
			expired = append(expired, sess)
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()

	for _, sess := range expired {
		sess.end()
		r.logger.Info("session expired", zap.String("session_id", sess.ID.String()))
	}
	return len(expired)
}

// Run sweeps every interval until ctx is done, then ends all sessions.
func (r *SessionRegistry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.shutdown()
			return nil
		case <-ticker.C:
			if n := r.Sweep(); n > 0 {
				r.logger.Debug("swept idle sessions", zap.Int("count", n))
			}
		}
	}
}

// Len is the number of live sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *SessionRegistry) shutdown() {
	r.mu.Lock()
	sessions := r.sessions
	r.sessions = make(map[uuid.UUID]*Session)
	r.mu.Unlock()

	for _, sess := range sessions {
		sess.end()
	}
}
