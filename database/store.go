package database

import (
	"errors"
	"sync"
	"time"

	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/utils"
)

// Collection names used for id sequencing.
const (
	KindSession      = "sessions"
	KindProfile      = "profiles"
	KindRequest      = "registration_requests"
	KindNotification = "notifications"
)

var ErrReadOnly = errors.New("database: write inside read-only transaction")

type state struct {
	sessions      []models.Session
	profiles      []models.Profile
	credentials   []models.Credential
	slots         []models.AvailableSlot
	requests      []models.RegistrationRequest
	reports       map[string]models.Report
	notifications []models.Notification
}

func newState() state {
	return state{reports: make(map[string]models.Report)}
}

func (s state) clone() state {
	c := state{
		sessions:      make([]models.Session, len(s.sessions)),
		profiles:      make([]models.Profile, len(s.profiles)),
		credentials:   make([]models.Credential, len(s.credentials)),
		slots:         make([]models.AvailableSlot, len(s.slots)),
		requests:      make([]models.RegistrationRequest, len(s.requests)),
		reports:       make(map[string]models.Report, len(s.reports)),
		notifications: make([]models.Notification, len(s.notifications)),
	}
	for i, v := range s.sessions {
		c.sessions[i] = v.Clone()
	}
	for i, v := range s.profiles {
		c.profiles[i] = v.Clone()
	}
	copy(c.credentials, s.credentials)
	copy(c.slots, s.slots)
	for i, v := range s.requests {
		c.requests[i] = v.Clone()
	}
	for k, v := range s.reports {
		c.reports[k] = v.Clone()
	}
	copy(c.notifications, s.notifications)
	return c
}

// Store holds every collection in memory for the life of the process.
// Writers are serialized; Update applies all of its changes or none.
type Store struct {
	mu    sync.RWMutex
	state state
	seq   *utils.Sequence
	now   func() time.Time
}

type Option func(*Store)

// WithClock overrides the time source used for created-at stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		state: newState(),
		seq:   utils.NewSequence(),
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Now() time.Time {
	return s.now()
}

// View runs fn against the live state under a read lock. Writes fail with
// ErrReadOnly.
func (s *Store) View(fn func(tx *Tx) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&Tx{state: &s.state, seq: s.seq, now: s.now, readOnly: true})
}

// Update runs fn against a private copy of the state and publishes it only
// when fn returns nil.
func (s *Store) Update(fn func(tx *Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	working := s.state.clone()
	if err := fn(&Tx{state: &working, seq: s.seq, now: s.now}); err != nil {
		return err
	}
	s.state = working
	return nil
}
