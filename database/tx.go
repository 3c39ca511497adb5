package database

import (
	"slices"
	"time"

	"github.com/anjiri1684/tutoring_api/models"
	"github.com/anjiri1684/tutoring_api/utils"
)

// Tx is the only handle on store state. Everything it returns is a copy.
type Tx struct {
	state    *state
	seq      *utils.Sequence
	now      func() time.Time
	readOnly bool
}

func (tx *Tx) Now() time.Time {
	return tx.now()
}

func (tx *Tx) NextID(kind string) string {
	return tx.seq.Next(kind)
}

func (tx *Tx) writable() error {
	if tx.readOnly {
		return ErrReadOnly
	}
	return nil
}

// Sessions

func (tx *Tx) Sessions(keep func(models.Session) bool) []models.Session {
	out := make([]models.Session, 0, len(tx.state.sessions))
	for _, s := range tx.state.sessions {
		if keep == nil || keep(s) {
			out = append(out, s.Clone())
		}
	}
	return out
}

func (tx *Tx) FindSession(id string) (models.Session, bool) {
	i := slices.IndexFunc(tx.state.sessions, func(s models.Session) bool { return s.ID == id })
	if i < 0 {
		return models.Session{}, false
	}
	return tx.state.sessions[i].Clone(), true
}

func (tx *Tx) InsertSession(s models.Session) error {
	if err := tx.writable(); err != nil {
		return err
	}
	tx.seq.Observe(KindSession, s.ID)
	tx.state.sessions = append(tx.state.sessions, s.Clone())
	return nil
}

// UpdateSession applies fn to the stored session with the given id and
// returns the result. found is false when no session matches.
func (tx *Tx) UpdateSession(id string, fn func(*models.Session)) (updated models.Session, found bool, err error) {
	if err := tx.writable(); err != nil {
		return models.Session{}, false, err
	}
	for i := range tx.state.sessions {
		if tx.state.sessions[i].ID == id {
			fn(&tx.state.sessions[i])
			return tx.state.sessions[i].Clone(), true, nil
		}
	}
	return models.Session{}, false, nil
}

// Profiles

func (tx *Tx) Profiles(keep func(models.Profile) bool) []models.Profile {
	out := make([]models.Profile, 0, len(tx.state.profiles))
	for _, p := range tx.state.profiles {
		if keep == nil || keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

func (tx *Tx) FindProfile(id string) (models.Profile, bool) {
	i := slices.IndexFunc(tx.state.profiles, func(p models.Profile) bool { return p.ID == id })
	if i < 0 {
		return models.Profile{}, false
	}
	return tx.state.profiles[i].Clone(), true
}

func (tx *Tx) InsertProfile(p models.Profile) error {
	if err := tx.writable(); err != nil {
		return err
	}
	tx.seq.Observe(KindProfile, p.ID)
	tx.state.profiles = append(tx.state.profiles, p.Clone())
	return nil
}

func (tx *Tx) UpdateProfile(id string, fn func(*models.Profile)) (models.Profile, bool, error) {
	if err := tx.writable(); err != nil {
		return models.Profile{}, false, err
	}
	for i := range tx.state.profiles {
		if tx.state.profiles[i].ID == id {
			fn(&tx.state.profiles[i])
			return tx.state.profiles[i].Clone(), true, nil
		}
	}
	return models.Profile{}, false, nil
}

// Credentials

func (tx *Tx) Credentials() []models.Credential {
	return slices.Clone(tx.state.credentials)
}

func (tx *Tx) InsertCredential(c models.Credential) error {
	if err := tx.writable(); err != nil {
		return err
	}
	c.PasswordHash = slices.Clone(c.PasswordHash)
	tx.state.credentials = append(tx.state.credentials, c)
	return nil
}

// Available slots

func (tx *Tx) Slots(keep func(models.AvailableSlot) bool) []models.AvailableSlot {
	out := make([]models.AvailableSlot, 0, len(tx.state.slots))
	for _, s := range tx.state.slots {
		if keep == nil || keep(s) {
			out = append(out, s)
		}
	}
	return out
}

func (tx *Tx) InsertSlot(s models.AvailableSlot) error {
	if err := tx.writable(); err != nil {
		return err
	}
	tx.state.slots = append(tx.state.slots, s)
	return nil
}

// DeleteSlots removes every slot matched by drop and reports how many went.
func (tx *Tx) DeleteSlots(drop func(models.AvailableSlot) bool) (int, error) {
	if err := tx.writable(); err != nil {
		return 0, err
	}
	before := len(tx.state.slots)
	tx.state.slots = slices.DeleteFunc(tx.state.slots, drop)
	return before - len(tx.state.slots), nil
}

// Registration requests

func (tx *Tx) Requests(keep func(models.RegistrationRequest) bool) []models.RegistrationRequest {
	out := make([]models.RegistrationRequest, 0, len(tx.state.requests))
	for _, r := range tx.state.requests {
		if keep == nil || keep(r) {
			out = append(out, r.Clone())
		}
	}
	return out
}

func (tx *Tx) FindRequest(id string) (models.RegistrationRequest, bool) {
	i := slices.IndexFunc(tx.state.requests, func(r models.RegistrationRequest) bool { return r.ID == id })
	if i < 0 {
		return models.RegistrationRequest{}, false
	}
	return tx.state.requests[i].Clone(), true
}

func (tx *Tx) InsertRequest(r models.RegistrationRequest) error {
	if err := tx.writable(); err != nil {
		return err
	}
	tx.seq.Observe(KindRequest, r.ID)
	tx.state.requests = append(tx.state.requests, r.Clone())
	return nil
}

func (tx *Tx) UpdateRequest(id string, fn func(*models.RegistrationRequest)) (models.RegistrationRequest, bool, error) {
	if err := tx.writable(); err != nil {
		return models.RegistrationRequest{}, false, err
	}
	for i := range tx.state.requests {
		if tx.state.requests[i].ID == id {
			fn(&tx.state.requests[i])
			return tx.state.requests[i].Clone(), true, nil
		}
	}
	return models.RegistrationRequest{}, false, nil
}

// Reports

func (tx *Tx) Report(sessionID string) (models.Report, bool) {
	r, ok := tx.state.reports[sessionID]
	if !ok {
		return models.Report{}, false
	}
	return r.Clone(), true
}

// PutReport stores r under its session id, replacing any earlier report.
func (tx *Tx) PutReport(r models.Report) error {
	if err := tx.writable(); err != nil {
		return err
	}
	tx.state.reports[r.SessionID] = r.Clone()
	return nil
}

// Notifications

func (tx *Tx) Notifications(keep func(models.Notification) bool) []models.Notification {
	out := make([]models.Notification, 0, len(tx.state.notifications))
	for _, n := range tx.state.notifications {
		if keep == nil || keep(n) {
			out = append(out, n)
		}
	}
	return out
}

func (tx *Tx) InsertNotification(n models.Notification) error {
	if err := tx.writable(); err != nil {
		return err
	}
	tx.seq.Observe(KindNotification, n.ID)
	tx.state.notifications = append(tx.state.notifications, n)
	return nil
}

func (tx *Tx) UpdateNotification(id string, fn func(*models.Notification)) (models.Notification, bool, error) {
	if err := tx.writable(); err != nil {
		return models.Notification{}, false, err
	}
	for i := range tx.state.notifications {
		if tx.state.notifications[i].ID == id {
			fn(&tx.state.notifications[i])
			return tx.state.notifications[i], true, nil
		}
	}
	return models.Notification{}, false, nil
}
