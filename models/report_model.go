package models

import (
	"maps"
	"slices"
	"time"
)

// Report is the tutor's write-up of a session. At most one per session.
type Report struct {
	SessionID string            `json:"session_id"`
	Summary   string            `json:"summary"`
	Topics    []string          `json:"topics,omitempty"`
	Progress  string            `json:"progress,omitempty"`
	Homework  string            `json:"homework,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

func (r Report) Clone() Report {
	r.Topics = slices.Clone(r.Topics)
	r.Extra = maps.Clone(r.Extra)
	return r
}

type ReportInput struct {
	Summary  string            `json:"summary"`
	Topics   []string          `json:"topics"`
	Progress string            `json:"progress"`
	Homework string            `json:"homework"`
	Extra    map[string]string `json:"extra"`
}
