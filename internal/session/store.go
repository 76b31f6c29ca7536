package session

import (
	"errors"
	"strings"
	"sync"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

var (
	ErrMissingFields  = errors.New("lead is missing name or email")
	ErrDuplicateEmail = errors.New("a lead with this email already exists in this session")
)

// Store holds the state of one form session: the leads captured so far, the
// submitted/loading flags and the last error message. It is constructed
// explicitly and injected into the submission use case; there is no package
// level singleton.
type Store struct {
	mu        sync.Mutex
	submitted bool
	loading   bool
	err       string
	leads     []entity.Lead
}

// State is a point-in-time copy of the store, safe to hand to a renderer.
type State struct {
	Submitted bool          `json:"submitted"`
	Loading   bool          `json:"loading"`
	Error     string        `json:"error,omitempty"`
	Leads     []entity.Lead `json:"leads"`
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) SetSubmitted(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = flag
}

func (s *Store) SetLoading(flag bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = flag
}

func (s *Store) ClearError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = ""
}

func (s *Store) SetError(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = msg
}

// AddLead appends the lead preserving insertion order. It rejects leads with a
// missing name or email and leads whose email was already captured in this
// session; a rejection sets the store error and leaves the collection
// untouched. The duplicate check is session-scoped only: cross-session
// duplicates are the database's unique index to catch.
func (s *Store) AddLead(lead entity.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(lead.Name) == "" || strings.TrimSpace(lead.Email) == "" {
		s.err = ErrMissingFields.Error()
		return ErrMissingFields
	}

	for _, existing := range s.leads {
		if existing.Email == lead.Email {
			s.err = ErrDuplicateEmail.Error()
			return ErrDuplicateEmail
		}
	}

	s.leads = append(s.leads, lead)
	s.err = ""
	return nil
}

// Reset is the "submit another" transition: back to the entry form with the
// error cleared. Collected leads and their count survive.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitted = false
	s.err = ""
}

func (s *Store) LeadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.leads)
}

func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads := make([]entity.Lead, len(s.leads))
	copy(leads, s.leads)

	return State{
		Submitted: s.submitted,
		Loading:   s.loading,
		Error:     s.err,
		Leads:     leads,
	}
}
