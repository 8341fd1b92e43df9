// Package session holds the UI-facing run state machine: one run
// at a time, results kept on screen until explicitly cleared.
package session

import (
	"sync"
)

type Phase int

const (
	// PhaseIdle accepts a new company submission.
	PhaseIdle Phase = iota
	// PhaseRunning means a pipeline run is in flight; further
	// submissions are rejected until it completes or fails.
	PhaseRunning
	// PhaseDisplaying shows the last successful result. A new
	// submission is allowed and replaces it.
	PhaseDisplaying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

type ErrEmptySubmission struct{}

func (e ErrEmptySubmission) Error() string {
	return "company name must not be empty"
}

type ErrRunInProgress struct {
	Company string
}

func (e ErrRunInProgress) Error() string {
	return "a search for '" + e.Company + "' is already running"
}

// Session tracks the current run and the last result. All methods
// are safe for concurrent use; the pipeline runs on its own
// goroutine while the UI reads state.
type Session struct {
	mu sync.Mutex

	phase   Phase
	company string

	lastCompany string
	lastResult  string
	lastErr     error
}

func New() *Session {
	return &Session{phase: PhaseIdle}
}

// Submit moves the session into the running phase for company.
// An empty company or a run already in flight is rejected and the
// session state is left untouched.
func (s *Session) Submit(company string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if company == "" {
		return ErrEmptySubmission{}
	}
	if s.phase == PhaseRunning {
		return ErrRunInProgress{Company: s.company}
	}

	s.phase = PhaseRunning
	s.company = company
	s.lastErr = nil
	return nil
}

// Complete records a successful run and moves to displaying.
func (s *Session) Complete(result string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseDisplaying
	s.lastCompany = s.company
	s.lastResult = result
	s.lastErr = nil
	s.company = ""
}

// Fail records a failed run and returns to idle. The previous
// successful result, if any, is preserved so the UI can keep
// showing it next to the error.
func (s *Session) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = PhaseIdle
	s.lastErr = err
	s.company = ""
}

// Clear drops the displayed result and returns to idle. It has no
// effect while a run is in flight.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase == PhaseRunning {
		return
	}
	s.phase = PhaseIdle
	s.lastCompany = ""
	s.lastResult = ""
	s.lastErr = nil
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Company returns the company of the run in flight, or empty.
func (s *Session) Company() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.company
}

// Result returns the last successful result and its company.
func (s *Session) Result() (company, result string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCompany, s.lastResult
}

// Err returns the error of the last failed run, cleared on the
// next submission.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}
