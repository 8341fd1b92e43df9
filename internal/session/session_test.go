package session_test

import (
	"errors"
	"testing"

	"github.com/alednik/leadscout/internal/session"
)

func TestSubmitEmptyCompany(t *testing.T) {
	s := session.New()

	err := s.Submit("")
	var emptyErr session.ErrEmptySubmission
	if !errors.As(err, &emptyErr) {
		t.Fatalf("expected ErrEmptySubmission, got %v", err)
	}
	if s.Phase() != session.PhaseIdle {
		t.Errorf("expected idle phase, got %v", s.Phase())
	}
}

func TestSubmitWhileRunning(t *testing.T) {
	s := session.New()

	if err := s.Submit("Acme"); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if s.Phase() != session.PhaseRunning {
		t.Fatalf("expected running phase, got %v", s.Phase())
	}

	err := s.Submit("Globex")
	var busyErr session.ErrRunInProgress
	if !errors.As(err, &busyErr) {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
	if busyErr.Company != "Acme" {
		t.Errorf("expected in-flight company 'Acme', got '%s'", busyErr.Company)
	}
	if s.Company() != "Acme" {
		t.Errorf("rejected submission must not replace the in-flight run")
	}
}

func TestCompleteMovesToDisplaying(t *testing.T) {
	s := session.New()
	_ = s.Submit("Acme")
	s.Complete("| table |")

	if s.Phase() != session.PhaseDisplaying {
		t.Errorf("expected displaying phase, got %v", s.Phase())
	}
	company, result := s.Result()
	if company != "Acme" || result != "| table |" {
		t.Errorf("unexpected result (%q, %q)", company, result)
	}

	// a new submission from displaying is allowed
	if err := s.Submit("Globex"); err != nil {
		t.Errorf("expected submission from displaying to succeed, got %v", err)
	}
}

func TestFailPreservesLastResult(t *testing.T) {
	s := session.New()
	_ = s.Submit("Acme")
	s.Complete("| table |")

	_ = s.Submit("Globex")
	runErr := errors.New("provider down")
	s.Fail(runErr)

	if s.Phase() != session.PhaseIdle {
		t.Errorf("expected idle phase after failure, got %v", s.Phase())
	}
	if !errors.Is(s.Err(), runErr) {
		t.Errorf("expected run error to be kept, got %v", s.Err())
	}
	company, result := s.Result()
	if company != "Acme" || result != "| table |" {
		t.Errorf("failure must preserve the previous result, got (%q, %q)", company, result)
	}
}

func TestClear(t *testing.T) {
	s := session.New()
	_ = s.Submit("Acme")
	s.Complete("| table |")

	s.Clear()
	if s.Phase() != session.PhaseIdle {
		t.Errorf("expected idle phase, got %v", s.Phase())
	}
	if _, result := s.Result(); result != "" {
		t.Errorf("expected cleared result, got %q", result)
	}
}

func TestClearWhileRunningIsNoop(t *testing.T) {
	s := session.New()
	_ = s.Submit("Acme")

	s.Clear()
	if s.Phase() != session.PhaseRunning {
		t.Errorf("clear must not interrupt a running search, got %v", s.Phase())
	}
}
