// Package profiling wraps runtime/pprof for the command-line tool.
package profiling

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"
	"sync"
)

// ErrActive is returned by Start when a session is already recording.
var ErrActive = errors.New("profiling session already active")

// ErrInactive is returned by Stop when nothing is recording.
var ErrInactive = errors.New("profiling session not active")

// Config selects the profiles to record. Empty paths disable a profile.
type Config struct {
	CPUProfilePath string
	MemProfilePath string
}

// Enabled reports whether any profile is requested.
func (c Config) Enabled() bool {
	return c.CPUProfilePath != "" || c.MemProfilePath != ""
}

// Session records a CPU profile between Start and Stop and writes a heap
// profile on Stop.
type Session struct {
	mu      sync.Mutex
	cfg     Config
	cpu     *os.File
	started bool
}

// NewSession returns an idle session for cfg.
func NewSession(cfg Config) *Session {
	return &Session{cfg: cfg}
}

// Start begins CPU profiling when a CPU path is configured.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrActive
	}
	if s.cfg.CPUProfilePath != "" {
		f, err := os.Create(s.cfg.CPUProfilePath)
		if err != nil {
			return fmt.Errorf("create cpu profile: %w", err)
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return fmt.Errorf("start cpu profile: %w", err)
		}
		s.cpu = f
	}
	s.started = true
	return nil
}

// Stop ends CPU profiling and writes the heap profile. Both steps run even
// if one fails.
func (s *Session) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return ErrInactive
	}
	s.started = false

	var errs []error
	if s.cpu != nil {
		pprof.StopCPUProfile()
		if err := s.cpu.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cpu profile: %w", err))
		}
		s.cpu = nil
	}
	if s.cfg.MemProfilePath != "" {
		if err := WriteHeapProfile(s.cfg.MemProfilePath); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Active reports whether the session is recording.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// WriteHeapProfile collects garbage and writes a heap profile to path.
func WriteHeapProfile(path string) error {
	runtime.GC()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create heap profile: %w", err)
	}
	if err := pprof.WriteHeapProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("write heap profile: %w", err)
	}
	return f.Close()
}
