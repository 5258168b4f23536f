package prompts

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Store caches loaded profiles and can watch the prompt directory so edited
// files are picked up without a restart. The cache is replaced atomically
// under the mutex; callers always see a complete profile.
type Store struct {
	dir      string
	mu       sync.RWMutex
	profiles map[string]Profile

	watcher  *fsnotify.Watcher
	done     chan struct{}
	stopOnce sync.Once

	debounceMu     sync.Mutex
	debounceTimers map[string]*time.Timer
}

// NewStore creates a profile store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{
		dir:            dir,
		profiles:       make(map[string]Profile),
		done:           make(chan struct{}),
		debounceTimers: make(map[string]*time.Timer),
	}
}

// Get returns the named profile, loading and caching it on first use.
func (s *Store) Get(profile string, required []string) (Profile, error) {
	s.mu.RLock()
	cached, ok := s.profiles[profile]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	loaded, err := Load(s.dir, profile, required)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.profiles[profile] = loaded
	s.mu.Unlock()
	return loaded, nil
}

// Watch starts monitoring the prompt directory; a changed or removed YAML
// file drops the matching cached profile so the next Get reloads it.
func (s *Store) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("failed to watch prompt directory: %w", err)
	}
	s.watcher = watcher

	go s.eventLoop()

	log.Info().Str("dir", s.dir).Msg("Prompt watcher started")
	return nil
}

// Stop stops the watcher. Safe to call when Watch was never started.
func (s *Store) Stop() error {
	var err error
	s.stopOnce.Do(func() {
		close(s.done)

		s.debounceMu.Lock()
		for _, timer := range s.debounceTimers {
			timer.Stop()
		}
		clear(s.debounceTimers)
		s.debounceMu.Unlock()

		if s.watcher != nil {
			err = s.watcher.Close()
		}
	})
	return err
}

func (s *Store) eventLoop() {
	for {
		select {
		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handleEvent(event)
		case werr, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			log.Warn().Err(werr).Msg("Prompt watcher error")
		case <-s.done:
			return
		}
	}
}

// handleEvent debounces bursts of writes to the same file before dropping
// the cached profile.
func (s *Store) handleEvent(event fsnotify.Event) {
	if filepath.Ext(event.Name) != ".yaml" {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	s.debounceMu.Lock()
	defer s.debounceMu.Unlock()

	if timer, ok := s.debounceTimers[event.Name]; ok {
		timer.Stop()
	}
	s.debounceTimers[event.Name] = time.AfterFunc(100*time.Millisecond, func() {
		s.invalidate(event.Name)
	})
}

func (s *Store) invalidate(path string) {
	rel, err := filepath.Rel(s.dir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	profile := strings.TrimSuffix(filepath.ToSlash(rel), ".yaml")

	s.mu.Lock()
	_, cached := s.profiles[profile]
	delete(s.profiles, profile)
	s.mu.Unlock()

	if cached {
		log.Info().Str("profile", profile).Msg("Prompt profile invalidated after file change")
	}
}
