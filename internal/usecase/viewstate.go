package usecase

import (
	"sync"

	"github.com/soccerlens/scout/internal/domain/player"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusLoaded  Status = "loaded"
	StatusError   Status = "error"
)

// Snapshot is an immutable copy of the result state. Err is only set while
// Status is StatusError and carries the most recent failure; Players and
// TotalCount always hold the last successfully loaded page so the screen never
// blanks out on a transient failure.
type Snapshot struct {
	Status     Status
	Players    []player.Player
	TotalCount int
	Err        error
}

func (s Snapshot) HasData() bool {
	return len(s.Players) > 0
}

// resultState is the single holder behind the search flow. Transitions only
// move forward within a cycle: Loading, then exactly one of Loaded or Error.
type resultState struct {
	mu   sync.Mutex
	snap Snapshot
}

func newResultState() *resultState {
	return &resultState{snap: Snapshot{Status: StatusIdle}}
}

func (s *resultState) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.snap
	out.Players = append([]player.Player(nil), s.snap.Players...)
	return out
}

func (s *resultState) toLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Status = StatusLoading
	s.snap.Err = nil
}

func (s *resultState) toLoaded(items []player.Player, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{
		Status:     StatusLoaded,
		Players:    append([]player.Player(nil), items...),
		TotalCount: total,
	}
}

// toError keeps the previously loaded data in place; the error is a transient
// notification layered on top of it.
func (s *resultState) toError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Status = StatusError
	s.snap.Err = err
}

func (s *resultState) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{Status: StatusIdle}
}
