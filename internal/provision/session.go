package provision

import (
	"sync"

	"github.com/google/uuid"

	"github.com/mrruby/stonfi-liquidity-app/internal/catalog"
	"github.com/mrruby/stonfi-liquidity-app/internal/stonapi"
)

// State tags where a session is in the simulation protocol.
type State string

const (
	StateIdle               State = "idle"
	StateSimulatingInitial  State = "simulating_initial"
	StateSimulatingBalanced State = "simulating_balanced"
	StateReady              State = "ready"
	StateError              State = "error"
)

// Session is the one mutable piece of the provisioning flow: selected
// assets, entered amounts, the in-flight or finished simulation, and
// the last error. It lives in memory only and dies with the process.
//
// All mutation goes through the mutex; the generation counter ties
// each simulation run to the inputs it started from, so a superseded
// run can never overwrite a newer one's state.
type Session struct {
	mu sync.Mutex

	ID      string
	AssetA  *catalog.Asset
	AssetB  *catalog.Asset
	AmountA string
	AmountB string

	State     State
	Result    *stonapi.SimulateResponse
	LastError string

	generation uint64
}

func NewSession() *Session {
	return &Session{
		ID:    uuid.NewString(),
		State: StateIdle,
	}
}

// SelectAssets replaces the pair under provision; a nil side keeps
// its current selection. Any selection change invalidates the current
// simulation run and its result.
func (s *Session) SelectAssets(a, b *catalog.Asset) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if a != nil {
		s.AssetA = a
	}
	if b != nil {
		s.AssetB = b
	}
	s.resetRunLocked()
}

// EnterAmounts replaces the human-entered decimal amounts and
// invalidates the simulation run the old amounts produced.
func (s *Session) EnterAmounts(amountA, amountB string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.AmountA = amountA
	s.AmountB = amountB
	s.resetRunLocked()
}

// resetRunLocked returns the session to Idle and supersedes any
// in-flight run; callers hold the mutex.
func (s *Session) resetRunLocked() {
	s.generation++
	s.State = StateIdle
	s.Result = nil
	s.LastError = ""
}

// View is a consistent read-only copy for serialization.
type View struct {
	ID        string                    `json:"id"`
	AssetA    *catalog.Asset            `json:"asset_a,omitempty"`
	AssetB    *catalog.Asset            `json:"asset_b,omitempty"`
	AmountA   string                    `json:"amount_a"`
	AmountB   string                    `json:"amount_b"`
	State     State                     `json:"state"`
	Result    *stonapi.SimulateResponse `json:"result,omitempty"`
	LastError string                    `json:"last_error,omitempty"`
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		ID:        s.ID,
		AssetA:    s.AssetA,
		AssetB:    s.AssetB,
		AmountA:   s.AmountA,
		AmountB:   s.AmountB,
		State:     s.State,
		Result:    s.Result,
		LastError: s.LastError,
	}
}

// Store holds live sessions for the HTTP surface.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

func (st *Store) Create() *Session {
	s := NewSession()
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
	return s
}

func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.sessions[id]
	return s, ok
}
