package dialog

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Session is one participant's progress through a flow: the flow, the
// current state and the fields accepted so far. Ephemeral; a restart drops
// every in-flight dialog but never recorded data.
type Session struct {
	Flow      Flow
	State     State
	Fields    map[string]any
	CreatedAt time.Time
	Touched   time.Time
}

func (s *Session) Set(key string, v any) { s.Fields[key] = v }

func (s *Session) Str(key string) string {
	v, _ := s.Fields[key].(string)
	return v
}

func (s *Session) Int(key string) int64 {
	v, _ := s.Fields[key].(int64)
	return v
}

func (s *Session) Dec(key string) decimal.Decimal {
	v, ok := s.Fields[key].(decimal.Decimal)
	if !ok {
		return decimal.Zero
	}
	return v
}

// Store maps participant id to active session. A new Start overwrites any
// session the participant already has; there is no queueing or merging.
type Store struct {
	mu  sync.Mutex
	m   map[int64]*Session
	ttl time.Duration
	now func() time.Time
}

func NewStore(ttl time.Duration) *Store {
	return &Store{m: make(map[int64]*Session), ttl: ttl, now: time.Now}
}

func (st *Store) Start(participant int64, flow Flow, state State) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := st.now()
	s := &Session{
		Flow:      flow,
		State:     state,
		Fields:    make(map[string]any),
		CreatedAt: now,
		Touched:   now,
	}
	st.m[participant] = s
	return s
}

// Get returns the participant's live session, refreshing its deadline.
// Expired sessions are treated as absent.
func (st *Store) Get(participant int64) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	s, ok := st.m[participant]
	if !ok {
		return nil, false
	}
	now := st.now()
	if st.ttl > 0 && now.Sub(s.Touched) > st.ttl {
		delete(st.m, participant)
		return nil, false
	}
	s.Touched = now
	return s, true
}

func (st *Store) Clear(participant int64) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.m, participant)
}

// PurgeExpired evicts sessions idle longer than the TTL and reports how many
// were dropped.
func (st *Store) PurgeExpired() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.ttl <= 0 {
		return 0
	}
	now := st.now()
	n := 0
	for id, s := range st.m {
		if now.Sub(s.Touched) > st.ttl {
			delete(st.m, id)
			n++
		}
	}
	return n
}
