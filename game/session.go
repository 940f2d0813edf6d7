package game

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// State is a session's lifecycle phase. Transitions only ever move forward:
// waiting -> active -> finished.
type State string

const (
	StateWaiting  State = "waiting"
	StateActive   State = "active"
	StateFinished State = "finished"
)

// Config carries the game rules a registry applies to every session it
// creates.
type Config struct {
	EntryPrices  []int
	MinPlayers   int
	MaxPlayers   int
	CartelaSlots int
	WinnerShare  float64
	CardVariant  Variant
	WinVariant   PatternVariant
}

// DefaultConfig mirrors the production rules: birr stakes of 10/20/50/100,
// two players to start, 100 cartela slots, 80% of the pot to the winner.
func DefaultConfig() Config {
	return Config{
		EntryPrices:  []int{10, 20, 50, 100},
		MinPlayers:   2,
		MaxPlayers:   100,
		CartelaSlots: 100,
		WinnerShare:  0.8,
		CardVariant:  Banded75,
		WinVariant:   Lines,
	}
}

// Participant is one player's stake in a session: a cartela slot, an
// immutable card and the set of values they have marked.
type Participant struct {
	UserID  int64
	Cartela int
	Card    Card
	marked  map[int]bool
}

// Call is one drawn number together with its display label.
type Call struct {
	Number int    `json:"number"`
	Label  string `json:"label"`
}

// WinResult reports the outcome of a winner check.
type WinResult struct {
	Won     bool    `json:"won"`
	Pattern Pattern `json:"-"`
	Prize   float64 `json:"prize"`
}

// Session is one bingo game: a draw sequencer, a participant registry and a
// prize ledger behind a single mutex. All mutating operations on a session
// are mutually exclusive; sessions never block each other.
type Session struct {
	mu sync.Mutex

	id         uint64
	cfg        Config
	entryPrice int
	state      State

	participants map[int64]*Participant
	cartelas     map[int]int64
	draw         *DrawState
	ledger       *Ledger
	rng          *rand.Rand

	calls      []Call
	winnerID   *int64
	winPattern Pattern
	prize      float64
	createdAt  time.Time
	finishedAt time.Time
}

// NewSession creates a session in the waiting state. The random source
// drives both card generation and draw order; seed it for deterministic
// tests.
func NewSession(id uint64, entryPrice int, cfg Config, rng *rand.Rand) *Session {
	return &Session{
		id:           id,
		cfg:          cfg,
		entryPrice:   entryPrice,
		state:        StateWaiting,
		participants: make(map[int64]*Participant),
		cartelas:     make(map[int]int64),
		draw:         NewDrawState(cfg.CardVariant),
		ledger:       NewLedger(cfg.WinnerShare),
		rng:          rng,
		createdAt:    time.Now(),
	}
}

// ID returns the registry-assigned session identifier.
func (s *Session) ID() uint64 { return s.id }

// EntryPrice returns the fee charged per join.
func (s *Session) EntryPrice() int { return s.entryPrice }

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Join adds a participant on the lowest free cartela slot and generates
// their card. Reaching the minimum player count activates the session and
// performs the first draw immediately.
func (s *Session) Join(userID int64) (Card, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for slot := 1; slot <= s.cfg.CartelaSlots; slot++ {
		if _, taken := s.cartelas[slot]; !taken {
			card, err := s.join(userID, slot)
			return card, slot, err
		}
	}
	return nil, 0, &Error{Kind: KindCapacityExceeded, Message: "no cartela slots left"}
}

// JoinCartela adds a participant on a specific cartela slot.
func (s *Session) JoinCartela(userID int64, cartela int) (Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if cartela < 1 || cartela > s.cfg.CartelaSlots {
		return nil, &Error{Kind: KindCartelaTaken, Message: fmt.Sprintf("cartela %d outside 1-%d", cartela, s.cfg.CartelaSlots)}
	}
	if owner, taken := s.cartelas[cartela]; taken && owner != userID {
		return nil, &Error{Kind: KindCartelaTaken, Message: fmt.Sprintf("cartela %d already taken", cartela)}
	}
	return s.join(userID, cartela)
}

func (s *Session) join(userID int64, cartela int) (Card, error) {
	if s.state != StateWaiting {
		return nil, illegalState("joins are only allowed while waiting")
	}
	if _, ok := s.participants[userID]; ok {
		return nil, &Error{Kind: KindDuplicateParticipant, Message: fmt.Sprintf("user %d already joined", userID)}
	}
	if len(s.participants) >= s.cfg.MaxPlayers {
		return nil, &Error{Kind: KindCapacityExceeded, Message: "session is full"}
	}

	card := GenerateCard(s.cfg.CardVariant, s.rng)
	s.participants[userID] = &Participant{
		UserID:  userID,
		Cartela: cartela,
		Card:    card,
		marked:  make(map[int]bool),
	}
	s.cartelas[cartela] = userID
	s.ledger.AddEntry(s.entryPrice)

	if len(s.participants) >= s.cfg.MinPlayers {
		s.state = StateActive
		s.drawLocked()
	}
	return card, nil
}

// Draw calls the next number. The second return is false when the range is
// exhausted; the session is then finished with no winner and no settlement.
func (s *Session) Draw() (Call, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return Call{}, false, illegalState("draws are only allowed while active")
	}
	call, ok := s.drawLocked()
	return call, ok, nil
}

func (s *Session) drawLocked() (Call, bool) {
	n, ok := s.draw.Next(s.rng)
	if !ok {
		s.finishLocked(nil)
		return Call{}, false
	}
	call := Call{Number: n, Label: s.cfg.CardVariant.Label(n)}
	s.calls = append(s.calls, call)
	return call, true
}

// Mark records a called number on the participant's card. Re-marking an
// already marked value is a no-op.
func (s *Session) Mark(userID int64, number int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return illegalState("marks are only allowed while active")
	}
	p, ok := s.participants[userID]
	if !ok {
		return &Error{Kind: KindUnknownParticipant, Message: fmt.Sprintf("user %d not in session", userID)}
	}
	if !p.Card.Contains(number) || !s.draw.Called(number) {
		return &Error{Kind: KindUnmarkedOrUncalled, Message: fmt.Sprintf("number %d not on card or not yet called", number)}
	}
	p.marked[number] = true
	return nil
}

// CheckWinner runs pattern detection against the participant's current
// marks. On a win the session finishes, the winner is recorded and the
// prize is settled exactly once.
func (s *Session) CheckWinner(userID int64) (WinResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive {
		return WinResult{}, illegalState("winner checks are only allowed while active")
	}
	p, ok := s.participants[userID]
	if !ok {
		return WinResult{}, &Error{Kind: KindUnknownParticipant, Message: fmt.Sprintf("user %d not in session", userID)}
	}

	won, pattern := CheckWin(p.Card, p.marked, s.cfg.WinVariant)
	if !won {
		return WinResult{}, nil
	}

	prize, err := s.ledger.Settle()
	if err != nil {
		return WinResult{}, err
	}
	s.prize = prize
	s.winPattern = pattern
	s.finishLocked(&userID)
	return WinResult{Won: true, Pattern: pattern, Prize: prize}, nil
}

func (s *Session) finishLocked(winnerID *int64) {
	s.state = StateFinished
	s.winnerID = winnerID
	s.finishedAt = time.Now()
}

// Players returns the current participant count.
func (s *Session) Players() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.participants)
}

func (s *Session) listing() (State, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, len(s.participants)
}

// ParticipantSnapshot is the externally visible view of one player.
type ParticipantSnapshot struct {
	UserID  int64 `json:"user_id"`
	Cartela int   `json:"cartela"`
	Card    Card  `json:"card"`
	Marked  []int `json:"marked"`
}

// Snapshot is a consistent copy of the session's user-visible state.
type Snapshot struct {
	ID           uint64                `json:"id"`
	EntryPrice   int                   `json:"entry_price"`
	State        State                 `json:"state"`
	Pool         float64               `json:"pool"`
	Prize        float64               `json:"prize,omitempty"`
	WinnerID     *int64                `json:"winner_id,omitempty"`
	WinPattern   string                `json:"win_pattern,omitempty"`
	Calls        []Call                `json:"calls"`
	Participants []ParticipantSnapshot `json:"participants"`
	CreatedAt    time.Time             `json:"created_at"`
	FinishedAt   *time.Time            `json:"finished_at,omitempty"`
}

// Snapshot copies the session state under the lock so readers never observe
// a half-applied mutation.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		ID:         s.id,
		EntryPrice: s.entryPrice,
		State:      s.state,
		Pool:       s.ledger.Pool(),
		Prize:      s.prize,
		WinnerID:   s.winnerID,
		Calls:      append([]Call(nil), s.calls...),
		CreatedAt:  s.createdAt,
	}
	if s.winPattern != PatternNone {
		snap.WinPattern = s.winPattern.String()
	}
	if s.state == StateFinished {
		t := s.finishedAt
		snap.FinishedAt = &t
	}
	snap.Participants = make([]ParticipantSnapshot, 0, len(s.participants))
	for _, p := range s.participants {
		marked := make([]int, 0, len(p.marked))
		for n := range p.marked {
			marked = append(marked, n)
		}
		sort.Ints(marked)
		snap.Participants = append(snap.Participants, ParticipantSnapshot{
			UserID:  p.UserID,
			Cartela: p.Cartela,
			Card:    append(Card(nil), p.Card...),
			Marked:  marked,
		})
	}
	sort.Slice(snap.Participants, func(i, j int) bool {
		return snap.Participants[i].Cartela < snap.Participants[j].Cartela
	})
	return snap
}
