package game

import (
	"math/rand"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.MinPlayers = 2
	return cfg
}

func newTestSession(t *testing.T, cfg Config) *Session {
	t.Helper()
	return NewSession(1, 10, cfg, rand.New(rand.NewSource(42)))
}

func TestJoinAutoStartsAtMinPlayers(t *testing.T) {
	s := newTestSession(t, testConfig())

	card, cartela, err := s.Join(1)
	require.NoError(t, err)
	assert.Len(t, card, 25)
	assert.Equal(t, 1, cartela)
	assert.Equal(t, StateWaiting, s.State())
	assert.Empty(t, s.Snapshot().Calls)

	_, cartela, err = s.Join(2)
	require.NoError(t, err)
	assert.Equal(t, 2, cartela)

	snap := s.Snapshot()
	assert.Equal(t, StateActive, snap.State)
	assert.Len(t, snap.Calls, 1, "activation draws the first number")
	assert.Equal(t, 20.0, snap.Pool)
}

func TestJoinGuards(t *testing.T) {
	s := newTestSession(t, testConfig())

	_, _, err := s.Join(1)
	require.NoError(t, err)

	_, _, err = s.Join(1)
	requireKind(t, err, KindDuplicateParticipant)

	_, _, err = s.Join(2)
	require.NoError(t, err)

	// Session is active now; late joiners are refused.
	_, _, err = s.Join(3)
	requireKind(t, err, KindIllegalState)
}

func TestJoinCapacity(t *testing.T) {
	cfg := testConfig()
	cfg.MinPlayers = 10
	cfg.MaxPlayers = 2
	s := newTestSession(t, cfg)

	_, _, err := s.Join(1)
	require.NoError(t, err)
	_, _, err = s.Join(2)
	require.NoError(t, err)

	_, _, err = s.Join(3)
	requireKind(t, err, KindCapacityExceeded)
	assert.Equal(t, StateWaiting, s.State())
}

func TestJoinCartela(t *testing.T) {
	cfg := testConfig()
	cfg.MinPlayers = 10
	s := newTestSession(t, cfg)

	_, err := s.JoinCartela(1, 7)
	require.NoError(t, err)

	_, err = s.JoinCartela(2, 7)
	requireKind(t, err, KindCartelaTaken)

	_, err = s.JoinCartela(3, 0)
	requireKind(t, err, KindCartelaTaken)
	_, err = s.JoinCartela(3, 101)
	requireKind(t, err, KindCartelaTaken)

	// Auto-assign skips the taken slot.
	_, cartela, err := s.Join(4)
	require.NoError(t, err)
	assert.Equal(t, 1, cartela)
	_, cartela, err = s.Join(5)
	require.NoError(t, err)
	assert.Equal(t, 2, cartela)
}

func TestDrawOnlyWhileActive(t *testing.T) {
	s := newTestSession(t, testConfig())

	_, _, err := s.Draw()
	requireKind(t, err, KindIllegalState)

	_, _, _ = s.Join(1)
	_, _, _ = s.Join(2)

	call, ok, err := s.Draw()
	require.NoError(t, err)
	require.True(t, ok)
	assert.GreaterOrEqual(t, call.Number, 1)
	assert.LessOrEqual(t, call.Number, 75)
	assert.NotEmpty(t, call.Label)
}

// activeSession builds a running session with two hand-placed participants
// so tests can control cards and the call history directly.
func activeSession(cards ...Card) *Session {
	cfg := testConfig()
	s := NewSession(1, 10, cfg, rand.New(rand.NewSource(42)))
	s.state = StateActive
	for i, card := range cards {
		userID := int64(i + 1)
		s.participants[userID] = &Participant{
			UserID:  userID,
			Cartela: i + 1,
			Card:    card,
			marked:  make(map[int]bool),
		}
		s.cartelas[i+1] = userID
		s.ledger.AddEntry(s.entryPrice)
	}
	return s
}

func (s *Session) forceCall(ns ...int) {
	for _, n := range ns {
		if !s.draw.called[n] {
			s.draw.order = append(s.draw.order, n)
			s.draw.called[n] = true
			s.calls = append(s.calls, Call{Number: n, Label: s.cfg.CardVariant.Label(n)})
		}
	}
}

func TestMarkRequiresCalledNumber(t *testing.T) {
	card := testCard()
	card[22] = 42 // row 4, column 2 stays inside the N band
	s := activeSession(card, testCard())

	err := s.Mark(1, 42)
	requireKind(t, err, KindUnmarkedOrUncalled)

	s.forceCall(42)
	require.NoError(t, s.Mark(1, 42))

	// Re-marking is a no-op, not an error.
	require.NoError(t, s.Mark(1, 42))
	snap := s.Snapshot()
	assert.Equal(t, []int{42}, snap.Participants[0].Marked)
}

func TestMarkRejectsOffCardNumber(t *testing.T) {
	s := activeSession(testCard(), testCard())
	s.forceCall(74)

	// 74 was called but is not on the card.
	err := s.Mark(1, 74)
	requireKind(t, err, KindUnmarkedOrUncalled)
}

func TestMarkUnknownParticipant(t *testing.T) {
	s := activeSession(testCard())
	s.forceCall(3)
	err := s.Mark(99, 3)
	requireKind(t, err, KindUnknownParticipant)
}

func TestCheckWinnerRowCompletesSession(t *testing.T) {
	s := activeSession(testCard(), testCard())
	row0 := []int{3, 17, 33, 48, 62}
	s.forceCall(row0...)
	for _, n := range row0 {
		require.NoError(t, s.Mark(1, n))
	}

	res, err := s.CheckWinner(1)
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, PatternRow0, res.Pattern)
	assert.Equal(t, 16.0, res.Prize, "prize is pool x 0.8")

	snap := s.Snapshot()
	assert.Equal(t, StateFinished, snap.State)
	require.NotNil(t, snap.WinnerID)
	assert.Equal(t, int64(1), *snap.WinnerID)
	assert.Equal(t, "row 0", snap.WinPattern)
	require.NotNil(t, snap.FinishedAt)

	// The session is terminal: no more checks, marks or draws.
	_, err = s.CheckWinner(2)
	requireKind(t, err, KindIllegalState)
	err = s.Mark(2, 3)
	requireKind(t, err, KindIllegalState)
	_, _, err = s.Draw()
	requireKind(t, err, KindIllegalState)
	_, _, err = s.Join(3)
	requireKind(t, err, KindIllegalState)
}

func TestCheckWinnerNotYet(t *testing.T) {
	s := activeSession(testCard(), testCard())
	s.forceCall(3, 17, 33)
	require.NoError(t, s.Mark(1, 3))
	require.NoError(t, s.Mark(1, 17))

	res, err := s.CheckWinner(1)
	require.NoError(t, err)
	assert.False(t, res.Won)
	assert.Equal(t, StateActive, s.State())
	assert.False(t, s.ledger.Settled())

	// Repeated checks with unchanged marks stay stable and mutate nothing.
	res2, err := s.CheckWinner(1)
	require.NoError(t, err)
	assert.Equal(t, res, res2)
	assert.Equal(t, 3, s.draw.Count())
}

func TestCheckWinnerUnknownParticipant(t *testing.T) {
	s := activeSession(testCard())
	_, err := s.CheckWinner(99)
	requireKind(t, err, KindUnknownParticipant)
}

func TestDrawExhaustionFinishesWithoutWinner(t *testing.T) {
	cfg := testConfig()
	cfg.MinPlayers = 1
	s := NewSession(1, 10, cfg, rand.New(rand.NewSource(9)))

	_, _, err := s.Join(1)
	require.NoError(t, err)
	require.Equal(t, StateActive, s.State())
	require.Len(t, s.Snapshot().Calls, 1)

	for i := 1; i < 75; i++ {
		_, ok, err := s.Draw()
		require.NoError(t, err)
		require.True(t, ok, "draw %d", i)
	}

	// All 75 numbers are out; the 76th draw signals exhaustion.
	_, ok, err := s.Draw()
	require.NoError(t, err)
	assert.False(t, ok)

	snap := s.Snapshot()
	assert.Equal(t, StateFinished, snap.State)
	assert.Nil(t, snap.WinnerID)
	assert.Zero(t, snap.Prize)
	assert.False(t, s.ledger.Settled(), "exhaustion settles nothing")
	assert.Len(t, snap.Calls, 75)

	_, _, err = s.Draw()
	requireKind(t, err, KindIllegalState)
}

func TestConcurrentJoinsRespectCartelaSlots(t *testing.T) {
	cfg := testConfig()
	cfg.MinPlayers = 1000
	cfg.MaxPlayers = 1000
	cfg.CartelaSlots = 10
	s := newTestSession(t, cfg)

	const callers = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	cartelas := make(map[int]int64)
	var rejected int

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			_, cartela, err := s.Join(userID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				kind, ok := KindOf(err)
				require.True(t, ok)
				require.Equal(t, KindCapacityExceeded, kind)
				rejected++
				return
			}
			_, dup := cartelas[cartela]
			require.False(t, dup, "cartela %d assigned twice", cartela)
			cartelas[cartela] = userID
		}(int64(i + 1))
	}
	wg.Wait()

	assert.Len(t, cartelas, 10)
	assert.Equal(t, callers-10, rejected)
	assert.Equal(t, 10, s.Players())
	assert.Equal(t, 100.0, s.Snapshot().Pool)
}

func TestConcurrentMarksAndChecks(t *testing.T) {
	s := activeSession(testCard(), testCard())
	row0 := []int{3, 17, 33, 48, 62}
	s.forceCall(row0...)

	var wg sync.WaitGroup
	wins := make([]WinResult, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(userID int64) {
			defer wg.Done()
			for _, n := range row0 {
				_ = s.Mark(userID, n)
			}
			res, err := s.CheckWinner(userID)
			if err == nil {
				wins[userID-1] = res
			}
		}(int64(i + 1))
	}
	wg.Wait()

	// Exactly one of the two simultaneous claimants settles the prize.
	won := 0
	for _, res := range wins {
		if res.Won {
			won++
			assert.Equal(t, 16.0, res.Prize)
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, StateFinished, s.State())
}

func requireKind(t *testing.T, err error, want Kind) {
	t.Helper()
	require.Error(t, err)
	kind, ok := KindOf(err)
	require.True(t, ok, "error %v carries no kind", err)
	require.Equal(t, want, kind)
}
