package game

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	gamecore "github.com/janakan-45/banana-brain-blitz/internal/game"
	"github.com/janakan-45/banana-brain-blitz/internal/logging"
	"github.com/janakan-45/banana-brain-blitz/internal/router"
)

// mockBackend records calls and serves canned responses.
type mockBackend struct {
	puzzle     *api.Puzzle
	fetchErr   error
	fetchCalls int

	verdict    *api.Verdict
	checkErr   error
	checkCalls int

	hint    *api.HintResult
	hintErr error

	player    *api.PlayerRecord
	playerErr error

	patches []api.PlayerPatch

	scoreErr error
	scores   []int

	daily *api.DailyChallenge

	logoutErr      error
	logoutCalls    int
	logoutAllCalls int
}

func (m *mockBackend) FetchPuzzle(_ context.Context, _ string) (*api.Puzzle, error) {
	m.fetchCalls++
	return m.puzzle, m.fetchErr
}

func (m *mockBackend) CheckAnswer(_ context.Context, _, _ string, _, _ int) (*api.Verdict, error) {
	m.checkCalls++
	return m.verdict, m.checkErr
}

func (m *mockBackend) UseHint(_ context.Context, _ string) (*api.HintResult, error) {
	return m.hint, m.hintErr
}

func (m *mockBackend) SubmitScore(_ context.Context, score int) error {
	m.scores = append(m.scores, score)
	return m.scoreErr
}

func (m *mockBackend) GetPlayer(_ context.Context) (*api.PlayerRecord, error) {
	return m.player, m.playerErr
}

func (m *mockBackend) UpdatePlayer(_ context.Context, patch api.PlayerPatch) error {
	m.patches = append(m.patches, patch)
	return nil
}

func (m *mockBackend) GetDailyChallenge(_ context.Context) (*api.DailyChallenge, error) {
	return m.daily, nil
}

func (m *mockBackend) ClaimDailyChallenge(_ context.Context) (*api.DailyChallenge, error) {
	return m.daily, nil
}

func (m *mockBackend) Logout(_ context.Context, _ string) error {
	m.logoutCalls++
	return m.logoutErr
}

func (m *mockBackend) LogoutAll(_ context.Context) error {
	m.logoutAllCalls++
	return m.logoutErr
}

type appendedRound struct {
	puzzleID string
	correct  bool
	points   int
}

type mockHistory struct {
	rounds []appendedRound
}

func (m *mockHistory) AppendRound(_ context.Context, puzzleID string, correct bool, points int) error {
	m.rounds = append(m.rounds, appendedRound{puzzleID, correct, points})
	return nil
}

// runBatch executes a command tree and feeds the resulting messages back
// into the screen. Only used for flows that contain no timers.
func runBatch(t *testing.T, s *GameScreen, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			runBatch(t, s, c)
		}
	case nil:
	default:
		s.Update(msg)
	}
}

func defaultBackend() *mockBackend {
	return &mockBackend{
		puzzle: &api.Puzzle{ImageURL: "https://cdn.example.com/p/a1.png"},
		player: &api.PlayerRecord{
			Coins:      20,
			PowerUps:   api.PowerUps{Hint: 2, Freeze: 1, SuperBanana: 1},
			Level:      1,
			Difficulty: "medium",
		},
	}
}

// newPlayingScreen builds a screen with the economy hydrated and the first
// round dealt.
func newPlayingScreen(t *testing.T, b *mockBackend) *GameScreen {
	t.Helper()
	s := New(b, &mockHistory{}, logging.Nop(), "nina", "device-1")

	s.Update(playerLoadedMsg{Player: b.player})

	cmd := s.fetchPuzzle()
	if cmd == nil {
		t.Fatal("fetchPuzzle returned no command")
	}
	s.Update(cmd())
	if s.round == nil {
		t.Fatal("no round after puzzle delivery")
	}
	return s
}

func TestOnlyOneFetchInFlight(t *testing.T) {
	b := defaultBackend()
	s := New(b, nil, logging.Nop(), "nina", "device-1")

	first := s.fetchPuzzle()
	if first == nil {
		t.Fatal("first fetch returned no command")
	}
	if second := s.fetchPuzzle(); second != nil {
		t.Error("second fetch started while one was in flight")
	}
}

func TestSkipResetsStreakAndDealsNewRound(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	s.eco.Streak = 3
	firstSeq := s.round.Seq

	_, cmd := s.skip()
	if s.eco.Streak != 0 {
		t.Errorf("Streak = %d after skip, want 0", s.eco.Streak)
	}
	if cmd == nil {
		t.Fatal("skip did not start a fetch")
	}
	s.Update(cmd())

	if s.round == nil || s.round.Seq != firstSeq+1 {
		t.Errorf("expected a new round with Seq %d", firstSeq+1)
	}
	if b.fetchCalls != 2 {
		t.Errorf("fetchCalls = %d, want 2", b.fetchCalls)
	}
}

func TestTimeoutFollowsSkipPathOnce(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	s.eco.Streak = 2
	s.round.TimeLeft = 1
	oldGen := s.gen

	_, cmd := s.Update(tickMsg{Gen: s.gen})
	if s.eco.Streak != 0 {
		t.Errorf("Streak = %d after timeout, want 0", s.eco.Streak)
	}
	if cmd == nil {
		t.Fatal("timeout did not start a fetch")
	}

	// A straggler tick from the expired round is dropped.
	fetches := b.fetchCalls
	s.Update(tickMsg{Gen: oldGen})
	if b.fetchCalls != fetches {
		t.Error("stale tick triggered another fetch")
	}

	s.Update(cmd())
	if s.round == nil {
		t.Fatal("no new round after timeout")
	}
	if b.fetchCalls != 2 {
		t.Errorf("fetchCalls = %d, want exactly 2", b.fetchCalls)
	}
}

func TestTimeoutDuringVerificationUnblocksControls(t *testing.T) {
	b := defaultBackend()
	b.verdict = &api.Verdict{Correct: true, Points: 100}
	s := newPlayingScreen(t, b)
	s.round.TimeLeft = 1

	s.input.Model.SetValue("9")
	_, check := s.submit()
	if check == nil {
		t.Fatal("submit returned no command")
	}
	oldGen := s.gen

	// The countdown expires before the verdict lands; the timeout deals
	// the next round.
	_, fetch := s.Update(tickMsg{Gen: s.gen})
	if fetch == nil {
		t.Fatal("timeout did not start a fetch")
	}

	// The late verdict is stale and must not be applied, but it has to
	// release the verification lock.
	s.Update(verdictMsg{Gen: oldGen, Verdict: b.verdict})
	if s.checking {
		t.Fatal("verification still marked in flight after its verdict arrived")
	}
	if s.eco.Score != 0 {
		t.Errorf("Score = %d, stale verdict was applied", s.eco.Score)
	}

	s.Update(fetch())
	s.input.Model.SetValue("5")
	if _, cmd := s.submit(); cmd == nil {
		t.Fatal("submit blocked on the fresh round")
	}
}

func TestWrongAnswerKeepsScore(t *testing.T) {
	b := defaultBackend()
	b.verdict = &api.Verdict{Correct: false, CorrectAnswer: "7"}
	s := newPlayingScreen(t, b)
	s.eco.Score = 100
	s.eco.Streak = 2

	s.input.Model.SetValue("9")
	_, cmd := s.submit()
	if cmd == nil {
		t.Fatal("submit returned no command")
	}
	s.Update(cmd())

	if s.outcome == nil || s.outcome.Correct {
		t.Fatal("expected an incorrect outcome")
	}
	if s.outcome.CorrectAnswer != "7" {
		t.Errorf("CorrectAnswer = %q, want 7", s.outcome.CorrectAnswer)
	}
	if s.eco.Streak != 0 {
		t.Errorf("Streak = %d, want 0", s.eco.Streak)
	}
	if s.eco.Score != 100 {
		t.Errorf("Score = %d, want unchanged 100", s.eco.Score)
	}

	// The presentation delay elapses: a fresh round is dealt.
	_, next := s.Update(outcomeDoneMsg{Gen: s.gen})
	if s.outcome != nil {
		t.Error("outcome still showing after delay")
	}
	runBatch(t, s, next)
	if b.fetchCalls != 2 {
		t.Errorf("fetchCalls = %d, want 2", b.fetchCalls)
	}
	if s.round == nil {
		t.Fatal("no new round after the outcome")
	}
}

func TestCorrectAnswerAwardsComboCoins(t *testing.T) {
	b := defaultBackend()
	b.verdict = &api.Verdict{Correct: true, Points: 100, Combo: 3, XP: 150}
	s := newPlayingScreen(t, b)
	s.eco.Score = 200
	s.eco.Streak = 2

	s.input.Model.SetValue("7")
	_, cmd := s.submit()
	s.Update(cmd())

	if s.eco.Score != 300 {
		t.Errorf("Score = %d, want 300", s.eco.Score)
	}
	if s.eco.Streak != 3 {
		t.Errorf("Streak = %d, want 3", s.eco.Streak)
	}
	if s.eco.Coins != 26 { // 20 + 5 + 3/2
		t.Errorf("Coins = %d, want 26", s.eco.Coins)
	}
	if s.outcome == nil || !s.outcome.Correct || s.outcome.Points != 100 {
		t.Errorf("outcome = %+v, want correct with 100 points", s.outcome)
	}
}

func TestVerificationFailureCountsAsMiss(t *testing.T) {
	b := defaultBackend()
	b.checkErr = errors.New("connection refused")
	s := newPlayingScreen(t, b)
	s.eco.Score = 50
	s.eco.Streak = 4

	s.input.Model.SetValue("7")
	_, cmd := s.submit()
	s.Update(cmd())

	if s.outcome == nil || !s.outcome.Failed {
		t.Fatal("expected a failed outcome")
	}
	if s.eco.Streak != 0 {
		t.Errorf("Streak = %d, want 0 after failed verification", s.eco.Streak)
	}
	if s.eco.Score != 50 {
		t.Errorf("Score = %d, want unchanged 50", s.eco.Score)
	}
	if s.checking {
		t.Error("still marked as checking")
	}
}

func TestStaleVerdictNeverApplied(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	staleGen := s.gen

	// The session ends while the verification is still in flight.
	s.Update(logoutDoneMsg{})

	s.Update(verdictMsg{Gen: staleGen, Verdict: &api.Verdict{Correct: true, Points: 100, Combo: 1}})
	if s.eco.Score != 0 {
		t.Errorf("Score = %d, stale verdict was applied", s.eco.Score)
	}
}

func TestFreezeDoesNotStack(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	base := s.round.TimeLeft

	_, cmd := s.useFreeze()
	if cmd == nil {
		t.Fatal("freeze returned no command")
	}
	if s.eco.PowerUps.Freeze != 0 {
		t.Errorf("Freeze count = %d, want 0", s.eco.PowerUps.Freeze)
	}

	s.Update(freezeAppliedMsg{Gen: s.gen})
	if !s.round.Frozen {
		t.Fatal("round not frozen")
	}
	want := base + gamecore.FreezeBonusSeconds
	if s.round.TimeLeft != want {
		t.Errorf("TimeLeft = %d, want %d", s.round.TimeLeft, want)
	}

	// A second freeze on the same round is rejected before the inventory.
	s.eco.PowerUps.Freeze = 1
	s.useFreeze()
	if s.eco.PowerUps.Freeze != 1 {
		t.Error("second freeze consumed a power-up")
	}
	s.Update(freezeAppliedMsg{Gen: s.gen})
	if s.round.TimeLeft != want {
		t.Errorf("TimeLeft = %d after double freeze, want %d", s.round.TimeLeft, want)
	}
}

func TestFreezeRapidDoublePressSpendsOnce(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	s.eco.PowerUps.Freeze = 2
	base := s.round.TimeLeft

	_, first := s.useFreeze()
	if first == nil {
		t.Fatal("freeze returned no command")
	}

	// A second press before the bonus lands is absorbed: no second unit
	// spent, no second patch.
	if _, second := s.useFreeze(); second != nil {
		t.Error("second press inside the pending window returned a command")
	}
	if s.eco.PowerUps.Freeze != 1 {
		t.Errorf("Freeze count = %d after rapid double press, want 1", s.eco.PowerUps.Freeze)
	}

	s.Update(freezeAppliedMsg{Gen: s.gen})
	if !s.round.Frozen {
		t.Fatal("round not frozen")
	}
	if want := base + gamecore.FreezeBonusSeconds; s.round.TimeLeft != want {
		t.Errorf("TimeLeft = %d, want %d", s.round.TimeLeft, want)
	}
}

func TestFrozenTimerHolds(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	s.useFreeze()
	s.Update(freezeAppliedMsg{Gen: s.gen})

	before := s.round.TimeLeft
	s.Update(tickMsg{Gen: s.gen})
	if s.round.TimeLeft != before {
		t.Errorf("TimeLeft = %d after tick while frozen, want %d", s.round.TimeLeft, before)
	}
}

func TestUnaffordableBuyNeverReachesBackend(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	s.eco.Coins = 3

	s.buy(2) // super banana, 25 coins

	if s.eco.Coins != 3 {
		t.Errorf("Coins = %d, want unchanged 3", s.eco.Coins)
	}
	if s.eco.PowerUps.SuperBanana != 1 {
		t.Errorf("SuperBanana = %d, want unchanged 1", s.eco.PowerUps.SuperBanana)
	}
	if len(b.patches) != 0 {
		t.Error("rejected purchase pushed a patch")
	}
	if s.notice == "" {
		t.Error("no notice shown for rejected purchase")
	}
}

func TestBuyPushesPatch(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	s.eco.Coins = 30

	_, cmd := s.buy(0) // hint, 10 coins
	if cmd == nil {
		t.Fatal("buy returned no command")
	}
	cmd()

	if s.eco.Coins != 20 || s.eco.PowerUps.Hint != 3 {
		t.Errorf("after buy: coins %d hints %d, want 20 and 3", s.eco.Coins, s.eco.PowerUps.Hint)
	}
	if len(b.patches) != 1 {
		t.Fatalf("patches = %d, want 1", len(b.patches))
	}
	if b.patches[0].Coins == nil || *b.patches[0].Coins != 20 {
		t.Error("patch missing the new coin balance")
	}
	if b.patches[0].PowerUps == nil || b.patches[0].PowerUps.Hint != 3 {
		t.Error("patch missing the new inventory")
	}
}

func TestSuperBananaArmsOnce(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)

	s.useSuperBanana()
	if !s.eco.DoublePointsArmed {
		t.Fatal("double points not armed")
	}
	if s.eco.PowerUps.SuperBanana != 0 {
		t.Errorf("SuperBanana = %d, want 0", s.eco.PowerUps.SuperBanana)
	}

	// Arming twice is rejected before the inventory.
	s.eco.PowerUps.SuperBanana = 1
	s.useSuperBanana()
	if s.eco.PowerUps.SuperBanana != 1 {
		t.Error("second arm consumed a power-up")
	}
}

func TestHintCountIsServerAuthoritative(t *testing.T) {
	b := defaultBackend()
	b.hint = &api.HintResult{Hint: "between 5 and 9", HintsRemaining: 0}
	s := newPlayingScreen(t, b)

	_, cmd := s.useHint()
	if cmd == nil {
		t.Fatal("hint returned no command")
	}
	s.Update(cmd())

	if s.hint != "between 5 and 9" {
		t.Errorf("hint = %q", s.hint)
	}
	if s.eco.PowerUps.Hint != 0 {
		t.Errorf("Hint count = %d, want server-reported 0", s.eco.PowerUps.Hint)
	}
	if s.round.HintsUsed != 1 {
		t.Errorf("HintsUsed = %d, want 1", s.round.HintsUsed)
	}
}

func TestEndGameSubmitsScoreAndCompletes(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	s.eco.Score = 123

	_, cmd := s.endGame()
	_, cmd = s.Update(cmd())

	if !s.done {
		t.Fatal("screen not done after accepted score")
	}
	if len(b.scores) != 1 || b.scores[0] != 123 {
		t.Errorf("submitted scores = %v, want [123]", b.scores)
	}

	got := cmd()
	complete, ok := got.(router.RoundSetCompleteMsg)
	if !ok {
		t.Fatalf("got %T, want RoundSetCompleteMsg", got)
	}
	if complete.Score != 123 {
		t.Errorf("completion score = %d, want 123", complete.Score)
	}
}

func TestScoreSubmitFailureKeepsPlaying(t *testing.T) {
	b := defaultBackend()
	b.scoreErr = errors.New("connection refused")
	s := newPlayingScreen(t, b)
	s.eco.Score = 123

	_, cmd := s.endGame()
	s.Update(cmd())

	if s.done {
		t.Error("screen tore down even though the score was not recorded")
	}
	if s.notice == "" {
		t.Error("no notice shown for the failed submission")
	}
}

func TestLogoutTearsDownDespiteRemoteFailure(t *testing.T) {
	b := defaultBackend()
	b.logoutErr = errors.New("connection refused")
	s := newPlayingScreen(t, b)

	_, cmd := s.logout(false)
	_, cmd = s.Update(cmd())

	if !s.done {
		t.Fatal("screen not torn down after failed remote logout")
	}
	if b.logoutCalls != 1 {
		t.Errorf("logoutCalls = %d, want 1", b.logoutCalls)
	}

	got := cmd()
	if _, ok := got.(router.LogoutRequestedMsg); !ok {
		t.Fatalf("got %T, want LogoutRequestedMsg", got)
	}
}

func TestUnauthorizedExpiresSession(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)

	_, cmd := s.Update(playerRefreshedMsg{Err: api.ErrUnauthorized})
	if !s.done {
		t.Fatal("screen not torn down on unauthorized")
	}
	got := cmd()
	if _, ok := got.(router.SessionExpiredMsg); !ok {
		t.Fatalf("got %T, want SessionExpiredMsg", got)
	}
}

func TestReconcileAfterRound(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	s.eco.Score = 400
	s.eco.Streak = 2

	s.Update(playerRefreshedMsg{Player: &api.PlayerRecord{
		Coins: 99, PowerUps: api.PowerUps{Hint: 5}, Level: 2,
	}})

	if s.eco.Coins != 99 || s.eco.PowerUps.Hint != 5 || s.eco.Level != 2 {
		t.Errorf("authoritative balances not adopted: %+v", s.eco)
	}
	if s.eco.Score != 400 || s.eco.Streak != 2 {
		t.Errorf("session score/streak changed: %d/%d", s.eco.Score, s.eco.Streak)
	}
}

func TestHistoryRecordedOnVerdict(t *testing.T) {
	b := defaultBackend()
	b.verdict = &api.Verdict{Correct: true, Points: 80, Combo: 1}
	hist := &mockHistory{}
	s := New(b, hist, logging.Nop(), "nina", "device-1")
	s.Update(playerLoadedMsg{Player: b.player})
	cmd := s.fetchPuzzle()
	s.Update(cmd())

	s.input.Model.SetValue("7")
	_, cmd = s.submit()
	s.Update(cmd())

	// The append command is part of the verdict batch; run it directly.
	appendCmd := s.appendHistory("a1.png", true, 80)
	if appendCmd == nil {
		t.Fatal("no append command with a history log attached")
	}
	appendCmd()

	if len(hist.rounds) != 1 {
		t.Fatalf("recorded rounds = %d, want 1", len(hist.rounds))
	}
	if hist.rounds[0].puzzleID != "a1.png" || !hist.rounds[0].correct || hist.rounds[0].points != 80 {
		t.Errorf("recorded %+v", hist.rounds[0])
	}
}

func TestDifficultyChangeAppliesNextRound(t *testing.T) {
	b := defaultBackend()
	s := newPlayingScreen(t, b)
	base := s.round.TimeLeft

	_, cmd := s.cycleDifficulty()
	if s.eco.Difficulty != gamecore.DifficultyHard {
		t.Errorf("Difficulty = %s, want hard", s.eco.Difficulty)
	}
	if s.round.TimeLeft != base {
		t.Error("in-flight round timer changed by difficulty switch")
	}
	cmd()
	if len(b.patches) != 1 || b.patches[0].Difficulty == nil || *b.patches[0].Difficulty != "hard" {
		t.Errorf("difficulty patch not pushed: %+v", b.patches)
	}

	// The next round uses the new duration.
	_, fetch := s.skip()
	s.Update(fetch())
	if s.round.TimeLeft != gamecore.RoundDuration(gamecore.DifficultyHard) {
		t.Errorf("new round TimeLeft = %d, want %d", s.round.TimeLeft,
			gamecore.RoundDuration(gamecore.DifficultyHard))
	}
}
