package game

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	gamecore "github.com/janakan-45/banana-brain-blitz/internal/game"
	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/screen"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/components"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/layout"
)

const (
	correctDelay   = 2 * time.Second
	incorrectDelay = 3 * time.Second
	freezeDelay    = 200 * time.Millisecond
	noticeDelay    = 4 * time.Second
)

// Backend is the slice of the API client the game screen uses.
type Backend interface {
	FetchPuzzle(ctx context.Context, difficulty string) (*api.Puzzle, error)
	CheckAnswer(ctx context.Context, answer, puzzleURL string, elapsedSeconds, hintsUsed int) (*api.Verdict, error)
	UseHint(ctx context.Context, puzzleURL string) (*api.HintResult, error)
	SubmitScore(ctx context.Context, score int) error
	GetPlayer(ctx context.Context) (*api.PlayerRecord, error)
	UpdatePlayer(ctx context.Context, patch api.PlayerPatch) error
	GetDailyChallenge(ctx context.Context) (*api.DailyChallenge, error)
	ClaimDailyChallenge(ctx context.Context) (*api.DailyChallenge, error)
	Logout(ctx context.Context, deviceID string) error
	LogoutAll(ctx context.Context) error
}

// HistoryLog records resolved rounds locally.
type HistoryLog interface {
	AppendRound(ctx context.Context, puzzleID string, correct bool, points int) error
}

// outcome holds the data for the celebration/failure presentation.
type outcome struct {
	Correct       bool
	Points        int
	CorrectAnswer string
	PerfectSolve  bool
	LeveledUp     bool
	Failed        bool // verification itself failed
}

// GameScreen runs the repeating puzzle round loop and maintains the local
// economy mirror.
type GameScreen struct {
	backend  Backend
	history  HistoryLog
	log      zerolog.Logger
	username string
	deviceID string

	eco       gamecore.Economy
	ecoLoaded bool
	round     *gamecore.Round
	daily     *api.DailyChallenge
	hint      string

	input         components.TextInput
	loading       bool // puzzle fetch in flight
	checking      bool // answer verification in flight
	freezePending bool // freeze spent, bonus not yet applied

	showShop       bool
	shopSelected   int
	showEndConfirm bool
	outcome        *outcome

	notice   string
	noticeID int

	// gen invalidates in-flight async results whenever the active round is
	// abandoned (new fetch, resolution, navigation).
	gen  int
	done bool
}

var _ screen.Screen = (*GameScreen)(nil)
var _ screen.KeyHintProvider = (*GameScreen)(nil)

// New creates the game screen for an authenticated player.
func New(backend Backend, history HistoryLog, log zerolog.Logger, username, deviceID string) *GameScreen {
	return &GameScreen{
		backend:  backend,
		history:  history,
		log:      log,
		username: username,
		deviceID: deviceID,
		eco:      gamecore.Economy{Difficulty: gamecore.DifficultyMedium},
		input:    components.NewTextInput("Type your answer...", true, 12),
	}
}

func (s *GameScreen) Init() tea.Cmd {
	return tea.Batch(
		s.loadPlayer(),
		s.loadDaily(),
		s.fetchPuzzle(),
		s.input.Init(),
	)
}

func (s *GameScreen) Title() string {
	return "Round Set"
}

func (s *GameScreen) KeyHints() []layout.KeyHint {
	if s.showEndConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "End game"},
			{Key: "N", Description: "Keep playing"},
		}
	}
	if s.showShop {
		return []layout.KeyHint{
			{Key: "1-3", Description: "Buy"},
			{Key: "Esc", Description: "Close shop"},
		}
	}
	if s.outcome != nil {
		return []layout.KeyHint{
			{Key: "any key", Description: "Next puzzle"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "S", Description: "Skip"},
		{Key: "H/F/B", Description: "Power-ups"},
		{Key: "P", Description: "Shop"},
		{Key: "Esc", Description: "End game"},
	}
}

func (s *GameScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case playerLoadedMsg:
		return s.handlePlayerLoaded(msg)
	case playerRefreshedMsg:
		return s.handlePlayerRefreshed(msg)
	case dailyLoadedMsg:
		if msg.Err == nil {
			s.daily = msg.Daily
		}
		return s, nil
	case puzzleReadyMsg:
		return s.handlePuzzleReady(msg)
	case tickMsg:
		return s.handleTick(msg)
	case verdictMsg:
		return s.handleVerdict(msg)
	case hintResultMsg:
		return s.handleHintResult(msg)
	case freezeAppliedMsg:
		return s.handleFreezeApplied(msg)
	case outcomeDoneMsg:
		return s.handleOutcomeDone(msg)
	case syncDoneMsg:
		if msg.Err != nil {
			// Optimistic value stays; only surface the sync failure.
			s.log.Warn().Err(msg.Err).Msg("player sync failed")
			return s, s.setNotice("Could not sync with server — will retry on next refresh")
		}
		return s, nil
	case scoreSubmittedMsg:
		return s.handleScoreSubmitted(msg)
	case logoutDoneMsg:
		return s.handleLogoutDone(msg)
	case noticeExpiredMsg:
		if msg.ID == s.noticeID {
			s.notice = ""
		}
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.canType() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

// canType reports whether keystrokes should reach the answer input.
func (s *GameScreen) canType() bool {
	return s.round != nil && !s.loading && !s.checking &&
		s.outcome == nil && !s.showShop && !s.showEndConfirm && !s.done
}

// --- startup fetches ---

func (s *GameScreen) loadPlayer() tea.Cmd {
	return func() tea.Msg {
		p, err := s.backend.GetPlayer(context.Background())
		return playerLoadedMsg{Player: p, Err: err}
	}
}

func (s *GameScreen) loadDaily() tea.Cmd {
	return func() tea.Msg {
		d, err := s.backend.GetDailyChallenge(context.Background())
		return dailyLoadedMsg{Daily: d, Err: err}
	}
}

func (s *GameScreen) handlePlayerLoaded(msg playerLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return s, s.expireSession()
		}
		s.log.Error().Err(msg.Err).Msg("load player failed")
		return s, s.setNotice("Could not load your profile")
	}
	score, streak := s.eco.Score, s.eco.Streak
	armed := s.eco.DoublePointsArmed
	s.eco = gamecore.FromPlayer(msg.Player)
	s.eco.Score, s.eco.Streak = score, streak
	s.eco.DoublePointsArmed = armed
	s.ecoLoaded = true
	return s, nil
}

func (s *GameScreen) handlePlayerRefreshed(msg playerRefreshedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return s, s.expireSession()
		}
		// Keep the optimistic mirror; the next refresh reconciles.
		s.log.Warn().Err(msg.Err).Msg("player refresh failed")
		return s, nil
	}
	s.eco.Reconcile(msg.Player)
	return s, nil
}

// --- puzzle lifecycle ---

// fetchPuzzle acquires the next puzzle. Only one fetch is ever in flight:
// the loop never requests two puzzles concurrently.
func (s *GameScreen) fetchPuzzle() tea.Cmd {
	if s.loading {
		return nil
	}
	s.loading = true
	s.gen++
	gen := s.gen
	difficulty := string(s.eco.Difficulty)
	return func() tea.Msg {
		p, err := s.backend.FetchPuzzle(context.Background(), difficulty)
		return puzzleReadyMsg{Gen: gen, Puzzle: p, Err: err}
	}
}

func (s *GameScreen) handlePuzzleReady(msg puzzleReadyMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen || s.done {
		return s, nil
	}
	s.loading = false

	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return s, s.expireSession()
		}
		s.log.Error().Err(msg.Err).Msg("puzzle fetch failed")
		return s, s.setNotice("Could not fetch a puzzle — press S to retry")
	}

	s.round = gamecore.NewRound(s.round, msg.Puzzle.ImageURL, msg.Puzzle.Question, s.eco.Difficulty)
	s.hint = ""
	s.outcome = nil
	s.input.Reset()
	return s, tea.Batch(s.tick(), s.input.Focus())
}

// tick schedules the next 1-second countdown step for the current round.
func (s *GameScreen) tick() tea.Cmd {
	gen := s.gen
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg{Gen: gen, At: t}
	})
}

func (s *GameScreen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	// A stale tick belongs to a resolved or abandoned round.
	if msg.Gen != s.gen || s.done || s.round == nil {
		return s, nil
	}

	s.round.Tick()
	if s.round.Expired() {
		// Timeout follows the skip path exactly once; the fetch bumps gen
		// so no further tick can fire for this round.
		s.eco.ResetStreak()
		return s, s.fetchPuzzle()
	}
	return s, s.tick()
}

// skip abandons the current round without verification. The old round
// stays in place until its replacement arrives; the fetch bumps gen so
// nothing of it can still land.
func (s *GameScreen) skip() (screen.Screen, tea.Cmd) {
	if s.loading || s.checking {
		return s, nil
	}
	s.eco.ResetStreak()
	return s, s.fetchPuzzle()
}

// --- answer submission ---

func (s *GameScreen) submit() (screen.Screen, tea.Cmd) {
	if s.round == nil || s.loading || s.checking {
		return s, nil
	}
	answer := s.input.Value()
	if answer == "" {
		return s, nil
	}

	s.checking = true
	s.round.Answer = answer
	gen := s.gen
	round := s.round
	return s, func() tea.Msg {
		v, err := s.backend.CheckAnswer(context.Background(),
			answer, round.ImageURL, round.Elapsed(), round.HintsUsed)
		return verdictMsg{Gen: gen, Verdict: v, Err: err}
	}
}

func (s *GameScreen) handleVerdict(msg verdictMsg) (screen.Screen, tea.Cmd) {
	// The flag tracks the request, not the round: any verdict arriving
	// means no verification is in flight anymore. Cleared before the
	// staleness check so a round that timed out mid-verification does not
	// leave the controls locked.
	s.checking = false

	// A verdict that resolves after navigation or a newer round is never
	// applied.
	if msg.Gen != s.gen || s.done || s.round == nil {
		return s, nil
	}

	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return s, s.expireSession()
		}
		// Failed-safe: a verification we cannot complete counts as
		// incorrect rather than hanging the round.
		s.log.Warn().Err(msg.Err).Msg("answer verification failed")
		s.eco.ResetStreak()
		s.outcome = &outcome{Failed: true}
		s.gen++
		return s, tea.Batch(
			s.setNotice("Could not reach the server — counted as a miss"),
			s.outcomeTimer(incorrectDelay),
		)
	}

	v := msg.Verdict
	points := s.eco.ApplyVerdict(v)
	s.outcome = &outcome{
		Correct:       v.Correct,
		Points:        points,
		CorrectAnswer: v.CorrectAnswer,
		PerfectSolve:  v.PerfectSolve,
		LeveledUp:     v.LeveledUp,
	}

	// The round is resolved: stop its timer.
	s.gen++

	cmds := []tea.Cmd{s.appendHistory(s.round.PuzzleID, v.Correct, points)}
	if v.Correct {
		// Optimistically push the new coin balance; the refresh after the
		// presentation delay reconciles.
		coins := s.eco.Coins
		cmds = append(cmds, s.pushPatch(api.PlayerPatch{Coins: &coins}))
		cmds = append(cmds, s.outcomeTimer(correctDelay))
	} else {
		cmds = append(cmds, s.outcomeTimer(incorrectDelay))
	}
	return s, tea.Batch(cmds...)
}

func (s *GameScreen) outcomeTimer(d time.Duration) tea.Cmd {
	gen := s.gen
	return tea.Tick(d, func(time.Time) tea.Msg {
		return outcomeDoneMsg{Gen: gen}
	})
}

func (s *GameScreen) handleOutcomeDone(msg outcomeDoneMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen || s.done || s.outcome == nil {
		return s, nil
	}
	s.outcome = nil
	return s, tea.Batch(s.fetchPuzzle(), s.refreshPlayer())
}

func (s *GameScreen) refreshPlayer() tea.Cmd {
	return func() tea.Msg {
		p, err := s.backend.GetPlayer(context.Background())
		return playerRefreshedMsg{Player: p, Err: err}
	}
}

func (s *GameScreen) appendHistory(puzzleID string, correct bool, points int) tea.Cmd {
	if s.history == nil {
		return nil
	}
	return func() tea.Msg {
		if err := s.history.AppendRound(context.Background(), puzzleID, correct, points); err != nil {
			s.log.Warn().Err(err).Msg("append round history failed")
		}
		return nil
	}
}

// pushPatch fires an optimistic sync to the backend. Failure never rolls
// back the local value.
func (s *GameScreen) pushPatch(patch api.PlayerPatch) tea.Cmd {
	return func() tea.Msg {
		err := s.backend.UpdatePlayer(context.Background(), patch)
		return syncDoneMsg{Err: err}
	}
}

// --- power-ups ---

func (s *GameScreen) useHint() (screen.Screen, tea.Cmd) {
	if s.round == nil || s.loading || s.checking {
		return s, nil
	}
	if s.eco.PowerUps.Hint <= 0 {
		return s, s.setNotice("No hints left — buy more in the shop")
	}

	gen := s.gen
	url := s.round.ImageURL
	return s, func() tea.Msg {
		r, err := s.backend.UseHint(context.Background(), url)
		return hintResultMsg{Gen: gen, Result: r, Err: err}
	}
}

func (s *GameScreen) handleHintResult(msg hintResultMsg) (screen.Screen, tea.Cmd) {
	if msg.Gen != s.gen || s.done || s.round == nil {
		return s, nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return s, s.expireSession()
		}
		s.log.Warn().Err(msg.Err).Msg("hint request failed")
		return s, s.setNotice("Could not fetch a hint")
	}

	// The server-returned remaining count is authoritative.
	s.eco.PowerUps.Hint = msg.Result.HintsRemaining
	s.round.HintsUsed++
	s.hint = msg.Result.Hint
	return s, nil
}

func (s *GameScreen) useFreeze() (screen.Screen, tea.Cmd) {
	if s.round == nil || s.loading || s.checking {
		return s, nil
	}
	// freezePending covers the window before the Frozen flag lands, so a
	// rapid second press cannot spend a second unit.
	if s.round.Frozen || s.freezePending {
		return s, nil
	}
	if !s.eco.UsePowerUp(gamecore.PowerUpFreeze) {
		return s, s.setNotice("No freezes left — buy more in the shop")
	}

	s.freezePending = true
	powerUps := s.eco.PowerUps
	gen := s.gen
	return s, tea.Batch(
		s.pushPatch(api.PlayerPatch{PowerUps: &powerUps}),
		tea.Tick(freezeDelay, func(time.Time) tea.Msg {
			return freezeAppliedMsg{Gen: gen}
		}),
	)
}

func (s *GameScreen) handleFreezeApplied(msg freezeAppliedMsg) (screen.Screen, tea.Cmd) {
	s.freezePending = false
	if msg.Gen != s.gen || s.done || s.round == nil {
		return s, nil
	}
	// Freeze never stacks; the bonus is granted at most once per round.
	s.round.Freeze()
	return s, nil
}

func (s *GameScreen) useSuperBanana() (screen.Screen, tea.Cmd) {
	if s.eco.DoublePointsArmed {
		return s, s.setNotice("Double points already armed")
	}
	if !s.eco.UsePowerUp(gamecore.PowerUpSuperBanana) {
		return s, s.setNotice("No super bananas left — buy more in the shop")
	}
	s.eco.DoublePointsArmed = true
	powerUps := s.eco.PowerUps
	return s, tea.Batch(
		s.pushPatch(api.PlayerPatch{PowerUps: &powerUps}),
		s.setNotice("Super Banana armed — next correct answer scores double!"),
	)
}

func (s *GameScreen) buy(index int) (screen.Screen, tea.Cmd) {
	catalog := gamecore.Catalog()
	if index < 0 || index >= len(catalog) {
		return s, nil
	}
	item := catalog[index]
	if !s.eco.Buy(item.Kind, item.Cost) {
		// Unaffordable: no mutation, no backend call.
		return s, s.setNotice("Not enough coins")
	}
	coins := s.eco.Coins
	powerUps := s.eco.PowerUps
	return s, s.pushPatch(api.PlayerPatch{Coins: &coins, PowerUps: &powerUps})
}

func (s *GameScreen) cycleDifficulty() (screen.Screen, tea.Cmd) {
	// Takes effect from the next puzzle; the in-flight round keeps its
	// timer.
	s.eco.Difficulty = s.eco.Difficulty.Next()
	d := string(s.eco.Difficulty)
	return s, s.pushPatch(api.PlayerPatch{Difficulty: &d})
}

func (s *GameScreen) claimDaily() (screen.Screen, tea.Cmd) {
	if s.daily == nil || !s.daily.Completed || s.daily.Claimed {
		return s, nil
	}
	return s, func() tea.Msg {
		d, err := s.backend.ClaimDailyChallenge(context.Background())
		return dailyLoadedMsg{Daily: d, Err: err}
	}
}

// --- round-set termination ---

func (s *GameScreen) endGame() (screen.Screen, tea.Cmd) {
	s.showEndConfirm = false
	score := s.eco.Score
	return s, func() tea.Msg {
		err := s.backend.SubmitScore(context.Background(), score)
		return scoreSubmittedMsg{Score: score, Err: err}
	}
}

func (s *GameScreen) handleScoreSubmitted(msg scoreSubmittedMsg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}
	if msg.Err != nil {
		if errors.Is(msg.Err, api.ErrUnauthorized) {
			return s, s.expireSession()
		}
		// Score is not lost: the player stays on the game screen and can
		// retry.
		s.log.Error().Err(msg.Err).Msg("score submission failed")
		return s, s.setNotice("Could not submit your score — try again")
	}

	s.teardown()
	score := msg.Score
	return s, func() tea.Msg {
		return router.RoundSetCompleteMsg{Score: score}
	}
}

func (s *GameScreen) logout(allDevices bool) (screen.Screen, tea.Cmd) {
	deviceID := s.deviceID
	return s, func() tea.Msg {
		var err error
		if allDevices {
			err = s.backend.LogoutAll(context.Background())
		} else {
			err = s.backend.Logout(context.Background(), deviceID)
		}
		return logoutDoneMsg{AllDevices: allDevices, Err: err}
	}
}

func (s *GameScreen) handleLogoutDone(msg logoutDoneMsg) (screen.Screen, tea.Cmd) {
	// Local teardown is unconditional; the remote outcome only changes
	// what we log.
	if msg.Err != nil {
		s.log.Warn().Err(msg.Err).Bool("all", msg.AllDevices).Msg("remote logout failed")
	} else {
		s.log.Info().Bool("all", msg.AllDevices).Msg("logged out")
	}
	s.teardown()
	all := msg.AllDevices
	return s, func() tea.Msg {
		return router.LogoutRequestedMsg{AllDevices: all}
	}
}

func (s *GameScreen) expireSession() tea.Cmd {
	s.teardown()
	return func() tea.Msg {
		return router.SessionExpiredMsg{}
	}
}

// teardown stops the timer and invalidates every in-flight result.
func (s *GameScreen) teardown() {
	s.done = true
	s.gen++
	s.round = nil
}

// --- notices ---

func (s *GameScreen) setNotice(text string) tea.Cmd {
	s.notice = text
	s.noticeID++
	id := s.noticeID
	return tea.Tick(noticeDelay, func(time.Time) tea.Msg {
		return noticeExpiredMsg{ID: id}
	})
}

// --- input handling ---

func (s *GameScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.done {
		return s, nil
	}
	key := msg.String()

	if s.showEndConfirm {
		switch key {
		case "y", "Y":
			return s.endGame()
		case "n", "N", "esc":
			s.showEndConfirm = false
		}
		return s, nil
	}

	if s.showShop {
		switch key {
		case "esc", "p":
			s.showShop = false
		case "up", "k":
			if s.shopSelected > 0 {
				s.shopSelected--
			}
		case "down", "j":
			if s.shopSelected < len(gamecore.Catalog())-1 {
				s.shopSelected++
			}
		case "enter":
			return s.buy(s.shopSelected)
		case "1", "2", "3":
			return s.buy(int(key[0] - '1'))
		}
		return s, nil
	}

	// Any key skips the remainder of the outcome presentation.
	if s.outcome != nil {
		s.outcome = nil
		return s, tea.Batch(s.fetchPuzzle(), s.refreshPlayer())
	}

	switch key {
	case "enter":
		return s.submit()
	case "esc", "e":
		s.showEndConfirm = true
		return s, nil
	case "s":
		return s.skip()
	case "h":
		return s.useHint()
	case "f":
		return s.useFreeze()
	case "b":
		return s.useSuperBanana()
	case "p":
		s.showShop = true
		s.shopSelected = 0
		return s, nil
	case "d":
		return s.cycleDifficulty()
	case "c":
		return s.claimDaily()
	case "l":
		return s.logout(false)
	case "L":
		return s.logout(true)
	}

	if s.canType() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}
