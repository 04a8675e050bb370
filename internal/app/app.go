package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/screen"
	authscreen "github.com/janakan-45/banana-brain-blitz/internal/screens/auth"
	gamescreen "github.com/janakan-45/banana-brain-blitz/internal/screens/game"
	"github.com/janakan-45/banana-brain-blitz/internal/screens/history"
	"github.com/janakan-45/banana-brain-blitz/internal/screens/info"
	"github.com/janakan-45/banana-brain-blitz/internal/screens/landing"
	"github.com/janakan-45/banana-brain-blitz/internal/screens/leaderboard"
	"github.com/janakan-45/banana-brain-blitz/internal/store"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/layout"
)

// Options wires the app's collaborators.
type Options struct {
	API         *api.Client
	Store       *store.Store
	Log         zerolog.Logger
	Credentials store.Credentials
}

// session is the cross-screen identity context. The router is its sole
// owner; child screens receive the username by value, never the tokens.
type session struct {
	username  string
	lastScore int
}

// AppModel is the root Bubble Tea model: it owns the screen stack and the
// session, and runs every top-level transition.
type AppModel struct {
	opts    Options
	router  *router.Router
	session session
	width   int
	height  int
}

func newAppModel(opts Options) AppModel {
	m := AppModel{opts: opts, session: session{lastScore: -1}}

	// Startup contract: a remembered username plus a stored credential
	// resumes play directly; a username alone only pre-fills the login
	// form.
	creds := opts.Credentials
	if creds.Username != "" && creds.HasTokens() {
		m.session.username = creds.Username
		m.router = router.New(m.gameScreen())
	} else {
		m.router = router.New(m.landingScreen(creds.Username, ""))
	}
	return m
}

// --- screen factories ---

func (m *AppModel) landingScreen(rememberedName, notice string) screen.Screen {
	return landing.New(landing.Factories{
		Leaderboard: func() screen.Screen {
			return leaderboard.New(m.opts.API, m.opts.Log, m.session.username, -1)
		},
		History: func() screen.Screen { return history.New(m.opts.Store) },
		HowTo:   func() screen.Screen { return info.NewHowTo() },
		Contact: func() screen.Screen { return info.NewContact(m.opts.API) },
	}, rememberedName, notice)
}

func (m *AppModel) gameScreen() screen.Screen {
	return gamescreen.New(m.opts.API, m.opts.Store, m.opts.Log,
		m.session.username, m.opts.Credentials.DeviceID)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case router.AuthRequestedMsg:
		// A live session from this process run goes straight back to play.
		if msg.Tab == router.TabLogin && m.opts.Credentials.HasTokens() {
			m.session.username = m.opts.Credentials.Username
			return m, m.router.Reset(m.gameScreen())
		}
		cmd := m.router.Push(authscreen.New(m.opts.API, m.opts.Log, msg.Tab, m.opts.Credentials.Username))
		return m, cmd

	case router.LoginSuccessMsg:
		return m.handleLogin(msg)

	case router.RoundSetCompleteMsg:
		// Landing sits under the leaderboard so "back" has somewhere to go.
		m.session.lastScore = msg.Score
		cmd := tea.Batch(
			m.router.Reset(m.landingScreen(m.session.username, "")),
			m.router.Push(leaderboard.New(m.opts.API, m.opts.Log, m.session.username, msg.Score)),
		)
		return m, cmd

	case router.PlayAgainMsg:
		cmd := m.router.Reset(m.gameScreen())
		return m, cmd

	case router.LogoutRequestedMsg:
		return m.handleLogout("")

	case router.SessionExpiredMsg:
		return m.handleSessionExpired()

	case refreshDoneMsg:
		return m.handleRefreshDone(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) handleLogin(msg router.LoginSuccessMsg) (tea.Model, tea.Cmd) {
	m.session.username = msg.Username
	m.session.lastScore = -1
	m.opts.API.SetToken(msg.AccessToken)

	m.opts.Credentials.Username = msg.Username
	m.opts.Credentials.AccessToken = msg.AccessToken
	m.opts.Credentials.RefreshToken = msg.RefreshToken
	if err := m.opts.Store.SaveCredentials(context.Background(), m.opts.Credentials); err != nil {
		m.opts.Log.Error().Err(err).Msg("persist credentials failed")
	}

	cmd := m.router.Reset(m.gameScreen())
	return m, cmd
}

// refreshDoneMsg carries the result of a token refresh attempt.
type refreshDoneMsg struct {
	Pair *api.TokenPair
	Err  error
}

// handleSessionExpired tries the stored refresh token before giving up on
// the session; only a failed refresh sends the player back to sign in.
func (m AppModel) handleSessionExpired() (tea.Model, tea.Cmd) {
	refresh := m.opts.Credentials.RefreshToken
	if refresh == "" {
		return m.handleLogout("Your session expired — please sign in again")
	}
	client := m.opts.API
	return m, func() tea.Msg {
		pair, err := client.Refresh(context.Background(), refresh)
		return refreshDoneMsg{Pair: pair, Err: err}
	}
}

func (m AppModel) handleRefreshDone(msg refreshDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.opts.Log.Warn().Err(msg.Err).Msg("token refresh failed")
		return m.handleLogout("Your session expired — please sign in again")
	}

	m.opts.API.SetToken(msg.Pair.AccessToken)
	m.opts.Credentials.AccessToken = msg.Pair.AccessToken
	if msg.Pair.RefreshToken != "" {
		m.opts.Credentials.RefreshToken = msg.Pair.RefreshToken
	}
	if err := m.opts.Store.SaveCredentials(context.Background(), m.opts.Credentials); err != nil {
		m.opts.Log.Error().Err(err).Msg("persist credentials failed")
	}

	cmd := m.router.Reset(m.gameScreen())
	return m, cmd
}

// handleLogout tears down the local session unconditionally: stored
// tokens go away whatever the remote logout said.
func (m AppModel) handleLogout(notice string) (tea.Model, tea.Cmd) {
	m.opts.API.ClearToken()
	m.opts.Credentials.AccessToken = ""
	m.opts.Credentials.RefreshToken = ""
	if err := m.opts.Store.ClearCredentials(context.Background()); err != nil {
		m.opts.Log.Error().Err(err).Msg("clear credentials failed")
	}

	remembered := m.opts.Credentials.Username
	m.session = session{lastScore: -1}
	cmd := m.router.Reset(m.landingScreen(remembered, notice))
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.session.username, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	}
	if len(footerHints) == 0 {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
