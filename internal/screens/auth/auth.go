package auth

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/janakan-45/banana-brain-blitz/internal/api"
	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/screen"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/components"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/layout"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/theme"
)

// Authenticator is the slice of the API client the auth screen uses.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (*api.LoginResult, error)
	Register(ctx context.Context, username, email, password string) (*api.LoginResult, error)
}

// authDoneMsg delivers the result of a login or register call.
type authDoneMsg struct {
	Result *api.LoginResult
	Err    error
}

const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

// AuthScreen hosts the login and register tabs.
type AuthScreen struct {
	auth Authenticator
	log  zerolog.Logger

	tab      router.AuthTab
	username components.TextInput
	email    components.TextInput
	password components.TextInput
	focused  int

	busy   bool
	errMsg string
}

var _ screen.Screen = (*AuthScreen)(nil)
var _ screen.KeyHintProvider = (*AuthScreen)(nil)

// New creates the auth screen. A remembered username pre-fills the form
// but does not log the player in.
func New(auth Authenticator, log zerolog.Logger, tab router.AuthTab, rememberedName string) *AuthScreen {
	s := &AuthScreen{
		auth:     auth,
		log:      log,
		tab:      tab,
		username: components.NewTextInput("Username", false, 24),
		email:    components.NewTextInput("Email", false, 64),
		password: components.NewPasswordInput("Password", 64),
	}
	if tab == "" {
		s.tab = router.TabLogin
	}
	if rememberedName != "" {
		s.username.Model.SetValue(rememberedName)
	}
	s.email.Blur()
	s.password.Blur()
	return s
}

func (s *AuthScreen) Init() tea.Cmd {
	return s.username.Init()
}

func (s *AuthScreen) Title() string {
	if s.tab == router.TabRegister {
		return "Create Account"
	}
	return "Sign In"
}

func (s *AuthScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch login/register"},
		{Key: "↑↓", Description: "Next field"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *AuthScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case authDoneMsg:
		return s.handleAuthDone(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s.forwardToFocused(msg)
}

func (s *AuthScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.busy {
		return s, nil
	}

	switch msg.String() {
	case "esc":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "tab":
		if s.tab == router.TabLogin {
			s.tab = router.TabRegister
		} else {
			s.tab = router.TabLogin
		}
		s.errMsg = ""
		return s, s.focusField(fieldUsername)
	case "up", "shift+tab":
		return s, s.focusField(s.prevField())
	case "down":
		return s, s.focusField(s.nextField())
	case "enter":
		return s.submit()
	}

	return s.forwardToFocused(msg)
}

func (s *AuthScreen) forwardToFocused(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	switch s.focused {
	case fieldUsername:
		s.username, cmd = s.username.Update(msg)
	case fieldEmail:
		s.email, cmd = s.email.Update(msg)
	case fieldPassword:
		s.password, cmd = s.password.Update(msg)
	}
	return s, cmd
}

func (s *AuthScreen) nextField() int {
	if s.tab == router.TabRegister {
		return (s.focused + 1) % 3
	}
	if s.focused == fieldUsername {
		return fieldPassword
	}
	return fieldUsername
}

func (s *AuthScreen) prevField() int {
	if s.tab == router.TabRegister {
		return (s.focused + 2) % 3
	}
	if s.focused == fieldUsername {
		return fieldPassword
	}
	return fieldUsername
}

func (s *AuthScreen) focusField(field int) tea.Cmd {
	s.username.Blur()
	s.email.Blur()
	s.password.Blur()
	s.focused = field
	switch field {
	case fieldUsername:
		return s.username.Focus()
	case fieldEmail:
		return s.email.Focus()
	default:
		return s.password.Focus()
	}
}

// submit validates locally first; malformed input never reaches the
// network.
func (s *AuthScreen) submit() (screen.Screen, tea.Cmd) {
	username := strings.TrimSpace(s.username.Value())
	email := strings.TrimSpace(s.email.Value())
	password := s.password.Value()

	if username == "" {
		s.errMsg = "Username is required"
		return s, s.focusField(fieldUsername)
	}
	if password == "" {
		s.errMsg = "Password is required"
		return s, s.focusField(fieldPassword)
	}
	if s.tab == router.TabRegister {
		if email == "" || !strings.Contains(email, "@") {
			s.errMsg = "A valid email is required"
			return s, s.focusField(fieldEmail)
		}
		if len(password) < 6 {
			s.errMsg = "Password must be at least 6 characters"
			return s, s.focusField(fieldPassword)
		}
	}

	s.errMsg = ""
	s.busy = true
	tab := s.tab
	return s, func() tea.Msg {
		var res *api.LoginResult
		var err error
		if tab == router.TabRegister {
			res, err = s.auth.Register(context.Background(), username, email, password)
		} else {
			res, err = s.auth.Login(context.Background(), username, password)
		}
		return authDoneMsg{Result: res, Err: err}
	}
}

func (s *AuthScreen) handleAuthDone(msg authDoneMsg) (screen.Screen, tea.Cmd) {
	s.busy = false
	if msg.Err != nil {
		var apiErr *api.APIError
		switch {
		case errors.Is(msg.Err, api.ErrUnauthorized):
			s.errMsg = "Wrong username or password"
		case errors.As(msg.Err, &apiErr) && apiErr.Message != "":
			s.errMsg = apiErr.Message
		default:
			s.errMsg = "Could not reach the server — try again"
		}
		s.log.Warn().Err(msg.Err).Msg("auth failed")
		return s, nil
	}

	res := msg.Result
	return s, func() tea.Msg {
		return router.LoginSuccessMsg{
			Username:     res.Username,
			AccessToken:  res.AccessToken,
			RefreshToken: res.RefreshToken,
		}
	}
}

func (s *AuthScreen) View(width, height int) string {
	var b strings.Builder

	loginTab := " Sign In "
	registerTab := " Register "
	if s.tab == router.TabLogin {
		loginTab = theme.ButtonActive.Render(loginTab)
		registerTab = theme.ButtonInactive.Render(registerTab)
	} else {
		loginTab = theme.ButtonInactive.Render(loginTab)
		registerTab = theme.ButtonActive.Render(registerTab)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, loginTab, "  ", registerTab))
	b.WriteString("\n\n")

	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
	b.WriteString(label.Render("Username") + s.username.View() + "\n\n")
	if s.tab == router.TabRegister {
		b.WriteString(label.Render("Email") + s.email.View() + "\n\n")
	}
	b.WriteString(label.Render("Password") + s.password.View() + "\n")

	if s.busy {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Render("Checking..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	card := theme.Card.Width(min(width-8, 56)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
