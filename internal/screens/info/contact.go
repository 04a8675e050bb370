package info

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/janakan-45/banana-brain-blitz/internal/router"
	"github.com/janakan-45/banana-brain-blitz/internal/screen"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/components"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/layout"
	"github.com/janakan-45/banana-brain-blitz/internal/ui/theme"
)

// ContactSender submits a contact-form message.
type ContactSender interface {
	SubmitContact(ctx context.Context, name, email, message string) error
}

// contactDoneMsg reports a contact submission.
type contactDoneMsg struct {
	Err error
}

// ContactScreen is a small message form.
type ContactScreen struct {
	sender  ContactSender
	name    components.TextInput
	email   components.TextInput
	message components.TextInput
	focused int
	busy    bool
	sent    bool
	errMsg  string
}

var _ screen.Screen = (*ContactScreen)(nil)
var _ screen.KeyHintProvider = (*ContactScreen)(nil)

// NewContact creates the contact screen.
func NewContact(sender ContactSender) *ContactScreen {
	s := &ContactScreen{
		sender:  sender,
		name:    components.NewTextInput("Your name", false, 40),
		email:   components.NewTextInput("Email", false, 64),
		message: components.NewTextInput("Message", false, 200),
	}
	s.email.Blur()
	s.message.Blur()
	return s
}

func (s *ContactScreen) Init() tea.Cmd {
	return s.name.Init()
}

func (s *ContactScreen) Title() string { return "Contact Us" }

func (s *ContactScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Next field"},
		{Key: "Enter", Description: "Send"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ContactScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case contactDoneMsg:
		s.busy = false
		if msg.Err != nil {
			s.errMsg = "Could not send your message — try again"
		} else {
			s.sent = true
		}
		return s, nil

	case tea.KeyMsg:
		if s.busy {
			return s, nil
		}
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "shift+tab":
			return s, s.focusField((s.focused + 2) % 3)
		case "down", "tab":
			return s, s.focusField((s.focused + 1) % 3)
		case "enter":
			return s.submit()
		}
	}

	var cmd tea.Cmd
	switch s.focused {
	case 0:
		s.name, cmd = s.name.Update(msg)
	case 1:
		s.email, cmd = s.email.Update(msg)
	default:
		s.message, cmd = s.message.Update(msg)
	}
	return s, cmd
}

func (s *ContactScreen) focusField(field int) tea.Cmd {
	s.name.Blur()
	s.email.Blur()
	s.message.Blur()
	s.focused = field
	switch field {
	case 0:
		return s.name.Focus()
	case 1:
		return s.email.Focus()
	default:
		return s.message.Focus()
	}
}

func (s *ContactScreen) submit() (screen.Screen, tea.Cmd) {
	name := strings.TrimSpace(s.name.Value())
	email := strings.TrimSpace(s.email.Value())
	message := strings.TrimSpace(s.message.Value())

	// Validation errors never reach the network.
	if name == "" || message == "" {
		s.errMsg = "Name and message are required"
		return s, nil
	}
	if email == "" || !strings.Contains(email, "@") {
		s.errMsg = "A valid email is required"
		return s, nil
	}

	s.errMsg = ""
	s.busy = true
	return s, func() tea.Msg {
		return contactDoneMsg{Err: s.sender.SubmitContact(context.Background(), name, email, message)}
	}
}

func (s *ContactScreen) View(width, height int) string {
	if s.sent {
		content := theme.Card.Render(
			theme.Correct.Render("Message sent!") + "\n\n" +
				theme.Hint.Render("We read everything. Press Esc to head back."))
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
	}

	var b strings.Builder
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Width(10)
	b.WriteString(label.Render("Name") + s.name.View() + "\n\n")
	b.WriteString(label.Render("Email") + s.email.View() + "\n\n")
	b.WriteString(label.Render("Message") + s.message.View() + "\n")

	if s.busy {
		b.WriteString("\n" + theme.Hint.Render("Sending..."))
	}
	if s.errMsg != "" {
		b.WriteString("\n" + theme.Incorrect.Render(s.errMsg))
	}

	card := theme.Card.Width(min(width-8, 64)).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
