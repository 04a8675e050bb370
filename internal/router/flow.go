package router

// Session-flow messages. Screens emit these instead of holding callbacks
// into their parent; the app model's transition function consumes them.

// AuthTab selects which tab the auth screen opens on.
type AuthTab string

const (
	TabLogin    AuthTab = "login"
	TabRegister AuthTab = "register"
)

// AuthRequestedMsg asks the app to show the auth screen.
type AuthRequestedMsg struct {
	Tab AuthTab
}

// LoginSuccessMsg announces a completed authentication. The app persists
// the credentials and enters the playing state.
type LoginSuccessMsg struct {
	Username     string
	AccessToken  string
	RefreshToken string
}

// RoundSetCompleteMsg announces that the player ended the round set and
// the final score was acknowledged by the backend.
type RoundSetCompleteMsg struct {
	Score int
}

// PlayAgainMsg asks the app to start a new round set.
type PlayAgainMsg struct{}

// LogoutRequestedMsg asks the app to tear down the session. Local teardown
// is unconditional; AllDevices only selects the remote logout variant that
// already ran.
type LogoutRequestedMsg struct {
	AllDevices bool
}

// SessionExpiredMsg forces a logout after the backend rejected the token
// mid-game.
type SessionExpiredMsg struct{}
