package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ekinsoft/vitrin/internal/api"
)

const (
	loginFieldUsername = iota
	loginFieldPassword
	loginFieldEmail // register mode only
	loginFieldCount
)

func (m *Model) initLoginInputs() {
	inputs := make([]textinput.Model, loginFieldCount)

	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Width = 32
	inputs[loginFieldUsername] = username

	password := textinput.New()
	password.Placeholder = "password"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 64
	password.Width = 32
	inputs[loginFieldPassword] = password

	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128
	email.Width = 32
	inputs[loginFieldEmail] = email

	m.loginInputs = inputs
}

func (m *Model) resetLoginForm() {
	for i := range m.loginInputs {
		m.loginInputs[i].SetValue("")
		m.loginInputs[i].Blur()
	}
	m.loginFocus = 0
}

func (m *Model) loginFields() int {
	if m.registering {
		return loginFieldCount
	}
	return loginFieldEmail
}

func (m *Model) focusLoginInput(idx int) tea.Cmd {
	m.loginFocus = idx
	var cmd tea.Cmd
	for i := range m.loginInputs {
		if i == idx {
			cmd = m.loginInputs[i].Focus()
		} else {
			m.loginInputs[i].Blur()
		}
	}
	return cmd
}

// renderLogin renders the sign-in or register form.
func (m Model) renderLogin() string {
	styles := m.theme.Styles()
	var b strings.Builder

	title := "Sign in"
	if m.registering {
		title = "Create account"
	}
	b.WriteString(styles.Title.Render(title))
	b.WriteString("\n")

	labels := []string{"Username", "Password", "Email"}
	for i := 0; i < m.loginFields(); i++ {
		label := styles.MutedText.Render(labels[i])
		if i == m.loginFocus {
			label = styles.AccentText.Render(labels[i])
		}
		b.WriteString("  " + label + "\n")
		b.WriteString("  " + m.loginInputs[i].View() + "\n")
	}

	if m.loggingIn {
		b.WriteString("\n  " + styles.MutedText.Render("Working..."))
		b.WriteString("\n")
	}

	return b.String()
}

// handleLoginKey processes keyboard input for the login view.
func (m Model) handleLoginKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.resetLoginForm()
		return m.switchView(ViewCatalog)

	case "ctrl+r":
		m.registering = !m.registering
		return m, m.focusLoginInput(0)

	case "tab", "down":
		return m, m.focusLoginInput((m.loginFocus + 1) % m.loginFields())

	case "shift+tab", "up":
		return m, m.focusLoginInput((m.loginFocus + m.loginFields() - 1) % m.loginFields())

	case "enter":
		return m.submitLogin()
	}

	var cmd tea.Cmd
	m.loginInputs[m.loginFocus], cmd = m.loginInputs[m.loginFocus].Update(msg)
	return m, cmd
}

func (m Model) submitLogin() (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}

	username := strings.TrimSpace(m.loginInputs[loginFieldUsername].Value())
	password := m.loginInputs[loginFieldPassword].Value()
	if username == "" || password == "" {
		m.setError("username and password are required")
		return m, nil
	}

	m.loggingIn = true
	if m.registering {
		in := api.RegisterInput{
			Username: username,
			Password: password,
			Email:    strings.TrimSpace(m.loginInputs[loginFieldEmail].Value()),
		}
		return m, registerCmd(m.ctx, m.accounts, in)
	}
	return m, loginCmd(m.ctx, m.accounts, username, password)
}
