package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
)

// authForms holds the login and register screens. Both keep their inline
// error local so a failed attempt never leaks into other views.
type authForms struct {
	loginEmail    textinput.Model
	loginPassword textinput.Model
	loginFocus    int
	loginErr      string

	// notice is the expiry message shown above the login form after a
	// forced logout.
	notice string

	regName     textinput.Model
	regEmail    textinput.Model
	regPassword textinput.Model
	regConfirm  textinput.Model
	regFocus    int
	regErr      string
}

func newAuthForms() authForms {
	text := func(placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 120
		ti.Width = 36
		return ti
	}
	pass := func(placeholder string) textinput.Model {
		ti := text(placeholder)
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
		return ti
	}

	a := authForms{
		loginEmail:    text("Email"),
		loginPassword: pass("Password"),
		regName:       text("Name"),
		regEmail:      text("Email"),
		regPassword:   pass("Password"),
		regConfirm:    pass("Confirm password"),
	}
	a.loginEmail.Focus()
	return a
}

func (a *authForms) resetFocus(v view) {
	a.loginEmail.Blur()
	a.loginPassword.Blur()
	a.regName.Blur()
	a.regEmail.Blur()
	a.regPassword.Blur()
	a.regConfirm.Blur()
	if v == viewRegister {
		a.regFocus = 0
		a.regName.Focus()
		return
	}
	a.loginFocus = 0
	a.loginEmail.Focus()
}

func (a *authForms) loginFields() []*textinput.Model {
	return []*textinput.Model{&a.loginEmail, &a.loginPassword}
}

func (a *authForms) regFields() []*textinput.Model {
	return []*textinput.Model{&a.regName, &a.regEmail, &a.regPassword, &a.regConfirm}
}

func cycleFocus(fields []*textinput.Model, focus *int, backwards bool) {
	fields[*focus].Blur()
	if backwards {
		*focus = (*focus - 1 + len(fields)) % len(fields)
	} else {
		*focus = (*focus + 1) % len(fields)
	}
	fields[*focus].Focus()
}

// loginCredentials validates locally; ok false keeps the form open with an
// inline error and no network call.
func (a *authForms) loginCredentials() (api.Credentials, bool) {
	email := strings.TrimSpace(a.loginEmail.Value())
	password := a.loginPassword.Value()
	if email == "" || password == "" {
		a.loginErr = "Email and password are required."
		return api.Credentials{}, false
	}
	return api.Credentials{Email: email, Password: password}, true
}

// registerCredentials enforces the confirmation match before anything
// reaches the adapter.
func (a *authForms) registerCredentials() (api.RegisterCredentials, bool) {
	name := strings.TrimSpace(a.regName.Value())
	email := strings.TrimSpace(a.regEmail.Value())
	password := a.regPassword.Value()
	confirm := a.regConfirm.Value()
	switch {
	case name == "" || email == "" || password == "":
		a.regErr = "Name, email and password are required."
		return api.RegisterCredentials{}, false
	case password != confirm:
		a.regErr = "Passwords do not match."
		return api.RegisterCredentials{}, false
	}
	return api.RegisterCredentials{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: confirm,
	}, true
}

func (a *authForms) updateLogin(msg tea.KeyMsg, m *appModel) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		cycleFocus(a.loginFields(), &a.loginFocus, false)
		return nil
	case "shift+tab", "up":
		cycleFocus(a.loginFields(), &a.loginFocus, true)
		return nil
	case "enter":
		creds, ok := a.loginCredentials()
		if !ok {
			return nil
		}
		a.loginErr = ""
		m.loading = true
		return m.loginCmd(creds)
	case "ctrl+r":
		m.view = viewRegister
		a.resetFocus(viewRegister)
		return nil
	}

	var cmd tea.Cmd
	f := a.loginFields()[a.loginFocus]
	*f, cmd = f.Update(msg)
	return cmd
}

func (a *authForms) updateRegister(msg tea.KeyMsg, m *appModel) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		cycleFocus(a.regFields(), &a.regFocus, false)
		return nil
	case "shift+tab", "up":
		cycleFocus(a.regFields(), &a.regFocus, true)
		return nil
	case "enter":
		creds, ok := a.registerCredentials()
		if !ok {
			return nil
		}
		a.regErr = ""
		m.loading = true
		return m.registerCmd(creds)
	case "esc", "ctrl+r":
		m.view = viewLogin
		a.resetFocus(viewLogin)
		return nil
	}

	var cmd tea.Cmd
	f := a.regFields()[a.regFocus]
	*f, cmd = f.Update(msg)
	return cmd
}

func (a *authForms) renderLogin(width int, loading bool, spin string) string {
	var rows []string
	if a.notice != "" {
		rows = append(rows, styleError().Render(a.notice))
	}
	rows = append(rows,
		a.loginEmail.View(),
		a.loginPassword.View(),
	)
	if a.loginErr != "" {
		rows = append(rows, styleError().Render(a.loginErr))
	}
	if loading {
		rows = append(rows, spin+" signing in…")
	}
	rows = append(rows, styleMuted().Render("enter: sign in   ctrl+r: register   ctrl+c: quit"))
	return renderModalBox(width, "Sign in", strings.Join(rows, "\n\n"))
}

func (a *authForms) renderRegister(width int, loading bool, spin string) string {
	rows := []string{
		a.regName.View(),
		a.regEmail.View(),
		a.regPassword.View(),
		a.regConfirm.View(),
	}
	if a.regErr != "" {
		rows = append(rows, styleError().Render(a.regErr))
	}
	if loading {
		rows = append(rows, spin+" creating account…")
	}
	rows = append(rows, styleMuted().Render("enter: create account   esc: back to sign in"))
	return renderModalBox(width, "Create account", strings.Join(rows, "\n\n"))
}
