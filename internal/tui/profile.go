package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

type profileSection int

const (
	sectionAccount profileSection = iota
	sectionPassword
)

// profileForms is the profile view: the account section edits name/email,
// the password section submits a change and then wipes its inputs. Each
// section keeps its own inline feedback.
type profileForms struct {
	section profileSection

	name  textinput.Model
	email textinput.Model

	current  textinput.Model
	password textinput.Model
	confirm  textinput.Model

	accountFocus  int
	passwordFocus int

	accountMsg    string
	accountIsErr  bool
	passwordMsg   string
	passwordIsErr bool
}

func newProfileForms() profileForms {
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

	p := profileForms{
		name:     text("Name"),
		email:    text("Email"),
		current:  pass("Current password"),
		password: pass("New password"),
		confirm:  pass("Confirm new password"),
	}
	p.name.Focus()
	return p
}

// seed fills the account fields from the live identity when the view opens.
func (p *profileForms) seed(id model.Identity) {
	p.name.SetValue(id.Name)
	p.email.SetValue(id.Email)
	p.accountMsg = ""
	p.passwordMsg = ""
	p.section = sectionAccount
	p.accountFocus = 0
	p.passwordFocus = 0
	p.blurAll()
	p.name.Focus()
}

func (p *profileForms) blurAll() {
	p.name.Blur()
	p.email.Blur()
	p.current.Blur()
	p.password.Blur()
	p.confirm.Blur()
}

func (p *profileForms) accountFields() []*textinput.Model {
	return []*textinput.Model{&p.name, &p.email}
}

func (p *profileForms) passwordFields() []*textinput.Model {
	return []*textinput.Model{&p.current, &p.password, &p.confirm}
}

func (p *profileForms) switchSection() {
	p.blurAll()
	if p.section == sectionAccount {
		p.section = sectionPassword
		p.passwordFields()[p.passwordFocus].Focus()
		return
	}
	p.section = sectionAccount
	p.accountFields()[p.accountFocus].Focus()
}

func (p *profileForms) accountUpdate() (api.ProfileUpdate, bool) {
	name := strings.TrimSpace(p.name.Value())
	email := strings.TrimSpace(p.email.Value())
	if name == "" || email == "" {
		p.accountMsg = "Name and email are required."
		p.accountIsErr = true
		return api.ProfileUpdate{}, false
	}
	return api.ProfileUpdate{Name: name, Email: email}, true
}

func (p *profileForms) passwordChange() (api.PasswordChange, bool) {
	current := p.current.Value()
	password := p.password.Value()
	confirm := p.confirm.Value()
	switch {
	case current == "" || password == "":
		p.passwordMsg = "Current and new password are required."
		p.passwordIsErr = true
		return api.PasswordChange{}, false
	case password != confirm:
		p.passwordMsg = "New passwords do not match."
		p.passwordIsErr = true
		return api.PasswordChange{}, false
	}
	return api.PasswordChange{
		CurrentPassword:      current,
		Password:             password,
		PasswordConfirmation: confirm,
	}, true
}

// clearPasswords wipes all password inputs after a successful change.
func (p *profileForms) clearPasswords() {
	p.current.SetValue("")
	p.password.SetValue("")
	p.confirm.SetValue("")
}

func (p *profileForms) update(msg tea.KeyMsg, m *appModel) tea.Cmd {
	switch msg.String() {
	case "ctrl+t":
		p.switchSection()
		return nil
	case "tab", "down":
		if p.section == sectionAccount {
			cycleFocus(p.accountFields(), &p.accountFocus, false)
		} else {
			cycleFocus(p.passwordFields(), &p.passwordFocus, false)
		}
		return nil
	case "shift+tab", "up":
		if p.section == sectionAccount {
			cycleFocus(p.accountFields(), &p.accountFocus, true)
		} else {
			cycleFocus(p.passwordFields(), &p.passwordFocus, true)
		}
		return nil
	case "enter":
		if p.section == sectionAccount {
			upd, ok := p.accountUpdate()
			if !ok {
				return nil
			}
			p.accountMsg = ""
			m.loading = true
			return m.saveProfileCmd(upd)
		}
		chg, ok := p.passwordChange()
		if !ok {
			return nil
		}
		p.passwordMsg = ""
		m.loading = true
		return m.changePasswordCmd(chg)
	}

	var cmd tea.Cmd
	var f *textinput.Model
	if p.section == sectionAccount {
		f = p.accountFields()[p.accountFocus]
	} else {
		f = p.passwordFields()[p.passwordFocus]
	}
	*f, cmd = f.Update(msg)
	return cmd
}

func (p *profileForms) render(width int, snap model.Identity) string {
	sectionTitle := func(s profileSection, label string) string {
		if p.section == s {
			return statusStyle(colorAccent).Render(label)
		}
		return styleMuted().Render(label)
	}
	feedback := func(msg string, isErr bool) string {
		if msg == "" {
			return ""
		}
		if isErr {
			return styleError().Render(msg)
		}
		return styleSuccess().Render(msg)
	}

	rows := []string{
		styleMuted().Render(snap.Email + "  ·  " + string(snap.Role)),
		sectionTitle(sectionAccount, "Account"),
		p.name.View(),
		p.email.View(),
	}
	if fb := feedback(p.accountMsg, p.accountIsErr); fb != "" {
		rows = append(rows, fb)
	}
	rows = append(rows,
		sectionTitle(sectionPassword, "Change password"),
		p.current.View(),
		p.password.View(),
		p.confirm.View(),
	)
	if fb := feedback(p.passwordMsg, p.passwordIsErr); fb != "" {
		rows = append(rows, fb)
	}
	rows = append(rows, styleMuted().Render("ctrl+t: switch section   enter: save   esc: back"))

	return renderModalBox(width, "Profile", strings.Join(rows, "\n\n"))
}
