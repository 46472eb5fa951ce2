// Package tui hosts the interactive terminal views of fleetctl. Views are
// bubbletea models; the domain state they edit lives in other packages.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"amr-fleet-monitor/internal/registration"
)

// RegisterKeyMap defines the key bindings of the registration form.
type RegisterKeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding
	Cancel key.Binding
}

// DefaultRegisterKeyMap is the built-in key binding set.
var DefaultRegisterKeyMap = RegisterKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("shift+tab", "previous field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "register"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
}

var (
	formTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")).MarginBottom(1)
	fieldLabel     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	fieldError     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// RegisterModel is the bubbletea model for the robot-registration form.
// Every keystroke is mirrored into a registration.Form, which owns the
// draft, the displayed errors and the lifecycle.
type RegisterModel struct {
	form    *registration.Form
	inputs  []textinput.Model
	focus   int
	outcome *registration.Outcome
	keys    RegisterKeyMap
}

// NewRegisterModel returns a form with the name field focused.
func NewRegisterModel() RegisterModel {
	inputs := make([]textinput.Model, len(registration.Fields))
	for i, field := range registration.Fields {
		input := textinput.New()
		input.Prompt = "› "
		input.CharLimit = 64
		switch field {
		case registration.FieldName:
			input.Placeholder = "로봇 F"
		case registration.FieldIPAddress:
			input.Placeholder = "192.168.0.10"
		}
		inputs[i] = input
	}
	inputs[0].Focus()

	return RegisterModel{
		form:   registration.NewForm(),
		inputs: inputs,
		keys:   DefaultRegisterKeyMap,
	}
}

// Outcome reports how the interaction ended. ok is false while editing.
func (m RegisterModel) Outcome() (registration.Outcome, bool) {
	if m.outcome == nil {
		return registration.Outcome{}, false
	}
	return *m.outcome, true
}

// Form exposes the underlying form state.
func (m RegisterModel) Form() *registration.Form {
	return m.form
}

func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.outcome != nil {
		return m, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateFocused(msg)
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		outcome, err := m.form.Cancel()
		if err != nil {
			return m, nil
		}
		m.outcome = &outcome
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Submit):
		outcome, err := m.form.Submit()
		if err != nil {
			return m, m.focusFirstError()
		}
		m.outcome = &outcome
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Next):
		return m, m.setFocus((m.focus + 1) % len(m.inputs))

	case key.Matches(keyMsg, m.keys.Prev):
		return m, m.setFocus((m.focus - 1 + len(m.inputs)) % len(m.inputs))
	}

	return m.updateFocused(msg)
}

// updateFocused forwards msg to the focused input and mirrors a changed
// value into the form, which clears that field's error.
func (m RegisterModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	before := m.inputs[m.focus].Value()

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	if after := m.inputs[m.focus].Value(); after != before {
		_ = m.form.Set(registration.Fields[m.focus], after)
	}
	return m, cmd
}

func (m *RegisterModel) setFocus(index int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = index
	return m.inputs[m.focus].Focus()
}

func (m *RegisterModel) focusFirstError() tea.Cmd {
	for i, field := range registration.Fields {
		if m.form.Error(field) != nil {
			return m.setFocus(i)
		}
	}
	return nil
}

func (m RegisterModel) View() string {
	var b strings.Builder
	b.WriteString(formTitleStyle.Render("Register robot"))
	b.WriteString("\n")

	for i, field := range registration.Fields {
		b.WriteString(fieldLabel.Render(field.Label()))
		b.WriteString("\n")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if err := m.form.Error(field); err != nil {
			b.WriteString(fieldError.Render(err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	help := []string{}
	for _, binding := range []key.Binding{m.keys.Next, m.keys.Submit, m.keys.Cancel} {
		h := binding.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	b.WriteString(helpStyle.Render(strings.Join(help, " • ")))
	return b.String()
}
