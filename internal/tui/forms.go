package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// field describes one input in a form.
type field struct {
	label       string
	placeholder string
	value       string
	secret      bool
	readonly    bool
}

// form is a small vertical stack of text inputs with one focus.
type form struct {
	labels   []string
	inputs   []textinput.Model
	readonly []bool
	focus    int
}

func newForm(fields ...field) form {
	f := form{}
	for _, spec := range fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.Placeholder = spec.placeholder
		ti.CharLimit = 128
		ti.Width = 40
		ti.SetValue(spec.value)
		if spec.secret {
			ti.EchoMode = textinput.EchoPassword
			ti.EchoCharacter = '*'
		}
		f.labels = append(f.labels, spec.label)
		f.inputs = append(f.inputs, ti)
		f.readonly = append(f.readonly, spec.readonly)
	}
	if len(f.inputs) > 0 {
		f.skipReadonly(1)
		f.inputs[f.focus].Focus()
	}
	return f
}

// Update forwards msg to the focused input.
func (f *form) Update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// Next moves focus down, wrapping; Prev moves up.
func (f *form) Next() { f.move(1) }
func (f *form) Prev() { f.move(-1) }

func (f *form) move(dir int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	f.skipReadonly(dir)
	f.inputs[f.focus].Focus()
}

// skipReadonly advances focus past readonly fields.
func (f *form) skipReadonly(dir int) {
	for i := 0; i < len(f.inputs) && f.readonly[f.focus]; i++ {
		f.focus = (f.focus + dir + len(f.inputs)) % len(f.inputs)
	}
}

// AtLast reports whether focus sits on the final editable field.
func (f *form) AtLast() bool {
	for i := len(f.inputs) - 1; i >= 0; i-- {
		if !f.readonly[i] {
			return f.focus == i
		}
	}
	return true
}

// Value returns the trimmed value of input i.
func (f *form) Value(i int) string {
	if i < 0 || i >= len(f.inputs) {
		return ""
	}
	return strings.TrimSpace(f.inputs[i].Value())
}

// View renders "label: input" lines.
func (f *form) View() string {
	var b strings.Builder
	for i := range f.inputs {
		fmt.Fprintf(&b, "%-18s %s\n", f.labels[i]+":", f.inputs[i].View())
	}
	return b.String()
}
