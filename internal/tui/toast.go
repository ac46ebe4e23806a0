package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type toastKind int

const (
	toastSuccess toastKind = iota
	toastError
)

// toastModel is the one transient message on screen. seq ties the expiry
// tick to the toast it was armed for, so a newer toast is not cleared by an
// older timer.
type toastModel struct {
	kind toastKind
	text string
	seq  int
}

type toastExpiredMsg struct{ seq int }

var (
	toastOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	toastErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// showToast replaces the current toast and arms its auto-dismiss tick.
func (a *App) showToast(kind toastKind, text string) tea.Cmd {
	a.toastSeq++
	a.toast = &toastModel{kind: kind, text: text, seq: a.toastSeq}
	d := time.Duration(a.cfg.UI.ToastSeconds) * time.Second
	if d <= 0 {
		d = 5 * time.Second
	}
	seq := a.toastSeq
	return tea.Tick(d, func(time.Time) tea.Msg { return toastExpiredMsg{seq: seq} })
}

func (a *App) renderToast() string {
	if a.toast == nil {
		return ""
	}
	if a.toast.kind == toastError {
		return toastErrStyle.Render(a.toast.text)
	}
	return toastOKStyle.Render(a.toast.text)
}
