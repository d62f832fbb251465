package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/prismmail/prism-tui/internal/api"
	"github.com/prismmail/prism-tui/internal/config"
)

// EmailRenderer formats email summaries for the terminal list and viewer.
type EmailRenderer struct {
	colors config.EmailColors
	// Now is swappable for deterministic tests.
	Now func() time.Time
}

// NewEmailRenderer creates a renderer with the default palette.
func NewEmailRenderer() *EmailRenderer {
	return &EmailRenderer{
		colors: config.DefaultTheme().Email,
		Now:    time.Now,
	}
}

// UpdateFromTheme applies a theme's email colors.
func (er *EmailRenderer) UpdateFromTheme(theme *config.Theme) {
	if theme != nil {
		er.colors = theme.Email
	}
}

// FormatListRow renders one list row sized to maxWidth and picks its color
// from the message state.
func (er *EmailRenderer) FormatListRow(email api.EmailSummary, maxWidth int) (string, tcell.Color) {
	if maxWidth < 20 {
		maxWidth = 20
	}

	icons := er.buildIcons(email)
	date := er.relativeDate(email.Date)
	dateWidth := runewidth.StringWidth(date)

	// Fixed-ish columns: icons | from | subject … date
	fromWidth := maxWidth / 4
	if fromWidth > 28 {
		fromWidth = 28
	}
	from := padRight(truncate(displayFrom(email.From), fromWidth), fromWidth)

	remaining := maxWidth - runewidth.StringWidth(icons) - fromWidth - dateWidth - 3
	if remaining < 8 {
		remaining = 8
	}
	subject := email.Subject
	if strings.TrimSpace(subject) == "" {
		subject = "(no subject)"
	}
	subject = padRight(truncate(subject, remaining), remaining)

	row := fmt.Sprintf("%s %s %s %s", icons, from, subject, date)
	return row, er.rowColor(email)
}

// FormatViewerHeader renders the header block above the message body.
func (er *EmailRenderer) FormatViewerHeader(email api.EmailSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", email.Subject)
	fmt.Fprintf(&b, "From:    %s\n", email.From)
	fmt.Fprintf(&b, "Date:    %s\n", email.Date.Format("Mon, 02 Jan 2006 15:04"))
	fmt.Fprintf(&b, "Folder:  %s", email.Folder)
	if email.HasAttachments {
		b.WriteString("  📎")
	}
	return b.String()
}

func (er *EmailRenderer) buildIcons(email api.EmailSummary) string {
	read := "●"
	if email.IsRead {
		read = " "
	}
	star := " "
	if email.IsStarred {
		star = "★"
	}
	flag := " "
	if email.IsFlagged {
		flag = "⚑"
	}
	attach := " "
	if email.HasAttachments {
		attach = "📎"
	}
	return read + star + flag + attach
}

func (er *EmailRenderer) rowColor(email api.EmailSummary) tcell.Color {
	switch {
	case email.Priority == "high":
		return er.colors.High.Color()
	case email.IsFlagged:
		return er.colors.Flagged.Color()
	case email.IsStarred:
		return er.colors.Starred.Color()
	case !email.IsRead:
		return er.colors.Unread.Color()
	default:
		return er.colors.Read.Color()
	}
}

// relativeDate compresses a timestamp for the list column: clock time today,
// weekday within a week, date otherwise.
func (er *EmailRenderer) relativeDate(t time.Time) string {
	if t.IsZero() {
		return "     "
	}
	now := er.Now()
	switch {
	case sameDay(t, now):
		return t.Format("15:04")
	case now.Sub(t) < 7*24*time.Hour:
		return t.Format("Mon  ")
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("02/01/06")
	}
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// displayFrom strips the address part of "Name <addr>" senders.
func displayFrom(from string) string {
	if i := strings.Index(from, "<"); i > 0 {
		name := strings.TrimSpace(from[:i])
		name = strings.Trim(name, `"`)
		if name != "" {
			return name
		}
	}
	return from
}

func truncate(s string, width int) string {
	return runewidth.Truncate(s, width, "…")
}

func padRight(s string, width int) string {
	pad := width - runewidth.StringWidth(s)
	if pad <= 0 {
		return s
	}
	return s + strings.Repeat(" ", pad)
}
