package render

import (
	"strings"
	"testing"
	"time"

	"github.com/prismmail/prism-tui/internal/api"
	"github.com/prismmail/prism-tui/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedNowRenderer() *EmailRenderer {
	er := NewEmailRenderer()
	er.Now = func() time.Time {
		return time.Date(2026, time.August, 28, 14, 0, 0, 0, time.UTC)
	}
	return er
}

func TestEmailRenderer_FormatListRow_Icons(t *testing.T) {
	er := fixedNowRenderer()
	email := api.EmailSummary{
		From:           "Avery <avery@example.com>",
		Subject:        "status update",
		IsStarred:      true,
		IsFlagged:      true,
		HasAttachments: true,
	}

	row, _ := er.FormatListRow(email, 80)
	assert.Contains(t, row, "●", "unread dot")
	assert.Contains(t, row, "★")
	assert.Contains(t, row, "⚑")
	assert.Contains(t, row, "📎")

	email.IsRead = true
	row, _ = er.FormatListRow(email, 80)
	assert.NotContains(t, row, "●")
}

func TestEmailRenderer_FormatListRow_SenderNameOnly(t *testing.T) {
	er := fixedNowRenderer()

	row, _ := er.FormatListRow(api.EmailSummary{From: `"Avery Quinn" <avery@example.com>`, Subject: "hi"}, 80)
	assert.Contains(t, row, "Avery Quinn")
	assert.NotContains(t, row, "avery@example.com")
}

func TestEmailRenderer_FormatListRow_EmptySubjectPlaceholder(t *testing.T) {
	er := fixedNowRenderer()

	row, _ := er.FormatListRow(api.EmailSummary{From: "a@example.com", Subject: "   "}, 80)
	assert.Contains(t, row, "(no subject)")
}

func TestEmailRenderer_FormatListRow_TruncatesLongSubject(t *testing.T) {
	er := fixedNowRenderer()
	email := api.EmailSummary{
		From:    "a@example.com",
		Subject: strings.Repeat("long subject ", 30),
	}

	row, _ := er.FormatListRow(email, 60)
	assert.Contains(t, row, "…")
}

func TestEmailRenderer_RowColorPrecedence(t *testing.T) {
	er := fixedNowRenderer()
	palette := config.DefaultTheme().Email

	tests := []struct {
		name  string
		email api.EmailSummary
		want  config.Color
	}{
		{"high priority beats everything", api.EmailSummary{Priority: "high", IsFlagged: true, IsStarred: true}, palette.High},
		{"flagged beats starred", api.EmailSummary{IsFlagged: true, IsStarred: true}, palette.Flagged},
		{"starred beats unread", api.EmailSummary{IsStarred: true}, palette.Starred},
		{"unread", api.EmailSummary{}, palette.Unread},
		{"read", api.EmailSummary{IsRead: true}, palette.Read},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, color := er.FormatListRow(tt.email, 80)
			assert.Equal(t, tt.want.Color(), color)
		})
	}
}

func TestEmailRenderer_RelativeDate(t *testing.T) {
	er := fixedNowRenderer()
	now := er.Now()

	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{"today shows clock time", now.Add(-3 * time.Hour), "11:00"},
		{"this week shows weekday", now.Add(-2 * 24 * time.Hour), "Wed  "},
		{"this year shows month and day", now.Add(-60 * 24 * time.Hour), "Jun 29"},
		{"older shows full date", time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC), "05/03/24"},
		{"zero time blanks the column", time.Time{}, "     "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, er.relativeDate(tt.date))
		})
	}
}

func TestEmailRenderer_FormatViewerHeader(t *testing.T) {
	er := fixedNowRenderer()
	email := api.EmailSummary{
		From:           "avery@example.com",
		Subject:        "quarterly numbers",
		Date:           time.Date(2026, time.August, 27, 9, 30, 0, 0, time.UTC),
		Folder:         "inbox",
		HasAttachments: true,
	}

	header := er.FormatViewerHeader(email)
	lines := strings.Split(header, "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Subject: quarterly numbers", lines[0])
	assert.Contains(t, lines[2], "Thu, 27 Aug 2026 09:30")
	assert.Contains(t, lines[3], "inbox")
	assert.Contains(t, lines[3], "📎")
}

func TestEmailRenderer_UpdateFromTheme(t *testing.T) {
	er := fixedNowRenderer()
	theme := config.DefaultTheme()
	theme.Email.Unread = "#123456"
	er.UpdateFromTheme(theme)

	_, color := er.FormatListRow(api.EmailSummary{}, 80)
	assert.Equal(t, config.Color("#123456").Color(), color)

	// nil themes leave the palette alone
	er.UpdateFromTheme(nil)
	_, color = er.FormatListRow(api.EmailSummary{}, 80)
	assert.Equal(t, config.Color("#123456").Color(), color)
}

func TestDisplayFrom(t *testing.T) {
	assert.Equal(t, "Avery", displayFrom("Avery <a@example.com>"))
	assert.Equal(t, "Avery Quinn", displayFrom(`"Avery Quinn" <a@example.com>`))
	assert.Equal(t, "a@example.com", displayFrom("a@example.com"))
	assert.Equal(t, "<a@example.com>", displayFrom("<a@example.com>"))
}
