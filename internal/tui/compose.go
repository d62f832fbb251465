package tui

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/derailed/tcell/v2"
	"github.com/derailed/tview"
	"github.com/google/uuid"
	"github.com/prismmail/prism-tui/internal/api"
	"github.com/prismmail/prism-tui/internal/config"
	"github.com/prismmail/prism-tui/internal/services"
)

// autosaveDebounce is how long edits settle before the draft is written.
const autosaveDebounce = 2 * time.Second

// ComposePanel is the full-screen composition overlay. Edits autosave to the
// local draft store; Ctrl+J sends, Escape closes and keeps the draft.
type ComposePanel struct {
	*tview.Flex
	app *App

	header       *tview.Form
	toField      *tview.InputField
	ccField      *tview.InputField
	subjectField *tview.InputField
	body         *BodyEditor
	footer       *tview.TextView

	mu        sync.Mutex
	draftID   string
	accountID string
	dirty     bool
	saveTimer *time.Timer
}

func NewComposePanel(app *App) *ComposePanel {
	c := &ComposePanel{
		Flex: tview.NewFlex().SetDirection(tview.FlexRow),
		app:  app,
	}

	colors := app.GetComponentColors("compose")

	c.toField = tview.NewInputField().SetLabel("To      ")
	c.ccField = tview.NewInputField().SetLabel("Cc      ")
	c.subjectField = tview.NewInputField().SetLabel("Subject ")
	for _, f := range []*tview.InputField{c.toField, c.ccField, c.subjectField} {
		f.SetChangedFunc(func(string) { c.markDirty() })
	}

	c.header = tview.NewForm()
	c.header.AddFormItem(c.toField)
	c.header.AddFormItem(c.ccField)
	c.header.AddFormItem(c.subjectField)
	c.header.SetBorderPadding(0, 0, 1, 1)

	c.body = NewBodyEditor()
	c.body.SetChangedFunc(func(string) { c.markDirty() })

	c.footer = tview.NewTextView().SetDynamicColors(true)
	c.footer.SetText(" [::b]Ctrl+J[-:-:-] send  [::b]Ctrl+S[-:-:-] save draft  [::b]Esc[-:-:-] close")

	c.SetBorder(true).
		SetTitle(" ✉️  Compose ").
		SetTitleAlign(tview.AlignCenter)
	c.AddItem(c.header, 7, 0, true)
	c.AddItem(c.body, 0, 1, false)
	c.AddItem(c.footer, 1, 0, false)

	c.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyCtrlJ:
			c.Send()
			return nil
		case tcell.KeyCtrlS:
			c.saveNow(true)
			return nil
		}
		return event
	})

	c.applyColors(colors)
	return c
}

// ApplyTheme repaints the panel with the current theme.
func (c *ComposePanel) ApplyTheme() {
	c.applyColors(c.app.GetComponentColors("compose"))
}

func (c *ComposePanel) applyColors(colors config.ComponentColors) {
	bg := colors.Background.Color()
	c.SetBackgroundColor(bg)
	c.SetBorderColor(colors.Border.Color())
	c.SetTitleColor(colors.Title.Color())

	c.header.SetBackgroundColor(bg)
	c.header.SetFieldBackgroundColor(bg)
	c.header.SetFieldTextColor(colors.Foreground.Color())
	c.header.SetLabelColor(colors.Title.Color())

	c.body.SetBackgroundColor(bg)
	c.body.SetTextColor(colors.Foreground.Color())

	c.footer.SetBackgroundColor(bg)
	c.footer.SetTextColor(colors.Foreground.Color())
}

// FirstField returns the primitive to focus when the panel opens.
func (c *ComposePanel) FirstField() tview.Primitive {
	return c.header
}

// OpenNew starts a fresh draft scoped to the given account, pre-filling the
// stored signature when one exists.
func (c *ComposePanel) OpenNew(accountID string) {
	c.mu.Lock()
	c.draftID = uuid.NewString()
	c.accountID = accountID
	c.dirty = false
	c.mu.Unlock()

	c.toField.SetText("")
	c.ccField.SetText("")
	c.subjectField.SetText("")
	c.body.SetText("")

	if c.app.draftService == nil {
		return
	}
	go func() {
		sig, ok, err := c.app.draftService.Signature(c.app.ctx, accountID)
		if err != nil || !ok || sig == "" {
			return
		}
		c.app.QueueUpdateDraw(func() {
			if c.body.GetText() == "" {
				c.body.SetText("\n\n-- \n" + sig)
			}
		})
	}()
}

// OpenLatest resumes the most recently kept draft, falling back to a fresh
// draft when none is stored. Closing compose keeps the draft, so this is how
// an interrupted composition comes back.
func (c *ComposePanel) OpenLatest(accountID string) {
	if c.app.draftService == nil {
		c.OpenNew(accountID)
		return
	}
	ctx, cancel := context.WithTimeout(c.app.ctx, 2*time.Second)
	defer cancel()
	drafts, err := c.app.draftService.List(ctx)
	if err != nil || len(drafts) == 0 {
		c.OpenNew(accountID)
		return
	}
	draft, ok, err := c.app.draftService.Load(ctx, drafts[0].ID)
	if err != nil || !ok {
		c.OpenNew(accountID)
		return
	}
	c.openDraft(*draft)
}

func (c *ComposePanel) openDraft(d services.DraftState) {
	c.mu.Lock()
	c.draftID = d.ID
	c.accountID = d.AccountID
	c.dirty = false
	c.mu.Unlock()

	c.toField.SetText(d.To)
	c.ccField.SetText(d.Cc)
	c.subjectField.SetText(d.Subject)
	c.body.SetText(d.Body)
}

// OpenReply starts a draft addressed to the sender of an existing message.
func (c *ComposePanel) OpenReply(email api.EmailSummary) {
	c.OpenNew(email.AccountID)
	c.toField.SetText(email.From)
	subject := email.Subject
	if !strings.HasPrefix(strings.ToLower(subject), "re:") {
		subject = "Re: " + subject
	}
	c.subjectField.SetText(subject)
}

// Close hides the panel, flushing any unsaved edits first.
func (c *ComposePanel) Close() {
	c.saveNow(false)
	c.app.composeOpen = false
	c.app.Pages.HidePage("compose")
	c.app.SetFocus(c.app.views["list"])
}

// markDirty schedules a debounced autosave.
func (c *ComposePanel) markDirty() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dirty = true
	if c.saveTimer != nil {
		c.saveTimer.Stop()
	}
	c.saveTimer = time.AfterFunc(autosaveDebounce, func() { c.saveNow(false) })
}

// saveNow writes the draft if there are unsaved edits. Announced saves also
// confirm in the status bar.
func (c *ComposePanel) saveNow(announce bool) {
	c.mu.Lock()
	if c.saveTimer != nil {
		c.saveTimer.Stop()
		c.saveTimer = nil
	}
	if (!c.dirty && !announce) || c.app.draftService == nil {
		c.mu.Unlock()
		return
	}
	c.dirty = false
	draft := services.DraftState{
		ID:        c.draftID,
		AccountID: c.accountID,
		To:        c.toField.GetText(),
		Cc:        c.ccField.GetText(),
		Subject:   c.subjectField.GetText(),
		Body:      c.body.GetText(),
	}
	c.mu.Unlock()

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.app.draftService.Autosave(ctx, draft); err != nil {
			c.app.logger.Printf("draft autosave failed: %v", err)
			return
		}
		if announce {
			c.app.ShowSuccess("Draft saved")
		}
	}()
}

// Send dispatches the message and, on success, discards the local draft.
func (c *ComposePanel) Send() {
	msg := api.OutgoingMessage{
		AccountID: c.accountID,
		To:        strings.TrimSpace(c.toField.GetText()),
		Cc:        strings.TrimSpace(c.ccField.GetText()),
		Subject:   c.subjectField.GetText(),
		Body:      c.body.GetText(),
	}
	if msg.To == "" {
		c.app.ShowError("Recipient is required")
		return
	}

	draftID := c.draftID
	go func() {
		ctx, cancel := context.WithTimeout(c.app.ctx, c.app.Config.GetRequestTimeout())
		defer cancel()
		if err := c.app.mailService.Send(ctx, msg); err != nil {
			c.app.errorHandler.HandleError(c.app.ctx, err, "Could not send message")
			return
		}
		if c.app.draftService != nil {
			_ = c.app.draftService.Discard(ctx, draftID)
		}
		c.app.QueueUpdateDraw(func() {
			c.Close()
		})
		c.app.ShowSuccess("Message sent")
	}()
}
