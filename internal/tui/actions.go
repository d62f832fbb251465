package tui

// ShellActions is the capability surface the shell hands to embedded
// components. Components call these instead of reaching into the shell's
// internals, which keeps them testable against a fake shell.
type ShellActions interface {
	// Navigation
	SelectFolder(folderID, accountID string)
	SelectAccount(accountID string)
	OpenMessage(messageID string)
	Back()

	// Overlays
	OpenCompose()
	OpenSettings()
	OpenDrawer()
	CloseDrawer()

	// Data
	Refresh()

	// Feedback
	ShowError(msg string)
	ShowSuccess(msg string)
}
