package api

import (
	"encoding/json"
	"fmt"
	"time"
)

// Protocol identifies the backend connection type for an account.
type Protocol string

const (
	ProtocolIMAP Protocol = "IMAP"
	ProtocolEWS  Protocol = "EWS"
)

// AccountConnection describes a configured mail account as reported by
// GET /api/accounts.
type AccountConnection struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Protocol Protocol `json:"protocol"`
	IsActive bool     `json:"isActive"`
}

// EmailSummary is a single row of a mail listing.
type EmailSummary struct {
	ID             string    `json:"id"`
	AccountID      string    `json:"accountId"`
	From           string    `json:"from"`
	Subject        string    `json:"subject"`
	Date           time.Time `json:"date"`
	IsRead         bool      `json:"isRead"`
	IsFlagged      bool      `json:"isFlagged"`
	IsStarred      bool      `json:"isStarred"`
	IsArchived     bool      `json:"isArchived"`
	IsDeleted      bool      `json:"isDeleted"`
	Priority       string    `json:"priority"`
	HasAttachments bool      `json:"hasAttachments"`
	Snippet        string    `json:"snippet"`
	Folder         string    `json:"folder"`
}

// EmailUpdates carries the boolean field changes for PATCH /api/mail/{id}.
// Nil fields are left untouched by the server.
type EmailUpdates struct {
	IsRead    *bool `json:"isRead,omitempty"`
	IsFlagged *bool `json:"isFlagged,omitempty"`
}

// OutgoingMessage is the body of POST /api/mail/send.
type OutgoingMessage struct {
	AccountID string `json:"accountId,omitempty"`
	To        string `json:"to"`
	Cc        string `json:"cc,omitempty"`
	Subject   string `json:"subject"`
	Body      string `json:"body"`
}

// FolderCounts holds unread/total counts for a single folder.
type FolderCounts struct {
	Unread int `json:"unread"`
	Total  int `json:"total"`
}

// UnifiedCounts is the payload of GET /api/mail/unified-counts: unified
// per-folder counts plus a per-account breakdown.
type UnifiedCounts struct {
	Unified  map[string]FolderCounts            `json:"unified"`
	Accounts map[string]map[string]FolderCounts `json:"accounts"`
}

// Preferences mirrors GET/POST /api/preferences.
type Preferences struct {
	AutoSync     bool `json:"autoSync"`
	SyncInterval int  `json:"syncInterval"` // seconds
}

// SyncRequest is the body of POST /api/accounts/{id}/sync.
type SyncRequest struct {
	Folder string `json:"folder"`
	Limit  int    `json:"limit"`
}

// PushEventType enumerates WebSocket push event types.
type PushEventType string

const (
	PushEmailSynced   PushEventType = "emailSynced"
	PushEmailReceived PushEventType = "emailReceived"
)

// PushEvent is a single message from the push channel.
type PushEvent struct {
	Type PushEventType   `json:"type"`
	Data json.RawMessage `json:"data"`
}

// envelope is the {success, data} wrapper some endpoints use. Other
// endpoints return the payload bare; decodePayload accepts both.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// decodePayload unmarshals raw into out, unwrapping a {success, data}
// envelope when present.
func decodePayload(raw []byte, out interface{}) error {
	var env envelope
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		if !env.Success {
			if env.Error != "" {
				return fmt.Errorf("api error: %s", env.Error)
			}
			return fmt.Errorf("api error: request not successful")
		}
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(raw, out)
}

// APIError represents a non-2xx response from the backend.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
}

// Temporary reports whether the error is worth retrying.
func (e *APIError) Temporary() bool {
	return e.StatusCode >= 500 || e.StatusCode == 429
}
