package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/prismmail/prism-tui/internal/api"
)

// MailAPI is the slice of the REST client the mail service depends on.
type MailAPI interface {
	ListMail(ctx context.Context, folder, accountID string) ([]api.EmailSummary, error)
	UpdateMail(ctx context.Context, id string, updates api.EmailUpdates) error
	ToggleStar(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	SendMail(ctx context.Context, msg api.OutgoingMessage) error
}

// MailServiceImpl implements MailService
type MailServiceImpl struct {
	client MailAPI
}

// NewMailService creates a new mail service
func NewMailService(client MailAPI) *MailServiceImpl {
	return &MailServiceImpl{client: client}
}

// ListMail returns summaries for a folder; empty accountID selects the
// unified view. A folder that yields no rows is a valid empty listing.
func (s *MailServiceImpl) ListMail(ctx context.Context, folder, accountID string) ([]api.EmailSummary, error) {
	if strings.TrimSpace(folder) == "" {
		return nil, fmt.Errorf("folder cannot be empty: %w", ErrInvalidInput)
	}
	emails, err := s.client.ListMail(ctx, folder, accountID)
	if err != nil {
		return nil, err
	}
	if emails == nil {
		emails = []api.EmailSummary{}
	}
	return emails, nil
}

func (s *MailServiceImpl) MarkRead(ctx context.Context, messageID string, read bool) error {
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("messageID cannot be empty: %w", ErrInvalidMessageID)
	}
	return s.client.UpdateMail(ctx, messageID, api.EmailUpdates{IsRead: &read})
}

func (s *MailServiceImpl) ToggleFlag(ctx context.Context, messageID string, flagged bool) error {
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("messageID cannot be empty: %w", ErrInvalidMessageID)
	}
	return s.client.UpdateMail(ctx, messageID, api.EmailUpdates{IsFlagged: &flagged})
}

func (s *MailServiceImpl) ToggleStar(ctx context.Context, messageID string) error {
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("messageID cannot be empty: %w", ErrInvalidMessageID)
	}
	return s.client.ToggleStar(ctx, messageID)
}

func (s *MailServiceImpl) Archive(ctx context.Context, messageID string) error {
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("messageID cannot be empty: %w", ErrInvalidMessageID)
	}
	return s.client.Archive(ctx, messageID)
}

func (s *MailServiceImpl) Delete(ctx context.Context, messageID string) error {
	if strings.TrimSpace(messageID) == "" {
		return fmt.Errorf("messageID cannot be empty: %w", ErrInvalidMessageID)
	}
	return s.client.Delete(ctx, messageID)
}

// Send validates and dispatches an outgoing message.
func (s *MailServiceImpl) Send(ctx context.Context, msg api.OutgoingMessage) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("recipient cannot be empty: %w", ErrInvalidInput)
	}
	return s.client.SendMail(ctx, msg)
}
