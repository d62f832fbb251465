package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prismmail/prism-tui/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMailAPI records the last call made through the MailAPI slice.
type fakeMailAPI struct {
	listResult  []api.EmailSummary
	listErr     error
	lastFolder  string
	lastAccount string
	lastID      string
	lastUpdates api.EmailUpdates
	lastMsg     api.OutgoingMessage
	err         error
}

func (f *fakeMailAPI) ListMail(_ context.Context, folder, accountID string) ([]api.EmailSummary, error) {
	f.lastFolder, f.lastAccount = folder, accountID
	return f.listResult, f.listErr
}

func (f *fakeMailAPI) UpdateMail(_ context.Context, id string, updates api.EmailUpdates) error {
	f.lastID, f.lastUpdates = id, updates
	return f.err
}

func (f *fakeMailAPI) ToggleStar(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeMailAPI) Archive(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeMailAPI) Delete(_ context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeMailAPI) SendMail(_ context.Context, msg api.OutgoingMessage) error {
	f.lastMsg = msg
	return f.err
}

func TestMailServiceImpl_ListMail_EmptyFolder(t *testing.T) {
	svc := NewMailService(&fakeMailAPI{})

	_, err := svc.ListMail(context.Background(), "  ", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMailServiceImpl_ListMail_NilBecomesEmptySlice(t *testing.T) {
	svc := NewMailService(&fakeMailAPI{listResult: nil})

	emails, err := svc.ListMail(context.Background(), "inbox", "acct-1")
	require.NoError(t, err)
	assert.NotNil(t, emails)
	assert.Empty(t, emails)
}

func TestMailServiceImpl_ListMail_PassesScope(t *testing.T) {
	fake := &fakeMailAPI{}
	svc := NewMailService(fake)

	_, err := svc.ListMail(context.Background(), "archive", "acct-2")
	require.NoError(t, err)
	assert.Equal(t, "archive", fake.lastFolder)
	assert.Equal(t, "acct-2", fake.lastAccount)
}

func TestMailServiceImpl_MarkRead_EmptyID(t *testing.T) {
	svc := NewMailService(&fakeMailAPI{})

	assert.ErrorIs(t, svc.MarkRead(context.Background(), "", true), ErrInvalidMessageID)
}

func TestMailServiceImpl_MarkRead_SendsOnlyReadField(t *testing.T) {
	fake := &fakeMailAPI{}
	svc := NewMailService(fake)

	require.NoError(t, svc.MarkRead(context.Background(), "m1", true))
	assert.Equal(t, "m1", fake.lastID)
	require.NotNil(t, fake.lastUpdates.IsRead)
	assert.True(t, *fake.lastUpdates.IsRead)
	assert.Nil(t, fake.lastUpdates.IsFlagged)
}

func TestMailServiceImpl_ToggleFlag_SendsOnlyFlagField(t *testing.T) {
	fake := &fakeMailAPI{}
	svc := NewMailService(fake)

	require.NoError(t, svc.ToggleFlag(context.Background(), "m1", false))
	require.NotNil(t, fake.lastUpdates.IsFlagged)
	assert.False(t, *fake.lastUpdates.IsFlagged)
	assert.Nil(t, fake.lastUpdates.IsRead)
}

func TestMailServiceImpl_Mutations_EmptyID(t *testing.T) {
	svc := NewMailService(&fakeMailAPI{})
	ctx := context.Background()

	assert.ErrorIs(t, svc.ToggleStar(ctx, " "), ErrInvalidMessageID)
	assert.ErrorIs(t, svc.Archive(ctx, ""), ErrInvalidMessageID)
	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrInvalidMessageID)
	assert.ErrorIs(t, svc.ToggleFlag(ctx, "", true), ErrInvalidMessageID)
}

func TestMailServiceImpl_Send_EmptyRecipient(t *testing.T) {
	svc := NewMailService(&fakeMailAPI{})

	err := svc.Send(context.Background(), api.OutgoingMessage{Subject: "hi"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMailServiceImpl_Send_ForwardsMessage(t *testing.T) {
	fake := &fakeMailAPI{}
	svc := NewMailService(fake)

	msg := api.OutgoingMessage{AccountID: "acct-1", To: "a@example.com", Subject: "hello", Body: "body"}
	require.NoError(t, svc.Send(context.Background(), msg))
	assert.Equal(t, msg, fake.lastMsg)
}

func TestMailServiceImpl_Send_PropagatesClientError(t *testing.T) {
	remoteErr := errors.New("smtp relay down")
	svc := NewMailService(&fakeMailAPI{err: remoteErr})

	err := svc.Send(context.Background(), api.OutgoingMessage{To: "a@example.com"})
	assert.ErrorIs(t, err, remoteErr)
}
