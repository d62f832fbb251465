package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prismmail/prism-tui/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCountsAPI struct {
	counts *api.UnifiedCounts
	err    error
	calls  int
}

func (f *fakeCountsAPI) UnifiedCounts(context.Context) (*api.UnifiedCounts, error) {
	f.calls++
	return f.counts, f.err
}

func TestCountsServiceImpl_UnifiedCounts_FirstFailureSurfaces(t *testing.T) {
	fetchErr := errors.New("backend down")
	svc := NewCountsService(&fakeCountsAPI{err: fetchErr})

	_, err := svc.UnifiedCounts(context.Background())
	assert.ErrorIs(t, err, fetchErr)
	assert.False(t, svc.HasLiveData())
}

func TestCountsServiceImpl_UnifiedCounts_LastGoodOnFailure(t *testing.T) {
	fake := &fakeCountsAPI{counts: &api.UnifiedCounts{
		Unified: map[string]api.FolderCounts{"inbox": {Unread: 4}},
	}}
	svc := NewCountsService(fake)

	first, err := svc.UnifiedCounts(context.Background())
	require.NoError(t, err)
	require.True(t, svc.HasLiveData())

	// a later transient failure serves the remembered payload instead
	fake.counts, fake.err = nil, errors.New("timeout")
	again, err := svc.UnifiedCounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestCountsServiceImpl_AccountCounts_EmptyID(t *testing.T) {
	svc := NewCountsService(&fakeCountsAPI{})

	_, err := svc.AccountCounts(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCountsServiceImpl_AccountCounts_UnknownAccountIsEmpty(t *testing.T) {
	svc := NewCountsService(&fakeCountsAPI{counts: &api.UnifiedCounts{
		Unified: map[string]api.FolderCounts{"inbox": {Unread: 1}},
		Accounts: map[string]map[string]api.FolderCounts{
			"acct-1": {"inbox": {Unread: 1}},
		},
	}})

	folders, err := svc.AccountCounts(context.Background(), "acct-9")
	require.NoError(t, err)
	assert.NotNil(t, folders)
	assert.Empty(t, folders)
}

func TestCountsServiceImpl_AccountCounts_ExtractsAccountSlice(t *testing.T) {
	svc := NewCountsService(&fakeCountsAPI{counts: &api.UnifiedCounts{
		Accounts: map[string]map[string]api.FolderCounts{
			"acct-1": {"inbox": {Unread: 3, Total: 10}, "sent": {Total: 5}},
		},
	}})

	folders, err := svc.AccountCounts(context.Background(), "acct-1")
	require.NoError(t, err)
	assert.Equal(t, api.FolderCounts{Unread: 3, Total: 10}, folders["inbox"])
	assert.Equal(t, api.FolderCounts{Total: 5}, folders["sent"])
}
