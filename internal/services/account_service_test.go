package services

import (
	"context"
	"errors"
	"testing"

	"github.com/prismmail/prism-tui/internal/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAccountAPI struct {
	accounts []api.AccountConnection
	err      error
}

func (f *fakeAccountAPI) ListAccounts(context.Context) ([]api.AccountConnection, error) {
	return f.accounts, f.err
}

func TestAccountServiceImpl_ListAccounts_NilBecomesEmptySlice(t *testing.T) {
	svc := NewAccountService(&fakeAccountAPI{})

	accounts, err := svc.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}

func TestAccountServiceImpl_ListAccounts_PropagatesError(t *testing.T) {
	listErr := errors.New("unreachable")
	svc := NewAccountService(&fakeAccountAPI{err: listErr})

	_, err := svc.ListAccounts(context.Background())
	assert.ErrorIs(t, err, listErr)
}

func TestAccountServiceImpl_ActiveAccounts_FiltersInactive(t *testing.T) {
	svc := NewAccountService(&fakeAccountAPI{accounts: []api.AccountConnection{
		{ID: "a", IsActive: true},
		{ID: "b", IsActive: false},
		{ID: "c", IsActive: true},
	}})

	active, err := svc.ActiveAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "a", active[0].ID)
	assert.Equal(t, "c", active[1].ID)
}
