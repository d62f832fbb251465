package services

import (
	"context"

	"github.com/prismmail/prism-tui/internal/api"
)

// AccountAPI is the slice of the REST client the account service uses.
type AccountAPI interface {
	ListAccounts(ctx context.Context) ([]api.AccountConnection, error)
}

// AccountServiceImpl implements AccountService
type AccountServiceImpl struct {
	client AccountAPI
}

// NewAccountService creates a new account service
func NewAccountService(client AccountAPI) *AccountServiceImpl {
	return &AccountServiceImpl{client: client}
}

// ListAccounts returns every configured account. Zero accounts is a valid,
// displayable state, not an error.
func (s *AccountServiceImpl) ListAccounts(ctx context.Context) ([]api.AccountConnection, error) {
	accounts, err := s.client.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []api.AccountConnection{}
	}
	return accounts, nil
}

// ActiveAccounts returns only accounts flagged active by the backend.
func (s *AccountServiceImpl) ActiveAccounts(ctx context.Context) ([]api.AccountConnection, error) {
	accounts, err := s.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]api.AccountConnection, 0, len(accounts))
	for _, a := range accounts {
		if a.IsActive {
			active = append(active, a)
		}
	}
	return active, nil
}
