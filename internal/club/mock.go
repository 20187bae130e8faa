package club

import (
	"context"
	"sync"
)

var _ ClubStore = (*MockStore)(nil)

// MockStore is a mock implementation of the ClubStore interface for testing.
// It is safe for concurrent use. Without a ...Func hook the read methods serve
// the Players, Matches, Transactions and Balance fields.
type MockStore struct {
	mu sync.Mutex

	Players      []Player
	Matches      []Match
	Transactions []FundTransaction
	Balance      float64

	// Spies for method calls
	GetAllPlayersFunc       func(ctx context.Context) ([]Player, error)
	GetAllMatchesFunc       func(ctx context.Context) ([]Match, error)
	GetFundTransactionsFunc func(ctx context.Context) ([]FundTransaction, error)
	GetFundBalanceFunc      func(ctx context.Context) (float64, error)

	// Call records
	GetAllPlayersCalls       int
	GetAllMatchesCalls       int
	GetFundTransactionsCalls int
	UpsertPlayersCalls       [][]Player
	UpsertMatchCalls         []Match
	AddFundTransactionCalls  []FundTransaction
	SetFundBalanceCalls      []float64
	ClearCalls               int
}

// NewMock creates a new mock instance.
func NewMock() *MockStore {
	return &MockStore{}
}

// Reset clears all call records.
func (m *MockStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAllPlayersCalls = 0
	m.GetAllMatchesCalls = 0
	m.GetFundTransactionsCalls = 0
	m.UpsertPlayersCalls = nil
	m.UpsertMatchCalls = nil
	m.AddFundTransactionCalls = nil
	m.SetFundBalanceCalls = nil
	m.ClearCalls = 0
}

func (m *MockStore) GetAllPlayers(ctx context.Context) ([]Player, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAllPlayersCalls++
	if m.GetAllPlayersFunc != nil {
		return m.GetAllPlayersFunc(ctx)
	}
	return append([]Player(nil), m.Players...), nil
}

func (m *MockStore) GetAllMatches(ctx context.Context) ([]Match, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetAllMatchesCalls++
	if m.GetAllMatchesFunc != nil {
		return m.GetAllMatchesFunc(ctx)
	}
	return append([]Match(nil), m.Matches...), nil
}

func (m *MockStore) GetFundTransactions(ctx context.Context) ([]FundTransaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GetFundTransactionsCalls++
	if m.GetFundTransactionsFunc != nil {
		return m.GetFundTransactionsFunc(ctx)
	}
	return append([]FundTransaction(nil), m.Transactions...), nil
}

func (m *MockStore) GetFundBalance(ctx context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetFundBalanceFunc != nil {
		return m.GetFundBalanceFunc(ctx)
	}
	return m.Balance, nil
}

func (m *MockStore) UpsertPlayers(ctx context.Context, players []Player) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertPlayersCalls = append(m.UpsertPlayersCalls, players)
	m.Players = append(m.Players, players...)
	return nil
}

func (m *MockStore) UpsertMatch(ctx context.Context, match Match) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpsertMatchCalls = append(m.UpsertMatchCalls, match)
	m.Matches = append(m.Matches, match)
	return nil
}

func (m *MockStore) AddFundTransaction(ctx context.Context, tx FundTransaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AddFundTransactionCalls = append(m.AddFundTransactionCalls, tx)
	m.Transactions = append(m.Transactions, tx)
	return nil
}

func (m *MockStore) SetFundBalance(ctx context.Context, balance float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SetFundBalanceCalls = append(m.SetFundBalanceCalls, balance)
	m.Balance = balance
	return nil
}

func (m *MockStore) Clear(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClearCalls++
	m.Players = nil
	m.Matches = nil
	m.Transactions = nil
	m.Balance = 0
	return nil
}
