package club

import "context"

// ClubStore defines the interface for interacting with the club's data.
// Reads feed the analytics engine; the write methods exist for seeding and
// tests, the real CRUD layer lives elsewhere.
type ClubStore interface {
	GetAllPlayers(ctx context.Context) ([]Player, error)
	GetAllMatches(ctx context.Context) ([]Match, error)
	GetFundTransactions(ctx context.Context) ([]FundTransaction, error)
	GetFundBalance(ctx context.Context) (float64, error)

	UpsertPlayers(ctx context.Context, players []Player) error
	UpsertMatch(ctx context.Context, match Match) error
	AddFundTransaction(ctx context.Context, tx FundTransaction) error
	SetFundBalance(ctx context.Context, balance float64) error
	Clear(ctx context.Context) error
}
