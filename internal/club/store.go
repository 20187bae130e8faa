package club

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
)

// New creates a new ClubStore.
func New(db *sql.DB) ClubStore {
	return &store{
		db: db,
	}
}

// storedTeam is the persisted form of a Team: players are kept as references
// and resolved against the players table on read.
type storedTeam struct {
	Name      string   `json:"name"`
	PlayerIDs []string `json:"player_ids"`
}

func (s *store) GetAllPlayers(ctx context.Context) ([]Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.getAllPlayersLocked(ctx)
}

func (s *store) getAllPlayersLocked(ctx context.Context) ([]Player, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, first_name, last_name, position, stats_json, created_at FROM players ORDER BY created_at, id")
	if err != nil {
		log.Error("Failed to query all players", "error", err)
		return nil, err
	}
	defer rows.Close()

	var players []Player
	for rows.Next() {
		var p Player
		var position string
		var statsJSON sql.NullString
		var createdAt int64
		if err := rows.Scan(&p.ID, &p.FirstName, &p.LastName, &position, &statsJSON, &createdAt); err != nil {
			log.Error("Failed to scan player row", "error", err)
			continue
		}
		p.Position = Position(position)
		p.CreatedAt = time.Unix(createdAt, 0).UTC()
		if statsJSON.Valid && statsJSON.String != "" {
			if err := json.Unmarshal([]byte(statsJSON.String), &p.Stats); err != nil {
				log.Error("Failed to unmarshal stats_json", "error", err, "playerID", p.ID)
			}
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// GetAllMatches returns every match ordered by date, oldest first, with team
// rosters resolved to the current player records.
func (s *store) GetAllMatches(ctx context.Context) ([]Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players, err := s.getAllPlayersLocked(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	rows, err := s.db.QueryContext(ctx, "SELECT id, match_date, venue, team_a_json, team_b_json, result_json, finances_json FROM matches ORDER BY match_date, id")
	if err != nil {
		log.Error("Failed to query all matches", "error", err)
		return nil, err
	}
	defer rows.Close()

	var matches []Match
	for rows.Next() {
		match, err := s.scanMatch(rows, byID)
		if err != nil {
			log.Error("Failed to scan match row", "error", err)
			continue
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// scanMatch is a helper function to scan a single match row.
func (s *store) scanMatch(scanner interface{ Scan(...any) error }, players map[string]Player) (Match, error) {
	var match Match
	var date int64
	var teamAJSON, teamBJSON, resultJSON, financesJSON sql.NullString

	err := scanner.Scan(&match.ID, &date, &match.Venue, &teamAJSON, &teamBJSON, &resultJSON, &financesJSON)
	if err != nil {
		return Match{}, err
	}
	match.Date = time.Unix(date, 0).UTC()
	match.TeamA = resolveTeam(match.ID, teamAJSON, players)
	match.TeamB = resolveTeam(match.ID, teamBJSON, players)

	if resultJSON.Valid && resultJSON.String != "" {
		if err := json.Unmarshal([]byte(resultJSON.String), &match.Result); err != nil {
			log.Error("Failed to unmarshal result_json", "error", err, "matchID", match.ID)
		}
	}
	if financesJSON.Valid && financesJSON.String != "" {
		if err := json.Unmarshal([]byte(financesJSON.String), &match.Finances); err != nil {
			log.Error("Failed to unmarshal finances_json", "error", err, "matchID", match.ID)
		}
	}
	return match, nil
}

func resolveTeam(matchID string, raw sql.NullString, players map[string]Player) Team {
	team := Team{Players: []Player{}}
	if !raw.Valid || raw.String == "" {
		return team
	}
	var stored storedTeam
	if err := json.Unmarshal([]byte(raw.String), &stored); err != nil {
		log.Error("Failed to unmarshal team json", "error", err, "matchID", matchID)
		return team
	}
	team.Name = stored.Name
	for _, id := range stored.PlayerIDs {
		p, ok := players[id]
		if !ok {
			log.Warn("Match references unknown player", "matchID", matchID, "playerID", id)
			continue
		}
		team.Players = append(team.Players, p)
	}
	return team
}

// GetFundTransactions returns every transaction ordered by date, oldest first.
func (s *store) GetFundTransactions(ctx context.Context) ([]FundTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, type, amount, category, transaction_date, description, created_by, created_at
		FROM fund_transactions ORDER BY transaction_date, created_at, id
	`)
	if err != nil {
		log.Error("Failed to query fund transactions", "error", err)
		return nil, err
	}
	defer rows.Close()

	var txs []FundTransaction
	for rows.Next() {
		var tx FundTransaction
		var txType string
		var date, createdAt int64
		if err := rows.Scan(&tx.ID, &txType, &tx.Amount, &tx.Category, &date, &tx.Description, &tx.CreatedBy, &createdAt); err != nil {
			log.Error("Failed to scan fund transaction row", "error", err)
			continue
		}
		tx.Type = TransactionType(txType)
		tx.Date = time.Unix(date, 0).UTC()
		tx.CreatedAt = time.Unix(createdAt, 0).UTC()
		txs = append(txs, tx)
	}
	return txs, rows.Err()
}

func (s *store) GetFundBalance(ctx context.Context) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var balance float64
	err := s.db.QueryRowContext(ctx, "SELECT balance FROM fund WHERE id = 1").Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("database error: %w", err)
	}
	return balance, nil
}

// UpsertPlayers inserts new players or updates existing ones in a single transaction.
func (s *store) UpsertPlayers(ctx context.Context, players []Player) error {
	if len(players) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO players (id, first_name, last_name, position, stats_json, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			position = excluded.position,
			stats_json = excluded.stats_json;
	`)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, p := range players {
		statsJSON, err := json.Marshal(p.Stats)
		if err != nil {
			tx.Rollback()
			return err
		}
		if _, err := stmt.ExecContext(ctx, p.ID, p.FirstName, p.LastName, string(p.Position), string(statsJSON), p.CreatedAt.Unix()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to upsert player %s: %w", p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Debug("Upserted players", "count", len(players))
	return nil
}

// UpsertMatch inserts a match or replaces an existing one with the same id.
func (s *store) UpsertMatch(ctx context.Context, match Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	teamAJSON, err := json.Marshal(toStoredTeam(match.TeamA))
	if err != nil {
		return err
	}
	teamBJSON, err := json.Marshal(toStoredTeam(match.TeamB))
	if err != nil {
		return err
	}
	resultJSON, err := json.Marshal(match.Result)
	if err != nil {
		return err
	}
	financesJSON, err := json.Marshal(match.Finances)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO matches (id, match_date, venue, team_a_json, team_b_json, result_json, finances_json)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			match_date = excluded.match_date,
			venue = excluded.venue,
			team_a_json = excluded.team_a_json,
			team_b_json = excluded.team_b_json,
			result_json = excluded.result_json,
			finances_json = excluded.finances_json;
	`, match.ID, match.Date.Unix(), match.Venue, string(teamAJSON), string(teamBJSON), string(resultJSON), string(financesJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert match %s: %w", match.ID, err)
	}
	return nil
}

func toStoredTeam(t Team) storedTeam {
	ids := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		ids = append(ids, p.ID)
	}
	return storedTeam{Name: t.Name, PlayerIDs: ids}
}

func (s *store) AddFundTransaction(ctx context.Context, t FundTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.Type != TransactionIncome && t.Type != TransactionExpense {
		return fmt.Errorf("invalid transaction type %q", t.Type)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fund_transactions (id, type, amount, category, transaction_date, description, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, t.ID, string(t.Type), t.Amount, t.Category, t.Date.Unix(), t.Description, t.CreatedBy, t.CreatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to add fund transaction %s: %w", t.ID, err)
	}
	return nil
}

func (s *store) SetFundBalance(ctx context.Context, balance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO fund (id, balance) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET balance = excluded.balance;
	`, balance)
	return err
}

func (s *store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("Failed to begin transaction for clearing store", "error", err)
		return err
	}
	for _, table := range []string{"matches", "fund_transactions", "fund", "players"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			log.Error("Failed to clear table", "table", table, "error", err)
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
