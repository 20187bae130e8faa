package club

import (
	"database/sql"
	"sync"
	"time"
)

// store handles all database operations for the club.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Position is a player's preferred playing position.
type Position string

const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionDefender   Position = "defender"
	PositionMidfielder Position = "midfielder"
	PositionForward    Position = "forward"
)

// CareerStats holds a player's lifetime totals as kept by the CRUD layer.
type CareerStats struct {
	TotalMatches   int     `json:"total_matches"`
	Wins           int     `json:"wins"`
	Draws          int     `json:"draws"`
	Losses         int     `json:"losses"`
	GoalsScored    int     `json:"goals_scored"`
	Assists        int     `json:"assists"`
	YellowCards    int     `json:"yellow_cards"`
	RedCards       int     `json:"red_cards"`
	WinRate        float64 `json:"win_rate"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalPenalties float64 `json:"total_penalties"`
}

// Player is a club member.
type Player struct {
	ID        string      `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Position  Position    `json:"position"`
	Stats     CareerStats `json:"stats"`
	CreatedAt time.Time   `json:"created_at"`
}

// Name returns the player's display name.
func (p Player) Name() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}

// Team is one side of a match. Players are snapshots taken when the match was
// recorded.
type Team struct {
	Name    string   `json:"name"`
	Players []Player `json:"players"`
}

// Side identifies team A or team B.
type Side string

const (
	SideA Side = "A"
	SideB Side = "B"
)

// Goal is a single goal event.
type Goal struct {
	PlayerID string `json:"player_id"`
	AssistID string `json:"assist_id,omitempty"`
	Side     Side   `json:"side"`
	Minute   int    `json:"minute"`
}

// Card is a yellow or red card event.
type Card struct {
	PlayerID string `json:"player_id"`
	Side     Side   `json:"side"`
	Minute   int    `json:"minute"`
}

// Result is the outcome of a match.
type Result struct {
	ScoreA      int    `json:"score_a"`
	ScoreB      int    `json:"score_b"`
	Goals       []Goal `json:"goals"`
	YellowCards []Card `json:"yellow_cards"`
	RedCards    []Card `json:"red_cards"`
}

// Revenue breaks down the money a match brought in.
type Revenue struct {
	PlayerFees  float64 `json:"player_fees"`
	Sponsorship float64 `json:"sponsorship"`
	Other       float64 `json:"other"`
}

// Expenses breaks down the cost of a match.
type Expenses struct {
	FieldRental float64 `json:"field_rental"`
	Referee     float64 `json:"referee"`
	Equipment   float64 `json:"equipment"`
	Other       float64 `json:"other"`
}

// Finances is the money side of a match.
type Finances struct {
	Revenue       Revenue  `json:"revenue"`
	Expenses      Expenses `json:"expenses"`
	TotalRevenue  float64  `json:"total_revenue"`
	TotalExpenses float64  `json:"total_expenses"`
	NetProfit     float64  `json:"net_profit"`
}

// Match is a played match between two teams of club members.
type Match struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Venue    string    `json:"venue"`
	TeamA    Team      `json:"team_a"`
	TeamB    Team      `json:"team_b"`
	Result   Result    `json:"result"`
	Finances Finances  `json:"finances"`
}

// TransactionType tells income from expense.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// FundTransaction is a single movement of the club fund.
type FundTransaction struct {
	ID          string          `json:"id"`
	Type        TransactionType `json:"type"`
	Amount      float64         `json:"amount"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
	CreatedBy   string          `json:"created_by"`
	CreatedAt   time.Time       `json:"created_at"`
}

// FundSnapshot is the fund state consumed by analytics: every transaction plus
// the balance reported by the CRUD layer.
type FundSnapshot struct {
	Transactions []FundTransaction `json:"transactions"`
	Balance      float64           `json:"balance"`
}
