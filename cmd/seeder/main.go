package main

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/club-stats/internal/club"
	"github.com/mauv0809/club-stats/internal/config"
	"github.com/mauv0809/club-stats/internal/database"
	"github.com/spf13/cobra"
)

var (
	numPlayers int
	numMatches int
	reset      bool
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Fill the club database with demo players, matches and fund movements",
	Run: func(cmd *cobra.Command, args []string) {
		seed(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&numPlayers, "players", 14, "Number of players to create")
	rootCmd.Flags().IntVar(&numMatches, "matches", 40, "Number of matches to create")
	rootCmd.Flags().BoolVar(&reset, "reset", false, "Clear existing club data first")
}

var (
	firstNames = []string{"An", "Binh", "Cuong", "Dung", "Giang", "Hai", "Khanh", "Long", "Minh", "Nam", "Phuc", "Quang", "Son", "Tuan", "Viet"}
	lastNames  = []string{"Nguyen", "Tran", "Le", "Pham", "Hoang", "Vu", "Dang", "Bui"}
	positions  = []club.Position{club.PositionGoalkeeper, club.PositionDefender, club.PositionMidfielder, club.PositionForward}
	venues     = []string{"Riverside Pitch", "North Park", "Community Arena"}
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Fatal(err)
	}
}

func seed(ctx context.Context) {
	log.Info("Starting database seeder...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	db, teardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := club.New(db)
	if reset {
		if err := store.Clear(ctx); err != nil {
			log.Fatalf("Failed to clear club data: %s", err)
		}
		log.Info("Cleared existing club data.")
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	startTime := time.Now()

	players := seedPlayers(rng, numPlayers)
	if err := store.UpsertPlayers(ctx, players); err != nil {
		log.Fatalf("Failed to insert players: %s", err)
	}
	log.Info("Inserted players", "count", len(players))

	balance := 0.0
	for i := 0; i < numMatches; i++ {
		match := seedMatch(rng, players, startTime.AddDate(0, 0, -7*(numMatches-i)))
		if err := store.UpsertMatch(ctx, match); err != nil {
			log.Fatalf("Failed to insert match %s: %s", match.ID, err)
		}
		for _, tx := range matchTransactions(match) {
			if err := store.AddFundTransaction(ctx, tx); err != nil {
				log.Fatalf("Failed to insert transaction for match %s: %s", match.ID, err)
			}
			if tx.Type == club.TransactionIncome {
				balance += tx.Amount
			} else {
				balance -= tx.Amount
			}
		}
		if (i+1)%10 == 0 {
			log.Info("Inserted matches", "completed", i+1, "total", numMatches)
		}
	}

	if err := store.SetFundBalance(ctx, balance); err != nil {
		log.Fatalf("Failed to set fund balance: %s", err)
	}

	log.Info("Successfully seeded club data.", "balance", balance, "duration", time.Since(startTime))
}

func seedPlayers(rng *rand.Rand, n int) []club.Player {
	players := make([]club.Player, 0, n)
	for i := 0; i < n; i++ {
		players = append(players, club.Player{
			ID:        uuid.NewString(),
			FirstName: firstNames[i%len(firstNames)],
			LastName:  lastNames[rng.Intn(len(lastNames))],
			Position:  positions[i%len(positions)],
			CreatedAt: time.Now().UTC(),
		})
	}
	return players
}

func seedMatch(rng *rand.Rand, players []club.Player, date time.Time) club.Match {
	shuffled := append([]club.Player(nil), players...)
	rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
	half := len(shuffled) / 2
	teamA := club.Team{Name: "Bibs", Players: shuffled[:half]}
	teamB := club.Team{Name: "Shirts", Players: shuffled[half:]}

	result := club.Result{ScoreA: rng.Intn(5), ScoreB: rng.Intn(5)}
	result.Goals = append(goalsFor(rng, teamA.Players, club.SideA, result.ScoreA), goalsFor(rng, teamB.Players, club.SideB, result.ScoreB)...)
	if rng.Intn(3) == 0 && len(shuffled) > 0 {
		result.YellowCards = []club.Card{{PlayerID: shuffled[rng.Intn(len(shuffled))].ID, Side: club.SideA, Minute: rng.Intn(90) + 1}}
	}

	fees := float64(len(shuffled)) * 50_000
	finances := club.Finances{
		Revenue:  club.Revenue{PlayerFees: fees},
		Expenses: club.Expenses{FieldRental: 400_000, Referee: 100_000},
	}
	finances.TotalRevenue = finances.Revenue.PlayerFees + finances.Revenue.Sponsorship + finances.Revenue.Other
	finances.TotalExpenses = finances.Expenses.FieldRental + finances.Expenses.Referee + finances.Expenses.Equipment + finances.Expenses.Other
	finances.NetProfit = finances.TotalRevenue - finances.TotalExpenses

	return club.Match{
		ID:       uuid.NewString(),
		Date:     date.UTC(),
		Venue:    venues[rng.Intn(len(venues))],
		TeamA:    teamA,
		TeamB:    teamB,
		Result:   result,
		Finances: finances,
	}
}

func goalsFor(rng *rand.Rand, team []club.Player, side club.Side, n int) []club.Goal {
	if len(team) == 0 {
		return nil
	}
	goals := make([]club.Goal, 0, n)
	for i := 0; i < n; i++ {
		goal := club.Goal{PlayerID: team[rng.Intn(len(team))].ID, Side: side, Minute: rng.Intn(90) + 1}
		if assist := team[rng.Intn(len(team))].ID; assist != goal.PlayerID {
			goal.AssistID = assist
		}
		goals = append(goals, goal)
	}
	return goals
}

func matchTransactions(m club.Match) []club.FundTransaction {
	note := fmt.Sprintf("Match %s", m.Date.Format(time.DateOnly))
	return []club.FundTransaction{
		{ID: uuid.NewString(), Type: club.TransactionIncome, Amount: m.Finances.TotalRevenue, Category: "player_fees", Date: m.Date, Description: note, CreatedBy: "seeder", CreatedAt: m.Date},
		{ID: uuid.NewString(), Type: club.TransactionExpense, Amount: m.Finances.Expenses.FieldRental, Category: "field_rental", Date: m.Date, Description: note, CreatedBy: "seeder", CreatedAt: m.Date},
		{ID: uuid.NewString(), Type: club.TransactionExpense, Amount: m.Finances.Expenses.Referee, Category: "referee", Date: m.Date, Description: note, CreatedBy: "seeder", CreatedAt: m.Date},
	}
}
