package main

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/spf13/cobra"
)

var (
	entryType   string
	cachePrefix string
	periodFlags [4]string
)

func init() {
	entriesCmd.Flags().StringVar(&entryType, "type", "player", "Entry type: player, team or financial")
	clearCacheCmd.Flags().StringVar(&cachePrefix, "prefix", "", "Only clear aggregates whose key starts with this prefix")
	periodsCmd.Flags().StringVar(&periodFlags[0], "from1", "", "Start of the first period (YYYY-MM-DD)")
	periodsCmd.Flags().StringVar(&periodFlags[1], "to1", "", "End of the first period (YYYY-MM-DD)")
	periodsCmd.Flags().StringVar(&periodFlags[2], "from2", "", "Start of the second period (YYYY-MM-DD)")
	periodsCmd.Flags().StringVar(&periodFlags[3], "to2", "", "End of the second period (YYYY-MM-DD)")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(teamCmd)
	rootCmd.AddCommand(fundCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(periodsCmd)
	rootCmd.AddCommand(correlationsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(entriesCmd)
	rootCmd.AddCommand(countersCmd)
	rootCmd.AddCommand(clearCacheCmd)
	rootCmd.AddCommand(refreshCmd)
	rootCmd.AddCommand(flushCmd)
	rootCmd.AddCommand(metricsCmd)
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health", nil)
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "Get statistics for every player",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/players", nil)
	},
}

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Get the team statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/team", nil)
	},
}

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "Get the fund analysis",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/fund", nil)
	},
}

var matchCmd = &cobra.Command{
	Use:   "match <id>",
	Short: "Get the analysis of one match",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/matches", url.Values{"id": {args[0]}})
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare <player-id>...",
	Short: "Compare players side by side",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/compare/players", url.Values{"ids": {strings.Join(args, ",")}})
	},
}

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Compare the matches of two date ranges",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, v := range periodFlags {
			if v == "" {
				return fmt.Errorf("--from1, --to1, --from2 and --to2 are required")
			}
		}
		return performGetRequest("/statistics/compare/periods", url.Values{
			"from1": {periodFlags[0]},
			"to1":   {periodFlags[1]},
			"from2": {periodFlags[2]},
			"to2":   {periodFlags[3]},
		})
	},
}

var correlationsCmd = &cobra.Command{
	Use:   "correlations",
	Short: "Get correlations between player metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/correlations", nil)
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the full statistics report",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/export", nil)
	},
}

var entriesCmd = &cobra.Command{
	Use:   "entries",
	Short: "List persisted statistics entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/entries", url.Values{"type": {entryType}})
	},
}

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Get the persisted counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/statistics/counters", nil)
	},
}

var clearCacheCmd = &cobra.Command{
	Use:   "clear-cache",
	Short: "Drop cached statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		var query url.Values
		if cachePrefix != "" {
			query = url.Values{"prefix": {cachePrefix}}
		}
		return performPostRequest("/cache/clear", query)
	},
}

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Reload club data from the store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/scheduled/refresh", nil)
	},
}

var flushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Write the pending statistics batch now",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performPostRequest("/scheduled/flush", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics", nil)
	},
}

func buildURL(endpoint string, query url.Values) string {
	if query == nil {
		query = url.Values{}
	}
	if wait {
		query.Set("wait", "true")
	}
	if len(query) == 0 {
		return host + endpoint
	}
	return host + endpoint + "?" + query.Encode()
}

func performGetRequest(endpoint string, query url.Values) error {
	return performRequest(http.MethodGet, buildURL(endpoint, query))
}

func performPostRequest(endpoint string, query url.Values) error {
	return performRequest(http.MethodPost, buildURL(endpoint, query))
}

func performRequest(method, target string) error {
	fmt.Printf("Making %s request to %s\n", method, target)

	req, err := http.NewRequest(method, target, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}
