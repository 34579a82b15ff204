package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/lmercier/tir-tracker/internal/apiclient"
	"github.com/spf13/cobra"
)

func init() {
	recordCmd.Flags().Float64("x", 0, "Horizontal impact coordinate relative to target center")
	recordCmd.Flags().Float64("y", 0, "Vertical impact coordinate relative to target center")

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(addPlayerCmd)
	rootCmd.AddCommand(removePlayerCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(metricsCmd)
}

func client() *apiclient.HTTPClient {
	c := apiclient.NewClient(host)
	if token != "" {
		c.SetToken(token)
	}
	return c
}

// printJSON renders an API result for the terminal.
func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Exchange credentials for a bearer token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := client().Login(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Printf("Logged in as %s\n", resp.User.Username)
		fmt.Printf("Token: %s\n", resp.Token)
		fmt.Println("Pass it to mutating commands with --token")
		return nil
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List registered tireurs with their aggregates",
	RunE: func(cmd *cobra.Command, args []string) error {
		players, err := client().ListPlayers(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(players)
	},
}

var addPlayerCmd = &cobra.Command{
	Use:   "add-player <name> [totalShots]",
	Short: "Register a new tireur",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		totalShots := 0
		if len(args) == 2 {
			parsed, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid totalShots %q: %w", args[1], err)
			}
			totalShots = parsed
		}
		player, err := client().CreatePlayer(cmd.Context(), args[0], totalShots)
		if err != nil {
			return err
		}
		return printJSON(player)
	},
}

var removePlayerCmd = &cobra.Command{
	Use:   "remove-player <id>",
	Short: "Remove a tireur and their recorded shots",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := client().DeletePlayer(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed player %s\n", args[0])
		return nil
	},
}

var recordCmd = &cobra.Command{
	Use:   "record <playerId> <score>",
	Short: "Record a shot for a tireur",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid score %q: %w", args[1], err)
		}

		req := apiclient.ScoreRequest{PlayerID: args[0], Score: value}
		if cmd.Flags().Changed("x") && cmd.Flags().Changed("y") {
			x, _ := cmd.Flags().GetFloat64("x")
			y, _ := cmd.Flags().GetFloat64("y")
			req.X = &x
			req.Y = &y
		}

		score, err := client().RecordScore(cmd.Context(), req)
		if err != nil {
			return err
		}
		return printJSON(score)
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset <playerId>",
	Short: "Reset a tireur's score sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		player, err := client().ResetScores(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(player)
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the current ranking",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/leaderboard")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

func performGetRequest(endpoint string) error {
	url := host + endpoint
	fmt.Printf("Making request to %s\n", url)

	resp, err := http.Get(url)
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
