package main

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/spf13/cobra"
)

var (
	uploadName       string
	uploadCategory   string
	uploadPointsMode string
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(tournamentsCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(countersCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(uploadCmd)

	uploadCmd.Flags().StringVar(&uploadName, "name", "", "Name of the tournament (required)")
	uploadCmd.Flags().StringVar(&uploadCategory, "category", "", "Tournament category: major, tour, league or supr (required)")
	uploadCmd.Flags().StringVar(&uploadPointsMode, "points-mode", "", "Points mode: calculated (default) or manual")
	uploadCmd.MarkFlagRequired("name")
	uploadCmd.MarkFlagRequired("category")
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Advance pending tournaments through scoring and notification",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/process")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List the players in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/players")
	},
}

var tournamentsCmd = &cobra.Command{
	Use:   "tournaments",
	Short: "List the tournaments in the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/tournaments")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the season standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/standings")
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var countersCmd = &cobra.Command{
	Use:   "counters",
	Short: "Show the persisted lifetime counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics/counters")
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the league store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/clear")
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <results.xlsx>",
	Short: "Upload a tournament results sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		params := url.Values{}
		params.Set("name", uploadName)
		params.Set("category", uploadCategory)
		if uploadPointsMode != "" {
			params.Set("points_mode", uploadPointsMode)
		}

		target := host + "/upload?" + params.Encode()
		fmt.Printf("Uploading %s to %s\n", args[0], target)

		resp, err := http.Post(target, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", bytes.NewReader(data))
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
