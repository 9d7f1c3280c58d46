package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/splitledger/internal/domain"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "splitledger-cli",
		Short: "SplitLedger CLI tool",
		Long:  `A command line interface for interacting with the SplitLedger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the SplitLedger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	balancesCmd := &cobra.Command{
		Use:   "balances <group-id>",
		Short: "Show net balances for a group",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalances(args[0])
		},
	}

	settleCmd := &cobra.Command{
		Use:   "settle <group-id>",
		Short: "Show the settlement plan for a group",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showSettlement(args[0])
		},
	}

	var planFile string
	planCmd := &cobra.Command{
		Use:   "plan",
		Short: "Compute a settlement plan offline from a balances file",
		Long:  `Reads a JSON file mapping member IDs to signed net balances and prints the transfers that settle them. No server required.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return planOffline(cmd.OutOrStdout(), planFile)
		},
	}
	planCmd.Flags().StringVar(&planFile, "file", "", "Path to balances JSON file")
	planCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(balancesCmd, settleCmd, planCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func showBalances(groupID string) {
	body, ok := apiGet("/api/v1/groups/" + groupID + "/balances")
	if !ok {
		os.Exit(1)
	}

	var result struct {
		GroupID  string            `json:"group_id"`
		Version  int64             `json:"version"`
		Balances map[string]string `json:"balances"`
		Drift    string            `json:"drift"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Group %s (version %d)\n", result.GroupID, result.Version)

	members := make([]string, 0, len(result.Balances))
	for id := range result.Balances {
		members = append(members, id)
	}
	sort.Strings(members)

	for _, id := range members {
		fmt.Printf("  %-20s %s\n", id, result.Balances[id])
	}

	if result.Drift != "" && result.Drift != "0" {
		fmt.Printf("Drift: %s\n", result.Drift)
	}
}

func showSettlement(groupID string) {
	body, ok := apiGet("/api/v1/groups/" + groupID + "/settlement")
	if !ok {
		os.Exit(1)
	}

	var result struct {
		GroupID      string `json:"group_id"`
		Transactions []struct {
			FromMemberID string `json:"from_member_id"`
			ToMemberID   string `json:"to_member_id"`
			Amount       string `json:"amount"`
		} `json:"transactions"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	if len(result.Transactions) == 0 {
		fmt.Println("Nothing to settle")
		return
	}

	for _, tx := range result.Transactions {
		fmt.Printf("  %s -> %s: %s\n", tx.FromMemberID, tx.ToMemberID, tx.Amount)
	}
}

func apiGet(path string) ([]byte, bool) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		return nil, false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Request failed (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		return nil, false
	}

	return body, true
}

func planOffline(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read balances file: %w", err)
	}

	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse balances file: %w", err)
	}

	balances := make(domain.Balances, len(raw))
	for id, v := range raw {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("invalid balance for %s: %w", id, err)
		}
		balances[id] = d
	}

	plan := domain.ComputeSettlement(balances)
	if len(plan) == 0 {
		fmt.Fprintln(out, "Nothing to settle")
		return nil
	}

	for _, tx := range plan {
		fmt.Fprintf(out, "%s -> %s: %s\n", tx.FromMemberID, tx.ToMemberID, tx.Amount)
	}

	return nil
}
