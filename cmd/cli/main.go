package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
	year    int
	month   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deposit-cli",
		Short: "Deposit management CLI tool",
		Long:  `A command line interface for the custodial deposit management API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the deposit management API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().IntVar(&year, "year", 0, "Target year (defaults to the current month)")
	rootCmd.PersistentFlags().IntVar(&month, "month", 0, "Target month (defaults to the current month)")

	balanceCmd := &cobra.Command{
		Use:   "balance <resident-id>",
		Short: "Show a resident's month-end balance",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showBalance(args[0])
		},
	}

	statementCmd := &cobra.Command{
		Use:   "statement <resident-id>",
		Short: "Show a resident's monthly statement",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			showStatement(args[0])
		},
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show custodial totals per facility",
		Run: func(cmd *cobra.Command, args []string) {
			showDashboard()
		},
	}

	healthCmd := &cobra.Command{
		Use:   "health",
		Short: "Check API health",
		Run: func(cmd *cobra.Command, args []string) {
			checkHealth()
		},
	}

	rootCmd.AddCommand(balanceCmd, statementCmd, dashboardCmd, healthCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// monthQuery builds the year/month query string from the flags.
func monthQuery() string {
	if year == 0 && month == 0 {
		return ""
	}
	q := url.Values{}
	if year != 0 {
		q.Set("year", fmt.Sprint(year))
	}
	if month != 0 {
		q.Set("month", fmt.Sprint(month))
	}
	return "?" + q.Encode()
}

func get(path string) (map[string]any, error) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return result, nil
}

func showBalance(residentID string) {
	result, err := get("/api/v1/residents/" + url.PathEscape(residentID) + "/balance" + monthQuery())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("Resident: %s\n", result["resident_id"])
	fmt.Printf("Month:    %v-%v\n", result["year"], result["month"])
	fmt.Printf("Balance:  %v\n", result["balance"])
}

func showStatement(residentID string) {
	result, err := get("/api/v1/residents/" + url.PathEscape(residentID) + "/statement" + monthQuery())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("Statement for %s (%v-%v)\n", result["resident_name"], result["year"], result["month"])
	lines, _ := result["lines"].([]any)
	for _, l := range lines {
		line, ok := l.(map[string]any)
		if !ok {
			continue
		}
		fmt.Printf("  %-10v  %-20v  in:%-8v out:%-8v balance:%v\n",
			line["date"], line["label"], line["income"], line["expense"], line["balance"])
	}
	fmt.Printf("Totals: income %v, expense %v\n", result["total_income"], result["total_expense"])
	fmt.Printf("Closing balance: %v\n", result["closing_balance"])
}

func showDashboard() {
	result, err := get("/api/v1/dashboard" + monthQuery())
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	fmt.Printf("Custodial totals for %v-%v\n", result["year"], result["month"])
	facilities, _ := result["facilities"].([]any)
	for _, f := range facilities {
		facility, ok := f.(map[string]any)
		if !ok {
			continue
		}
		fmt.Printf("  %-30v %v\n", facility["facility_name"], facility["total"])
	}
	fmt.Printf("Total: %v\n", result["total"])
}

func checkHealth() {
	result, err := get("/ready")
	if err != nil {
		fmt.Printf("Health check FAILED: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Status:   %v\n", result["status"])
	fmt.Printf("Postgres: %v\n", result["postgres"])
	fmt.Printf("Redis:    %v\n", result["redis"])
}
