package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/fincast/fincast/internal/adapter/http/dto"
	"github.com/fincast/fincast/internal/engine"
)

var (
	planFile    string
	granularity string
	jsonOutput  bool
	serverURL   string
	timeout     time.Duration
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fincast",
		Short: "Financial trajectory forecasting CLI",
		Long:  `Simulates long-horizon account trajectories from a budget plan and analyzes them for balance anomalies.`,
	}

	rootCmd.PersistentFlags().StringVarP(&planFile, "file", "f", "plan.json", "Path to the plan file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON output")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "Base URL of a fincast server; empty runs locally")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout in server mode")

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "Project account balances over the plan horizon",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(cmd.OutOrStdout())
		},
	}
	simulateCmd.Flags().StringVar(&granularity, "granularity", "days", "Aggregation level: days, months or years")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Detect anomalies and derive corrective recommendations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(analyzeCmd)
	return rootCmd
}

func runSimulate(out io.Writer) error {
	plan, err := loadPlan(planFile)
	if err != nil {
		return err
	}

	var resp dto.SimulationResponse
	if serverURL != "" {
		path := "/api/v1/simulations?granularity=" + granularity
		if err := postPlan(serverURL+path, plan, &resp); err != nil {
			return err
		}
	} else {
		local, err := localSimulate(plan, granularity)
		if err != nil {
			return err
		}
		resp = *local
	}

	if jsonOutput {
		return printJSON(out, resp)
	}
	printSimulationSummary(out, &resp)
	return nil
}

func runAnalyze(out io.Writer) error {
	plan, err := loadPlan(planFile)
	if err != nil {
		return err
	}

	var resp dto.AnalysisResponse
	if serverURL != "" {
		if err := postPlan(serverURL+"/api/v1/analysis", plan, &resp); err != nil {
			return err
		}
	} else {
		local, err := localAnalyze(plan)
		if err != nil {
			return err
		}
		resp = *local
	}

	if jsonOutput {
		return printJSON(out, resp)
	}
	printAnalysisSummary(out, &resp)
	return nil
}

func loadPlan(path string) (*dto.PlanRequest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}

	var plan dto.PlanRequest
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("parse plan: %w", err)
	}
	return &plan, nil
}

func newLocalEngine() *engine.Engine {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)
	return engine.New(logger, engine.NewULIDGenerator(), nil)
}

func localSimulate(plan *dto.PlanRequest, granularity string) (*dto.SimulationResponse, error) {
	cfg, err := plan.ToSimulationConfig()
	if err != nil {
		return nil, err
	}

	eng := newLocalEngine()
	result, err := eng.SimulateTrajectory(cfg)
	if err != nil {
		return nil, err
	}

	resp := &dto.SimulationResponse{
		Warnings: dto.WarningsFromDomain(result.Warnings),
	}

	switch granularity {
	case "days":
		resp.Days = dto.DaysFromDomain(result.Days)
	case "months":
		resp.Months = dto.MonthsFromDomain(eng.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications))
	case "years":
		months := eng.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
		resp.Years = dto.YearsFromDomain(eng.AggregateYears(months, cfg.Accounts, cfg.Modifications))
	default:
		return nil, fmt.Errorf("unknown granularity %q", granularity)
	}

	return resp, nil
}

func localAnalyze(plan *dto.PlanRequest) (*dto.AnalysisResponse, error) {
	cfg, err := plan.ToSimulationConfig()
	if err != nil {
		return nil, err
	}

	eng := newLocalEngine()
	result, err := eng.SimulateTrajectory(cfg)
	if err != nil {
		return nil, err
	}

	months := eng.AggregateMonths(result.Days, cfg.Accounts, cfg.Modifications)
	years := eng.AggregateYears(months, cfg.Accounts, cfg.Modifications)
	report := eng.AnalyzeAndRecommend(cfg.Accounts, result.Days, years, cfg.IncomeItems, cfg.ExpenseItems)
	chain := eng.BuildModificationChain(cfg.Accounts, report.Recommendations, cfg.IncomeItems, cfg.ExpenseItems)

	resp := dto.AnalysisFromDomain(report, chain, result.Warnings)
	return &resp, nil
}

// postPlan sends the plan to a running server, retrying transient failures
// with exponential backoff.
func postPlan(url string, plan *dto.PlanRequest, result any) error {
	body, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	client := &http.Client{Timeout: timeout}

	operation := func() error {
		resp, err := client.Post(url, "application/json", bytes.NewReader(body))
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return err
		}

		if resp.StatusCode >= 500 {
			return fmt.Errorf("server error %d: %s", resp.StatusCode, payload)
		}
		if resp.StatusCode != http.StatusOK {
			return backoff.Permanent(fmt.Errorf("request rejected %d: %s", resp.StatusCode, payload))
		}

		return json.Unmarshal(payload, result)
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = timeout
	return backoff.Retry(operation, policy)
}

func printJSON(out io.Writer, data any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func printSimulationSummary(out io.Writer, resp *dto.SimulationResponse) {
	switch {
	case len(resp.Days) > 0:
		first, last := resp.Days[0], resp.Days[len(resp.Days)-1]
		fmt.Fprintf(out, "Simulated %d days (%s to %s)\n", len(resp.Days), first.Date, last.Date)
		for _, account := range last.Accounts {
			fmt.Fprintf(out, "  %s: %s\n", account.AccountName, account.Closing)
		}
	case len(resp.Months) > 0:
		fmt.Fprintf(out, "Simulated %d months\n", len(resp.Months))
		last := resp.Months[len(resp.Months)-1]
		for _, account := range last.Accounts {
			fmt.Fprintf(out, "  %s: %s\n", account.AccountName, account.Closing)
		}
	case len(resp.Years) > 0:
		fmt.Fprintf(out, "Simulated %d years\n", len(resp.Years))
		last := resp.Years[len(resp.Years)-1]
		for _, account := range last.Accounts {
			fmt.Fprintf(out, "  %s: %s\n", account.AccountName, account.Closing)
		}
	default:
		fmt.Fprintln(out, "Nothing simulated")
	}

	for _, warning := range resp.Warnings {
		fmt.Fprintf(out, "warning: item %q references unknown account %q\n", warning.ItemDescription, warning.AccountName)
	}
}

func printAnalysisSummary(out io.Writer, resp *dto.AnalysisResponse) {
	if resp.Summary.Healthy {
		fmt.Fprintf(out, "Healthy: no anomalies across %d account(s)\n", resp.Summary.AccountsAnalyzed)
		return
	}

	fmt.Fprintf(out, "Found %d anomaly(ies), %d recommendation(s)\n", resp.Summary.AnomalyCount, resp.Summary.RecommendationCount)
	for _, anomaly := range resp.Anomalies {
		fmt.Fprintf(out, "  [%s] %s on %s (%s -> %s)\n",
			anomaly.Kind, anomaly.AccountName, anomaly.Date, anomaly.BalanceBefore, anomaly.BalanceAfter)
	}
	for _, rec := range resp.Recommendations {
		fmt.Fprintf(out, "  adjust %q on %s to %s/month from %s (recovers %s/month)\n",
			rec.ItemDescription, rec.AccountName, rec.NewAmountMonthly, rec.InterventionDate, rec.MonthlyRecovery)
	}
	if resp.Summary.TotalMonthlyRecovery.IsPositive() {
		fmt.Fprintf(out, "Total monthly recovery: %s\n", resp.Summary.TotalMonthlyRecovery)
	}
}
