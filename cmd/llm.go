package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingocalm/internal/llm"
	"github.com/abhisek/lingocalm/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect lesson generation requests",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM events",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			events, err := e.store.EventRepo().QueryLLMEvents(ctx, store.QueryOpts{Limit: limit, Purpose: purpose})
			if err != nil {
				return fmt.Errorf("query events: %w", err)
			}

			if len(events) == 0 {
				fmt.Println("No LLM events found.")
				return nil
			}

			fmt.Printf("%-5s  %-19s  %-10s  %-28s  %-6s  %-6s  %-7s  %s\n",
				"ID", "Timestamp", "Purpose", "Model", "In", "Out", "Ms", "OK")
			fmt.Println(strings.Repeat("─", 96))

			for _, ev := range events {
				ok := "✓"
				if !ev.Success {
					ok = "✗"
				}
				fmt.Printf("%-5d  %-19s  %-10s  %-28s  %-6d  %-6d  %-7d  %s\n",
					ev.ID,
					ev.Timestamp.Local().Format("2006-01-02 15:04:05"),
					ev.Purpose,
					truncate(ev.Model, 28),
					ev.InputTokens,
					ev.OutputTokens,
					ev.LatencyMs,
					ok,
				)
			}
			return nil
		})
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "View the full request and response of an LLM event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid ID %q: %w", args[0], err)
		}

		return withEnv(cmd, func(ctx context.Context, e *env) error {
			ev, err := e.store.EventRepo().GetLLMEvent(ctx, id)
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("event %d not found", id)
			}
			if err != nil {
				return fmt.Errorf("get event: %w", err)
			}

			sep := strings.Repeat("─", 60)

			fmt.Printf("ID:        %d\n", ev.ID)
			fmt.Printf("Time:      %s\n", ev.Timestamp.Local().Format("2006-01-02 15:04:05"))
			fmt.Printf("Provider:  %s\n", ev.Provider)
			fmt.Printf("Model:     %s\n", ev.Model)
			fmt.Printf("Purpose:   %s\n", ev.Purpose)
			fmt.Printf("Tokens:    %d in / %d out\n", ev.InputTokens, ev.OutputTokens)
			fmt.Printf("Latency:   %dms\n", ev.LatencyMs)
			fmt.Printf("Success:   %v\n", ev.Success)
			if ev.ErrorMessage != "" {
				fmt.Printf("Error:     %s\n", ev.ErrorMessage)
			}

			for _, part := range []struct{ title, body string }{
				{"REQUEST", ev.RequestBody},
				{"RESPONSE", ev.ResponseBody},
			} {
				fmt.Println()
				fmt.Println(sep)
				fmt.Println(part.title)
				fmt.Println(sep)
				if part.body == "" {
					fmt.Println("(not captured)")
					continue
				}
				fmt.Println(part.body)
			}
			return nil
		})
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated LLM token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(ctx context.Context, e *env) error {
			usage, err := e.store.EventRepo().LLMUsageByPurpose(ctx)
			if err != nil {
				return fmt.Errorf("query usage: %w", err)
			}

			if len(usage) == 0 {
				fmt.Println("No LLM usage recorded yet.")
				return nil
			}

			fmt.Println("Usage by Purpose")
			fmt.Println(strings.Repeat("─", 80))
			fmt.Printf("%-16s  %6s  %6s  %10s  %10s  %10s  %8s\n",
				"Purpose", "Calls", "Failed", "Input", "Output", "Total", "Avg Ms")
			fmt.Println(strings.Repeat("─", 80))

			var totalCalls, totalFailed, totalIn, totalOut int
			for _, u := range usage {
				fmt.Printf("%-16s  %6d  %6d  %10d  %10d  %10d  %8.0f\n",
					truncate(u.Key, 16), u.Requests, u.Failures, u.InputTokens, u.OutputTokens,
					u.InputTokens+u.OutputTokens, u.AvgLatencyMs)
				totalCalls += u.Requests
				totalFailed += u.Failures
				totalIn += u.InputTokens
				totalOut += u.OutputTokens
			}

			fmt.Println(strings.Repeat("─", 80))
			fmt.Printf("%-16s  %6d  %6d  %10d  %10d  %10d\n",
				"TOTAL", totalCalls, totalFailed, totalIn, totalOut, totalIn+totalOut)

			byModel, err := e.store.EventRepo().LLMUsageByModel(ctx)
			if err != nil {
				return fmt.Errorf("query model usage: %w", err)
			}
			printCosts(byModel)
			return nil
		})
	},
}

func printCosts(byModel []store.LLMUsage) {
	if len(byModel) == 0 {
		return
	}

	fmt.Println()
	fmt.Println("Estimated Cost (USD)")
	fmt.Println(strings.Repeat("─", 72))
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n",
		"Model", "Calls", "Input", "Output", "Cost")
	fmt.Println(strings.Repeat("─", 72))

	var totalCost float64
	var unknown []string
	for _, u := range byModel {
		cost := llm.LookupCost(u.Key)
		if cost == nil {
			unknown = append(unknown, u.Key)
			fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
				truncate(u.Key, 32), u.Requests, u.InputTokens, u.OutputTokens, "?")
			continue
		}
		c := cost.Cost(u.InputTokens, u.OutputTokens)
		totalCost += c
		fmt.Printf("%-32s  %6d  %10d  %10d  %10s\n",
			truncate(u.Key, 32), u.Requests, u.InputTokens, u.OutputTokens, formatCost(c))
	}

	fmt.Println(strings.Repeat("─", 72))
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Printf("%-32s  %6s  %10s  %10s  %10s\n", label, "", "", "", formatCost(totalCost))

	if len(unknown) > 0 {
		fmt.Printf("\nPricing unavailable for: %s\n", strings.Join(unknown, ", "))
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Filter by purpose (e.g. lesson)")

	llmCmd.AddCommand(llmListCmd)
	llmCmd.AddCommand(llmViewCmd)
	llmCmd.AddCommand(llmStatsCmd)
}
