package cmd

import (
	"context"
	"fmt"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/edusabi/sabi/internal/llm"
	"github.com/edusabi/sabi/internal/mastery"
	"github.com/edusabi/sabi/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		learner, _ := cmd.Flags().GetString("learner")
		subject, _ := cmd.Flags().GetString("subject")
		grade, _ := cmd.Flags().GetString("grade")
		all, _ := cmd.Flags().GetBool("all")

		g, err := loadGraph(cmd)
		if err != nil {
			return err
		}
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc := mastery.NewService(g, st.Mastery(), st.Answers(), mastery.DefaultConfig())

		f := graph.Filter{Subject: subject, Grade: grade}
		sum, err := svc.Summarize(ctx, learner, f, !all)
		if err != nil {
			return fmt.Errorf("summarize mastery: %w", err)
		}

		fmt.Printf("Mastery for %s", learner)
		if subject != "" {
			fmt.Printf(" (%s)", subject)
		}
		fmt.Println()

		if len(sum.Weakest) == 0 {
			fmt.Println("No attempted concepts yet. Answer some quizzes first.")
		} else {
			fmt.Printf("Average: %.0f%%\n\nWeakest concepts:\n", sum.Average*100)
			for _, e := range sum.Weakest {
				fmt.Printf("  %-12s %-40s %.0f%%  (%d attempts)\n",
					e.Concept.ID, e.Concept.Name, e.Probability*100, e.Attempts)
			}
		}

		return printLLMUsage(ctx, st)
	},
}

func init() {
	statsCmd.Flags().String("subject", "", "Restrict to a subject (materia)")
	statsCmd.Flags().String("grade", "", "Restrict to a grade tag (año)")
	statsCmd.Flags().Bool("all", false, "Include concepts with no attempts")
}

// printLLMUsage reports per-model token totals and an estimated cost from
// the embedded pricing table.
func printLLMUsage(ctx context.Context, st *store.Store) error {
	usage, err := st.Events().UsageSummary(ctx)
	if err != nil {
		return fmt.Errorf("llm usage summary: %w", err)
	}
	if len(usage) == 0 {
		return nil
	}

	fmt.Println("\nLLM usage:")
	fmt.Printf("  %-28s %-6s %-10s %-10s %s\n", "Model", "Reqs", "In", "Out", "Est. cost")
	for _, u := range usage {
		cost := "n/a"
		if c := llm.LookupCost(u.Model); c != nil {
			cost = fmt.Sprintf("$%.4f", c.Cost(u.InputTokens, u.OutputTokens))
		}
		fmt.Printf("  %-28s %-6d %-10d %-10d %s\n",
			u.Model, u.Requests, u.InputTokens, u.OutputTokens, cost)
	}
	return nil
}
