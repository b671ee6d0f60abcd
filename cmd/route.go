package cmd

import (
	"context"
	"fmt"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/edusabi/sabi/internal/mastery"
	"github.com/edusabi/sabi/internal/recommend"
	"github.com/spf13/cobra"
)

var routeCmd = &cobra.Command{
	Use:   "route",
	Short: "Recommend concepts to practice next",
	Long: "Computes the learner's mastery profile over the filtered slice of the\n" +
		"knowledge graph and lists the concepts whose prerequisites are in place,\n" +
		"weakest first.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		learner, _ := cmd.Flags().GetString("learner")
		subject, _ := cmd.Flags().GetString("subject")
		grade, _ := cmd.Flags().GetString("grade")
		max, _ := cmd.Flags().GetInt("max")

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
		engine := recommend.NewEngine(g, recommend.DefaultThresholds())

		f := graph.Filter{Subject: subject, Grade: grade}
		profile, err := svc.Profile(ctx, learner, grade, f)
		if err != nil {
			return fmt.Errorf("build mastery profile: %w", err)
		}

		route := engine.RecommendRoute(profile, g.Filtered(f), max)
		if len(route) == 0 {
			fmt.Println("No concepts are ready to practice with this filter.")
			return nil
		}

		fmt.Printf("Recommended for %s:\n", learner)
		for i, id := range route {
			c, err := g.Get(id)
			if err != nil {
				return err
			}
			fmt.Printf("%2d. %-12s %-40s %.0f%%\n", i+1, c.ID, c.Name, profile[id]*100)
		}
		return nil
	},
}

func init() {
	routeCmd.Flags().String("subject", "", "Restrict to a subject (materia)")
	routeCmd.Flags().String("grade", "", "Restrict to a grade tag (año)")
	routeCmd.Flags().Int("max", 4, "Maximum number of recommendations")
}
