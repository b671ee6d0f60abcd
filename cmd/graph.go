package cmd

import (
	"fmt"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/spf13/cobra"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Validate and inspect the knowledge graph files",
	RunE: func(cmd *cobra.Command, args []string) error {
		nodes, _ := cmd.Flags().GetString("nodes")
		edges, _ := cmd.Flags().GetString("edges")

		if err := graph.ValidateFiles(nodes, edges); err != nil {
			return fmt.Errorf("graph validation failed:\n%w", err)
		}

		g, err := loadGraph(cmd)
		if err != nil {
			return err
		}

		concepts := g.Concepts()
		fmt.Printf("Graph OK: %d concepts, %d roots\n", len(concepts), len(g.Roots()))
		fmt.Printf("Subjects: %v\n", g.Subjects())
		fmt.Printf("Grades:   %v\n", g.Grades())

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			fmt.Println()
			for _, c := range concepts {
				fmt.Printf("%-12s depth=%d  %-40s prereqs=%v\n",
					c.ID, g.DepthOf(c.ID), c.Name, g.PrerequisitesOf(c.ID))
			}
		}
		return nil
	},
}

func init() {
	graphCmd.Flags().BoolP("verbose", "v", false, "List every concept with depth and prerequisites")
}
