package cmd

import (
	"fmt"

	"github.com/edusabi/sabi/internal/graph"
	"github.com/edusabi/sabi/internal/store"
	"github.com/spf13/cobra"
)

// Default graph data files, matching the dataset names Sabi ships with.
const (
	defaultNodesFile = "grafo_conocimiento_NODOS.json"
	defaultEdgesFile = "grafo_conocimiento_ARISTAS.json"
)

var rootCmd = &cobra.Command{
	Use:   "sabi",
	Short: "Adaptive tutoring engine",
	Long: "Sabi — adaptive tutoring engine that tracks concept mastery over a\n" +
		"prerequisite knowledge graph and recommends what to practice next.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SABI_DB env var)")
	rootCmd.PersistentFlags().String("learner", "local", "Learner identifier")
	rootCmd.PersistentFlags().String("nodes", defaultNodesFile, "Path to the concept nodes JSON file")
	rootCmd.PersistentFlags().String("edges", defaultEdgesFile, "Path to the prerequisite edges JSON file")

	rootCmd.AddCommand(routeCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(graphCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then SABI_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the SQLite store for the command.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadGraph builds the knowledge graph from the --nodes/--edges files.
func loadGraph(cmd *cobra.Command) (*graph.Graph, error) {
	nodes, _ := cmd.Flags().GetString("nodes")
	edges, _ := cmd.Flags().GetString("edges")
	g, err := graph.LoadFiles(nodes, edges)
	if err != nil {
		return nil, fmt.Errorf("load knowledge graph: %w", err)
	}
	return g, nil
}
