package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abonetti/vetprep/internal/storage"
)

var rootCmd = &cobra.Command{
	Use:   "vetprep",
	Short: "AI exam-prep companion for veterinary technicians",
	Long:  "VetPrep — terminal study companion that generates flashcards and quizzes for the veterinary technician curriculum, tracks badges, and gates mock exams behind mastery.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides VETPREP_DB env var)")

	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then config/env, then the default XDG path.
func resolveDBPath(cmd *cobra.Command, configured string) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, storage.EnsureDir(p)
	}
	if configured != "" {
		return configured, storage.EnsureDir(configured)
	}
	return storage.DefaultDBPath()
}
