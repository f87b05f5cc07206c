package grit

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	dbPath  string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "grit",
	Short: "grit logs meals from plain text and tracks them against your calorie targets",
	Long:  "grit estimates nutrition for free-text meal descriptions, keeps a per-day food log, and derives calorie and macro targets from your profile.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file")
}
