// Package cli builds the command line of the terminal card drill.
package cli

import (
	"github.com/spf13/cobra"
)

// Flags holds all command-line flag values
type Flags struct {
	Driver     string
	DBPath     string
	DBHost     string
	DBName     string
	ProbeDSN   string
	ProbeTable string
	LogFile    string
}

// NewRootCommand creates the root command; run is called with the parsed command
func NewRootCommand(flags *Flags, run func(cmd *cobra.Command) error) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cards",
		Short: "Flash card drill in the terminal",
		Long: `cards shows one word at a time from the terms table.

Press space or enter to reveal the definition, press it again for the next
word. The list wraps around after the last word. Press q to quit.

Examples:
  cards                                  # read cards from PostgreSQL (DB_* env)
  cards --driver sqlite3 --db-path t.db  # read cards from a SQLite file`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd)
		},
	}

	cmd.Flags().StringVar(&flags.Driver, "driver", "", "Database driver (postgres or sqlite3)")
	cmd.Flags().StringVar(&flags.DBPath, "db-path", "", "SQLite database file")
	cmd.Flags().StringVar(&flags.DBHost, "db-host", "", "PostgreSQL host")
	cmd.Flags().StringVar(&flags.DBName, "db-name", "", "PostgreSQL database name")
	cmd.Flags().StringVar(&flags.ProbeDSN, "probe-dsn", "", "Optional foreign database to probe at startup")
	cmd.Flags().StringVar(&flags.ProbeTable, "probe-table", "", "Table counted by the probe")
	cmd.Flags().StringVar(&flags.LogFile, "log-file", flags.LogFile, "Where to write logs while the drill owns the terminal")

	return cmd
}
