package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roivaz/mcp-salesforce/internal/config"
	"github.com/roivaz/mcp-salesforce/internal/db"
	dbmigrate "github.com/roivaz/mcp-salesforce/internal/db/migrate"
)

var rootCmd = &cobra.Command{
	Use:   "auditctl",
	Short: "Manage the tool invocation audit log",
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize migration tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			return manager.Init(cmd.Context())
		})
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or rollback schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			if err := manager.Init(cmd.Context()); err != nil {
				return err
			}
			return manager.Up(cmd.Context())
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		steps, _ := cmd.Flags().GetInt("steps")
		to, _ := cmd.Flags().GetString("to")

		return runWithDatabase(func(database *db.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			n, err := manager.Rollback(cmd.Context(), dbmigrate.RollbackTarget{Steps: steps, To: to})
			fmt.Fprintf(cmd.OutOrStdout(), "rolled back %d migration(s)\n", n)
			return err
		})
	},
}

var statusCmd = &cobra.Command{
	Use:           "status",
	Short:         "Show applied and pending migrations",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			manager, err := newManager(database)
			if err != nil {
				return err
			}
			status, err := manager.Status(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range status {
				state := "pending"
				if v.Applied {
					state = "applied"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", v.Name, state)
			}
			return nil
		})
	},
}

var verifyCmd = &cobra.Command{
	Use:           "verify",
	Short:         "Ensure the database is on the latest schema version",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithDatabase(func(database *db.Database) error {
			return dbmigrate.EnsureCurrent(cmd.Context(), database.Bun(), migrations(), false)
		})
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the latest tool invocations",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return runWithDatabase(func(database *db.Database) error {
			rows, err := db.NewAuditLog(database).Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TIME\tTOOL\tSTATUS\tDURATION\tERROR")
			for _, r := range rows {
				msg := ""
				if r.ErrorMessage != nil {
					msg = *r.ErrorMessage
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%dms\t%s\n", r.CreatedAt.Format(time.RFC3339), r.Tool, r.Status, r.DurationMS, msg)
			}
			return w.Flush()
		})
	},
}

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Count invocations per tool and status",
	RunE: func(cmd *cobra.Command, args []string) error {
		since, _ := cmd.Flags().GetDuration("since")
		return runWithDatabase(func(database *db.Database) error {
			counts, err := db.NewAuditLog(database).CountByStatus(cmd.Context(), time.Now().Add(-since))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TOOL\tSTATUS\tCOUNT")
			for _, c := range counts {
				fmt.Fprintf(w, "%s\t%s\t%d\n", c.Tool, c.Status, c.Count)
			}
			return w.Flush()
		})
	},
}

func main() {
	config.Init(rootCmd)

	rootCmd.PersistentFlags().String("dsn", "", "PostgreSQL DSN (overrides POSTGRES_URL)")
	rootCmd.PersistentFlags().String("migrations", "", "Migrations directory (defaults to the bundled migrations)")
	_ = viper.BindPFlag("audit_dsn", rootCmd.PersistentFlags().Lookup("dsn"))
	_ = viper.BindPFlag("db_migrations_dir", rootCmd.PersistentFlags().Lookup("migrations"))

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(initCmd, migrateCmd, statusCmd, verifyCmd, recentCmd, summaryCmd)
	_ = migrateDownCmd.Flags().Int("steps", 1, "Number of migrations to roll back (0 = all)")
	_ = migrateDownCmd.Flags().String("to", "", "Roll back every migration newer than this one")
	_ = recentCmd.Flags().Int("limit", 20, "Number of invocations to show")
	_ = summaryCmd.Flags().Duration("since", 24*time.Hour, "Window to summarize")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "auditctl: %v\n", err)
		os.Exit(1)
	}
}

func runWithDatabase(fn func(*db.Database) error) error {
	dsn := viper.GetString("audit_dsn")
	if dsn == "" {
		dsn = config.PostgresURL()
	}
	if dsn == "" {
		return errors.New("postgres DSN must be provided via flag or environment")
	}
	database, err := db.NewDatabase(db.Config{DSN: dsn, Debug: config.DBDebug()})
	if err != nil {
		return err
	}
	defer database.Close()
	return fn(database)
}

func newManager(database *db.Database) (*dbmigrate.Manager, error) {
	if dir := viper.GetString("db_migrations_dir"); dir != "" {
		return dbmigrate.NewManager(database.Bun(), dir)
	}
	return dbmigrate.NewManagerWithFS(database.Bun(), migrations())
}

func migrations() fs.FS {
	if dir := viper.GetString("db_migrations_dir"); dir != "" {
		return os.DirFS(dir)
	}
	return db.Migrations()
}
