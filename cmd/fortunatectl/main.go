package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/meheraj786/fortunate-business-management-sub001/internal/cache"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/cli"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/config"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/core"
	applog "github.com/meheraj786/fortunate-business-management-sub001/internal/log"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/query"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/services"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/storage"
	"github.com/meheraj786/fortunate-business-management-sub001/internal/store/memory"
)

type app struct {
	cfg    *config.Config
	logger *applog.Logger
	dbPath string
}

func main() {
	a := &app{}

	root := &cobra.Command{
		Use:           "fortunatectl",
		Short:         "Administer the fortunate SQLite store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cli.LoadEnvFile()
			a.cfg = config.Load()
			a.logger = cli.SetupLogger(a.cfg.LogLevel, a.cfg.LogFormat, applog.ComponentCLI)
			if a.dbPath == "" {
				a.dbPath = a.cfg.SQLiteDBPath
			}
		},
	}
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "SQLite database path (default SQLITE_DB_PATH)")

	root.AddCommand(a.migrateCmd(), a.seedCmd(), a.queryCmd(), a.closeCashCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := storage.RunMigrations(a.dbPath)
			if err != nil {
				return err
			}
			a.logger.Info("Migrations applied", "db_path", a.dbPath, "version", version)
			return nil
		},
	}
}

func (a *app) seedCmd() *cobra.Command {
	var file, day string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a JSON seed file (or the demo data) into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := parseDay(day)
			if err != nil {
				return err
			}
			seed, err := memory.LoadSeed(file, today)
			if err != nil {
				return err
			}

			repo, err := storage.NewSQLiteRepository(a.dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx := cmd.Context()
			n, err := repo.ImportExpenses(ctx, seed.Expenses)
			if err != nil {
				return err
			}
			for _, acc := range seed.Accounts {
				if err := repo.SaveAccount(ctx, acc); err != nil {
					return fmt.Errorf("save account %s: %w", acc.Date, err)
				}
			}
			for _, s := range seed.Sales {
				if err := repo.SaveSale(ctx, s); err != nil {
					return fmt.Errorf("save sale %s: %w", s.ID, err)
				}
			}
			for _, m := range seed.Team {
				if err := repo.SaveTeamMember(ctx, m); err != nil {
					return fmt.Errorf("save team member %s: %w", m.ID, err)
				}
			}

			a.invalidate(ctx, seed.Expenses)
			a.logger.Info("Seed loaded",
				"db_path", a.dbPath,
				"expenses", n,
				"accounts", len(seed.Accounts),
				"sales", len(seed.Sales),
				"team", len(seed.Team))
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "seed file; empty loads the demo data")
	cmd.Flags().StringVar(&day, "today", "", "day the demo data treats as today (YYYY-MM-DD)")
	return cmd
}

// invalidate drops cached expense lists for every seeded day when a shared
// redis cache is configured.
func (a *app) invalidate(ctx context.Context, records []core.ExpenseRecord) {
	if a.cfg.RedisAddr == "" {
		return
	}
	rc := cache.NewRedisExpenseCache(a.cfg.RedisAddr, a.cfg.RedisPassword, a.cfg.RedisDB, a.cfg.CacheTTL)
	defer rc.Close()

	seen := map[civil.Date]bool{}
	for _, r := range records {
		if seen[r.Date] {
			continue
		}
		seen[r.Date] = true
		if err := rc.InvalidateExpenses(ctx, r.Date); err != nil {
			a.logger.WithComponent(applog.ComponentCache).Warn("Cache invalidation failed", applog.FieldDate, r.Date.String(), applog.FieldError, err)
		}
	}
}

func (a *app) queryCmd() *cobra.Command {
	var day, term, category string
	var page int
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print one page of a day's expenses with its totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDay(day)
			if err != nil {
				return err
			}
			repo, err := storage.NewSQLiteRepository(a.dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			svc := services.NewRecordService(repo, services.WithPageSize(a.cfg.PageSize))
			view, err := svc.Accounts(cmd.Context(), query.Criteria{
				Date:       date,
				SearchTerm: term,
				Category:   category,
				Page:       page,
			})
			if err != nil {
				return err
			}
			printView(cmd, view)
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "date", "", "day to show (YYYY-MM-DD, default today)")
	cmd.Flags().StringVar(&term, "q", "", "search term")
	cmd.Flags().StringVar(&category, "category", query.AllCategories, "category filter")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func printView(cmd *cobra.Command, v services.AccountsView) {
	out := cmd.OutOrStdout()
	status := "open"
	switch {
	case !v.HasAccount:
		status = "no account"
	case v.Account.IsClosed:
		status = "closed"
	}
	fmt.Fprintf(out, "%s  (%s)\n", v.Criteria.Date, status)
	fmt.Fprintf(out, "starting cash %s  spent %s  remaining %s\n\n",
		v.Account.TodayStartingCash, v.TotalExpensesToday, v.Remaining)

	if v.NoRecords {
		fmt.Fprintln(out, "no expenses recorded")
		return
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tCATEGORY\tDESCRIPTION\tPAYMENT\tAMOUNT\t")
	for _, r := range v.Visible {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t\n", r.Time, r.Category, r.Description, r.PaymentMethod, r.Amount)
	}
	tw.Flush()
	fmt.Fprintf(out, "\npage %d of %d, %d records\n", v.Page, v.TotalPages, v.TotalCount)
}

func (a *app) closeCashCmd() *cobra.Command {
	var day string
	cmd := &cobra.Command{
		Use:   "close-cash",
		Short: "Close a day's cash",
		RunE: func(cmd *cobra.Command, args []string) error {
			date, err := parseDay(day)
			if err != nil {
				return err
			}
			repo, err := storage.NewSQLiteRepository(a.dbPath)
			if err != nil {
				return err
			}
			defer repo.Close()

			account, err := services.NewRecordService(repo).CloseCash(cmd.Context(), date)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cash closed for %s\n", account.Date)
			return nil
		},
	}
	cmd.Flags().StringVar(&day, "date", "", "day to close (YYYY-MM-DD, default today)")
	return cmd
}

func parseDay(v string) (civil.Date, error) {
	if v == "" {
		return core.Today(time.Local), nil
	}
	d, err := core.ParseDate(v)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid date %q: %w", v, err)
	}
	return d, nil
}
