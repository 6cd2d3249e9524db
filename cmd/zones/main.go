// backend-go/cmd/zones/main.go
package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/andresuchdata/sellerpulse/backend-go/internal/notify"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/repository/postgres"
	"github.com/andresuchdata/sellerpulse/backend-go/internal/zone"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func openDB(c *cli.Context) (*sqlx.DB, error) {
	db, err := sqlx.Connect("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "zones",
		Usage: "Compute and inspect performance zone classifications",
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run a zone computation for an account and date window",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{Name: "account", Usage: "Seller account ID", Required: true},
					&cli.StringFlag{Name: "marketplace", Usage: "Marketplace ID", Required: true},
					&cli.StringFlag{Name: "from", Usage: "Window start (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "to", Usage: "Window end (YYYY-MM-DD), inclusive", Required: true},
				},
				Action: runComputation,
			},
			{
				Name:  "status",
				Usage: "Show recent computation jobs for an account",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.StringFlag{Name: "account", Usage: "Seller account ID", Required: true},
					&cli.IntFlag{Name: "limit", Usage: "Number of jobs to show", Value: 10},
				},
				Action: showStatus,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runComputation(c *cli.Context) error {
	for _, flag := range []string{"from", "to"} {
		if _, err := time.Parse("2006-01-02", c.String(flag)); err != nil {
			return fmt.Errorf("invalid --%s: %w", flag, err)
		}
	}

	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	orchestrator := zone.NewOrchestrator(
		postgres.NewMetricsRepository(db),
		postgres.NewZoneStore(db),
		postgres.NewJobRepository(db),
		notify.NewLogNotifier(),
	)

	start := time.Now()
	ok := orchestrator.Run(c.Context, c.String("account"), c.String("marketplace"), c.String("from"), c.String("to"))
	if !ok {
		return fmt.Errorf("zone computation failed for account %s", c.String("account"))
	}

	log.Printf("Zone computation completed in %v", time.Since(start))
	return nil
}

func showStatus(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	jobs, err := postgres.NewJobRepository(db).GetRecent(c.Context, c.String("account"), c.Int("limit"))
	if err != nil {
		return err
	}

	if len(jobs) == 0 {
		log.Printf("No computation jobs for account %s", c.String("account"))
		return nil
	}

	for _, job := range jobs {
		completed := "-"
		if job.CompletedAt != nil {
			completed = job.CompletedAt.Format(time.RFC3339)
		}
		fmt.Printf("#%d\t%s..%s\t%s\tstarted=%s\tcompleted=%s\t%s\n",
			job.ID, job.FromDate, job.ToDate, job.Status,
			job.StartedAt.Format(time.RFC3339), completed, job.ErrorMessage)
	}

	return nil
}
