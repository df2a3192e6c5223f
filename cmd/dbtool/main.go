package main

import (
	"context"
	"log"
	"os"
	"strings"

	"fleet-dispatch-sim/internal/adapters/store"
	"fleet-dispatch-sim/internal/platform/db"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// dbtool exports decision logs from the local SQLite database into
// Postgres for archival. With RUN_ID set it copies one run; otherwise it
// copies every run found locally.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	dbPath := getEnv("DB_PATH", "data/decisions.db")
	runID := strings.TrimSpace(os.Getenv("RUN_ID"))

	pg, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer pg.Close()

	if err := store.InitPostgresSchema(pg); err != nil {
		log.Fatal(err)
	}
	log.Println("Postgres schema ready.")

	local, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer local.Close()

	ctx := context.Background()
	source := store.NewSqliteDecisionStore(local)
	target := store.NewSQLDecisionStore(pg)

	runs := []string{runID}
	if runID == "" {
		runs, err = source.ListRuns(ctx)
		if err != nil {
			log.Fatal(err)
		}
	}
	if len(runs) == 0 {
		log.Println("No runs to export.")
		return
	}

	for _, run := range runs {
		records, err := source.ListByRun(ctx, run)
		if err != nil {
			log.Fatalf("export run %s: %v", run, err)
		}
		if err := target.RecordMany(ctx, records); err != nil {
			log.Fatalf("export run %s: %v", run, err)
		}
		log.Printf("exported run=%s decisions=%d", run, len(records))
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
