package main

import (
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"fleet-dispatch-sim/internal/adapters/matrix"
	"fleet-dispatch-sim/internal/adapters/store"
	"fleet-dispatch-sim/internal/api"
	"fleet-dispatch-sim/internal/platform/db"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It loads the precomputed travel-time matrix once, wires the SQLite
// decision store behind the port, and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	matrixPath := os.Getenv("MATRIX_PATH")
	if strings.TrimSpace(matrixPath) == "" {
		log.Fatal("MATRIX_PATH is required")
	}

	dbPath := getEnv("DB_PATH", "data/decisions.db")
	port := getEnv("PORT", "8080")

	oracle, err := matrix.Load(matrixPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("matrix loaded path=%s locations=%d", matrixPath, len(oracle.Locations()))

	sqlDB, err := db.OpenSQLite(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqlDB.Close()

	if err := store.InitSchema(sqlDB); err != nil {
		log.Fatal(err)
	}

	decisions := store.NewSqliteDecisionStore(sqlDB)
	router := api.NewRouter(oracle, decisions)

	// Write timeout covers a full simulated day on a large matrix.
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
