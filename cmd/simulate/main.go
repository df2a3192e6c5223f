package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"fleet-dispatch-sim/internal/adapters/matrix"
	"fleet-dispatch-sim/internal/adapters/orders"
	"fleet-dispatch-sim/internal/adapters/store"
	"fleet-dispatch-sim/internal/domain"
	"fleet-dispatch-sim/internal/platform/db"
	"fleet-dispatch-sim/internal/platform/obs"
	"fleet-dispatch-sim/internal/ports"
	"fleet-dispatch-sim/internal/sim"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// main runs one full simulated day from environment configuration and
// prints the resulting decision log summary. Given the same matrix,
// fleet configuration, and seed, the output is identical across runs.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	matrixPath := os.Getenv("MATRIX_PATH")
	if strings.TrimSpace(matrixPath) == "" {
		log.Fatal("MATRIX_PATH is required")
	}

	seed := getEnvInt64("SEED", 1)
	prob := getEnvFloat("ORDER_PROB", 0.4)
	vehicles := getEnvInt("VEHICLES", 4)
	capacity := getEnvInt("CAPACITY", 16)
	maxStops := getEnvInt("MAX_STOPS", 10)
	maxRouteMinutes := getEnvInt("MAX_ROUTE_MINUTES", 170)
	startHour := getEnvInt("START_HOUR", 9)
	endHour := getEnvInt("END_HOUR", 17)
	tickMinutes := getEnvInt("TICK_MINUTES", 15)
	dbPath := os.Getenv("DB_PATH")

	oracle, err := matrix.Load(matrixPath)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("matrix loaded path=%s locations=%d", matrixPath, len(oracle.Locations()))

	// Persistence is optional for one-shot runs; without DB_PATH the
	// decision log only reaches stdout and the final report.
	var decisions ports.DecisionStore
	if strings.TrimSpace(dbPath) != "" {
		sqlDB, err := db.OpenSQLite(dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := store.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
		decisions = store.NewSqliteDecisionStore(sqlDB)
	}

	cfgs := make([]domain.VehicleConfig, vehicles)
	for i := range cfgs {
		cfgs[i] = domain.VehicleConfig{
			Capacity:    capacity,
			MaxStops:    maxStops,
			MaxDuration: time.Duration(maxRouteMinutes) * time.Minute,
		}
	}
	fleet, err := domain.NewFleet(cfgs, domain.DepotID)
	if err != nil {
		log.Fatal(err)
	}

	source, err := orders.NewRandomGenerator(seed, prob, oracle.Customers())
	if err != nil {
		log.Fatal(err)
	}

	day := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	runID := uuid.NewString()
	orch, err := sim.New(sim.Config{
		RunID:     runID,
		Start:     day.Add(time.Duration(startHour) * time.Hour),
		End:       day.Add(time.Duration(endHour) * time.Hour),
		Tick:      time.Duration(tickMinutes) * time.Minute,
		LogRoutes: true,
	}, fleet, oracle, source, decisions, oracle.Name)
	if err != nil {
		log.Fatal(err)
	}

	report, err := orch.Run(obs.WithRunID(context.Background(), runID))
	if err != nil {
		if sim.IsFatal(err) {
			log.Fatalf("simulation aborted: %v", err)
		}
		log.Fatal(err)
	}

	log.Printf("run=%s orders=%d inserted=%d rejected=%d fleet_cost=%s",
		report.RunID, len(report.Decisions), report.Inserted, report.Rejected, report.FleetCost)
	for i, route := range report.Routes {
		log.Printf("run=%s vehicle=%d route=%q", report.RunID, i, route)
	}
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}

func getEnvInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Fatalf("%s must be a number, got %q", key, v)
	}
	return f
}
