package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"bikedash/internal/dataset"
	"bikedash/internal/repository/sqlite"
)

func main() {
	csvPath := flag.String("csv", "data/all_df.csv", "CSV file containing rental records")
	dbPath := flag.String("db", "data/rentals.db", "Database path")
	replace := flag.Bool("replace", false, "Delete existing rows before importing")
	flag.Parse()

	fmt.Printf("Migrating rentals from %s to database %s\n", *csvPath, *dbPath)

	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(*dbPath), 0755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}

	ds, err := dataset.LoadCSV(*csvPath)
	if err != nil {
		log.Fatalf("Failed to load CSV: %v", err)
	}

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	repo := sqlite.NewRentalRepository(db)

	if !*replace {
		n, err := repo.Count()
		if err != nil {
			log.Fatalf("Failed to count rentals: %v", err)
		}
		if n > 0 {
			log.Fatalf("Database already holds %d rentals; rerun with -replace to overwrite", n)
		}
	}

	// Bulk insert, replacing existing rows atomically
	fmt.Printf("Inserting %d rentals into database...\n", ds.Len())
	if err := repo.ReplaceAll(ds.Records()); err != nil {
		log.Fatalf("Failed to insert rentals: %v", err)
	}

	totals, err := repo.YearTotals()
	if err != nil {
		log.Fatalf("Failed to read totals: %v", err)
	}

	fmt.Printf("✅ Successfully migrated %d rentals to database\n", ds.Len())
	for _, t := range totals {
		fmt.Printf("   %d: %d\n", t.Year, t.Total)
	}
}
