package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/kimurazver67/sport-transformation-app-sub000/internal/database"
	_ "github.com/lib/pq"
)

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory with *.up.sql and *.down.sql files")
	flag.Parse()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`); err != nil {
		log.Fatalf("failed to create migrations table: %v", err)
	}

	if *rollback {
		if err := rollbackLast(db, *dir); err != nil {
			log.Fatal(err)
		}
		return
	}

	files, err := database.UpMigrations(*dir)
	if err != nil {
		log.Fatalf("failed to read migrations directory: %v", err)
	}

	for _, file := range files {
		var applied bool
		if err := db.QueryRow("SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)", file).Scan(&applied); err != nil {
			log.Fatalf("failed to check migration status: %v", err)
		}
		if applied {
			fmt.Printf("Migration already applied: %s\n", file)
			continue
		}

		fmt.Printf("Applying migration: %s\n", file)
		if err := execFile(db, filepath.Join(*dir, file), "INSERT INTO schema_migrations (name) VALUES ($1)", file); err != nil {
			log.Fatalf("failed to apply migration %s: %v", file, err)
		}
		fmt.Printf("Successfully applied migration: %s\n", file)
	}

	fmt.Println("All migrations applied successfully.")
}

func rollbackLast(db *sql.DB, dir string) error {
	var name string
	err := db.QueryRow("SELECT name FROM schema_migrations ORDER BY applied_at DESC, name DESC LIMIT 1").Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("no migrations to rollback")
	}
	if err != nil {
		return fmt.Errorf("failed to get last migration: %w", err)
	}

	downFile := strings.TrimSuffix(name, ".up.sql") + ".down.sql"
	downPath := filepath.Join(dir, downFile)
	if _, err := os.Stat(downPath); err != nil {
		return fmt.Errorf("rollback file not found: %s", downPath)
	}

	if err := execFile(db, downPath, "DELETE FROM schema_migrations WHERE name = $1", name); err != nil {
		return fmt.Errorf("failed to roll back %s: %w", name, err)
	}
	fmt.Printf("Successfully rolled back migration: %s\n", name)
	return nil
}

// execFile runs the SQL file and the bookkeeping statement in one transaction.
func execFile(db *sql.DB, path, record, name string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	if _, err := tx.Exec(string(content)); err != nil {
		_ = tx.Rollback()
		return err
	}
	if _, err := tx.Exec(record, name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration: %w", err)
	}
	return tx.Commit()
}
