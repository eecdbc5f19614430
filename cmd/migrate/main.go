package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"

	"github.com/ignite/touchpoint-analytics/internal/pkg/logger"
)

const feedTablesQuery = `SELECT tablename FROM pg_tables WHERE schemaname='public' AND tablename LIKE 'gifting_%' ORDER BY tablename`

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		logger.Error("DATABASE_URL is required")
		os.Exit(1)
	}

	dir := "migrations"
	listOnly := false
	for _, a := range os.Args[1:] {
		if a == "--list" {
			listOnly = true
		} else {
			dir = a
		}
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Error("connect failed", "error", err.Error())
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("ping failed", "error", err.Error())
		os.Exit(1)
	}

	if listOnly {
		tables, err := listTables(db)
		if err != nil {
			logger.Error("list tables failed", "error", err.Error())
			os.Exit(1)
		}
		for _, t := range tables {
			fmt.Println(" ", t)
		}
		fmt.Printf("Total: %d tables\n", len(tables))
		return
	}

	files, err := migrationFiles(dir)
	if err != nil {
		logger.Error("read migrations failed", "dir", dir, "error", err.Error())
		os.Exit(1)
	}
	ok, failed := apply(db, files)
	logger.Info("migrations complete", "ok", ok, "errors", failed)
	if failed > 0 {
		os.Exit(1)
	}
}

func listTables(db *sql.DB) ([]string, error) {
	rows, err := db.Query(feedTablesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// migrationFiles returns the non-empty .sql files in dir, sorted by name.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// apply runs each file in its own transaction and keeps going after a
// failure.
func apply(db *sql.DB, files []string) (ok, failed int) {
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read migration failed", "file", path, "error", err.Error())
			failed++
			continue
		}
		content := string(data)
		if strings.TrimSpace(content) == "" {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			logger.Error("begin failed", "file", path, "error", err.Error())
			failed++
			continue
		}
		if _, err := tx.Exec(content); err != nil {
			tx.Rollback()
			logger.Error("migration failed", "file", path, "error", err.Error())
			failed++
			continue
		}
		if err := tx.Commit(); err != nil {
			logger.Error("commit failed", "file", path, "error", err.Error())
			failed++
			continue
		}
		logger.Info("migration applied", "file", filepath.Base(path))
		ok++
	}
	return ok, failed
}
