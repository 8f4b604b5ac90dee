// CSV一括取込ツール。解析サーバーを立てずにデータセットをDBへ入れる。
//
//	go run ./cmd/import -file orders.csv -dataset 2024-orders
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/mattn/go-sqlite3"
	"github.com/schollz/progressbar/v3"

	"github.com/ozcanhakn/retailmindai-sub000/loader"
	"github.com/ozcanhakn/retailmindai-sub000/parsers"
)

func main() {
	filePath := flag.String("file", "", "CSV file to import")
	dataset := flag.String("dataset", "", "dataset label (defaults to file name)")
	charset := flag.String("charset", "", "source charset: utf-8, shift_jis, windows-1252")
	dbPath := flag.String("db", "", "SQLite path (defaults to RETAILMIND_DB or ./retailmind.db)")
	flag.Parse()

	if *filePath == "" {
		log.Fatal("usage: import -file <orders.csv> [-dataset <label>] [-charset shift_jis]")
	}
	if *dataset == "" {
		*dataset = filepath.Base(*filePath)
	}

	godotenv.Load()
	if *dbPath == "" {
		*dbPath = os.Getenv("RETAILMIND_DB")
		if *dbPath == "" {
			*dbPath = "./retailmind.db"
		}
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("open %s: %v", *filePath, err)
	}
	defer f.Close()

	parsed, err := parsers.ParseCSV(f, *charset)
	if err != nil {
		log.Fatalf("parse %s: %v", *filePath, err)
	}
	log.Printf("Parsed %d rows, %d columns.", len(parsed.Rows), len(parsed.Columns))

	conn, err := sqlx.Open("sqlite3", *dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		log.Fatalf("db open error: %v", err)
	}
	defer conn.Close()

	if err := loader.InitDatabase(conn); err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	tx, err := conn.Beginx()
	if err != nil {
		log.Fatalf("begin tx: %v", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM imported_orders WHERE dataset = ?`, *dataset); err != nil {
		log.Fatalf("clear dataset %s: %v", *dataset, err)
	}

	bar := progressbar.Default(int64(len(parsed.Rows)), "importing")
	for i, row := range parsed.Rows {
		payload, err := json.Marshal(row)
		if err != nil {
			log.Fatalf("row %d: %v", i, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO imported_orders (dataset, row_index, payload) VALUES (?, ?, ?)`,
			*dataset, i, string(payload),
		); err != nil {
			log.Fatalf("insert row %d: %v", i, err)
		}
		bar.Add(1)
	}

	if err := tx.Commit(); err != nil {
		log.Fatalf("commit: %v", err)
	}
	log.Printf("Imported %d rows into dataset %q.", len(parsed.Rows), *dataset)
}
