package database

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn   *sql.DB
	dbType string
}

type Config struct {
	Type       string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string
	SQLitePath string
}

func NewDB(config Config) (*DB, error) {
	var conn *sql.DB
	var err error

	switch config.Type {
	case "sqlite":
		conn, err = sql.Open("sqlite3", config.SQLitePath)
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
			config.Host, config.Port, config.User, config.Password, config.Name)
		conn, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", config.Type)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, dbType: config.Type}

	// Only create tables for SQLite; postgres schemas go through migrations.
	if config.Type == "sqlite" {
		if err := db.createTables(); err != nil {
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return db, nil
}

func (db *DB) createTables() error {
	query := `
	CREATE TABLE IF NOT EXISTS videos (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		description TEXT,
		sport_type TEXT,
		duration REAL NOT NULL DEFAULT 0,
		file_path TEXT NOT NULL,
		upload_time DATETIME NOT NULL,
		analyzed INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS generator_configs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		sport_type TEXT NOT NULL,
		highlight_types TEXT NOT NULL DEFAULT '[]',
		min_duration REAL NOT NULL DEFAULT 0,
		max_duration REAL NOT NULL DEFAULT 0,
		quality_threshold REAL NOT NULL DEFAULT 0,
		max_highlights_per_video INTEGER NOT NULL DEFAULT 0,
		active INTEGER NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL,
		last_run DATETIME
	);

	CREATE TABLE IF NOT EXISTS video_highlights (
		id TEXT PRIMARY KEY,
		video_id TEXT NOT NULL REFERENCES videos(id),
		title TEXT NOT NULL,
		description TEXT,
		start_time REAL NOT NULL,
		end_time REAL NOT NULL,
		clip_path TEXT NOT NULL,
		thumbnail_path TEXT,
		created_by TEXT,
		ai_generated INTEGER NOT NULL DEFAULT 0,
		tags TEXT NOT NULL DEFAULT '[]',
		quality_score REAL NOT NULL DEFAULT 0,
		primary_skill TEXT,
		skill_level REAL NOT NULL DEFAULT 0,
		game_context TEXT,
		analysis_notes TEXT,
		featured INTEGER NOT NULL DEFAULT 0,
		home_page_eligible INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_videos_analyzed ON videos(analyzed);
	CREATE INDEX IF NOT EXISTS idx_highlights_video ON video_highlights(video_id);
	`

	_, err := db.conn.Exec(query)
	return err
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

func (db *DB) RunMigrations(migrationsPath string) error {
	return NewMigrator(db.conn, db.dbType).Run(migrationsPath)
}

// rebind rewrites ? placeholders to the $n form postgres expects. Queries in
// this package are written with ? and rebound per dialect.
func (db *DB) rebind(query string) string {
	if db.dbType != "postgres" {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
