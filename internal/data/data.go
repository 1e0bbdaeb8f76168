package data

import (
	"database/sql"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	_ "github.com/lib/pq"

	"github.com/spectralens/commonground/internal/conf"
)

type Data struct {
	db *sql.DB
}

func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	db, err := sql.Open(c.Database.Driver, c.Database.Source)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, nil, err
	}

	// Init schema for stored topics. Article string arrays are kept as
	// JSON-encoded TEXT: they are only ever read back whole.
	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS topics (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
		CREATE TABLE IF NOT EXISTS sub_topics (
			id TEXT PRIMARY KEY,
			topic_id TEXT NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			position INT NOT NULL DEFAULT 0
		);
		CREATE TABLE IF NOT EXISTS articles (
			id TEXT PRIMARY KEY,
			sub_topic_id TEXT NOT NULL REFERENCES sub_topics(id) ON DELETE CASCADE,
			title TEXT NOT NULL,
			source TEXT NOT NULL DEFAULT '',
			leaning TEXT NOT NULL DEFAULT '',
			summary TEXT NOT NULL DEFAULT '[]',
			key_facts TEXT NOT NULL DEFAULT '[]',
			url TEXT NOT NULL DEFAULT '',
			position INT NOT NULL DEFAULT 0
		)
	`); err != nil {
		return nil, nil, fmt.Errorf("failed to init topic tables: %w", err)
	}

	cleanup := func() {
		log.NewHelper(logger).Info("closing the data resources")
		db.Close()
	}
	return &Data{db: db}, cleanup, nil
}
