package cms

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/aarshhmi/luminique-admin-backend/pkg/config"
	"github.com/aarshhmi/luminique-admin-backend/pkg/db"
)

func setupCMSTestDB(t *testing.T) *db.Client {
	t.Helper()

	client, err := db.New(context.Background(), config.DBConfig{
		Driver: "sqlite",
		DSN:    "file::memory:?cache=shared",
	}, nil)
	require.NoError(t, err)

	schema := []string{
		`CREATE TABLE IF NOT EXISTS cms_pages (
  id TEXT PRIMARY KEY,
  kind TEXT NOT NULL,
  slug TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'draft',
  published_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE IF NOT EXISTS cms_sections (
  id TEXT PRIMARY KEY,
  page_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  position INTEGER NOT NULL DEFAULT 0,
  heading TEXT,
  body TEXT,
  media_url TEXT,
  settings TEXT,
  tags TEXT NOT NULL DEFAULT '{}',
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range schema {
		require.NoError(t, client.DB().Exec(stmt).Error)
	}
	return client
}
