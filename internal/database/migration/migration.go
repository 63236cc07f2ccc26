package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            BIGSERIAL    PRIMARY KEY,
  username      VARCHAR(50)  NOT NULL UNIQUE,
  email         VARCHAR(255) NOT NULL UNIQUE,
  password_hash TEXT         NOT NULL,
  avatar_key    TEXT,
  created_at    TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_topics",
		SQL: `CREATE TABLE IF NOT EXISTS topics (
  id          BIGSERIAL    PRIMARY KEY,
  name        VARCHAR(100) NOT NULL UNIQUE,
  description TEXT         NOT NULL DEFAULT '',
  created_at  TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_posts",
		SQL: `CREATE TABLE IF NOT EXISTS posts (
  id         BIGSERIAL    PRIMARY KEY,
  title      VARCHAR(150) NOT NULL,
  content    TEXT         NOT NULL,
  author_id  BIGINT       NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  topic_id   BIGINT       NOT NULL REFERENCES topics (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ  NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_comments",
		SQL: `CREATE TABLE IF NOT EXISTS comments (
  id         BIGSERIAL   PRIMARY KEY,
  content    TEXT        NOT NULL,
  author_id  BIGINT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  post_id    BIGINT      NOT NULL REFERENCES posts (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_subscriptions",
		SQL: `CREATE TABLE IF NOT EXISTS subscriptions (
  id         BIGSERIAL   PRIMARY KEY,
  user_id    BIGINT      NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  topic_id   BIGINT      NOT NULL REFERENCES topics (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  CONSTRAINT uq_subscriptions_user_topic UNIQUE (user_id, topic_id)
);`,
	},
	{
		Name: "create_table_refresh_tokens",
		SQL: `CREATE TABLE IF NOT EXISTS refresh_tokens (
  id          BIGSERIAL   PRIMARY KEY,
  token       TEXT        NOT NULL UNIQUE,
  expiry_date TIMESTAMPTZ NOT NULL,
  user_id     BIGINT      NOT NULL REFERENCES users (id) ON DELETE CASCADE
);`,
	},
	{
		Name: "create_index_posts_author_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_posts_author_id ON posts (author_id);`,
	},
	{
		Name: "create_index_posts_topic_id_created_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_posts_topic_id_created_at ON posts (topic_id, created_at DESC);`,
	},
	{
		Name: "create_index_comments_post_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_comments_post_id ON comments (post_id, created_at);`,
	},
	{
		Name: "create_index_refresh_tokens_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_refresh_tokens_user_id ON refresh_tokens (user_id);`,
	},
}

// EnsureMigrated creates the schema unless the users table already exists.
func EnsureMigrated(ctx context.Context, db *sql.DB, log logrus.FieldLogger, dbHost string) error {
	start := time.Now()
	log = log.WithFields(logrus.Fields{"component": "database", "db_host": dbHost})

	log.WithField("event", "db_migration_check").Info("checking schema")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass('public.users') IS NOT NULL").Scan(&exists)
	if err != nil {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_failed",
			"duration_ms": time.Since(start).Milliseconds(),
		}).WithError(err).Error("failed to check sentinel table")
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		log.WithFields(logrus.Fields{
			"event":       "db_migration_skip",
			"duration_ms": time.Since(start).Milliseconds(),
		}).Info("schema already exists, skipping migration")
		return nil
	}

	log.WithField("event", "db_migration_start").Info("applying schema")

	for _, step := range steps {
		stepStart := time.Now()
		stepLog := log.WithField("migration_step", step.Name)

		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			stepLog.WithFields(logrus.Fields{
				"event":            "db_migration_failed",
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			}).WithError(err).Error("migration step failed")
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		stepLog.WithFields(logrus.Fields{
			"event":            "db_migration_step",
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		}).Debug("migration step applied")
	}

	log.WithFields(logrus.Fields{
		"event":       "db_migration_success",
		"steps":       len(steps),
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("schema migrated")

	return nil
}
