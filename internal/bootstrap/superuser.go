package bootstrap

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/userbase/backend/internal/config"
	"github.com/userbase/backend/pkg/security"
)

// Advisory lock key serializing superuser seeding across instances.
const superuserLockKey = 927001

// FirstSuperuser seeds the initial administrative account. The step is
// explicit opt-in (BOOTSTRAP_SUPERUSER) and idempotent: an advisory lock
// serializes concurrently starting instances and the insert is a no-op when
// the email already exists.
func FirstSuperuser(ctx context.Context, pool *pgxpool.Pool, cfg config.BootstrapConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	hash, err := security.HashPassword(cfg.Password)
	if err != nil {
		return err
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "SELECT pg_advisory_xact_lock($1)", superuserLockKey); err != nil {
		return err
	}

	const query = `
	INSERT INTO users (email, hashed_password, is_active, is_superuser)
	VALUES ($1, $2, TRUE, TRUE)
	ON CONFLICT (email) DO NOTHING
	`
	tag, err := tx.Exec(ctx, query, cfg.Email, hash)
	if err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return err
	}

	if tag.RowsAffected() > 0 {
		logger.Info("first superuser created", zap.String("email", cfg.Email))
	}
	return nil
}
