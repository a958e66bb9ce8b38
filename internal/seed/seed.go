package seed

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Simplici0/walletcalc/internal/catalog"
)

// Config contains the catalog entries the startup seed guarantees.
type Config struct {
	Materials []catalog.Option
	Sizes     []catalog.Option
	Features  []catalog.Option
}

// DefaultConfig seeds the built-in wallet catalog.
func DefaultConfig() Config {
	return Config{
		Materials: catalog.DefaultMaterials(),
		Sizes:     catalog.DefaultSizes(),
		Features:  catalog.DefaultFeatures(),
	}
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
	Skipped int
}

// Run executes the startup seed in an idempotent way. Existing rows are never
// overwritten, so prices edited through the admin page survive restarts.
func Run(ctx context.Context, db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}
	groups := []struct {
		kind    catalog.Kind
		options []catalog.Option
	}{
		{catalog.KindMaterial, cfg.Materials},
		{catalog.KindSize, cfg.Sizes},
		{catalog.KindFeature, cfg.Features},
	}

	for _, g := range groups {
		for i, opt := range g.options {
			if err := ensureOption(ctx, tx, g.kind, i+1, opt, &stats); err != nil {
				_ = tx.Rollback()
				return Stats{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func ensureOption(ctx context.Context, tx *sql.Tx, kind catalog.Kind, order int, opt catalog.Option, stats *Stats) error {
	var exists bool
	if err := tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM catalog_options WHERE kind = ? AND key = ? LIMIT 1)
	`, string(kind), opt.Key).Scan(&exists); err != nil {
		return fmt.Errorf("check %s %q existence: %w", kind, opt.Key, err)
	}
	if exists {
		stats.Skipped++
		return nil
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO catalog_options (kind, key, label, value, sort_order, active)
		VALUES (?, ?, ?, ?, ?, TRUE)
	`, string(kind), opt.Key, opt.Label, opt.Value, order); err != nil {
		return fmt.Errorf("insert default %s %q: %w", kind, opt.Key, err)
	}
	stats.Inserts++
	return nil
}
