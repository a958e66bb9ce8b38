package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLite serves and edits catalog options stored in the catalog_options table.
type SQLite struct {
	db *sql.DB
}

// NewSQLite returns a catalog backed by db. Migrations must already be applied.
func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Name() string { return "sqlite" }

func (s *SQLite) Materials(ctx context.Context) ([]Option, error) {
	return s.list(ctx, KindMaterial, true)
}

func (s *SQLite) Sizes(ctx context.Context) ([]Option, error) {
	return s.list(ctx, KindSize, true)
}

func (s *SQLite) Features(ctx context.Context) ([]Option, error) {
	return s.list(ctx, KindFeature, true)
}

// All returns every option of kind, inactive ones included, for the admin page.
func (s *SQLite) All(ctx context.Context, kind Kind) ([]Option, error) {
	return s.list(ctx, kind, false)
}

func (s *SQLite) list(ctx context.Context, kind Kind, activeOnly bool) ([]Option, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, kind, key, label, value, active
		FROM catalog_options
		WHERE kind = ? AND (? = 0 OR active = TRUE)
		ORDER BY sort_order, id
	`, string(kind), activeOnly)
	if err != nil {
		return nil, fmt.Errorf("query %s options: %w", kind, err)
	}
	defer rows.Close()

	options := make([]Option, 0)
	for rows.Next() {
		var opt Option
		var k string
		if err := rows.Scan(&opt.ID, &k, &opt.Key, &opt.Label, &opt.Value, &opt.Active); err != nil {
			return nil, fmt.Errorf("scan %s option: %w", kind, err)
		}
		opt.Kind = Kind(k)
		options = append(options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s options: %w", kind, err)
	}

	return options, nil
}

// Get returns the option with id.
func (s *SQLite) Get(ctx context.Context, id int64) (Option, error) {
	var opt Option
	var k string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, kind, key, label, value, active
		FROM catalog_options
		WHERE id = ?
	`, id).Scan(&opt.ID, &k, &opt.Key, &opt.Label, &opt.Value, &opt.Active)
	if errors.Is(err, sql.ErrNoRows) {
		return Option{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	if err != nil {
		return Option{}, fmt.Errorf("query option %d: %w", id, err)
	}
	opt.Kind = Kind(k)
	return opt, nil
}

// Create adds a material or size. Features are fixed and can only be updated.
func (s *SQLite) Create(ctx context.Context, opt Option) (int64, error) {
	opt.Key = strings.TrimSpace(opt.Key)
	opt.Label = strings.TrimSpace(opt.Label)
	if opt.Kind == KindFeature {
		return 0, fmt.Errorf("%w: features cannot be added", ErrInvalidOption)
	}
	if err := Validate(opt); err != nil {
		return 0, err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM catalog_options WHERE kind = ? AND key = ?)
	`, string(opt.Kind), opt.Key).Scan(&exists); err != nil {
		return 0, fmt.Errorf("check option existence: %w", err)
	}
	if exists {
		return 0, fmt.Errorf("%w: %s %q already exists", ErrInvalidOption, opt.Kind, opt.Key)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO catalog_options (kind, key, label, value, sort_order, active)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(sort_order), 0) + 1 FROM catalog_options WHERE kind = ?), ?)
	`, string(opt.Kind), opt.Key, opt.Label, opt.Value, string(opt.Kind), opt.Active)
	if err != nil {
		return 0, fmt.Errorf("insert %s option: %w", opt.Kind, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted option id: %w", err)
	}
	return id, nil
}

// Update changes label, value and active flag of an existing option. Kind and key are immutable.
func (s *SQLite) Update(ctx context.Context, id int64, label string, value float64, active bool) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	current.Label = strings.TrimSpace(label)
	current.Value = value
	current.Active = active
	if err := Validate(current); err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE catalog_options
		SET
			label = ?,
			value = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, current.Label, current.Value, current.Active, id)
	if err != nil {
		return fmt.Errorf("update option %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update option %d: %w", id, err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}

	return nil
}
