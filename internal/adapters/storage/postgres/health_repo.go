package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"castador-pro/internal/domain/health"
)

type HealthRepo struct {
	db *sql.DB
}

func NewHealthRepo(db *sql.DB) *HealthRepo {
	return &HealthRepo{db: db}
}

const healthColumns = `
	id, owner_user_id, bird_id,
	type, product, dose,
	date, next_date, notes,
	created_at, updated_at
`

func (r *HealthRepo) Create(ctx context.Context, rec health.Record) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO health_records (`+healthColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		rec.ID,
		rec.OwnerUserID,
		rec.BirdID,
		rec.Type,
		rec.Product,
		rec.Dose,
		rec.Date,
		toNullDate(rec.NextDate),
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *HealthRepo) Update(ctx context.Context, rec health.Record) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE health_records
		SET
			bird_id = $2,
			type = $3,
			product = $4,
			dose = $5,
			date = $6,
			next_date = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		rec.ID,
		rec.BirdID,
		rec.Type,
		rec.Product,
		rec.Dose,
		rec.Date,
		toNullDate(rec.NextDate),
		rec.Notes,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanHealthRecord(sc interface{ Scan(...any) error }) (health.Record, error) {
	var rec health.Record
	var next sql.NullTime
	if err := sc.Scan(
		&rec.ID,
		&rec.OwnerUserID,
		&rec.BirdID,
		&rec.Type,
		&rec.Product,
		&rec.Dose,
		&rec.Date,
		&next,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return health.Record{}, err
	}
	rec.NextDate = fromNullDate(next)
	return rec, nil
}

func (r *HealthRepo) GetByID(ctx context.Context, id, ownerUserID string) (health.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return health.Record{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+healthColumns+`
		FROM health_records
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)

	rec, err := scanHealthRecord(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return health.Record{}, ErrNotFound
		}
		return health.Record{}, err
	}
	return rec, nil
}

func (r *HealthRepo) ListByOwner(ctx context.Context, ownerUserID string, f health.ListFilter) ([]health.Record, error) {
	query := `
		SELECT ` + healthColumns + `
		FROM health_records
		WHERE owner_user_id = $1
	`
	args := []any{ownerUserID}
	if f.BirdID != "" {
		args = append(args, f.BirdID)
		query += ` AND bird_id = $` + itoa(len(args))
	}
	if f.Type != "" {
		args = append(args, f.Type)
		query += ` AND type = $` + itoa(len(args))
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]health.Record, 0)
	for rows.Next() {
		rec, err := scanHealthRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *HealthRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM health_records
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *HealthRepo) ListUpcoming(ctx context.Context, ownerUserID string, from, to time.Time) ([]health.Record, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+healthColumns+`
		FROM health_records
		WHERE owner_user_id = $1
		  AND next_date IS NOT NULL
		  AND next_date BETWEEN $2 AND $3
		ORDER BY next_date ASC
	`, ownerUserID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]health.Record, 0)
	for rows.Next() {
		rec, err := scanHealthRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *HealthRepo) DeleteByBird(ctx context.Context, ownerUserID, birdID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM health_records
		WHERE owner_user_id = $1 AND bird_id = $2
	`, ownerUserID, birdID)
	return err
}
