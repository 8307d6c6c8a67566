package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"castador-pro/internal/domain/conditioning"
)

type ConditioningRepo struct {
	db *sql.DB
}

func NewConditioningRepo(db *sql.DB) *ConditioningRepo {
	return &ConditioningRepo{db: db}
}

const conditioningColumns = `
	id, owner_user_id, bird_id,
	start_date, status,
	milestone1_done, milestone1_date, milestone1_notes,
	milestone2_done, milestone2_date, milestone2_notes,
	sessions,
	in_rest, rest_days, rest_start, rest_end,
	notes, created_at, updated_at
`

func (r *ConditioningRepo) Create(ctx context.Context, rec conditioning.Record) error {
	sessions, err := json.Marshal(rec.Sessions)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO conditioning (`+conditioningColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19)
	`,
		rec.ID,
		rec.OwnerUserID,
		rec.BirdID,
		rec.StartDate,
		rec.Status,
		rec.Milestone1Done,
		toNullDate(rec.Milestone1Date),
		rec.Milestone1Notes,
		rec.Milestone2Done,
		toNullDate(rec.Milestone2Date),
		rec.Milestone2Notes,
		sessions,
		rec.InRest,
		toNullInt(rec.RestDays),
		toNullDate(rec.RestStart),
		toNullDate(rec.RestEnd),
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

func (r *ConditioningRepo) Update(ctx context.Context, rec conditioning.Record) error {
	sessions, err := json.Marshal(rec.Sessions)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE conditioning
		SET
			start_date = $2,
			status = $3,
			milestone1_done = $4,
			milestone1_date = $5,
			milestone1_notes = $6,
			milestone2_done = $7,
			milestone2_date = $8,
			milestone2_notes = $9,
			sessions = $10,
			in_rest = $11,
			rest_days = $12,
			rest_start = $13,
			rest_end = $14,
			notes = $15,
			updated_at = $16
		WHERE id = $1
	`,
		rec.ID,
		rec.StartDate,
		rec.Status,
		rec.Milestone1Done,
		toNullDate(rec.Milestone1Date),
		rec.Milestone1Notes,
		rec.Milestone2Done,
		toNullDate(rec.Milestone2Date),
		rec.Milestone2Notes,
		sessions,
		rec.InRest,
		toNullInt(rec.RestDays),
		toNullDate(rec.RestStart),
		toNullDate(rec.RestEnd),
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

func scanConditioning(sc interface{ Scan(...any) error }) (conditioning.Record, error) {
	var rec conditioning.Record
	var m1, m2, restStart, restEnd sql.NullTime
	var restDays sql.NullInt64
	var sessions []byte
	if err := sc.Scan(
		&rec.ID,
		&rec.OwnerUserID,
		&rec.BirdID,
		&rec.StartDate,
		&rec.Status,
		&rec.Milestone1Done,
		&m1,
		&rec.Milestone1Notes,
		&rec.Milestone2Done,
		&m2,
		&rec.Milestone2Notes,
		&sessions,
		&rec.InRest,
		&restDays,
		&restStart,
		&restEnd,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return conditioning.Record{}, err
	}

	rec.Milestone1Date = fromNullDate(m1)
	rec.Milestone2Date = fromNullDate(m2)
	rec.RestDays = fromNullInt(restDays)
	rec.RestStart = fromNullDate(restStart)
	rec.RestEnd = fromNullDate(restEnd)

	// sessions es JSONB; una fila vieja sin trabajos queda con slice vacío
	if len(sessions) > 0 {
		if err := json.Unmarshal(sessions, &rec.Sessions); err != nil {
			return conditioning.Record{}, err
		}
	}

	return rec, nil
}

func (r *ConditioningRepo) GetByID(ctx context.Context, id, ownerUserID string) (conditioning.Record, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return conditioning.Record{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+conditioningColumns+`
		FROM conditioning
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)

	rec, err := scanConditioning(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return conditioning.Record{}, ErrNotFound
		}
		return conditioning.Record{}, err
	}
	return rec, nil
}

func (r *ConditioningRepo) ListByOwner(ctx context.Context, ownerUserID string, status conditioning.Status) ([]conditioning.Record, error) {
	query := `
		SELECT ` + conditioningColumns + `
		FROM conditioning
		WHERE owner_user_id = $1
	`
	args := []any{ownerUserID}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $2`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]conditioning.Record, 0)
	for rows.Next() {
		rec, err := scanConditioning(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *ConditioningRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM conditioning
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

func (r *ConditioningRepo) FindCurrentByBird(ctx context.Context, ownerUserID, birdID string) (conditioning.Record, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+conditioningColumns+`
		FROM conditioning
		WHERE owner_user_id = $1 AND bird_id = $2
		  AND status IN ('active', 'resting')
		LIMIT 1
	`, ownerUserID, birdID)

	rec, err := scanConditioning(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return conditioning.Record{}, false, nil
		}
		return conditioning.Record{}, false, err
	}
	return rec, true, nil
}
