package postgres

import (
	"context"
	"database/sql"
	"strings"

	"castador-pro/internal/domain/fights"
)

type FightsRepo struct {
	db *sql.DB
}

func NewFightsRepo(db *sql.DB) *FightsRepo {
	return &FightsRepo{db: db}
}

const fightColumns = `
	id, owner_user_id, bird_id,
	date, venue, result, rating, notes,
	created_at, updated_at
`

func (r *FightsRepo) Create(ctx context.Context, f fights.Fight) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO fights (`+fightColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
	`,
		f.ID,
		f.OwnerUserID,
		f.BirdID,
		f.Date,
		f.Venue,
		f.Result,
		f.Rating,
		f.Notes,
		f.CreatedAt,
		f.UpdatedAt,
	)
	return err
}

func (r *FightsRepo) Update(ctx context.Context, f fights.Fight) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE fights
		SET
			bird_id = $2,
			date = $3,
			venue = $4,
			result = $5,
			rating = $6,
			notes = $7,
			updated_at = $8
		WHERE id = $1
	`,
		f.ID,
		f.BirdID,
		f.Date,
		f.Venue,
		f.Result,
		f.Rating,
		f.Notes,
		f.UpdatedAt,
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

func scanFight(sc interface{ Scan(...any) error }) (fights.Fight, error) {
	var f fights.Fight
	if err := sc.Scan(
		&f.ID,
		&f.OwnerUserID,
		&f.BirdID,
		&f.Date,
		&f.Venue,
		&f.Result,
		&f.Rating,
		&f.Notes,
		&f.CreatedAt,
		&f.UpdatedAt,
	); err != nil {
		return fights.Fight{}, err
	}
	return f, nil
}

func (r *FightsRepo) GetByID(ctx context.Context, id, ownerUserID string) (fights.Fight, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return fights.Fight{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+fightColumns+`
		FROM fights
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)

	f, err := scanFight(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return fights.Fight{}, ErrNotFound
		}
		return fights.Fight{}, err
	}
	return f, nil
}

func (r *FightsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter fights.ListFilter) ([]fights.Fight, error) {
	query := `
		SELECT ` + fightColumns + `
		FROM fights
		WHERE owner_user_id = $1
	`
	args := []any{ownerUserID}
	if filter.BirdID != "" {
		args = append(args, filter.BirdID)
		query += ` AND bird_id = $` + itoa(len(args))
	}
	if filter.Result != "" {
		args = append(args, filter.Result)
		query += ` AND result = $` + itoa(len(args))
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]fights.Fight, 0)
	for rows.Next() {
		f, err := scanFight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FightsRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM fights
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

func (r *FightsRepo) ListRecent(ctx context.Context, ownerUserID string, n int) ([]fights.Fight, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+fightColumns+`
		FROM fights
		WHERE owner_user_id = $1
		ORDER BY date DESC
		LIMIT $2
	`, ownerUserID, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]fights.Fight, 0)
	for rows.Next() {
		f, err := scanFight(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *FightsRepo) DeleteByBird(ctx context.Context, ownerUserID, birdID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM fights
		WHERE owner_user_id = $1 AND bird_id = $2
	`, ownerUserID, birdID)
	return err
}
