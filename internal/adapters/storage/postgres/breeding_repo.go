package postgres

import (
	"context"
	"database/sql"
	"strings"

	"castador-pro/internal/domain/breeding"
)

type PairsRepo struct {
	db *sql.DB
}

func NewPairsRepo(db *sql.DB) *PairsRepo {
	return &PairsRepo{db: db}
}

const pairColumns = `
	id, owner_user_id,
	father_id, mother_id,
	date, goal, notes, status,
	estimated_consanguinity,
	created_at, updated_at
`

func (r *PairsRepo) Create(ctx context.Context, p breeding.Pair) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pairs (`+pairColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
	`,
		p.ID,
		p.OwnerUserID,
		p.FatherID,
		p.MotherID,
		p.Date,
		p.Goal,
		p.Notes,
		p.Status,
		p.EstimatedConsanguinity,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PairsRepo) Update(ctx context.Context, p breeding.Pair) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pairs
		SET
			father_id = $2,
			mother_id = $3,
			date = $4,
			goal = $5,
			notes = $6,
			status = $7,
			estimated_consanguinity = $8,
			updated_at = $9
		WHERE id = $1
	`,
		p.ID,
		p.FatherID,
		p.MotherID,
		p.Date,
		p.Goal,
		p.Notes,
		p.Status,
		p.EstimatedConsanguinity,
		p.UpdatedAt,
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

func scanPair(sc interface{ Scan(...any) error }) (breeding.Pair, error) {
	var p breeding.Pair
	if err := sc.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.FatherID,
		&p.MotherID,
		&p.Date,
		&p.Goal,
		&p.Notes,
		&p.Status,
		&p.EstimatedConsanguinity,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return breeding.Pair{}, err
	}
	return p, nil
}

func (r *PairsRepo) GetByID(ctx context.Context, id, ownerUserID string) (breeding.Pair, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return breeding.Pair{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+pairColumns+`
		FROM pairs
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)

	p, err := scanPair(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return breeding.Pair{}, ErrNotFound
		}
		return breeding.Pair{}, err
	}
	return p, nil
}

func (r *PairsRepo) ListByOwner(ctx context.Context, ownerUserID string, status breeding.PairStatus) ([]breeding.Pair, error) {
	query := `
		SELECT ` + pairColumns + `
		FROM pairs
		WHERE owner_user_id = $1
	`
	args := []any{ownerUserID}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $2`
	}
	query += ` ORDER BY date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeding.Pair, 0)
	for rows.Next() {
		p, err := scanPair(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PairsRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM pairs
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

func (r *PairsRepo) CountByOwner(ctx context.Context, ownerUserID string, status breeding.PairStatus) (int, error) {
	query := `SELECT COUNT(*) FROM pairs WHERE owner_user_id = $1`
	args := []any{ownerUserID}
	if status != "" {
		args = append(args, status)
		query += ` AND status = $2`
	}

	var n int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *PairsRepo) CountByBird(ctx context.Context, ownerUserID, birdID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM pairs
		WHERE owner_user_id = $1 AND (father_id = $2 OR mother_id = $2)
	`, ownerUserID, birdID).Scan(&n)
	return n, err
}

type LittersRepo struct {
	db *sql.DB
}

func NewLittersRepo(db *sql.DB) *LittersRepo {
	return &LittersRepo{db: db}
}

const litterColumns = `
	id, owner_user_id, pair_id,
	laying_start, egg_count, incubation_start,
	method, hatch_date, chicks_hatched, notes,
	created_at, updated_at
`

func (r *LittersRepo) Create(ctx context.Context, l breeding.Litter) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO litters (`+litterColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		l.ID,
		l.OwnerUserID,
		l.PairID,
		toNullDate(l.LayingStart),
		toNullInt(l.EggCount),
		toNullDate(l.IncubationStart),
		l.Method,
		toNullDate(l.HatchDate),
		toNullInt(l.ChicksHatched),
		l.Notes,
		l.CreatedAt,
		l.UpdatedAt,
	)
	return err
}

func (r *LittersRepo) Update(ctx context.Context, l breeding.Litter) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE litters
		SET
			laying_start = $2,
			egg_count = $3,
			incubation_start = $4,
			method = $5,
			hatch_date = $6,
			chicks_hatched = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1
	`,
		l.ID,
		toNullDate(l.LayingStart),
		toNullInt(l.EggCount),
		toNullDate(l.IncubationStart),
		l.Method,
		toNullDate(l.HatchDate),
		toNullInt(l.ChicksHatched),
		l.Notes,
		l.UpdatedAt,
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

func scanLitter(sc interface{ Scan(...any) error }) (breeding.Litter, error) {
	var l breeding.Litter
	var laying, incubation, hatch sql.NullTime
	var eggs, chicks sql.NullInt64
	if err := sc.Scan(
		&l.ID,
		&l.OwnerUserID,
		&l.PairID,
		&laying,
		&eggs,
		&incubation,
		&l.Method,
		&hatch,
		&chicks,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return breeding.Litter{}, err
	}
	l.LayingStart = fromNullDate(laying)
	l.EggCount = fromNullInt(eggs)
	l.IncubationStart = fromNullDate(incubation)
	l.HatchDate = fromNullDate(hatch)
	l.ChicksHatched = fromNullInt(chicks)
	return l, nil
}

func (r *LittersRepo) GetByID(ctx context.Context, id, ownerUserID string) (breeding.Litter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return breeding.Litter{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+litterColumns+`
		FROM litters
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)

	l, err := scanLitter(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return breeding.Litter{}, ErrNotFound
		}
		return breeding.Litter{}, err
	}
	return l, nil
}

func (r *LittersRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]breeding.Litter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+litterColumns+`
		FROM litters
		WHERE owner_user_id = $1
		ORDER BY created_at DESC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]breeding.Litter, 0)
	for rows.Next() {
		l, err := scanLitter(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *LittersRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM litters
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

func (r *LittersRepo) CountActive(ctx context.Context, ownerUserID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM litters
		WHERE owner_user_id = $1
		  AND incubation_start IS NOT NULL
		  AND hatch_date IS NULL
	`, ownerUserID).Scan(&n)
	return n, err
}
