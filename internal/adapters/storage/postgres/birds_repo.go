package postgres

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"castador-pro/internal/domain/birds"
)

type BirdsRepo struct {
	db *sql.DB
}

func NewBirdsRepo(db *sql.DB) *BirdsRepo {
	return &BirdsRepo{db: db}
}

const birdColumns = `
	id, owner_user_id,
	role, code, name, photo,
	birth_date, color, line, status,
	notes, qr_tag, father_id, mother_id,
	created_at, updated_at
`

func (r *BirdsRepo) Create(ctx context.Context, b birds.Bird) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO birds (`+birdColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16)
	`,
		b.ID,
		b.OwnerUserID,
		b.Role,
		b.Code,
		b.Name,
		b.Photo,
		toNullDate(b.BirthDate),
		b.Color,
		b.Line,
		b.Status,
		b.Notes,
		b.QRTag,
		b.FatherID,
		b.MotherID,
		b.CreatedAt,
		b.UpdatedAt,
	)
	return err
}

func (r *BirdsRepo) Update(ctx context.Context, b birds.Bird) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE birds
		SET
			role = $2,
			code = $3,
			name = $4,
			photo = $5,
			birth_date = $6,
			color = $7,
			line = $8,
			status = $9,
			notes = $10,
			qr_tag = $11,
			father_id = $12,
			mother_id = $13,
			updated_at = $14
		WHERE id = $1
	`,
		b.ID,
		b.Role,
		b.Code,
		b.Name,
		b.Photo,
		toNullDate(b.BirthDate),
		b.Color,
		b.Line,
		b.Status,
		b.Notes,
		b.QRTag,
		b.FatherID,
		b.MotherID,
		b.UpdatedAt,
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

func scanBird(sc interface{ Scan(...any) error }) (birds.Bird, error) {
	var b birds.Bird
	var bd sql.NullTime
	if err := sc.Scan(
		&b.ID,
		&b.OwnerUserID,
		&b.Role,
		&b.Code,
		&b.Name,
		&b.Photo,
		&bd,
		&b.Color,
		&b.Line,
		&b.Status,
		&b.Notes,
		&b.QRTag,
		&b.FatherID,
		&b.MotherID,
		&b.CreatedAt,
		&b.UpdatedAt,
	); err != nil {
		return birds.Bird{}, err
	}
	b.BirthDate = fromNullDate(bd)
	return b, nil
}

func (r *BirdsRepo) GetByID(ctx context.Context, id, ownerUserID string) (birds.Bird, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return birds.Bird{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+birdColumns+`
		FROM birds
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)

	b, err := scanBird(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return birds.Bird{}, ErrNotFound
		}
		return birds.Bird{}, err
	}
	return b, nil
}

func (r *BirdsRepo) ListByOwner(ctx context.Context, ownerUserID string, f birds.ListFilter) ([]birds.Bird, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	// Filtros opcionales armados a mano; $1 siempre es el owner.
	query := `
		SELECT ` + birdColumns + `
		FROM birds
		WHERE owner_user_id = $1
	`
	args := []any{ownerUserID}
	if f.Role != "" {
		args = append(args, f.Role)
		query += ` AND role = $` + itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += ` AND status = $` + itoa(len(args))
	}
	if f.Color != "" {
		args = append(args, f.Color)
		query += ` AND color ILIKE '%' || $` + itoa(len(args)) + ` || '%'`
	}
	if f.Line != "" {
		args = append(args, f.Line)
		query += ` AND line ILIKE '%' || $` + itoa(len(args)) + ` || '%'`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]birds.Bird, 0)
	for rows.Next() {
		b, err := scanBird(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BirdsRepo) Delete(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM birds
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

func (r *BirdsRepo) ListChildren(ctx context.Context, ownerUserID, parentID string, viaFather bool) ([]birds.Bird, error) {
	col := "mother_id"
	if viaFather {
		col = "father_id"
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+birdColumns+`
		FROM birds
		WHERE owner_user_id = $1 AND `+col+` = $2
		ORDER BY created_at ASC
	`, ownerUserID, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]birds.Bird, 0)
	for rows.Next() {
		b, err := scanBird(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *BirdsRepo) CountChildren(ctx context.Context, ownerUserID, birdID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*)
		FROM birds
		WHERE owner_user_id = $1 AND (father_id = $2 OR mother_id = $2)
	`, ownerUserID, birdID).Scan(&n)
	return n, err
}

func (r *BirdsRepo) Count(ctx context.Context, ownerUserID string, f birds.CountFilter) (int, error) {
	query := `SELECT COUNT(*) FROM birds WHERE owner_user_id = $1`
	args := []any{ownerUserID}
	if f.Role != "" {
		args = append(args, f.Role)
		query += ` AND role = $` + itoa(len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		query += ` AND status = $` + itoa(len(args))
	}

	var n int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
