package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"adcopy/internal/interfaces"
	"adcopy/internal/models"
)

type adRepository struct {
	db *sql.DB
}

func NewAdRepository(db *sql.DB) interfaces.AdRepository {
	return &adRepository{db: db}
}

func (r *adRepository) Create(ctx context.Context, ad *models.Ad) error {
	tags := ad.Tags
	if tags == nil {
		tags = []string{}
	}

	query := `
        INSERT INTO ads (
            request_id, platform, input_data, variations, is_favorite, tags
        ) VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `

	return r.db.QueryRowContext(
		ctx,
		query,
		ad.RequestID,
		ad.Platform,
		[]byte(ad.InputData),
		[]byte(ad.Variations),
		ad.IsFavorite,
		pq.Array(tags),
	).Scan(&ad.ID, &ad.CreatedAt)
}

func (r *adRepository) GetByID(ctx context.Context, id string) (*models.Ad, error) {
	query := `
        SELECT id, request_id, platform, input_data, variations, is_favorite, tags, created_at
        FROM ads
        WHERE id = $1
    `

	var ad models.Ad
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&ad.ID,
		&ad.RequestID,
		&ad.Platform,
		&ad.InputData,
		&ad.Variations,
		&ad.IsFavorite,
		pq.Array(&ad.Tags),
		&ad.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}

	return &ad, nil
}

// List retrieves generation records, newest first.
func (r *adRepository) List(ctx context.Context, filter interfaces.AdFilter) ([]*models.Ad, error) {
	query := `
        SELECT id, request_id, platform, input_data, variations, is_favorite, tags, created_at
        FROM ads
        WHERE 1=1
    `

	var args []interface{}
	var whereClauses []string
	argPos := 1

	if filter.Platform != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("platform = $%d", argPos))
		args = append(args, filter.Platform)
		argPos++
	}

	if len(whereClauses) > 0 {
		query += " AND " + strings.Join(whereClauses, " AND ")
	}

	query += " ORDER BY created_at DESC"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", argPos)
		args = append(args, filter.Limit)
		argPos++
	}

	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET $%d", argPos)
		args = append(args, filter.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ads []*models.Ad
	for rows.Next() {
		var ad models.Ad
		err := rows.Scan(
			&ad.ID,
			&ad.RequestID,
			&ad.Platform,
			&ad.InputData,
			&ad.Variations,
			&ad.IsFavorite,
			pq.Array(&ad.Tags),
			&ad.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		ads = append(ads, &ad)
	}

	return ads, rows.Err()
}

// SetFavorite is an unconditional single-row write; concurrent toggles are
// last-write-wins.
func (r *adRepository) SetFavorite(ctx context.Context, id string, favorite bool) error {
	result, err := r.db.ExecContext(ctx, "UPDATE ads SET is_favorite = $1 WHERE id = $2", favorite, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *adRepository) SetTags(ctx context.Context, id string, tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	result, err := r.db.ExecContext(ctx, "UPDATE ads SET tags = $1 WHERE id = $2", pq.Array(tags), id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *adRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM ads WHERE id = $1", id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func requireRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
