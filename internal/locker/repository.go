package locker

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, l *Locker) error
	GetByID(ctx context.Context, id string) (*Locker, error)
	List(ctx context.Context, filter Filter) ([]*Locker, int, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, l *Locker) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.lockers").
		Columns("location_id", "name", "size", "is_active").
		Values(l.LocationID, l.Name, l.Size, l.IsActive).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create locker query failed: %w", err)
	}

	return r.pool.QueryRow(ctx, query, args...).Scan(&l.ID, &l.CreatedAt)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Locker, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"k.id", "k.location_id", "l.name", "k.name", "k.size", "k.is_active", "k.created_at",
	).
		From("public.lockers k").
		Join("public.locations l ON k.location_id = l.id").
		Where(squirrel.Eq{"k.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get locker query failed: %w", err)
	}

	var l Locker
	if err := r.pool.QueryRow(ctx, query, args...).Scan(
		&l.ID, &l.LocationID, &l.LocationName, &l.Name, &l.Size, &l.IsActive, &l.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get locker failed: %w", err)
	}
	return &l, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Locker, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"k.id", "k.location_id", "l.name", "k.name", "k.size", "k.is_active", "k.created_at",
		"count(*) OVER() as total_count",
	).
		From("public.lockers k").
		Join("public.locations l ON k.location_id = l.id")

	if filter.LocationID != "" {
		query = query.Where(squirrel.Eq{"k.location_id": filter.LocationID})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"k.is_active": *filter.IsActive})
	}

	query = query.OrderBy("k.name ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list lockers query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lockers failed: %w", err)
	}
	defer rows.Close()

	var lockers []*Locker
	var total int

	for rows.Next() {
		var l Locker
		if err := rows.Scan(
			&l.ID, &l.LocationID, &l.LocationName, &l.Name, &l.Size, &l.IsActive, &l.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan locker failed: %w", err)
		}
		lockers = append(lockers, &l)
	}

	return lockers, total, nil
}
