package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

type storeInfoRepository struct {
	db *sql.DB
}

// NewStoreInfoRepository создаёт PostgreSQL-реализацию StoreInfoRepository.
func NewStoreInfoRepository(store *Store) domain.StoreInfoRepository {
	return &storeInfoRepository{db: store.DB()}
}

func (r *storeInfoRepository) Create(info domain.StoreInfo) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO store_infos (id, name, address, phone, website, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
	`,
		info.ID, info.Name, info.Address, info.Phone, info.Website, info.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert store info: %w", err)
	}

	return nil
}

func (r *storeInfoRepository) Get() (domain.StoreInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.scanOne(ctx, `
		SELECT id, name, address, phone, website, created_at
		FROM store_infos
		ORDER BY created_at ASC, id ASC
		LIMIT 1
	`)
}

func (r *storeInfoRepository) GetByID(id string) (domain.StoreInfo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.scanOne(ctx, `
		SELECT id, name, address, phone, website, created_at
		FROM store_infos
		WHERE id = $1
	`, id)
}

func (r *storeInfoRepository) Update(info domain.StoreInfo) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE store_infos
		SET name = $1,
		    address = $2,
		    phone = $3,
		    website = $4
		WHERE id = $5
	`,
		info.Name, info.Address, info.Phone, info.Website, info.ID,
	)
	if err != nil {
		return fmt.Errorf("update store info: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrStoreInfoNotFound
	}

	return nil
}

func (r *storeInfoRepository) scanOne(ctx context.Context, query string, args ...any) (domain.StoreInfo, error) {
	var info domain.StoreInfo
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&info.ID, &info.Name, &info.Address, &info.Phone, &info.Website, &info.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.StoreInfo{}, domain.ErrStoreInfoNotFound
		}
		return domain.StoreInfo{}, fmt.Errorf("select store info: %w", err)
	}

	return info, nil
}

var _ domain.StoreInfoRepository = (*storeInfoRepository)(nil)
