package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

type invoiceItemRepository struct {
	db *sql.DB
}

// NewInvoiceItemRepository создаёт PostgreSQL-реализацию InvoiceItemRepository.
func NewInvoiceItemRepository(store *Store) domain.InvoiceItemRepository {
	return &invoiceItemRepository{db: store.DB()}
}

func (r *invoiceItemRepository) AddRange(items []domain.InvoiceItem) error {
	if len(items) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	// Позиция продолжает нумерацию существующих строк счёта.
	for _, item := range items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO invoice_items (
				id, invoice_id, product_id, product_name, quantity, unit_price, position, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6,
				COALESCE((SELECT MAX(position) + 1 FROM invoice_items WHERE invoice_id = $2), 0),
				$7
			)
		`,
			item.ID, item.InvoiceID, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, item.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit add invoice items: %w", err)
	}

	return nil
}

func (r *invoiceItemRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM invoice_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrInvoiceItemNotFound
	}

	return nil
}

func (r *invoiceItemRepository) GetByID(id string) (domain.InvoiceItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var item domain.InvoiceItem
	err := r.db.QueryRowContext(ctx, `
		SELECT id, invoice_id, product_id, product_name, quantity, unit_price, created_at
		FROM invoice_items
		WHERE id = $1
	`, id).Scan(
		&item.ID, &item.InvoiceID, &item.ProductID, &item.ProductName,
		&item.Quantity, &item.UnitPrice, &item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.InvoiceItem{}, domain.ErrInvoiceItemNotFound
		}
		return domain.InvoiceItem{}, fmt.Errorf("select invoice item: %w", err)
	}

	return item, nil
}

func (r *invoiceItemRepository) Update(item domain.InvoiceItem) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE invoice_items
		SET product_id = $1,
		    product_name = $2,
		    quantity = $3,
		    unit_price = $4
		WHERE id = $5
	`,
		item.ProductID, item.ProductName, item.Quantity, item.UnitPrice, item.ID,
	)
	if err != nil {
		return fmt.Errorf("update invoice item: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrInvoiceItemNotFound
	}

	return nil
}

func (r *invoiceItemRepository) GetByInvoiceID(invoiceID string) ([]domain.InvoiceItem, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return loadItems(ctx, r.db, invoiceID)
}

var _ domain.InvoiceItemRepository = (*invoiceItemRepository)(nil)
