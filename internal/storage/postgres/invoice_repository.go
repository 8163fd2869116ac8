package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
)

type invoiceRepository struct {
	db *sql.DB
}

// NewInvoiceRepository создаёт PostgreSQL-реализацию InvoiceRepository.
func NewInvoiceRepository(store *Store) domain.InvoiceRepository {
	return &invoiceRepository{db: store.DB()}
}

func (r *invoiceRepository) Add(invoice domain.Invoice) error {
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

	_, err = tx.ExecContext(ctx, `
		INSERT INTO invoices (
			id, customer_id, invoice_date, payment_method, status, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		invoice.ID, invoice.CustomerID, invoice.Date,
		string(invoice.PaymentMethod), string(invoice.Status),
		invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert invoice: %w", err)
	}

	if err = insertItems(ctx, tx, invoice.ID, invoice.Items, 0); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create invoice: %w", err)
	}

	return nil
}

func (r *invoiceRepository) GetByID(id string) (domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	invoice, err := r.scanOne(ctx, `
		SELECT id, customer_id, invoice_date, payment_method, status, created_at, updated_at
		FROM invoices
		WHERE id = $1
	`, id)
	if err != nil {
		return domain.Invoice{}, err
	}

	items, err := loadItems(ctx, r.db, invoice.ID)
	if err != nil {
		return domain.Invoice{}, err
	}
	invoice.Items = items

	return invoice, nil
}

func (r *invoiceRepository) GetAll() ([]domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	return r.queryInvoices(ctx, `
		SELECT id, customer_id, invoice_date, payment_method, status, created_at, updated_at
		FROM invoices
		ORDER BY invoice_date ASC, id ASC
	`)
}

func (r *invoiceRepository) GetFiltered(filter domain.InvoiceFilter) ([]domain.Invoice, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	// Границы диапазона дат включительные.
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("invoice_date >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("invoice_date <= $%d", len(args)))
	}

	query := `
		SELECT id, customer_id, invoice_date, payment_method, status, created_at, updated_at
		FROM invoices
	`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY invoice_date ASC, id ASC"

	return r.queryInvoices(ctx, query, args...)
}

func (r *invoiceRepository) Update(invoice domain.Invoice) error {
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

	var res sql.Result
	res, err = tx.ExecContext(ctx, `
		UPDATE invoices
		SET customer_id = $1,
		    invoice_date = $2,
		    payment_method = $3,
		    status = $4,
		    updated_at = $5
		WHERE id = $6
	`,
		invoice.CustomerID, invoice.Date,
		string(invoice.PaymentMethod), string(invoice.Status),
		invoice.UpdatedAt, invoice.ID,
	)
	if err != nil {
		return fmt.Errorf("update invoice: %w", err)
	}

	var affected int64
	affected, err = res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		err = domain.ErrInvoiceNotFound
		return err
	}

	// Список позиций заменяется целиком.
	if _, err = tx.ExecContext(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, invoice.ID); err != nil {
		return fmt.Errorf("delete invoice items: %w", err)
	}
	if err = insertItems(ctx, tx, invoice.ID, invoice.Items, 0); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update invoice: %w", err)
	}

	return nil
}

func (r *invoiceRepository) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// Позиции удаляет каскад внешнего ключа.
	res, err := r.db.ExecContext(ctx, `DELETE FROM invoices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete invoice: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrInvoiceNotFound
	}

	return nil
}

func (r *invoiceRepository) CustomerTotal(customerID string) (domain.CustomerTotal, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	// LEFT JOIN даёт строку на каждую позицию, поэтому счета
	// считаются только по уникальным идентификаторам.
	total := domain.CustomerTotal{CustomerID: customerID}
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(DISTINCT i.id),
		       COALESCE(SUM(it.quantity * it.unit_price), 0)
		FROM invoices i
		LEFT JOIN invoice_items it ON it.invoice_id = i.id
		WHERE i.customer_id = $1
	`, customerID).Scan(&total.InvoiceCount, &total.TotalAmount)
	if err != nil {
		return domain.CustomerTotal{}, fmt.Errorf("aggregate customer invoices: %w", err)
	}
	if total.InvoiceCount == 0 {
		return domain.CustomerTotal{}, domain.ErrNoInvoicesForCustomer
	}

	return total, nil
}

func (r *invoiceRepository) scanOne(ctx context.Context, query string, args ...any) (domain.Invoice, error) {
	var invoice domain.Invoice
	var payment, status string

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&invoice.ID, &invoice.CustomerID, &invoice.Date,
		&payment, &status, &invoice.CreatedAt, &invoice.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Invoice{}, domain.ErrInvoiceNotFound
		}
		return domain.Invoice{}, fmt.Errorf("select invoice: %w", err)
	}
	invoice.PaymentMethod = domain.PaymentMethod(payment)
	invoice.Status = domain.InvoiceStatus(status)

	return invoice, nil
}

func (r *invoiceRepository) queryInvoices(ctx context.Context, query string, args ...any) ([]domain.Invoice, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()

	invoices := make([]domain.Invoice, 0)
	for rows.Next() {
		var invoice domain.Invoice
		var payment, status string
		if err := rows.Scan(
			&invoice.ID, &invoice.CustomerID, &invoice.Date,
			&payment, &status, &invoice.CreatedAt, &invoice.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice row: %w", err)
		}
		invoice.PaymentMethod = domain.PaymentMethod(payment)
		invoice.Status = domain.InvoiceStatus(status)

		items, err := loadItems(ctx, r.db, invoice.ID)
		if err != nil {
			return nil, err
		}
		invoice.Items = items
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice rows: %w", err)
	}

	return invoices, nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertItems(ctx context.Context, tx execer, invoiceID string, items []domain.InvoiceItem, startPos int64) error {
	for i, item := range items {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO invoice_items (
				id, invoice_id, product_id, product_name, quantity, unit_price, position, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		`,
			item.ID, invoiceID, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, startPos+int64(i), item.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert invoice item: %w", err)
		}
	}
	return nil
}

type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func loadItems(ctx context.Context, db querier, invoiceID string) ([]domain.InvoiceItem, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, invoice_id, product_id, product_name, quantity, unit_price, created_at
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY position ASC, id ASC
	`, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("load invoice items: %w", err)
	}
	defer rows.Close()

	items := make([]domain.InvoiceItem, 0)
	for rows.Next() {
		var item domain.InvoiceItem
		if err := rows.Scan(
			&item.ID, &item.InvoiceID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate invoice items: %w", err)
	}

	return items, nil
}

var _ domain.InvoiceRepository = (*invoiceRepository)(nil)
