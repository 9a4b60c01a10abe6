package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.StockTransferRepository = (*StockTransferRepo)(nil)

// StockTransferRepo implementación del puerto StockTransferRepository sobre
// PostgreSQL (usable con pool o tx). Cabecera en stock_transfers, líneas en
// stock_transfer_items.
type StockTransferRepo struct {
	q Querier
}

// NewStockTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockTransferRepository(q Querier) *StockTransferRepo {
	return &StockTransferRepo{q: q}
}

const transferColumns = `
	id, transfer_number, source_warehouse_id, source_shop_id,
	destination_warehouse_id, destination_shop_id, status,
	request_date, ship_date, receive_date,
	requested_by_user_id, shipped_by_user_id, received_by_user_id,
	notes, created_at, updated_at`

// Create persiste cabecera e ítems de un traslado nuevo.
func (r *StockTransferRepo) Create(transfer *entity.StockTransfer) error {
	query := `
		INSERT INTO stock_transfers (` + transferColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		transfer.ID, transfer.TransferNumber,
		transfer.SourceWarehouseID, transfer.SourceShopID,
		transfer.DestinationWarehouseID, transfer.DestinationShopID,
		transfer.Status, transfer.RequestDate, transfer.ShipDate, transfer.ReceiveDate,
		transfer.RequestedByUserID, transfer.ShippedByUserID, transfer.ReceivedByUserID,
		transfer.Notes, transfer.CreatedAt, transfer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrReferenceNotFound
		}
		return fmt.Errorf("insert stock transfer: %w", err)
	}
	for _, item := range transfer.Items {
		if err := r.insertItem(item); err != nil {
			return err
		}
	}
	return nil
}

// GetByID carga un traslado no eliminado; nil si no existe.
func (r *StockTransferRepo) GetByID(id string, withItems bool) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1 AND deleted_at IS NULL`
	t, err := r.scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil || t == nil {
		return t, err
	}
	if withItems {
		if t.Items, err = r.loadItems(id); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// GetByIDForUpdate carga el traslado con sus líneas y bloquea la fila de
// cabecera (SELECT FOR UPDATE). Envíos y recepciones concurrentes sobre el
// mismo traslado se serializan en este lock; la validación de remanentes
// siempre ve contadores frescos.
func (r *StockTransferRepo) GetByIDForUpdate(id string) (*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE id = $1 AND deleted_at IS NULL FOR UPDATE`
	t, err := r.scanTransfer(r.q.QueryRow(context.Background(), query, id))
	if err != nil || t == nil {
		return t, err
	}
	if t.Items, err = r.loadItems(id); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateHeader persiste los campos mutables de la cabecera.
func (r *StockTransferRepo) UpdateHeader(transfer *entity.StockTransfer) error {
	query := `
		UPDATE stock_transfers SET
			source_warehouse_id = $2, source_shop_id = $3,
			destination_warehouse_id = $4, destination_shop_id = $5,
			status = $6, request_date = $7, ship_date = $8, receive_date = $9,
			shipped_by_user_id = $10, received_by_user_id = $11,
			notes = $12, updated_at = $13
		WHERE id = $1 AND deleted_at IS NULL`
	cmd, err := r.q.Exec(context.Background(), query,
		transfer.ID,
		transfer.SourceWarehouseID, transfer.SourceShopID,
		transfer.DestinationWarehouseID, transfer.DestinationShopID,
		transfer.Status, transfer.RequestDate, transfer.ShipDate, transfer.ReceiveDate,
		transfer.ShippedByUserID, transfer.ReceivedByUserID,
		transfer.Notes, transfer.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateItemQuantities persiste los contadores de una línea.
func (r *StockTransferRepo) UpdateItemQuantities(item *entity.StockTransferItem) error {
	query := `
		UPDATE stock_transfer_items SET
			quantity_requested = $2, quantity_shipped = $3, quantity_received = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(context.Background(), query,
		item.ID, item.QuantityRequested, item.QuantityShipped, item.QuantityReceived, item.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update transfer item: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceItems descarta las líneas existentes y crea el conjunto nuevo.
// Solo se invoca con el traslado PENDING y su cabecera bloqueada.
func (r *StockTransferRepo) ReplaceItems(transferID string, items []*entity.StockTransferItem) error {
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM stock_transfer_items WHERE transfer_id = $1`, transferID); err != nil {
		return fmt.Errorf("delete transfer items: %w", err)
	}
	for _, item := range items {
		if err := r.insertItem(item); err != nil {
			return err
		}
	}
	return nil
}

// SoftDelete marca la cabecera como eliminada; las líneas quedan para auditoría.
func (r *StockTransferRepo) SoftDelete(id string, deletedAt time.Time) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE stock_transfers SET deleted_at = $2, updated_at = $2 WHERE id = $1 AND deleted_at IS NULL`,
		id, deletedAt)
	if err != nil {
		return fmt.Errorf("soft delete stock transfer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsNumber verifica si un número de traslado ya fue usado, incluyendo
// traslados eliminados: un número nunca se reutiliza.
func (r *StockTransferRepo) ExistsNumber(transferNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock_transfers WHERE transfer_number = $1)`,
		transferNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists transfer number: %w", err)
	}
	return exists, nil
}

// List lista traslados no eliminados según el filtro, más recientes primero.
func (r *StockTransferRepo) List(filter repository.TransferFilter) ([]*entity.StockTransfer, error) {
	query := `SELECT ` + transferColumns + ` FROM stock_transfers WHERE deleted_at IS NULL`
	where, args := buildTransferFilter(filter)
	query += where
	pos := len(args) + 1
	query += fmt.Sprintf(" ORDER BY request_date DESC, created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockTransfer
	for rows.Next() {
		t, err := r.scanTransfer(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// Count cuenta traslados no eliminados según el filtro.
func (r *StockTransferRepo) Count(filter repository.TransferFilter) (int, error) {
	query := `SELECT COUNT(*) FROM stock_transfers WHERE deleted_at IS NULL`
	where, args := buildTransferFilter(filter)
	query += where
	var total int
	if err := r.q.QueryRow(context.Background(), query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count stock transfers: %w", err)
	}
	return total, nil
}

// buildTransferFilter arma las condiciones WHERE adicionales y sus argumentos.
func buildTransferFilter(filter repository.TransferFilter) (string, []any) {
	var where string
	var args []any
	add := func(cond string, arg any) {
		args = append(args, arg)
		where += fmt.Sprintf(" AND "+cond, len(args))
	}
	if filter.Status != "" {
		add("status = $%d", filter.Status)
	}
	if filter.WarehouseID != "" {
		args = append(args, filter.WarehouseID)
		where += fmt.Sprintf(" AND (source_warehouse_id = $%d OR destination_warehouse_id = $%d)", len(args), len(args))
	}
	if filter.ShopID != "" {
		args = append(args, filter.ShopID)
		where += fmt.Sprintf(" AND (source_shop_id = $%d OR destination_shop_id = $%d)", len(args), len(args))
	}
	if filter.RequestedBy != "" {
		add("requested_by_user_id = $%d", filter.RequestedBy)
	}
	if filter.DateFrom != nil {
		add("request_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("request_date <= $%d", *filter.DateTo)
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND (transfer_number ILIKE $%d OR notes ILIKE $%d)", len(args), len(args))
	}
	return where, args
}

func (r *StockTransferRepo) insertItem(item *entity.StockTransferItem) error {
	query := `
		INSERT INTO stock_transfer_items
			(id, transfer_id, product_id, product_variant_id,
			 quantity_requested, quantity_shipped, quantity_received, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TransferID, item.ProductID, item.ProductVariantID,
		item.QuantityRequested, item.QuantityShipped, item.QuantityReceived,
		item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrReferenceNotFound
		}
		return fmt.Errorf("insert transfer item: %w", err)
	}
	return nil
}

func (r *StockTransferRepo) loadItems(transferID string) ([]*entity.StockTransferItem, error) {
	query := `
		SELECT id, transfer_id, product_id, product_variant_id,
		       quantity_requested, quantity_shipped, quantity_received, created_at, updated_at
		FROM stock_transfer_items WHERE transfer_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, transferID)
	if err != nil {
		return nil, fmt.Errorf("load transfer items: %w", err)
	}
	defer rows.Close()
	var items []*entity.StockTransferItem
	for rows.Next() {
		var it entity.StockTransferItem
		if err := rows.Scan(&it.ID, &it.TransferID, &it.ProductID, &it.ProductVariantID,
			&it.QuantityRequested, &it.QuantityShipped, &it.QuantityReceived,
			&it.CreatedAt, &it.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan transfer item: %w", err)
		}
		items = append(items, &it)
	}
	return items, rows.Err()
}

// scanTransfer funciona con pgx.Row y pgx.Rows (ambos exponen Scan).
func (r *StockTransferRepo) scanTransfer(row pgx.Row) (*entity.StockTransfer, error) {
	var t entity.StockTransfer
	err := row.Scan(
		&t.ID, &t.TransferNumber,
		&t.SourceWarehouseID, &t.SourceShopID,
		&t.DestinationWarehouseID, &t.DestinationShopID,
		&t.Status, &t.RequestDate, &t.ShipDate, &t.ReceiveDate,
		&t.RequestedByUserID, &t.ShippedByUserID, &t.ReceivedByUserID,
		&t.Notes, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan stock transfer: %w", err)
	}
	return &t, nil
}
