package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

var _ repository.ProductVariantRepository = (*ProductVariantRepo)(nil)

// ProductVariantRepo implementación del puerto ProductVariantRepository sobre PostgreSQL.
type ProductVariantRepo struct {
	q Querier
}

// NewProductVariantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductVariantRepository(q Querier) *ProductVariantRepo {
	return &ProductVariantRepo{q: q}
}

// Create persiste una nueva variante.
func (r *ProductVariantRepo) Create(variant *entity.ProductVariant) error {
	query := `
		INSERT INTO product_variants (id, product_id, sku, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.ProductID, variant.SKU, variant.Name,
		variant.CreatedAt, variant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrReferenceNotFound
		}
		return fmt.Errorf("insert product variant: %w", err)
	}
	return nil
}

// GetByID obtiene una variante por ID; nil si no existe o está eliminada.
func (r *ProductVariantRepo) GetByID(id string) (*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, sku, name, created_at, updated_at, deleted_at
		FROM product_variants WHERE id = $1 AND deleted_at IS NULL`
	var v entity.ProductVariant
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.CreatedAt, &v.UpdatedAt, &v.DeletedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product variant: %w", err)
	}
	return &v, nil
}

// ListByProduct lista las variantes activas de un producto.
func (r *ProductVariantRepo) ListByProduct(productID string) ([]*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, sku, name, created_at, updated_at, deleted_at
		FROM product_variants WHERE product_id = $1 AND deleted_at IS NULL ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list product variants: %w", err)
	}
	defer rows.Close()
	var list []*entity.ProductVariant
	for rows.Next() {
		var v entity.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Name, &v.CreatedAt, &v.UpdatedAt, &v.DeletedAt); err != nil {
			return nil, fmt.Errorf("scan product variant: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// Update actualiza una variante existente.
func (r *ProductVariantRepo) Update(variant *entity.ProductVariant) error {
	query := `
		UPDATE product_variants SET sku = $2, name = $3, updated_at = $4
		WHERE id = $1 AND deleted_at IS NULL`
	_, err := r.q.Exec(context.Background(), query,
		variant.ID, variant.SKU, variant.Name, variant.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product variant: %w", err)
	}
	return nil
}

// SoftDelete marca una variante como eliminada.
func (r *ProductVariantRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE product_variants SET deleted_at = now() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete product variant: %w", err)
	}
	return nil
}
