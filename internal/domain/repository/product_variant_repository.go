package repository

import "github.com/jhoicas/pos-backoffice/internal/domain/entity"

// ProductVariantRepository define el puerto de persistencia para ProductVariant.
// GetByID devuelve nil para variantes inexistentes o eliminadas.
type ProductVariantRepository interface {
	Create(variant *entity.ProductVariant) error
	GetByID(id string) (*entity.ProductVariant, error)
	ListByProduct(productID string) ([]*entity.ProductVariant, error)
	Update(variant *entity.ProductVariant) error
	SoftDelete(id string) error
}
