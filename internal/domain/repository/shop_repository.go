package repository

import "github.com/jhoicas/pos-backoffice/internal/domain/entity"

// ShopRepository define el puerto de persistencia para Shop (DIP).
// GetByID devuelve nil para tiendas inexistentes o eliminadas.
type ShopRepository interface {
	Create(shop *entity.Shop) error
	GetByID(id string) (*entity.Shop, error)
	Update(shop *entity.Shop) error
	List(limit, offset int) ([]*entity.Shop, error)
	SoftDelete(id string) error
}
