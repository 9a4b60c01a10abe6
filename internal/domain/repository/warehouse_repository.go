package repository

import "github.com/jhoicas/pos-backoffice/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
// GetByID devuelve nil para bodegas inexistentes o eliminadas.
type WarehouseRepository interface {
	Create(warehouse *entity.Warehouse) error
	GetByID(id string) (*entity.Warehouse, error)
	Update(warehouse *entity.Warehouse) error
	List(limit, offset int) ([]*entity.Warehouse, error)
	SoftDelete(id string) error
}
