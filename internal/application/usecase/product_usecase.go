package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/pos-backoffice/internal/application/dto"
	"github.com/jhoicas/pos-backoffice/internal/domain"
	"github.com/jhoicas/pos-backoffice/internal/domain/entity"
	"github.com/jhoicas/pos-backoffice/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y sus variantes.
type ProductUseCase struct {
	repo        repository.ProductRepository
	variantRepo repository.ProductVariantRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, variantRepo repository.ProductVariantRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, variantRepo: variantRepo}
}

// Create crea un producto nuevo. SKU duplicado retorna ErrDuplicate.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ID:                  uuid.New().String(),
		SKU:                 in.SKU,
		Name:                in.Name,
		Description:         in.Description,
		SalePrice:           in.SalePrice,
		DefaultPurchaseCost: in.DefaultPurchaseCost,
		UnitMeasure:         in.UnitMeasure,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// GetByID obtiene un producto con sus variantes; ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	variants, err := uc.variantRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product, variants), nil
}

// Update actualiza campos de un producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.DefaultPurchaseCost != nil {
		product.DefaultPurchaseCost = *in.DefaultPurchaseCost
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product, nil), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p, nil))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete hace borrado lógico de un producto.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.SoftDelete(id)
}

// CreateVariant crea una variante de un producto existente.
func (uc *ProductUseCase) CreateVariant(productID string, in dto.CreateVariantRequest) (*dto.VariantResponse, error) {
	product, err := uc.repo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	variant := &entity.ProductVariant{
		ID:        uuid.New().String(),
		ProductID: productID,
		SKU:       in.SKU,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.variantRepo.Create(variant); err != nil {
		return nil, err
	}
	return toVariantResponse(variant), nil
}

func toProductResponse(p *entity.Product, variants []*entity.ProductVariant) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	resp := &dto.ProductResponse{
		ID:                  p.ID,
		SKU:                 p.SKU,
		Name:                p.Name,
		Description:         p.Description,
		SalePrice:           p.SalePrice,
		DefaultPurchaseCost: p.DefaultPurchaseCost,
		UnitMeasure:         p.UnitMeasure,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
	for _, v := range variants {
		resp.Variants = append(resp.Variants, *toVariantResponse(v))
	}
	return resp
}

func toVariantResponse(v *entity.ProductVariant) *dto.VariantResponse {
	if v == nil {
		return nil
	}
	return &dto.VariantResponse{
		ID:        v.ID,
		ProductID: v.ProductID,
		SKU:       v.SKU,
		Name:      v.Name,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
