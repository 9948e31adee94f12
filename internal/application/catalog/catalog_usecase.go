package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// CatalogUseCase altas y listados de categorías, proveedores y tarifas de IVA.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	vatRates   repository.VatRateRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	vatRates repository.VatRateRepository,
) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, suppliers: suppliers, vatRates: vatRates}
}

// CreateCategory crea una categoría asignándole el siguiente prefijo de SKU.
// El prefijo es permanente: jamás se reasigna, ni tras quedar sin productos.
func (uc *CatalogUseCase) CreateCategory(in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	max, err := uc.categories.MaxSKUPrefix()
	if err != nil {
		return nil, err
	}
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		SKUPrefix: max + 1,
		CreatedAt: time.Now(),
	}
	if err := uc.categories.Create(category); err != nil {
		return nil, err
	}
	out := toCategoryResponse(category)
	return &out, nil
}

// ListCategories lista todas las categorías.
func (uc *CatalogUseCase) ListCategories() ([]dto.CategoryResponse, error) {
	categories, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, toCategoryResponse(c))
	}
	return out, nil
}

// CreateSupplier crea un proveedor.
func (uc *CatalogUseCase) CreateSupplier(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	supplier := &entity.Supplier{
		ID:            uuid.New().String(),
		Name:          in.Name,
		Website:       in.Website,
		Email:         in.Email,
		ContactPerson: in.ContactPerson,
		CreatedAt:     time.Now(),
	}
	if err := uc.suppliers.Create(supplier); err != nil {
		return nil, err
	}
	out := toSupplierResponse(supplier)
	return &out, nil
}

// ListSuppliers lista todos los proveedores.
func (uc *CatalogUseCase) ListSuppliers() ([]dto.SupplierResponse, error) {
	suppliers, err := uc.suppliers.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, toSupplierResponse(s))
	}
	return out, nil
}

// CreateVatRate crea una tarifa de IVA. El porcentaje no puede ser negativo.
func (uc *CatalogUseCase) CreateVatRate(in dto.CreateVatRateRequest) (*dto.VatRateResponse, error) {
	if in.Name == "" || in.Rate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	rate := &entity.VatRate{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Rate:      in.Rate,
		IsDefault: in.IsDefault,
		CreatedAt: time.Now(),
	}
	if err := uc.vatRates.Create(rate); err != nil {
		return nil, err
	}
	out := toVatRateResponse(rate)
	return &out, nil
}

// ListVatRates lista todas las tarifas de IVA.
func (uc *CatalogUseCase) ListVatRates() ([]dto.VatRateResponse, error) {
	rates, err := uc.vatRates.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.VatRateResponse, 0, len(rates))
	for _, r := range rates {
		out = append(out, toVatRateResponse(r))
	}
	return out, nil
}

func toCategoryResponse(c *entity.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, SKUPrefix: c.SKUPrefix, CreatedAt: c.CreatedAt}
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:            s.ID,
		Name:          s.Name,
		Website:       s.Website,
		Email:         s.Email,
		ContactPerson: s.ContactPerson,
		CreatedAt:     s.CreatedAt,
	}
}

func toVatRateResponse(r *entity.VatRate) dto.VatRateResponse {
	return dto.VatRateResponse{ID: r.ID, Name: r.Name, Rate: r.Rate, IsDefault: r.IsDefault, CreatedAt: r.CreatedAt}
}
