package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/ledger"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
	"github.com/stockkeeper/retail-api/pkg/ean"
	"github.com/stockkeeper/retail-api/pkg/textfold"
)

// máximo de reintentos del insert cuando un identificador generado colisiona
const createMaxAttempts = 5

// ProductUseCase CRUD de productos más generación de identificadores.
// Stock y costo promedio no se editan aquí: el primero entra como movimiento
// INITIAL vía ledger, el segundo lo escribe el recibo de compras.
type ProductUseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	vatRates   repository.VatRateRepository
	movements  repository.StockMovementRepository
	stock      Ledger
	eanPrefix  string
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	suppliers repository.SupplierRepository,
	vatRates repository.VatRateRepository,
	movements repository.StockMovementRepository,
	stock Ledger,
	eanPrefix string,
) *ProductUseCase {
	return &ProductUseCase{
		products:   products,
		categories: categories,
		suppliers:  suppliers,
		vatRates:   vatRates,
		movements:  movements,
		stock:      stock,
		eanPrefix:  eanPrefix,
	}
}

// Create crea un producto. SKU vacío se genera con el prefijo de la
// categoría + sufijo de 4 dígitos; EAN vacío se genera aleatorio bajo el
// prefijo interno, reintentando ante colisión. Stock inicial positivo se
// asienta como movimiento INITIAL.
func (uc *ProductUseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categories.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != "" {
		supplier, err := uc.suppliers.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}

	vatRateID := in.VatRateID
	if vatRateID == "" {
		// Sin tarifa explícita: tomar la marcada por defecto (puede no haber)
		def, err := uc.vatRates.GetDefault()
		if err != nil {
			return nil, err
		}
		if def != nil {
			vatRateID = def.ID
		}
	} else {
		rate, err := uc.vatRates.GetByID(vatRateID)
		if err != nil {
			return nil, err
		}
		if rate == nil {
			return nil, domain.ErrNotFound
		}
	}

	unit := in.Unit
	if unit == "" {
		unit = entity.UnitPiece
	}
	track := true
	if in.TrackStock != nil {
		track = *in.TrackStock
	}

	// La restricción de unicidad es la fuente de verdad para SKU y EAN:
	// nada de pre-chequeos consulta-y-inserta. Si un identificador generado
	// colisiona con un insert concurrente, se regenera y se reintenta.
	skuGenerated := in.SKU == ""
	eanGenerated := in.EAN == ""
	var product *entity.Product
	for attempt := 0; ; attempt++ {
		sku := in.SKU
		if skuGenerated {
			sku, err = uc.nextSKU(category)
			if err != nil {
				return nil, err
			}
		}
		code := in.EAN
		if eanGenerated {
			code, err = ean.Generate(uc.eanPrefix)
			if err != nil {
				return nil, err
			}
		}

		now := time.Now()
		product = &entity.Product{
			ID:          uuid.New().String(),
			SKU:         sku,
			EAN:         code,
			Name:        in.Name,
			Description: in.Description,
			CategoryID:  in.CategoryID,
			SupplierID:  in.SupplierID,
			Size:        in.Size,
			Color:       in.Color,
			Unit:        unit,
			TrackStock:  track,
			CostPrice:   in.CostPrice,
			SalesPrice:  in.SalesPrice,
			VatRateID:   vatRateID,
			IsActive:    true,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		err = uc.products.Create(product)
		if err == nil {
			break
		}
		if errors.Is(err, domain.ErrDuplicate) && (skuGenerated || eanGenerated) && attempt+1 < createMaxAttempts {
			continue
		}
		return nil, err
	}

	// Stock inicial como primer movimiento del ledger (no escritura directa)
	if track && in.InitialStock > 0 {
		res, err := uc.stock.Adjust(ctx, ledger.AdjustInput{
			ProductID: product.ID,
			Delta:     in.InitialStock,
			Kind:      entity.MovementKindInitial,
			Actor:     actor,
			Note:      "stock inicial",
		})
		if err != nil {
			return nil, err
		}
		product.StockQuantity = res.StockAfter
	}

	out := toProductResponse(product)
	return &out, nil
}

// nextSKU sufijo monótono por categoría: escanea el mayor sufijo existente
// dentro de la categoría y suma uno. El escaneo nunca cruza categorías
// aunque los prefijos se solapen como cadenas ("1" y "12"). Nunca se
// reutiliza un sufijo, ni tras borrados.
func (uc *ProductUseCase) nextSKU(category *entity.Category) (string, error) {
	prefix := fmt.Sprintf("%d", category.SKUPrefix)
	max, err := uc.products.MaxSKUSuffix(category.ID, prefix)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%04d", prefix, max+1), nil
}

// GetByID devuelve el producto (nil si no existe).
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil || product == nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// List listado paginado.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.products.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		out.Items = append(out.Items, toProductResponse(p))
	}
	return out, nil
}

// Update edita campos de catálogo. Nunca toca stock ni costo promedio;
// IsActive=false archiva en lugar de borrar.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Description != "" {
		product.Description = in.Description
	}
	if in.SupplierID != "" {
		product.SupplierID = in.SupplierID
	}
	if in.Size != "" {
		product.Size = in.Size
	}
	if in.Color != "" {
		product.Color = in.Color
	}
	if in.Unit != "" {
		product.Unit = in.Unit
	}
	if in.SalesPrice != nil {
		product.SalesPrice = *in.SalesPrice
	}
	if in.VatRateID != "" {
		rate, err := uc.vatRates.GetByID(in.VatRateID)
		if err != nil {
			return nil, err
		}
		if rate == nil {
			return nil, domain.ErrNotFound
		}
		product.VatRateID = in.VatRateID
	}
	if in.IsActive != nil {
		product.IsActive = *in.IsActive
	}
	product.UpdatedAt = time.Now()
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	out := toProductResponse(product)
	return &out, nil
}

// Search busca por EAN exacto, SKU o fragmento de nombre. El fragmento se
// pliega (sin diacríticos) para que "musli" encuentre "Müsli".
func (uc *ProductUseCase) Search(query string, limit int) (*dto.SearchResponse, error) {
	out := &dto.SearchResponse{Results: []dto.SearchResultItem{}}
	if query == "" {
		return out, nil
	}
	if limit <= 0 || limit > 25 {
		limit = 10
	}
	products, err := uc.products.Search(query, textfold.Fold(query), limit)
	if err != nil {
		return nil, err
	}

	// Nombre del proveedor para autoselección en la pantalla de compras
	supplierNames := make(map[string]string)
	if suppliers, err := uc.suppliers.List(); err == nil {
		for _, s := range suppliers {
			supplierNames[s.ID] = s.Name
		}
	}
	rateByID := make(map[string]*entity.VatRate)
	if rates, err := uc.vatRates.List(); err == nil {
		for _, r := range rates {
			rateByID[r.ID] = r
		}
	}

	for _, p := range products {
		item := dto.SearchResultItem{
			ID:           p.ID,
			Name:         p.Name,
			SKU:          p.SKU,
			EAN:          p.EAN,
			Price:        p.SalesPrice,
			Cost:         p.CostPrice,
			Stock:        p.StockQuantity,
			SupplierID:   p.SupplierID,
			SupplierName: supplierNames[p.SupplierID],
		}
		if rate, ok := rateByID[p.VatRateID]; ok {
			item.VatRate = rate.Rate
		}
		out.Results = append(out.Results, item)
	}
	return out, nil
}

// Movements historial del ledger de un producto.
func (uc *ProductUseCase) Movements(productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	product, err := uc.products.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movements.ListByProduct(productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.MovementResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, m := range list {
		out.Items = append(out.Items, dto.MovementResponse{
			ID:         m.ID,
			ProductID:  m.ProductID,
			Kind:       m.Kind,
			Quantity:   m.Quantity,
			StockAfter: m.StockAfter,
			RefKind:    m.RefKind,
			RefID:      m.RefID,
			Note:       m.Note,
			CreatedBy:  m.CreatedBy,
			CreatedAt:  m.CreatedAt,
		})
	}
	return out, nil
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		EAN:           p.EAN,
		Name:          p.Name,
		Description:   p.Description,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		Size:          p.Size,
		Color:         p.Color,
		Unit:          p.Unit,
		StockQuantity: p.StockQuantity,
		TrackStock:    p.TrackStock,
		CostPrice:     p.CostPrice,
		SalesPrice:    p.SalesPrice,
		VatRateID:     p.VatRateID,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
	}
}
