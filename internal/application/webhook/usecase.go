// Package webhook procesa notificaciones firmadas de la plataforma de
// comercio externa. La firma se verifica sobre el cuerpo crudo antes de
// parsear nada; el id de transacción externa hace la entrega idempotente.
package webhook

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/stockkeeper/retail-api/internal/application/dto"
	"github.com/stockkeeper/retail-api/internal/application/sales"
	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// UseCase webhook orders-paid: firma, idempotencia y alta de venta web.
type UseCase struct {
	checkout *sales.UseCase
	sales    repository.SaleRepository
	products repository.ProductRepository
	secret   string
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	checkout *sales.UseCase,
	saleRepo repository.SaleRepository,
	products repository.ProductRepository,
	secret string,
) *UseCase {
	return &UseCase{checkout: checkout, sales: saleRepo, products: products, secret: secret}
}

// VerifySignature valida el HMAC-SHA256 (base64) del cuerpo crudo en tiempo
// constante. Secreto sin configurar rechaza todo.
func (uc *UseCase) VerifySignature(body []byte, signature string) error {
	if uc.secret == "" || signature == "" {
		return domain.ErrSignatureMismatch
	}
	mac := hmac.New(sha256.New, []byte(uc.secret))
	mac.Write(body)
	expected := base64.StdEncoding.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return domain.ErrSignatureMismatch
	}
	return nil
}

// ProcessOrderPaid registra el pedido pagado como venta con canal web.
// La misma entrega dos veces produce exactamente una venta: primero se
// consulta por referencia externa y, ante la carrera de dos entregas
// simultáneas, la restricción de unicidad convierte la segunda en duplicado.
func (uc *UseCase) ProcessOrderPaid(ctx context.Context, body []byte, signature string) (*dto.WebhookResponse, error) {
	if err := uc.VerifySignature(body, signature); err != nil {
		return nil, err
	}

	var payload dto.OrderPaidPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if payload.ID == 0 || len(payload.LineItems) == 0 {
		return nil, domain.ErrInvalidInput
	}

	externalRef := strconv.FormatInt(payload.ID, 10)
	if existing, err := uc.sales.GetByExternalRef(externalRef); err != nil {
		return nil, err
	} else if existing != nil {
		return &dto.WebhookResponse{SaleID: existing.ID, Duplicate: true}, nil
	}

	cart, err := uc.buildCart(payload)
	if err != nil {
		return nil, err
	}

	sale, err := uc.checkout.CheckoutChannel(ctx, "webhook", entity.ChannelWeb, externalRef, cart)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Dos entregas en paralelo: la unicidad de external_ref ganó
			if existing, lookupErr := uc.sales.GetByExternalRef(externalRef); lookupErr == nil && existing != nil {
				return &dto.WebhookResponse{SaleID: existing.ID, Duplicate: true}, nil
			}
		}
		return nil, err
	}
	return &dto.WebhookResponse{SaleID: sale.ID}, nil
}

// buildCart resuelve cada línea del pedido a un producto del catálogo, por
// SKU primero y EAN después. El precio de la plataforma (si viene) pisa el
// de catálogo como override bruto.
func (uc *UseCase) buildCart(payload dto.OrderPaidPayload) (dto.CheckoutRequest, error) {
	cart := dto.CheckoutRequest{PaymentMethod: entity.PaymentOther}
	for _, line := range payload.LineItems {
		if line.Quantity <= 0 {
			return cart, domain.ErrInvalidInput
		}
		product, err := uc.resolveProduct(line)
		if err != nil {
			return cart, err
		}

		item := dto.CheckoutItem{ProductID: product.ID, Quantity: line.Quantity}
		if line.Price != "" {
			price, err := decimal.NewFromString(line.Price)
			if err != nil || price.IsNegative() {
				return cart, domain.ErrInvalidInput
			}
			item.UnitPriceGross = &price
		}
		cart.Items = append(cart.Items, item)
	}
	return cart, nil
}

func (uc *UseCase) resolveProduct(line dto.OrderPaidLineItem) (*entity.Product, error) {
	if line.SKU != "" {
		if p, err := uc.products.GetBySKU(line.SKU); err != nil {
			return nil, err
		} else if p != nil {
			return p, nil
		}
	}
	if line.EAN != "" {
		if p, err := uc.products.GetByEAN(line.EAN); err != nil {
			return nil, err
		} else if p != nil {
			return p, nil
		}
	}
	return nil, domain.ErrNotFound
}
