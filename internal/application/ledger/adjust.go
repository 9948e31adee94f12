package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockkeeper/retail-api/internal/domain"
	"github.com/stockkeeper/retail-api/internal/domain/entity"
	"github.com/stockkeeper/retail-api/internal/domain/repository"
)

// UseCase es el único camino de mutación de stock del sistema: incrementa el
// caché de cantidad del producto y apenda una fila inmutable al ledger en la
// misma transacción. Ninguna otra ruta escribe products.stock_quantity.
type UseCase struct {
	txRunner TxRunner
}

// NewUseCase construye el caso de uso del ledger.
func NewUseCase(txRunner TxRunner) *UseCase {
	return &UseCase{txRunner: txRunner}
}

// AdjustInput entrada de un ajuste de stock.
type AdjustInput struct {
	ProductID string
	Delta     int64  // con signo: positivo entrada, negativo salida
	Kind      string // INITIAL, PURCHASE, SALE, CORRECTION, RETURN, DAMAGE
	Actor     string
	RefKind   string // sale | purchase_order | "" (movimiento autónomo)
	RefID     string
	Note      string
}

// AdjustResult resultado del ajuste. Applied=false es el no-op defensivo
// sobre productos sin seguimiento de stock (no es error).
type AdjustResult struct {
	Applied    bool
	MovementID string
	ProductID  string
	Delta      int64
	StockAfter int64
}

func validKind(kind string) bool {
	switch kind {
	case entity.MovementKindInitial, entity.MovementKindPurchase, entity.MovementKindSale,
		entity.MovementKindCorrection, entity.MovementKindReturn, entity.MovementKindDamage:
		return true
	}
	return false
}

// Adjust abre una transacción, bloquea la fila del producto y aplica el
// delta: actualiza el caché y apenda el movimiento con el saldo resultante.
// Commit o rollback de ambos juntos.
func (uc *UseCase) Adjust(ctx context.Context, in AdjustInput) (AdjustResult, error) {
	var result AdjustResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		r, err := uc.AdjustInTx(movRepo, productRepo, in, time.Now())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, err
}

// AdjustInTx aplica el ajuste usando repositorios del caller (misma
// transacción). Checkout, recibo de compra y reembolso lo invocan para que
// documento y movimientos queden en una sola transacción.
func (uc *UseCase) AdjustInTx(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	in AdjustInput,
	now time.Time,
) (AdjustResult, error) {
	if in.ProductID == "" || in.Delta == 0 || !validKind(in.Kind) {
		return AdjustResult{}, domain.ErrInvalidInput
	}

	// Bloquea la fila del producto (SELECT FOR UPDATE): serializa ajustes
	// concurrentes sobre el mismo producto.
	product, err := productRepo.GetForUpdate(in.ProductID)
	if err != nil {
		return AdjustResult{}, err
	}
	if product == nil {
		return AdjustResult{}, domain.ErrNotFound
	}

	// Producto sin seguimiento: no-op defensivo, nunca genera movimiento.
	if !product.TrackStock {
		return AdjustResult{Applied: false, ProductID: product.ID, StockAfter: product.StockQuantity}, nil
	}

	return uc.applyLocked(movRepo, productRepo, product, in, now)
}

// Correct sintetiza una corrección de inventario a partir de un conteo
// físico: delta = contado − caché actual. Diferencia cero no genera
// movimiento. Es la única vía para ediciones administrativas de stock, así
// el ledger nunca diverge silenciosamente del caché.
func (uc *UseCase) Correct(ctx context.Context, productID string, countedQty int64, actor, reason string) (AdjustResult, string, error) {
	var result AdjustResult
	var name string
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		product, err := productRepo.GetForUpdate(productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		name = product.Name
		if !product.TrackStock {
			result = AdjustResult{Applied: false, ProductID: product.ID, StockAfter: product.StockQuantity}
			return nil
		}
		diff := countedQty - product.StockQuantity
		if diff == 0 {
			result = AdjustResult{Applied: false, ProductID: product.ID, StockAfter: product.StockQuantity}
			return nil
		}
		if reason == "" {
			reason = "inventario / conteo físico"
		}
		r, err := uc.applyLocked(movRepo, productRepo, product, AdjustInput{
			ProductID: productID,
			Delta:     diff,
			Kind:      entity.MovementKindCorrection,
			Actor:     actor,
			Note:      reason,
		}, time.Now())
		if err != nil {
			return err
		}
		result = r
		return nil
	})
	return result, name, err
}

// applyLocked aplica el delta sobre un producto ya bloqueado en esta tx.
func (uc *UseCase) applyLocked(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	in AdjustInput,
	now time.Time,
) (AdjustResult, error) {
	after := product.StockQuantity + in.Delta
	if err := productRepo.UpdateStock(product.ID, after); err != nil {
		return AdjustResult{}, err
	}
	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		Kind:       in.Kind,
		Quantity:   in.Delta,
		StockAfter: after,
		RefKind:    in.RefKind,
		RefID:      in.RefID,
		Note:       in.Note,
		CreatedBy:  in.Actor,
		CreatedAt:  now,
	}
	if err := movRepo.Create(mov); err != nil {
		return AdjustResult{}, err
	}
	return AdjustResult{Applied: true, MovementID: mov.ID, ProductID: product.ID, Delta: in.Delta, StockAfter: after}, nil
}
