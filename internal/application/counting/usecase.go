package counting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// UseCase motor de reconciliación de conteo físico: resuelve identificadores
// escaneados, acumula cantidades en el staging y promueve el conteo al
// catálogo y al libro de movimientos en una sola transacción.
type UseCase struct {
	stores repository.StoreResolver
	log    *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(stores repository.StoreResolver, log *logger.Logger) *UseCase {
	return &UseCase{stores: stores, log: log}
}

// ProductRef identidad mínima del producto resuelto, para la respuesta.
type ProductRef struct {
	ID          string
	Code        string
	Description string
}

// AccumulateResult resultado de un escaneo aceptado.
type AccumulateResult struct {
	Product ProductRef
	Removed bool // true si el delta llevó la cantidad acumulada a <= 0
}

// Accumulate registra un escaneo: resuelve el identificador y suma delta al
// item en curso del producto. Delta negativo es el gesto de quitar; cero es
// no-op pero exige resolución exitosa. El read-modify-write del item corre
// en una transacción con bloqueo de fila para que dos escaneos concurrentes
// del mismo producto no pierdan una actualización.
func (uc *UseCase) Accumulate(ctx context.Context, companyID, identifier string, delta decimal.Decimal) (*AccumulateResult, error) {
	normalized, alternate := NormalizeIdentifier(identifier)
	if normalized == "" {
		return nil, domain.ErrInvalidInput
	}

	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	product, err := store.Products().FindByIdentifier(ctx, companyID, normalized, alternate)
	if err != nil {
		return nil, err
	}
	if product == nil {
		uc.log.Debug().Str("identifier", identifier).Str("company_id", companyID).Msg("identificador sin producto")
		// Propagar el identificador original, no el normalizado
		return nil, &domain.ProductNotFoundError{Identifier: identifier}
	}

	result := &AccumulateResult{Product: ProductRef{
		ID:          product.ID,
		Code:        product.Code,
		Description: product.Description,
	}}
	if delta.IsZero() {
		return result, nil
	}

	err = store.InTx(ctx, func(tx repository.TxStore) error {
		item, err := tx.CountItems().GetByProductForUpdate(ctx, companyID, product.ID)
		if err != nil {
			return err
		}
		if item == nil {
			if delta.GreaterThan(decimal.Zero) {
				return tx.CountItems().Create(ctx, &entity.CountItem{
					CompanyID:    companyID,
					ProductID:    product.ID,
					Quantity:     delta,
					RegisteredAt: time.Now(),
				})
			}
			// Nada que quitar: éxito sin escritura
			return nil
		}
		newQty := item.Quantity.Add(delta)
		if newQty.LessThanOrEqual(decimal.Zero) {
			result.Removed = true
			return tx.CountItems().Delete(ctx, item.ID)
		}
		return tx.CountItems().UpdateQuantity(ctx, item.ID, newQty)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// ListStaged devuelve los items del conteo en curso del tenant con los datos
// del producto, del escaneo más reciente al más antiguo. Sin items devuelve
// lista vacía, nunca error.
func (uc *UseCase) ListStaged(ctx context.Context, companyID string) ([]*entity.CountItemWithProduct, error) {
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return store.CountItems().ListWithProducts(ctx, companyID)
}

// Finalize promueve el conteo: para cada item fija la existencia del
// producto en la cantidad contada (valor absoluto, no delta), escribe un
// movimiento de tipo count y vacía el staging, todo en una transacción.
// Cualquier fallo a mitad del lote revierte todo.
func (uc *UseCase) Finalize(ctx context.Context, companyID, userID string) (int, error) {
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return 0, err
	}

	var total int
	err = store.InTx(ctx, func(tx repository.TxStore) error {
		items, err := tx.CountItems().ListByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return domain.ErrEmptyCount
		}

		now := time.Now()
		var actor *string
		if userID != "" {
			actor = &userID
		}
		for _, item := range items {
			if err := tx.Products().SetQuantity(ctx, companyID, item.ProductID, item.Quantity); err != nil {
				return err
			}
			movement := &entity.Movement{
				CompanyID: companyID,
				ProductID: item.ProductID,
				Type:      entity.MovementTypeCount,
				Quantity:  item.Quantity,
				UserID:    actor,
				CreatedAt: now,
			}
			if err := tx.Movements().Create(ctx, movement); err != nil {
				return err
			}
		}
		if err := tx.CountItems().DeleteByCompany(ctx, companyID); err != nil {
			return err
		}
		total = len(items)
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCount) {
			return 0, err
		}
		uc.log.Error().Err(err).Str("company_id", companyID).Msg("finalizar conteo")
		return 0, fmt.Errorf("%w: %v", domain.ErrTransactionFailed, err)
	}
	uc.log.Info().Int("total_items", total).Str("company_id", companyID).Msg("conteo finalizado")
	return total, nil
}
