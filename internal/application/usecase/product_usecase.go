package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/sysstock-api/internal/domain"
	"github.com/jhoicas/sysstock-api/internal/domain/entity"
	"github.com/jhoicas/sysstock-api/internal/domain/repository"
	"github.com/jhoicas/sysstock-api/pkg/logger"
)

// ProductUseCase CRUD del catálogo de productos del tenant.
type ProductUseCase struct {
	stores repository.StoreResolver
	log    *logger.Logger
}

// NewProductUseCase construye el caso de uso de productos.
func NewProductUseCase(stores repository.StoreResolver, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{stores: stores, log: log}
}

// CreateProductInput datos para crear un producto.
type CreateProductInput struct {
	Code        string
	Barcode     string
	Description string
	Unit        string
	Quantity    decimal.Decimal
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
}

// Create registra un producto. Si entra con existencia inicial positiva se
// escribe además un movimiento inbound, en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, companyID, userID string, in CreateProductInput) (*entity.Product, error) {
	code := strings.TrimSpace(in.Code)
	description := strings.TrimSpace(in.Description)
	if code == "" || description == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity.IsNegative() || in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	existing, err := store.Products().GetByCode(ctx, companyID, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Code:        code,
		Barcode:     strings.TrimSpace(in.Barcode),
		Description: description,
		Unit:        strings.TrimSpace(in.Unit),
		Quantity:    in.Quantity,
		CostPrice:   in.CostPrice,
		SalePrice:   in.SalePrice,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = store.InTx(ctx, func(tx repository.TxStore) error {
		if err := tx.Products().Create(ctx, product); err != nil {
			return err
		}
		if product.Quantity.GreaterThan(decimal.Zero) {
			var actor *string
			if userID != "" {
				actor = &userID
			}
			return tx.Movements().Create(ctx, &entity.Movement{
				CompanyID: companyID,
				ProductID: product.ID,
				Type:      entity.MovementTypeInbound,
				Quantity:  product.Quantity,
				UserID:    actor,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("company_id", companyID).Str("codigo", code).Msg("producto creado")
	return product, nil
}

// Get devuelve un producto por id.
func (uc *ProductUseCase) Get(ctx context.Context, companyID, id string) (*entity.Product, error) {
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	product, err := store.Products().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// UpdateProductInput campos editables; nil conserva el valor actual.
type UpdateProductInput struct {
	Code        *string
	Barcode     *string
	Description *string
	Unit        *string
	Quantity    *decimal.Decimal
	CostPrice   *decimal.Decimal
	SalePrice   *decimal.Decimal
}

// Update edita un producto. Un cambio directo de existencia queda asentado
// en el libro como movimiento adjustment con el delta aplicado.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, userID, id string, in UpdateProductInput) (*entity.Product, error) {
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	product, err := store.Products().GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.ErrInvalidInput
		}
		if code != product.Code {
			dup, err := store.Products().GetByCode(ctx, companyID, code)
			if err != nil {
				return nil, err
			}
			if dup != nil {
				return nil, domain.ErrDuplicate
			}
			product.Code = code
		}
	}
	if in.Barcode != nil {
		product.Barcode = strings.TrimSpace(*in.Barcode)
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Description = description
	}
	if in.Unit != nil {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SalePrice = *in.SalePrice
	}

	delta := decimal.Zero
	if in.Quantity != nil {
		if in.Quantity.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		delta = in.Quantity.Sub(product.Quantity)
		product.Quantity = *in.Quantity
	}
	product.UpdatedAt = time.Now()

	err = store.InTx(ctx, func(tx repository.TxStore) error {
		if err := tx.Products().Update(ctx, product); err != nil {
			return err
		}
		if !delta.IsZero() {
			var actor *string
			if userID != "" {
				actor = &userID
			}
			return tx.Movements().Create(ctx, &entity.Movement{
				CompanyID: companyID,
				ProductID: product.ID,
				Type:      entity.MovementTypeAdjustment,
				Quantity:  delta,
				UserID:    actor,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return product, nil
}

// Deactivate soft delete del producto; la fila y su historial se conservan.
func (uc *ProductUseCase) Deactivate(ctx context.Context, companyID, id string) error {
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return err
	}
	return store.Products().Deactivate(ctx, companyID, id)
}

// List lista productos activos del tenant, con búsqueda opcional por
// descripción, código o código de barras.
func (uc *ProductUseCase) List(ctx context.Context, companyID, search string, limit, offset int) ([]*entity.Product, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	store, err := uc.stores.StoreFor(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return store.Products().ListByCompany(ctx, companyID, strings.TrimSpace(search), limit, offset)
}
