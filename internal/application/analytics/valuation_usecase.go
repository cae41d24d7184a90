// Package analytics contiene los casos de uso de valorización del inventario por tienda
// y el reporte PDF derivado.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/storekeeper-api/internal/application/access"
	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/inventory"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
)

const moneyPlaces = 2 // redondeo de montos en la salida

// ValuationUseCase calcula el valor del inventario de una tienda.
//
// Los montos se acumulan con decimal exacto y solo se redondean al construir la respuesta.
type ValuationUseCase struct {
	storeRepo   repository.StoreRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	renderer    ports.InventoryReportRenderer
	now         func() time.Time
}

// NewValuationUseCase construye el caso de uso. renderer puede ser nil si no se expone el PDF.
func NewValuationUseCase(
	storeRepo repository.StoreRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
	renderer ports.InventoryReportRenderer,
) *ValuationUseCase {
	return &ValuationUseCase{
		storeRepo:   storeRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		renderer:    renderer,
		now:         time.Now,
	}
}

// InventoryValue agrega los productos de la tienda por categoría.
func (uc *ValuationUseCase) InventoryValue(ctx context.Context, userID, storeID string) (*dto.InventoryValueResponse, error) {
	store, err := access.OwnedStore(ctx, uc.storeRepo, userID, storeID)
	if err != nil {
		return nil, err
	}
	products, err := uc.productRepo.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, err
	}
	v := inventory.Valuate(products)

	breakdown := make([]dto.CategoryBreakdown, 0, len(v.Breakdown))
	for _, g := range v.Breakdown {
		breakdown = append(breakdown, dto.CategoryBreakdown{
			Category:      g.Category,
			TotalValue:    g.TotalValue.Round(moneyPlaces),
			TotalQuantity: g.TotalQuantity,
			ProductCount:  g.ProductCount,
		})
	}
	return &dto.InventoryValueResponse{
		Store: dto.RefOf(store),
		Summary: dto.InventorySummary{
			TotalValue:    v.TotalValue.Round(moneyPlaces),
			TotalProducts: v.TotalProducts,
			TotalQuantity: v.TotalQuantity,
		},
		Breakdown: breakdown,
	}, nil
}

// InventoryReport genera el PDF de valorización. Productos y dueño se consultan en paralelo.
func (uc *ValuationUseCase) InventoryReport(ctx context.Context, userID, storeID string) ([]byte, string, error) {
	if uc.renderer == nil {
		return nil, "", fmt.Errorf("reporte PDF no configurado")
	}
	store, err := access.OwnedStore(ctx, uc.storeRepo, userID, storeID)
	if err != nil {
		return nil, "", err
	}

	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type ownerResult struct {
		user *entity.User
		err  error
	}
	productsCh := make(chan productsResult, 1)
	ownerCh := make(chan ownerResult, 1)
	go func() {
		list, err := uc.productRepo.ListByStore(ctx, store.ID)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		u, err := uc.userRepo.GetByID(ctx, store.UserID)
		ownerCh <- ownerResult{u, err}
	}()
	pr, or := <-productsCh, <-ownerCh
	if pr.err != nil {
		return nil, "", fmt.Errorf("report products: %w", pr.err)
	}
	if or.err != nil {
		return nil, "", fmt.Errorf("report owner: %w", or.err)
	}

	report := ports.InventoryReport{
		StoreName:   store.Name,
		GeneratedAt: uc.now(),
		Valuation:   inventory.Valuate(pr.list),
	}
	if or.user != nil {
		report.OwnerEmail = or.user.Email
	}
	pdf, err := uc.renderer.RenderInventoryReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("render report: %w", err)
	}
	filename := fmt.Sprintf("inventario-%s-%s.pdf", store.ID, report.GeneratedAt.Format("20060102"))
	return pdf, filename, nil
}
