package ports

import (
	"context"
	"time"

	"github.com/jhoicas/storekeeper-api/internal/domain/inventory"
)

// InventoryReport datos del reporte de valorización de una tienda.
type InventoryReport struct {
	StoreName   string
	OwnerEmail  string
	GeneratedAt time.Time
	Valuation   inventory.Valuation
}

// InventoryReportRenderer genera el documento (PDF) del reporte.
type InventoryReportRenderer interface {
	RenderInventoryReport(ctx context.Context, report InventoryReport) ([]byte, error)
}
