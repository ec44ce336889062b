package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/domain"
	"github.com/jhoicas/Tpv-api/internal/domain/entity"
	"github.com/jhoicas/Tpv-api/internal/domain/repository"
)

// FacturaeBuilder puerto del generador de XML Facturae. La implementación
// vive en infrastructure.
type FacturaeBuilder interface {
	Build(order *entity.Order) ([]byte, error)
}

// ReportPDFGenerator puerto del generador de PDF del informe de ventas.
type ReportPDFGenerator interface {
	Generate(rep *dto.SalesReportDTO) ([]byte, error)
}

// OrderUseCase consultas y operaciones sobre pedidos cerrados.
type OrderUseCase struct {
	orderRepo repository.OrderRepository
	facturae  FacturaeBuilder
}

// NewOrderUseCase construye el caso de uso.
func NewOrderUseCase(orderRepo repository.OrderRepository, facturae FacturaeBuilder) *OrderUseCase {
	return &OrderUseCase{orderRepo: orderRepo, facturae: facturae}
}

// GetByID recupera un pedido con sus líneas y desglose de IVA.
func (uc *OrderUseCase) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return uc.orderRepo.GetByID(ctx, id)
}

// Archive marca un pedido como archivado. Los pedidos archivados siguen
// siendo consultables en los informes cuando se pide include_archived.
func (uc *OrderUseCase) Archive(ctx context.Context, id string) error {
	return uc.orderRepo.Archive(ctx, id)
}

// ExportFacturae genera el XML Facturae de un pedido con factura completa.
// Los tickets simplificados no llevan identidad de cliente y no son
// exportables.
func (uc *OrderUseCase) ExportFacturae(ctx context.Context, id string) ([]byte, error) {
	order, err := uc.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.InvoiceType != entity.InvoiceFull {
		return nil, fmt.Errorf("%w: el pedido %s es un ticket simplificado", domain.ErrInvalidInput, id)
	}
	xml, err := uc.facturae.Build(order)
	if err != nil {
		return nil, fmt.Errorf("facturae: construir XML: %w", err)
	}
	return xml, nil
}
