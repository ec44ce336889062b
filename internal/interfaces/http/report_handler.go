package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Tpv-api/internal/application/dto"
	"github.com/jhoicas/Tpv-api/internal/application/usecase"
)

// ReportHandler informes de ventas (protegido).
type ReportHandler struct {
	uc  *usecase.ReportUseCase
	pdf usecase.ReportPDFGenerator
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase, pdf usecase.ReportPDFGenerator) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// SalesReport godoc
// @Summary      Informe de ventas del periodo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period               query  string  true   "last7d|last30d|last3m|last6m|last1y|custom"
// @Param        from_ns              query  int     false  "extremo inferior (ns) si period=custom"
// @Param        to_ns                query  int     false  "extremo superior (ns) si period=custom"
// @Param        category             query  string  false  "filtrar por categoría"
// @Param        payment_method       query  string  false  "cash|card|transfer"
// @Param        include_archived     query  bool    false  "incluir pedidos archivados"
// @Param        include_adjustments  query  bool    false  "incluir análisis de ajustes"
// @Success      200  {object}  dto.SalesReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse  "superseded por otra petición"
// @Failure      502  {object}  dto.ErrorResponse
// @Router       /api/reports/sales [get]
func (h *ReportHandler) SalesReport(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	out, err := h.uc.GetSalesReport(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SalesReportPDF godoc
// @Summary      Informe de ventas en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        period  query  string  true  "last7d|last30d|last3m|last6m|last1y|custom"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/sales/pdf [get]
func (h *ReportHandler) SalesReportPDF(c *fiber.Ctx) error {
	var req dto.SalesReportRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	rep, err := h.uc.GetSalesReport(c.Context(), GetUserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	pdfBytes, err := h.pdf.Generate(rep)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="informe-ventas.pdf"`)
	return c.Send(pdfBytes)
}
