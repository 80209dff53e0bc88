package printing

import (
	"context"
	"fmt"

	"github.com/foodcrm/backend/internal/domain/partner"
	"github.com/foodcrm/backend/internal/domain/trade"
	infra "github.com/foodcrm/backend/internal/infrastructure/printing"
	"github.com/foodcrm/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExportService renders quotes and purchase orders to PDF. Both
// document kinds go through the same template; only the labels differ.
type ExportService struct {
	quoteRepo   trade.QuoteRepository
	poRepo      trade.PurchaseOrderRepository
	companyRepo partner.CompanyRepository
	engine      *infra.TemplateEngine
	renderer    infra.PDFRenderer
	archive     ArchiveStorage
	archivePDFs bool
	metrics     *telemetry.BusinessMetrics
	logger      *zap.Logger
}

// NewExportService creates a new ExportService. Archive may be nil when
// archiving is disabled; metrics may be nil.
func NewExportService(
	quoteRepo trade.QuoteRepository,
	poRepo trade.PurchaseOrderRepository,
	companyRepo partner.CompanyRepository,
	engine *infra.TemplateEngine,
	renderer infra.PDFRenderer,
	archive ArchiveStorage,
	archivePDFs bool,
	metrics *telemetry.BusinessMetrics,
	logger *zap.Logger,
) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		quoteRepo:   quoteRepo,
		poRepo:      poRepo,
		companyRepo: companyRepo,
		engine:      engine,
		renderer:    renderer,
		archive:     archive,
		archivePDFs: archivePDFs && archive != nil,
		metrics:     metrics,
		logger:      logger,
	}
}

// ExportQuotePDF renders a quote to PDF
func (s *ExportService) ExportQuotePDF(ctx context.Context, tenantID, quoteID uuid.UUID) (*ExportResult, error) {
	quote, err := s.quoteRepo.FindByIDForTenant(ctx, tenantID, quoteID)
	if err != nil {
		return nil, err
	}
	company, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, quote.CompanyID)
	if err != nil {
		return nil, err
	}

	lines := make([]infra.DocumentLine, 0, len(quote.Lines))
	for _, line := range quote.Lines {
		lines = append(lines, infra.DocumentLine{
			Position:    line.Position,
			Description: line.Description,
			Qty:         line.Qty,
			Unit:        line.Unit,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total(),
		})
	}
	data := &infra.DocumentData{
		DocType:      "Quote",
		Number:       quote.Number,
		Status:       string(quote.Status),
		PartyLabel:   "Customer",
		PartyName:    company.Name,
		Currency:     quote.Currency,
		IssuedAt:     &quote.DocDate,
		DueDate:      quote.ValidUntil,
		DueDateLabel: "Valid Until",
		Notes:        quote.Notes,
		Lines:        lines,
		Total:        quote.Total(),
	}

	filename := fmt.Sprintf("Quote_%s.pdf", quote.Number)
	return s.render(ctx, tenantID, "quote", filename, data)
}

// ExportPurchaseOrderPDF renders a purchase order to PDF
func (s *ExportService) ExportPurchaseOrderPDF(ctx context.Context, tenantID, poID uuid.UUID) (*ExportResult, error) {
	po, err := s.poRepo.FindByIDForTenant(ctx, tenantID, poID)
	if err != nil {
		return nil, err
	}
	supplier, err := s.companyRepo.FindByIDForTenant(ctx, tenantID, po.SupplierID)
	if err != nil {
		return nil, err
	}

	lines := make([]infra.DocumentLine, 0, len(po.Lines))
	for _, line := range po.Lines {
		lines = append(lines, infra.DocumentLine{
			Position:    line.Position,
			Description: line.Description,
			Qty:         line.Qty,
			Unit:        line.Unit,
			UnitPrice:   line.UnitPrice,
			Total:       line.Total(),
		})
	}
	data := &infra.DocumentData{
		DocType:      "Purchase Order",
		Number:       po.Number,
		Status:       string(po.Status),
		PartyLabel:   "Supplier",
		PartyName:    supplier.Name,
		Currency:     po.Currency,
		IssuedAt:     &po.DocDate,
		DueDate:      po.ExpectedDate,
		DueDateLabel: "Expected Date",
		Notes:        po.Notes,
		Lines:        lines,
		Total:        po.Total(),
	}

	filename := fmt.Sprintf("PO_%s.pdf", po.Number)
	return s.render(ctx, tenantID, "purchase_order", filename, data)
}

func (s *ExportService) render(ctx context.Context, tenantID uuid.UUID, docType, filename string, data *infra.DocumentData) (*ExportResult, error) {
	html, err := s.engine.RenderDocument(data)
	if err != nil {
		return nil, err
	}

	result, err := s.renderer.Render(ctx, &infra.RenderRequest{
		HTML:  html,
		Title: data.DocType + " " + data.Number,
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPDFRender(ctx, tenantID, docType, result.RenderDuration)
	s.archiveResult(ctx, tenantID, docType, filename, result.PDFData)

	return &ExportResult{
		Filename:    filename,
		ContentType: "application/pdf",
		PDFData:     result.PDFData,
		PageCount:   result.PageCount,
	}, nil
}

// archiveResult uploads the rendered PDF to object storage. Archive
// failures are logged; the export itself still succeeds.
func (s *ExportService) archiveResult(ctx context.Context, tenantID uuid.UUID, docType, filename string, pdf []byte) {
	if !s.archivePDFs {
		return
	}
	key := fmt.Sprintf("%s/%s/%s", tenantID, docType, filename)
	if err := s.archive.Upload(ctx, key, pdf, "application/pdf"); err != nil {
		s.logger.Warn("pdf archive upload failed",
			zap.String("storage_key", key),
			zap.Error(err))
	}
}
