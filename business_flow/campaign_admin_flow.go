package businessflow

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/amirphl/vendor-campaigns/app/dto"
	"github.com/amirphl/vendor-campaigns/models"
	"github.com/amirphl/vendor-campaigns/repository"
	"github.com/amirphl/vendor-campaigns/utils"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheetName = "Selections"
	csvContentType  = "text/csv; charset=utf-8"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var exportHeader = []string{"Product ID", "Title", "Vendor ID", "Discount (%)"}

// AdminCampaignFlow handles the administrator views and exports of campaign selections
type AdminCampaignFlow interface {
	SelectionsForCampaign(ctx context.Context, id uint) (dto.AdminSelectionsResponse, error)
	ExportCSV(ctx context.Context, id uint) (*dto.ExportFile, error)
	ExportXLSX(ctx context.Context, id uint) (*dto.ExportFile, error)
}

// AdminCampaignFlowImpl implements the admin campaign flow
type AdminCampaignFlowImpl struct {
	campaignRepo repository.CampaignRepository
	itemRepo     repository.CampaignItemRepository
	today        func() time.Time
}

// NewAdminCampaignFlow creates a new admin campaign flow instance
func NewAdminCampaignFlow(campaignRepo repository.CampaignRepository, itemRepo repository.CampaignItemRepository) AdminCampaignFlow {
	return &AdminCampaignFlowImpl{
		campaignRepo: campaignRepo,
		itemRepo:     itemRepo,
		today:        utils.LocalToday,
	}
}

// SelectionsForCampaign groups every selection of the campaign by vendor id
func (s *AdminCampaignFlowImpl) SelectionsForCampaign(ctx context.Context, id uint) (dto.AdminSelectionsResponse, error) {
	rows, err := s.itemRepo.ListByCampaign(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LIST_SELECTIONS_FAILED", "Failed to list selections", err)
	}

	out := make(dto.AdminSelectionsResponse)
	for _, r := range rows {
		out[r.VendorID] = append(out[r.VendorID], dto.AdminSelectionItem{
			ProductID: r.ProductID,
			Title:     r.DisplayTitle(),
			Discount:  r.DiscountPercent,
		})
	}
	return out, nil
}

// ExportCSV renders the campaign's selections as CSV, one row per selection
func (s *AdminCampaignFlowImpl) ExportCSV(ctx context.Context, id uint) (*dto.ExportFile, error) {
	rows, err := s.exportRows(ctx, id)
	if err != nil {
		return nil, err
	}

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(exportHeader); err != nil {
		return nil, NewBusinessError("CSV_WRITE_ERROR", "Failed to write CSV header", err)
	}
	for _, r := range rows {
		if err := w.Write(exportRecord(r)); err != nil {
			return nil, NewBusinessError("CSV_WRITE_ERROR", "Failed to write CSV row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, NewBusinessError("CSV_WRITE_ERROR", "Failed to flush CSV", err)
	}

	exportsTotal.WithLabelValues("csv").Inc()
	return &dto.ExportFile{
		Filename:    s.exportFilename(id, "csv"),
		ContentType: csvContentType,
		Data:        buf.Bytes(),
	}, nil
}

// ExportXLSX renders the same rows as ExportCSV into a single-sheet workbook
func (s *AdminCampaignFlowImpl) ExportXLSX(ctx context.Context, id uint) (*dto.ExportFile, error) {
	rows, err := s.exportRows(ctx, id)
	if err != nil {
		return nil, err
	}

	xl := excelize.NewFile()
	defer func() { _ = xl.Close() }()

	if err := xl.SetSheetName(xl.GetSheetName(0), exportSheetName); err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to prepare Excel sheet", err)
	}
	header := exportHeader
	if err := xl.SetSheetRow(exportSheetName, "A1", &header); err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel header", err)
	}
	for i, r := range rows {
		record := []any{r.ProductID, r.DisplayTitle(), r.VendorID, r.DiscountPercent}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to address Excel row", err)
		}
		if err := xl.SetSheetRow(exportSheetName, cell, &record); err != nil {
			return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel row", err)
		}
	}

	buf, err := xl.WriteToBuffer()
	if err != nil {
		return nil, NewBusinessError("EXCEL_WRITE_ERROR", "Failed to write Excel file", err)
	}

	exportsTotal.WithLabelValues("xlsx").Inc()
	return &dto.ExportFile{
		Filename:    s.exportFilename(id, "xlsx"),
		ContentType: xlsxContentType,
		Data:        buf.Bytes(),
	}, nil
}

// exportRows returns the campaign's selections ordered by vendor then product
func (s *AdminCampaignFlowImpl) exportRows(ctx context.Context, id uint) ([]*models.CampaignItem, error) {
	campaign, err := s.campaignRepo.ByID(ctx, id)
	if err != nil {
		return nil, NewBusinessError("CAMPAIGN_LOOKUP_FAILED", "Failed to lookup campaign", err)
	}
	if campaign == nil {
		return nil, ErrCampaignNotFound
	}

	rows, err := s.itemRepo.ListByCampaign(ctx, id)
	if err != nil {
		return nil, NewBusinessError("ADMIN_LIST_SELECTIONS_FAILED", "Failed to list selections", err)
	}
	if len(rows) == 0 {
		return nil, ErrNoSelections
	}
	return rows, nil
}

func (s *AdminCampaignFlowImpl) exportFilename(id uint, ext string) string {
	return fmt.Sprintf("campaign_%d_products_%s.%s", id, s.today().Format(utils.ISODate), ext)
}

func exportRecord(r *models.CampaignItem) []string {
	return []string{
		r.ProductID,
		r.DisplayTitle(),
		r.VendorID,
		strconv.FormatFloat(r.DiscountPercent, 'f', -1, 64),
	}
}
