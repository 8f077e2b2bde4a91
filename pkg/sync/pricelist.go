package sync

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/accounts"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/mpt"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/stats"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/workbook"
)

// PriceListService runs the reconcile pass for the parent record of
// one workbook.
type PriceListService struct {
	service
	api   *mpt.PriceListAPI
	model *models.PriceList
}

// Retrieved is the outcome of matching the General sheet against the
// remote store.
type Retrieved struct {
	Model        *models.PriceList
	RemoteExists bool
	Stale        bool // row carried an id the remote no longer knows
}

func NewPriceListService(api *mpt.PriceListAPI, file *workbook.PriceListFile, fileStats *stats.FileStats, account accounts.Context, logger *log.Logger) *PriceListService {
	return &PriceListService{
		service: service{file: file, stats: fileStats, account: account, logger: logger},
		api:     api,
	}
}

// Retrieve loads the price list from the General sheet and looks up
// its remote counterpart. A stale id (remote 404) reconciles to the
// create path with a stale_id warning.
func (s *PriceListService) Retrieve(ctx context.Context) (*Retrieved, error) {
	row, err := s.file.ReadData()
	if err != nil {
		return nil, err
	}
	model, err := models.PriceListFromRow(row)
	if err != nil {
		return nil, err
	}
	if model.Type == "" {
		model.Type = s.account.Role
	}
	s.model = model

	if model.ID == "" {
		return &Retrieved{Model: model}, nil
	}

	_, err = s.api.Retrieve(ctx, model.ID)
	if mpt.IsNotFound(err) {
		s.logger.Warn("price list id is stale", "id", model.ID, "file", s.file.Path())
		s.stats.Warn(stats.WarnStaleID)
		return &Retrieved{Model: model, Stale: true}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("price-list %s: %w", model.ID, err)
	}
	return &Retrieved{Model: model, RemoteExists: true}, nil
}

// Create posts the price list and writes the assigned id back to the
// id cell of the General sheet.
func (s *PriceListService) Create(ctx context.Context) Result {
	if s.model.ProductID == "" {
		err := &models.InvalidRowError{Field: models.FieldProductID, Reason: "required for create"}
		return s.fail(err)
	}

	created, err := s.api.Create(ctx, s.model.ToJSON())
	if err != nil {
		return s.fail(fmt.Errorf("price-list create: %w", err))
	}

	s.model.ID = created.ID
	s.writeID(workbook.SheetGeneral, s.model.Coordinate, created.ID)
	s.stats.Record(stats.Created)
	s.logger.Info("created price list", "id", created.ID, "file", s.file.Path())
	return Result{Success: true, PriceList: s.model}
}

// Update puts the current row state over the existing remote record.
func (s *PriceListService) Update(ctx context.Context) Result {
	if _, err := s.api.Update(ctx, s.model.ID, s.model.ToJSON()); err != nil {
		return s.fail(fmt.Errorf("price-list %s: %w", s.model.ID, err))
	}
	s.stats.Record(stats.Updated)
	s.logger.Info("updated price list", "id", s.model.ID, "file", s.file.Path())
	return Result{Success: true, PriceList: s.model}
}

func (s *PriceListService) fail(err error) Result {
	s.logger.Warn("price list sync failed", "file", s.file.Path(), "error", err)
	s.stats.Record(stats.Failed)
	if wbErr := s.file.WriteGeneralError(err.Error()); wbErr != nil {
		s.logger.Warn("error write-back failed", "file", s.file.Path(), "error", wbErr)
		s.stats.Warn(stats.WarnWriteBack)
	}
	return failure(err)
}
