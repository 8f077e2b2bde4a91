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

// ItemService runs the reconcile pass over the Price Items sheet,
// scoped to a parent price list that already synced successfully.
type ItemService struct {
	service
	api *mpt.PriceListItemAPI
}

func NewItemService(api *mpt.PriceListItemAPI, file *workbook.PriceListFile, fileStats *stats.FileStats, account accounts.Context, logger *log.Logger) *ItemService {
	return &ItemService{
		service: service{file: file, stats: fileStats, account: account, logger: logger},
		api:     api,
	}
}

// Update walks the item rows in sheet order. Rows with a blank or "-"
// action are skipped without a remote call; only "update" drives a
// write. An auth failure aborts the remaining rows of the file.
func (s *ItemService) Update(ctx context.Context) Result {
	rows, err := s.file.ReadItems()
	if err != nil {
		return failure(err)
	}

	var errs []error
	for _, row := range rows {
		if ctx.Err() != nil {
			return failure(ctx.Err())
		}
		state, err := s.syncRow(ctx, row)
		if err != nil {
			errs = append(errs, err)
		}
		if state == stateFailed && mpt.IsAuth(err) {
			s.logger.Error("authorization rejected, aborting file", "file", s.file.Path())
			return Result{Success: false, Errors: errs}
		}
	}
	return Result{Success: true, Errors: errs}
}

// syncRow drives one row through the state machine:
// pending → skipped, or pending → updating → updated | failed.
func (s *ItemService) syncRow(ctx context.Context, row models.RowData) (rowState, error) {
	item, err := models.ItemFromRow(row)
	if err != nil {
		err = fmt.Errorf("item %s: %w", item.ItemID, err)
		s.failRow(item.ID, item.Coordinate, err.Error())
		return stateFailed, err
	}
	if item.Action.Skips() {
		s.stats.Record(stats.Skipped)
		return stateSkipped, nil
	}

	id, err := s.resolveRemoteID(ctx, item)
	if err != nil {
		err = fmt.Errorf("item %s: %w", item.ItemID, err)
		s.failRow(item.ID, item.Coordinate, err.Error())
		return stateFailed, err
	}

	hadID := item.ID != ""
	if _, err := s.api.Update(ctx, id, item.ToJSON(s.account.Role)); err != nil {
		if mpt.IsNotFound(err) {
			err = fmt.Errorf("item %s: remote item missing", item.ItemID)
		} else {
			err = fmt.Errorf("item %s: %w", item.ItemID, err)
		}
		s.failRow(item.ID, item.Coordinate, err.Error())
		return stateFailed, err
	}

	if !hadID {
		s.writeID(workbook.SheetItems, item.Coordinate, id)
	}
	s.stats.Record(stats.Updated)
	s.logger.Debug("updated item", "item_id", item.ItemID, "id", id)
	return stateUpdated, nil
}

// resolveRemoteID finds the remote record the row refers to. Rows that
// carry an id use it as-is; rows without one are matched by catalog
// item id, resolving duplicates to the most recently updated record.
func (s *ItemService) resolveRemoteID(ctx context.Context, item *models.PriceListItem) (string, error) {
	if item.ID != "" {
		return item.ID, nil
	}

	matches, err := s.api.ListByItemID(ctx, item.ItemID)
	if err != nil {
		return "", err
	}
	switch {
	case len(matches) == 0:
		return "", fmt.Errorf("remote item missing")
	case len(matches) > 1:
		s.logger.Warn("multiple remote items match", "item_id", item.ItemID, "matches", len(matches))
		s.stats.Warn(stats.WarnDuplicateRemote)
	}

	latest := matches[0]
	for _, m := range matches[1:] {
		if m.ModifiedDate.After(latest.ModifiedDate) {
			latest = m
		}
	}
	return latest.ID, nil
}
