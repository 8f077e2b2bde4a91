package sync

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/accounts"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/mpt"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/workbook"
)

// ErrOperationsRequired is returned when a vendor account invokes a
// command reserved for the operations tenant.
var ErrOperationsRequired = errors.New("this command requires an operations account")

// Exporter materializes fresh workbooks from remote price lists: the
// inverse of the sync path.
type Exporter struct {
	client  *mpt.Client
	account accounts.Context
	logger  *log.Logger
}

func NewExporter(client *mpt.Client, account accounts.Context, logger *log.Logger) *Exporter {
	return &Exporter{client: client, account: account, logger: logger}
}

// Export writes one workbook per price-list id into outDir. The role
// gate runs before any remote call so a vendor account produces no
// files at all.
func (e *Exporter) Export(ctx context.Context, ids []string, outDir string) error {
	if e.account.Role != models.RoleOperations {
		return ErrOperationsRequired
	}

	failed := false
	for _, id := range ids {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := e.exportOne(ctx, id, outDir); err != nil {
			e.logger.Warn("export failed", "id", id, "error", err)
			failed = true
			continue
		}
		e.logger.Info("exported price list", "id", id)
	}
	if failed {
		return ErrHadFailures
	}
	return nil
}

func (e *Exporter) exportOne(ctx context.Context, id, outDir string) error {
	priceList, err := e.client.PriceLists().Retrieve(ctx, id)
	if err != nil {
		return fmt.Errorf("price-list %s: %w", id, err)
	}
	items, err := e.client.Items(id).List(ctx, nil)
	if err != nil {
		return fmt.Errorf("price-list %s items: %w", id, err)
	}

	out := workbook.NewExport(filepath.Join(outDir, id+".xlsx"))
	if err := out.AddGeneral(priceList); err != nil {
		return err
	}
	if err := out.StartItems(); err != nil {
		return err
	}
	for _, item := range items {
		if err := out.Add(item); err != nil {
			return err
		}
	}
	return out.Save()
}
