// Package sync is the reconcile-and-apply engine: it ingests a
// price-list workbook, decides per record what must be created or
// updated remotely, applies the mutations parent-first, and writes
// assigned ids and per-row errors back into the workbook.
package sync

import (
	"github.com/charmbracelet/log"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/accounts"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/stats"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/workbook"
)

// service is the skeleton shared by the parent and child passes: file
// access, tallies, the account context, and the write-back helpers.
// Both passes follow retrieve → decide → mutate → record; the entity
// specifics live in PriceListService and ItemService.
type service struct {
	file    *workbook.PriceListFile
	stats   *stats.FileStats
	account accounts.Context
	logger  *log.Logger
}

// writeID writes a freshly assigned id back to its cell. Write-back
// failures are non-fatal: the remote mutation already happened, so the
// run records a warning and keeps going.
func (s *service) writeID(sheet, coordinate, id string) {
	if err := s.file.WriteID(sheet, coordinate, id); err != nil {
		s.logger.Warn("id write-back failed", "file", s.file.Path(), "coordinate", coordinate, "error", err)
		s.stats.Warn(stats.WarnWriteBack)
	}
}

// failRow tallies a row failure and writes the message into the Error
// column, locating the row by remote id when it has one.
func (s *service) failRow(rowID, coordinate, message string) {
	s.stats.Record(stats.Failed)
	var err error
	if rowID != "" {
		err = s.file.WriteError(message, rowID)
	} else {
		err = s.file.WriteErrorAt(message, coordinate)
	}
	if err != nil {
		s.logger.Warn("error write-back failed", "file", s.file.Path(), "row", rowID, "error", err)
		s.stats.Warn(stats.WarnWriteBack)
	}
}
