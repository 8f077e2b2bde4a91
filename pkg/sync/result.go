package sync

import (
	"errors"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/models"
)

// ErrNoFilesMatched is returned when path expansion finds no workbook.
var ErrNoFilesMatched = errors.New("no files matched")

// ErrHadFailures is returned when a run finished but at least one
// record failed to sync or export.
var ErrHadFailures = errors.New("run had failures")

// Result is what every service operation hands back to the pipeline.
// The engine never panics or raises across the pipeline boundary.
type Result struct {
	Success   bool
	PriceList *models.PriceList
	Errors    []error
}

func failure(errs ...error) Result {
	return Result{Success: false, Errors: errs}
}

// rowState is the per-row state machine for item rows. A row starts
// pending and ends in exactly one of skipped, updated, or failed.
type rowState string

const (
	statePending  rowState = "pending"
	stateSkipped  rowState = "skipped"
	stateUpdating rowState = "updating"
	stateUpdated  rowState = "updated"
	stateFailed   rowState = "failed"
)
