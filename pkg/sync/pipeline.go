package sync

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/accounts"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/mpt"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/stats"
	"github.com/softwareone-platform/swo-marketplace-cli-sub001/pkg/workbook"
)

// ConfirmFunc asks the operator before a mutation. It returns false
// to leave the file untouched.
type ConfirmFunc func(message string) bool

// AlwaysConfirm skips prompting (the --yes flag).
func AlwaysConfirm(string) bool { return true }

// TerminalConfirm prompts on out and accepts y/yes on in.
func TerminalConfirm(in io.Reader, out io.Writer) ConfirmFunc {
	reader := bufio.NewReader(in)
	return func(message string) bool {
		fmt.Fprintf(out, "%s [y/N]: ", message)
		answer, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		return answer == "y" || answer == "yes"
	}
}

// Pipeline orchestrates a sync run: files sequentially, parent before
// children within a file, child sync gated on parent success.
type Pipeline struct {
	client  *mpt.Client
	account accounts.Context
	stats   *stats.Collector
	logger  *log.Logger
	confirm ConfirmFunc
}

func NewPipeline(client *mpt.Client, account accounts.Context, collector *stats.Collector, logger *log.Logger, confirm ConfirmFunc) *Pipeline {
	return &Pipeline{
		client:  client,
		account: account,
		stats:   collector,
		logger:  logger,
		confirm: confirm,
	}
}

// Sync expands the given paths to workbooks and reconciles each one.
// It returns ErrNoFilesMatched when nothing matched and ErrHadFailures
// when at least one record failed; per-file failures never stop the
// remaining files.
func (p *Pipeline) Sync(ctx context.Context, paths []string) error {
	files, err := ExpandPaths(paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: tried %s", ErrNoFilesMatched, strings.Join(paths, ", "))
	}

	for _, path := range files {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		p.syncFile(ctx, path)
	}

	if p.stats.HasFailures() {
		return ErrHadFailures
	}
	return nil
}

func (p *Pipeline) syncFile(ctx context.Context, path string) {
	p.logger.Info("syncing file", "path", path)
	file := workbook.New(path, p.logger)
	defer file.Close()

	fileStats := p.stats.File(path)
	parents := NewPriceListService(p.client.PriceLists(), file, fileStats, p.account, p.logger)

	retrieved, err := parents.Retrieve(ctx)
	if err != nil {
		parents.fail(err)
		return
	}

	var result Result
	if retrieved.RemoteExists {
		if !p.confirm(fmt.Sprintf("Update price list %s from %s?", retrieved.Model.ID, path)) {
			fileStats.Record(stats.Skipped)
			return
		}
		result = parents.Update(ctx)
	} else {
		if !p.confirm(fmt.Sprintf("Create a new price list from %s?", path)) {
			fileStats.Record(stats.Skipped)
			return
		}
		result = parents.Create(ctx)
	}
	if !result.Success {
		return
	}

	items := NewItemService(p.client.Items(result.PriceList.ID), file, fileStats, p.account, p.logger)
	if res := items.Update(ctx); !res.Success {
		p.logger.Warn("item sync aborted", "path", path, "errors", len(res.Errors))
	}
}
