package operations

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/metadata"
)

// renameBudget bounds the rename-with-counter conflict search. Exhausting
// it fails the whole operation.
const renameBudget = 1000

// DefaultRenamePattern is the conflict rename template; {name} is the base
// name without extension and {n} the counter starting at 1.
const DefaultRenamePattern = "{name} ({n})"

// PasteParams carries the inputs of one paste worker run.
type PasteParams struct {
	Sources       []string
	Destination   string
	Conflict      ConflictPolicy
	RenamePattern string
}

// runPaste transfers each source into the destination directory, resolving
// conflicts per policy. A missing or failing source is recorded and the
// batch continues; the run is failed only when zero items succeeded.
func (e *Engine) runPaste(op *Operation, params PasteParams) {
	logger := e.logger.With(
		zap.String("operation_id", op.ID),
		zap.String("destination", params.Destination),
		zap.String("type", string(op.Type)),
	)
	logger.Info("Starting paste operation", zap.Int("sources", len(params.Sources)))

	op.Status = StatusInProgress
	op.TotalItems = len(params.Sources)
	if err := e.tracker.Update(op); err != nil {
		logger.Error("Failed to mark operation in progress", zap.Error(err))
		return
	}

	pattern := params.RenamePattern
	if pattern == "" {
		pattern = DefaultRenamePattern
	}

	dest := e.meta.Resolve(params.Destination)
	isMove := op.Type == TypeMove

	processed := 0
	var errMsgs []string

	for _, src := range params.Sources {
		src = e.meta.Resolve(src)

		srcInfo, err := os.Lstat(src)
		if err != nil {
			errMsgs = append(errMsgs, "Source not found: "+src)
			continue
		}

		target := filepath.Join(dest, filepath.Base(src))

		if _, err := os.Lstat(target); err == nil {
			switch params.Conflict {
			case ConflictSkip:
				continue
			case ConflictOverwrite:
				if err := os.RemoveAll(target); err != nil {
					errMsgs = append(errMsgs, "Failed to overwrite "+target+": "+err.Error())
					continue
				}
			default: // ConflictRename
				renamed, ok := nextFreeName(dest, filepath.Base(src), pattern)
				if !ok {
					op.ErrorMessage = "too many name conflicts for " + filepath.Base(src)
					e.finish(op, StatusFailed)
					logger.Error("Paste operation failed", zap.String("error", op.ErrorMessage))
					return
				}
				target = renamed
			}
		}

		if err := transfer(src, target, srcInfo.IsDir(), isMove); err != nil {
			errMsgs = append(errMsgs, "Failed to transfer "+src+": "+err.Error())
			continue
		}

		processed++
		op.ProcessedItems = processed
		op.Progress = processed * 100 / op.TotalItems
		if err := e.tracker.Update(op); err != nil {
			logger.Warn("Failed to persist paste progress", zap.Error(err))
		}
	}

	op.ErrorMessage = strings.Join(errMsgs, "; ")
	e.addItems(processed)

	// Partial success still reports completed, with the item errors
	// attached; callers must inspect error_message even on completed.
	if len(errMsgs) > 0 && processed == 0 {
		e.finish(op, StatusFailed)
		logger.Error("Paste operation failed", zap.Strings("errors", errMsgs))
		return
	}

	e.finish(op, StatusCompleted)
	logger.Info("Paste operation completed",
		zap.Int("processed", processed),
		zap.Int("errors", len(errMsgs)))
}

// nextFreeName applies the rename pattern with an incrementing counter
// until a non-conflicting target is found, bounded by renameBudget.
func nextFreeName(dest, name, pattern string) (string, bool) {
	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)

	for n := 1; n <= renameBudget; n++ {
		candidate := strings.ReplaceAll(pattern, "{name}", base)
		candidate = strings.ReplaceAll(candidate, "{n}", strconv.Itoa(n))
		target := filepath.Join(dest, candidate+ext)
		if _, err := os.Lstat(target); os.IsNotExist(err) {
			return target, true
		}
	}
	return "", false
}

func transfer(src, target string, isDir, isMove bool) error {
	if isMove {
		return metadata.Move(src, target)
	}
	if isDir {
		return metadata.CopyTree(src, target)
	}
	return metadata.CopyFile(src, target)
}
