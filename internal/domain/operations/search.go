package operations

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/metadata"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
)

// Type filter values accepted by search.
const (
	FilterAll         = "all"
	FilterFiles       = "file"
	FilterDirectories = "directory"
)

// progressInterval is the coarse checkpoint cadence: processed_items is
// persisted once per this many visited names.
const progressInterval = 100

// SearchParams carries the inputs of one search worker run.
type SearchParams struct {
	Root          string
	Pattern       string
	UseRegex      bool
	CaseSensitive bool
	TypeFilter    string
	ShowHidden    bool
}

// CompilePattern builds the name-matching regex. A non-regex pattern is a
// glob: every literal is escaped, then * expands to any run of characters
// and ? to exactly one. A glob with wildcards is anchored to the whole name
// so *.txt cannot match notes.txt.bak; a plain literal stays a substring
// match, as does regex mode.
func CompilePattern(pattern string, useRegex, caseSensitive bool) (*regexp.Regexp, error) {
	expr := pattern
	if !useRegex {
		expr = regexp.QuoteMeta(pattern)
		expr = strings.ReplaceAll(expr, `\*`, `.*`)
		expr = strings.ReplaceAll(expr, `\?`, `.`)
		if strings.ContainsAny(pattern, "*?") {
			expr = "^" + expr + "$"
		}
	}
	if !caseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, errs.Wrap(errs.InvalidArgument, "invalid search pattern", err)
	}
	return re, nil
}

// runSearch walks the tree from the root, collecting entries whose name
// matches the pattern and passes the type filter.
func (e *Engine) runSearch(op *Operation, params SearchParams) {
	logger := e.logger.With(
		zap.String("operation_id", op.ID),
		zap.String("root", params.Root),
		zap.String("pattern", params.Pattern),
	)
	logger.Info("Starting search operation")

	op.Status = StatusInProgress
	if err := e.tracker.Update(op); err != nil {
		logger.Error("Failed to mark operation in progress", zap.Error(err))
		return
	}

	re, err := CompilePattern(params.Pattern, params.UseRegex, params.CaseSensitive)
	if err != nil {
		op.ErrorMessage = err.Error()
		e.finish(op, StatusFailed)
		return
	}

	root := e.meta.Resolve(params.Root)
	start := time.Now()

	var mu sync.Mutex
	matches := []metadata.FileEntry{}
	scanned := 0

	conf := fastwalk.Config{Follow: false}
	walkErr := fastwalk.Walk(&conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees are skipped, not fatal.
			return nil
		}
		if path == root {
			return nil
		}

		name := d.Name()
		if !params.ShowHidden && strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		isDir := d.IsDir()
		if isDir && params.TypeFilter == FilterFiles {
			return nil
		}
		if !isDir && params.TypeFilter == FilterDirectories {
			return nil
		}

		matched := re.MatchString(name)

		mu.Lock()
		defer mu.Unlock()

		scanned++
		if matched {
			entry, err := e.meta.Describe(path)
			if err != nil {
				logger.Warn("Skipping unreadable match", zap.String("path", path), zap.Error(err))
			} else {
				matches = append(matches, *entry)
			}
		}

		if scanned%progressInterval == 0 {
			op.ProcessedItems = scanned
			if err := e.tracker.Update(op); err != nil {
				logger.Warn("Failed to checkpoint search progress", zap.Error(err))
			}
		}
		return nil
	})

	if walkErr != nil {
		logger.Error("Search operation failed", zap.Error(walkErr))
		op.ErrorMessage = walkErr.Error()
		e.finish(op, StatusFailed)
		return
	}

	op.ProcessedItems = scanned
	op.Result = map[string]any{
		"matches":             matches,
		"total_matches":       len(matches),
		"search_time_seconds": time.Since(start).Seconds(),
	}
	e.addItems(scanned)
	e.finish(op, StatusCompleted)
	logger.Info("Search operation completed",
		zap.Int("matches", len(matches)),
		zap.Int("scanned", scanned))
}
