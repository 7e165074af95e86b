package operations

import (
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/domain/metadata"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/monitoring"
)

// Engine dispatches background workers against tracked operations.
//
// Each submission spawns one unsupervised goroutine; the submitting call
// returns as soon as the pending record is persisted. The worker runs on its
// own clone of the record, so the returned snapshot stays a stable pending
// view. There is no global concurrency limit and no cancellation.
type Engine struct {
	tracker *Tracker
	meta    *metadata.Service
	logger  *logging.Logger
	metrics *monitoring.Metrics
}

// NewEngine creates a worker dispatch engine.
func NewEngine(tracker *Tracker, meta *metadata.Service, logger *logging.Logger, metrics *monitoring.Metrics) *Engine {
	return &Engine{tracker: tracker, meta: meta, logger: logger, metrics: metrics}
}

// Tracker exposes the underlying tracker for status polling.
func (e *Engine) Tracker() *Tracker {
	return e.tracker
}

// SubmitSearch creates a pending search operation and dispatches its worker.
func (e *Engine) SubmitSearch(params SearchParams) (*Operation, error) {
	op, err := e.tracker.Create(TypeSearch)
	if err != nil {
		return nil, err
	}
	op.SourcePaths = []string{params.Root}
	if err := e.tracker.Update(op); err != nil {
		return nil, err
	}

	e.recordStarted(TypeSearch)
	go e.runSearch(op.Clone(), params)
	return op, nil
}

// SubmitPaste creates a pending copy or move operation and dispatches its
// worker.
func (e *Engine) SubmitPaste(opType Type, params PasteParams) (*Operation, error) {
	op, err := e.tracker.Create(opType)
	if err != nil {
		return nil, err
	}
	op.SourcePaths = append([]string(nil), params.Sources...)
	op.DestinationPath = params.Destination
	if err := e.tracker.Update(op); err != nil {
		return nil, err
	}

	e.recordStarted(opType)
	go e.runPaste(op.Clone(), params)
	return op, nil
}

// finish applies the terminal transition and persists it. CompletedAt is
// set exactly once, here.
func (e *Engine) finish(op *Operation, status Status) {
	now := time.Now().UTC()
	op.Status = status
	op.CompletedAt = &now
	if err := e.tracker.Update(op); err != nil {
		e.logger.Error("Failed to persist terminal operation state",
			zap.String("operation_id", op.ID), zap.Error(err))
	}
	if e.metrics != nil {
		e.metrics.RecordOperationFinished(string(op.Type), string(status), now.Sub(op.CreatedAt))
	}
}

func (e *Engine) recordStarted(opType Type) {
	if e.metrics != nil {
		e.metrics.RecordOperationStarted(string(opType))
	}
}

func (e *Engine) addItems(n int) {
	if e.metrics != nil && n > 0 {
		e.metrics.AddItemsProcessed(n)
	}
}
