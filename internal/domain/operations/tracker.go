// Package operations implements the durable operation tracker and the
// background search and paste workers.
package operations

import (
	"sort"
	"time"

	"github.com/bytedance/sonic"
	bolt "go.etcd.io/bbolt"

	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/logging"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/infrastructure/store"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/errs"
	"github.com/GriffinCanCode/ExplorerOS/backend/internal/shared/id"
)

// Tracker is the durable state machine for long-running operations.
type Tracker struct {
	store  *store.Store
	logger *logging.Logger
}

// NewTracker creates an operation tracker.
func NewTracker(st *store.Store, logger *logging.Logger) *Tracker {
	return &Tracker{store: st, logger: logger}
}

// Create allocates a fresh operation in pending state.
func (t *Tracker) Create(opType Type) (*Operation, error) {
	now := time.Now().UTC()
	op := &Operation{
		ID:        id.NewOperationID().String(),
		Type:      opType,
		Status:    StatusPending,
		Progress:  0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := t.put(op); err != nil {
		return nil, err
	}
	return op, nil
}

// Update upserts the full record. A record deleted by the caller is treated
// as a no-op so a still-running worker's late writes are dropped rather
// than resurrecting tracking state.
func (t *Tracker) Update(op *Operation) error {
	op.UpdatedAt = time.Now().UTC()

	value, err := sonic.Marshal(op)
	if err != nil {
		return errs.Wrap(errs.Internal, "encode operation", err)
	}

	err = t.store.Update(store.BucketOperations, func(b *bolt.Bucket) error {
		if b.Get([]byte(op.ID)) == nil {
			return nil
		}
		return b.Put([]byte(op.ID), value)
	})
	if err != nil {
		return errs.Wrap(errs.Internal, "store operation", err)
	}
	return nil
}

// Get fetches one operation by id.
func (t *Tracker) Get(opID string) (*Operation, error) {
	value, err := t.store.Get(store.BucketOperations, []byte(opID))
	if err == store.ErrKeyNotFound {
		return nil, errs.Newf(errs.NotFound, "operation %s not found", opID)
	}
	if err != nil {
		return nil, errs.Wrap(errs.Internal, "get operation", err)
	}

	var op Operation
	if err := sonic.Unmarshal(value, &op); err != nil {
		return nil, errs.Wrap(errs.Internal, "decode operation", err)
	}
	return &op, nil
}

// List returns operations newest-first, optionally filtered by status and
// type, paginated by limit/offset. The returned total counts the filtered
// set before pagination.
func (t *Tracker) List(status Status, opType Type, limit, offset int) ([]Operation, int, error) {
	var ops []Operation
	err := t.store.ForEach(store.BucketOperations, func(_, value []byte) error {
		var op Operation
		if err := sonic.Unmarshal(value, &op); err != nil {
			return err
		}
		if status != "" && op.Status != status {
			return nil
		}
		if opType != "" && op.Type != opType {
			return nil
		}
		ops = append(ops, op)
		return nil
	})
	if err != nil {
		return nil, 0, errs.Wrap(errs.Internal, "list operations", err)
	}

	sort.Slice(ops, func(i, j int) bool { return ops[i].CreatedAt.After(ops[j].CreatedAt) })

	total := len(ops)
	if offset > len(ops) {
		offset = len(ops)
	}
	end := offset + limit
	if limit <= 0 || end > len(ops) {
		end = len(ops)
	}
	return ops[offset:end], total, nil
}

// Delete removes tracking state. It does not signal or cancel a worker that
// may still be running against the id.
func (t *Tracker) Delete(opID string) error {
	if err := t.store.Delete(store.BucketOperations, []byte(opID)); err != nil {
		return errs.Wrap(errs.Internal, "delete operation", err)
	}
	return nil
}

// put writes unconditionally; used at creation before any worker exists.
func (t *Tracker) put(op *Operation) error {
	value, err := sonic.Marshal(op)
	if err != nil {
		return errs.Wrap(errs.Internal, "encode operation", err)
	}
	if err := t.store.Put(store.BucketOperations, []byte(op.ID), value); err != nil {
		return errs.Wrap(errs.Internal, "store operation", err)
	}
	return nil
}
