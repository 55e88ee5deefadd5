// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mutation implements the state machine shared by every mutation set.

Each operation runs through the same steps:

 1. Guard: an empty entity id or a failed precondition returns false with no side effects.
 2. Start: loading is raised and the previous error is cleared.
 3. Invoke: the service function is called exactly once with the entity id.
 4. Success: every cache key derived from the id is refreshed, in order.
 5. Failure: the error is stored and one error toast is shown. Nothing is refreshed.
 6. Finally: loading is released on every path.

Mutation sets embed a [Runner] privately and expose its [State] read-only.
*/
package mutation

import (
	stdctx "context"
	"log/slog"
	"sync"
	"time"

	"github.com/taibuivan/civicdesk/internal/platform/apperr"
	"github.com/taibuivan/civicdesk/internal/platform/ctxutil"
	"github.com/taibuivan/civicdesk/internal/platform/querycache"
	"github.com/taibuivan/civicdesk/internal/platform/toast"
)

// # Contracts

// State is the read-only view of a mutation set's status.
type State interface {
	// Loading is true while at least one operation is in flight.
	Loading() bool
	// Err is the error of the most recent failed attempt, cleared when an attempt starts.
	Err() error
}

// Observer receives one sample per operation that passed its guard.
type Observer interface {
	ObserveMutation(operation string, err error, elapsed time.Duration)
}

// Dependencies are the collaborators shared by all runners of an application.
type Dependencies struct {
	Cache    querycache.Refresher
	Notifier toast.Notifier
	Observer Observer
	Logger   *slog.Logger
}

// Call is a service invocation bound to the current entity id.
type Call func(context stdctx.Context, entityID string) error

// Operation describes one mutation.
type Operation struct {
	// Name labels logs, toasts and metrics (e.g. "organization.upload_images").
	Name string

	// Unscoped operations do not need an entity id (e.g. creating an organization).
	Unscoped bool

	// Check returns a non-nil error when an argument precondition fails.
	Check func() error

	// Keys derive the cache keys refreshed after success.
	Keys []querycache.KeyFunc

	Call Call
}

// # Runner

// Runner executes operations for one mutation set. It is safe for concurrent use.
type Runner struct {
	ref          *Ref
	dependencies Dependencies

	mu       sync.Mutex
	inFlight int
	err      error
}

// NewRunner creates a [Runner] reading its entity id from ref.
func NewRunner(ref *Ref, dependencies Dependencies) *Runner {
	if ref == nil {
		ref = NewRef("")
	}
	if dependencies.Notifier == nil {
		dependencies.Notifier = toast.Discard{}
	}
	if dependencies.Logger == nil {
		dependencies.Logger = slog.Default()
	}
	return &Runner{ref: ref, dependencies: dependencies}
}

// State returns the read-only status view.
func (runner *Runner) State() State {
	return stateView{runner: runner}
}

// EntityID is the id operations would use if started now.
func (runner *Runner) EntityID() string {
	return runner.ref.ID()
}

func (runner *Runner) loading() bool {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.inFlight > 0
}

func (runner *Runner) lastError() error {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	return runner.err
}

/*
Run executes operation through the mutation contract.

Parameters:
  - context: context.Context (passed to the service call and refreshes)
  - operation: Operation

Returns:
  - bool: true when the service call succeeded
*/
func (runner *Runner) Run(context stdctx.Context, operation Operation) bool {
	entityID := runner.ref.ID()

	if !operation.Unscoped && entityID == "" {
		return false
	}
	if operation.Check != nil {
		if err := operation.Check(); err != nil {
			runner.dependencies.Logger.DebugContext(context, "mutation_skipped",
				slog.String("operation", operation.Name),
				slog.String("reason", err.Error()),
			)
			return false
		}
	}

	context = ctxutil.WithOperation(context, operation.Name)

	runner.begin()
	defer runner.end()

	startTime := time.Now()
	err := operation.Call(context, entityID)

	if err != nil {
		runner.fail(context, operation, entityID, err)
		runner.observe(operation.Name, err, time.Since(startTime))
		return false
	}

	for _, keyFunc := range operation.Keys {
		runner.refresh(context, keyFunc(entityID))
	}

	runner.observe(operation.Name, nil, time.Since(startTime))
	return true
}

/*
Do is [Runner.Run] for service calls that return a payload.

Returns:
  - T: the payload on success, the zero value otherwise
  - bool: true when the service call succeeded
*/
func Do[T any](context stdctx.Context, runner *Runner, operation Operation, call func(stdctx.Context, string) (T, error)) (T, bool) {
	var result T

	operation.Call = func(context stdctx.Context, entityID string) error {
		value, err := call(context, entityID)
		if err != nil {
			return err
		}
		result = value
		return nil
	}

	if !runner.Run(context, operation) {
		var zero T
		return zero, false
	}
	return result, true
}

/*
Refresh refreshes each key derived from the current entity id.

With an empty id it does nothing. Loading and error state are not touched.

Returns:
  - error: first refresh failure, after every key was attempted
*/
func (runner *Runner) Refresh(context stdctx.Context, keys ...querycache.KeyFunc) error {
	entityID := runner.ref.ID()
	if entityID == "" {
		return nil
	}

	derived := make([]querycache.Key, 0, len(keys))
	for _, keyFunc := range keys {
		derived = append(derived, keyFunc(entityID))
	}
	return runner.RefreshKeys(context, derived...)
}

// RefreshKeys refreshes keys that do not depend on an entity id (e.g. list queries).
func (runner *Runner) RefreshKeys(context stdctx.Context, keys ...querycache.Key) error {
	if runner.dependencies.Cache == nil {
		return nil
	}

	var first error
	for _, key := range keys {
		if err := runner.dependencies.Cache.Refresh(context, key); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// # Internals

func (runner *Runner) begin() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.inFlight++
	runner.err = nil
}

func (runner *Runner) end() {
	runner.mu.Lock()
	defer runner.mu.Unlock()
	runner.inFlight--
}

func (runner *Runner) fail(context stdctx.Context, operation Operation, entityID string, err error) {
	runner.mu.Lock()
	runner.err = err
	runner.mu.Unlock()

	message := err.Error()
	if appError := apperr.As(err); appError != nil {
		message = appError.Message
	}

	runner.dependencies.Logger.WarnContext(context, "mutation_failed",
		slog.String("operation", operation.Name),
		slog.String("entity_id", entityID),
		slog.Any("error", err),
	)
	runner.dependencies.Notifier.Error(context, message)
}

// refresh failures do not undo a successful write; they are only logged.
func (runner *Runner) refresh(context stdctx.Context, key querycache.Key) {
	if runner.dependencies.Cache == nil {
		return
	}
	if err := runner.dependencies.Cache.Refresh(context, key); err != nil {
		runner.dependencies.Logger.WarnContext(context, "mutation_refresh_failed",
			slog.String("key", string(key)),
			slog.Any("error", err),
		)
	}
}

func (runner *Runner) observe(operation string, err error, elapsed time.Duration) {
	if runner.dependencies.Observer != nil {
		runner.dependencies.Observer.ObserveMutation(operation, err, elapsed)
	}
}

// stateView hides the runner's methods behind [State].
type stateView struct {
	runner *Runner
}

func (view stateView) Loading() bool { return view.runner.loading() }
func (view stateView) Err() error     { return view.runner.lastError() }
