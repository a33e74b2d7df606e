// Package store provides the unidirectional state-update core: actions,
// pure reducers, reducer composition, and a Store that serializes updates
// and notifies subscribers. It is structured into small files by concern:
//
//   - action.go: Action, Reducer and the Dispatcher interface.
//   - store.go: Store type (Dispatch, State, Subscribe).
//   - combine.go: Field/Combine for composing slice reducers.
//   - loop.go: Loop, which owns a Store and runs all work on one goroutine.
//   - errors.go: sentinel errors and predicates.
//   - events.go, eventpub_*.go: dispatch events and publishers.
//   - metrics.go: Prometheus instrumentation.
//
// A Store is not safe for concurrent use. Code that touches a Store from
// more than one goroutine should go through a Loop.
package store
