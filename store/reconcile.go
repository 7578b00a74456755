package store

import (
	"taskflow/log"
	"taskflow/task"
)

// Reconciler decides which of the two task sources, the REST snapshot fetched
// at startup and the snapshots pushed over the task channel, is displayed.
// Both deliver the complete collection, so the rule is last writer wins with
// one exception: the startup REST result is stale by definition once any push
// has landed, and is dropped on the floor in that case.
type Reconciler struct {
	store *Store

	// authoritative flips true on the first applied snapshot from either
	// source and stays true for the life of the session.
	authoritative bool
}

// NewReconciler creates a Reconciler writing into store.
func NewReconciler(s *Store) *Reconciler {
	return &Reconciler{store: s}
}

// HasAuthoritativeData reports whether any snapshot has been applied yet.
func (r *Reconciler) HasAuthoritativeData() bool {
	return r.authoritative
}

// ApplyPushSnapshot applies a snapshot pushed over the task channel. Pushes
// always win wholesale.
func (r *Reconciler) ApplyPushSnapshot(tasks []task.Task) {
	r.authoritative = true
	r.store.ReplaceTasks(tasks)
}

// ApplyInitialSnapshot applies the startup REST fetch, unless a snapshot from
// either source already landed first. Returns whether it was applied.
func (r *Reconciler) ApplyInitialSnapshot(tasks []task.Task) bool {
	if r.authoritative {
		log.InfoLog.Printf("dropping startup task fetch, push snapshot arrived first")
		return false
	}
	r.authoritative = true
	r.store.ReplaceTasks(tasks)
	return true
}

// ApplyRefreshSnapshot applies the re-fetch issued after a local create,
// update, or delete. Unlike the startup fetch it always applies: the user
// just mutated, so this is the freshest complete view available without
// waiting for the echoing push.
func (r *Reconciler) ApplyRefreshSnapshot(tasks []task.Task) {
	r.authoritative = true
	r.store.ReplaceTasks(tasks)
}
