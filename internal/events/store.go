package events

import "time"

// BatchFetch is published for every multi-key fetch a batching loader issues
// against the store.
type BatchFetch struct {
	Entity   string
	Keys     int
	Found    int
	Err      error
	Duration time.Duration
}

// Mutation is published after a mutation field resolved against the store.
type Mutation struct {
	Field    string
	Err      error
	Duration time.Duration
}
