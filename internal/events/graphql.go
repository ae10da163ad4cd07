package events

import "time"

// OperationStart is published before a GraphQL operation executes.
type OperationStart struct {
	Query         string
	OperationName string
	OperationType string
}

// OperationFinish is published after execution. Rejected is true when the
// validator refused the document before any resolver ran.
type OperationFinish struct {
	Query         string
	OperationName string
	OperationType string
	Rejected      bool
	Errors        []error
	Duration      time.Duration
}
