// Package events declares the event payloads published on the eventbus.
package events

import (
	"net/http"
	"time"
)

// HTTPStart is published when a request reaches the GraphQL endpoint.
type HTTPStart struct {
	Request *http.Request
}

// HTTPFinish is published after the response has been written.
type HTTPFinish struct {
	Request  *http.Request
	Status   int
	Duration time.Duration
}
