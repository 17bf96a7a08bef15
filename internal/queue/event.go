// Package queue defines message payloads exchanged over the message broker.
package queue

import "time"

// ApplicationSubmittedEvent is published when a user applies to a job. It
// carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type ApplicationSubmittedEvent struct {
	Username    string    `json:"username"`
	JobID       int64     `json:"job_id"`
	State       string    `json:"state"`
	SubmittedAt time.Time `json:"submitted_at"`
}
