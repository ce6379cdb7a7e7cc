// Package ingestion persists tenders and profiles and keeps their embeddings
// current.
//
// The Pipeline type manages the ingestion workflow:
//   - Adding or updating records in storage
//   - Dispatching one embedding job per changed entity to a worker pool
//   - Exposing each job through a Job handle
//
// Jobs for different entities run concurrently with no ordering guarantee.
// A trigger for an entity whose previous job has not started yet returns the
// queued job instead of scheduling another one.
// Errors during async processing are logged but do not fail the ingestion operation.
package ingestion
