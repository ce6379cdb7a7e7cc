// Package embedding turns tenders and profiles into descriptor texts and
// stores the vectors an ai.Embedder produces for them.
//
// TenderBuilder and ProfileBuilder each embed one entity per call. The
// provider call is retried with exponential backoff under a per-attempt
// timeout; when every attempt fails the stored entity is left untouched and
// a wrapped core.ErrProviderFailure is returned. Vectors are written through
// the repositories' timestamp-guarded store operations, so of two jobs for
// the same entity the one that completes last wins.
package embedding
