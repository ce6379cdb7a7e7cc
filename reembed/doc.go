// Package reembed regenerates the embeddings of every stored tender or
// profile, typically after switching embedding models.
//
// Entities are processed in batches through the same builders the ingestion
// pipeline uses, so re-embedded vectors obey the same timestamp guard and
// status rules. A failure on one entity is counted and logged and never
// aborts the run.
package reembed
