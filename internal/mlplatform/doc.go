// Package mlplatform is a thin client for the managed ML platform the
// preprocessed tables feed into: model registry, training jobs and batch
// transform jobs. It implements none of those services — it only drives them
// over a JSON HTTP API.
//
// client.go builds the authenticated *http.Client (mTLS, API key, bearer or
// basic auth via a shared round-tripper) and the doJSON request helper.
// training.go submits and polls training jobs; while a job runs, metrics.go
// scrapes its Prometheus-format metrics endpoint for epoch/loss progress.
// transform.go submits batch inference over an uploaded test table and
// rescales the fractional predictions by the fixed MaxRUL constant.
// registry.go publishes a trained artifact with upsert (overwrite-or-create)
// semantics, so repeated runs never race a check-then-delete sequence.
package mlplatform
