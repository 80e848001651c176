// Package comparison exposes the dataset comparison engine over HTTP.
//
// It follows the standard feature layout: a Service that owns the
// supervised background worker and dispatches engine calls through it,
// a Handler translating HTTP requests and task errors, and a Feature
// wrapper for the loader.
//
// # Endpoints
//
//   - POST /compare/datasets — full two-dataset comparison
//   - POST /compare/cells    — single-pair adaptive cell diff
//   - POST /compare/columns  — case-insensitive header reconciliation
//   - GET  /compare/ping     — background worker liveness
//
// All computation runs on the feature's background worker, so a huge
// comparison cannot stall the HTTP serving path; timeouts and worker
// crashes surface as 504/503 responses rather than hung requests.
package comparison
