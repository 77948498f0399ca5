// Package health provides liveness and readiness HTTP handlers.
//
// Liveness answers whether the process runs; Readiness additionally runs the
// registered dependency checks (for example a replay store ping) and reports
// 503 when any of them fail.
package health
