// Package store provides SQLite-backed durable storage for curve builds.
//
// Every build attempt, successful or not, is recorded once:
//   - Builds: one row per (run, curve) attempt, keyed by a content-addressed ID
//   - Pillars: the solved nodes of a successful build, in pillar order
//
// # Ordering
//
// All ordering uses seq INTEGER (logical clock), never timestamps. Queries
// returning several builds use ORDER BY seq ASC, id ASC COLLATE BINARY so
// results are identical across runs.
//
// # Idempotency
//
// WriteBuild inserts with ON CONFLICT(id) DO NOTHING. Writing the same build
// twice leaves the first record untouched.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Build IDs are computed by ir.BuildID.
package store
