// Package replay persists per-room broadcast history across coordinator
// restarts.
//
// A Store keeps the full entry sequence for each room, replaced wholesale on
// every save with last-writer-wins semantics. Entries are opaque JSON blobs;
// the room coordinator owns their meaning and ordering (oldest first).
//
// Three implementations are provided: MemoryStore for tests and local
// development, RedisStore for shared low-latency durability, and
// PostgresStore for deployments that already run SQL storage.
package replay
