// Package room implements the per-room publish/broadcast coordinator.
//
// A Coordinator owns all state for one room: the set of subscriber channels,
// the bounded replay buffer, and the heartbeat schedule. Every operation on a
// room (Subscribe, Unsubscribe, Publish) is serialized by the coordinator,
// so rooms behave as independent single-threaded actors while different
// rooms run fully in parallel.
//
// Subscribers receive, in order: a connection confirmation, a replay of up to
// the last ten stored broadcasts, then live broadcasts and periodic heartbeat
// updates. Each subscriber has a bounded outbound queue with a drop-oldest
// overflow policy, so a slow consumer can never block a publisher or grow
// memory without bound.
//
// The Registry maps room identifiers to coordinators, creating them on first
// use. Replay history is persisted through a replay.Store, loaded lazily on
// first access and written in the background after every publish; the writes
// are tracked so a shutdown path can wait for them.
package room
