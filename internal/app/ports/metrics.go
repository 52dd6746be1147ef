package ports

// ActionMetrics records the outcome of each validateAndExecute call. Not a
// Non-goal of the engine: only real-time combat, matchmaking, websocket
// push and the client are excluded.
type ActionMetrics interface {
	RecordSuccess(tag string)
	RecordConflict()
	RecordFailure()
}
