package common

const (
	// ErrCycleDuration is thrown when the configured hive cycle duration
	// is not a positive number of milliseconds.
	ErrCycleDuration = "non-positive cycle duration"
	// ErrEpochInFuture is thrown when cycle arithmetic is requested for a
	// moment preceding the epoch start.
	ErrEpochInFuture = "epoch start is in the future"
)

// CurrentCycle converts a wall-clock moment into a hive cycle index. Cycles
// are counted from epochStart with the fixed duration, all in milliseconds.
// A partially elapsed cycle counts as a whole one, so the index is 0 only
// while now equals epochStart and never recurs afterwards.
func CurrentCycle(now, epochStart, duration int) int {
	if duration <= 0 {
		panic(ErrCycleDuration)
	}

	elapsed := TimeSinceEpoch(now, epochStart)

	return (elapsed + duration - 1) / duration
}

// TimeSinceEpoch returns the number of milliseconds passed from epochStart
// to now.
func TimeSinceEpoch(now, epochStart int) int {
	if now < epochStart {
		panic(ErrEpochInFuture)
	}

	return now - epochStart
}
