// internal/sched/seed.go
package sched

// ReplicateSeed derives the simulation seed for one replicate index.
// Splitmix-style mixing keyed on (seed, rep) only, so a replicate's seed is
// independent of batch size and of how many batches ran before it.
func ReplicateSeed(seed int64, rep int) int64 {
	z := uint64(seed) + uint64(rep+1)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z & 0x7FFFFFFFFFFFFFFF)
}
