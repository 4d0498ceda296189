package system

// Stats is the world resource the simulation systems report into.
type Stats struct {
	Generation int
	Population int
	Peak       int
	Births     int
	Deaths     int
	Spawned    int
}
