package domain

// Staff represents an entry in the employee directory. The directory is
// maintained elsewhere; this subsystem only reads it.
type Staff struct {
	Code     string
	FullName string
	Position string
}
