package sundown

// Version returns this port's semantic version, tracking the upstream
// sundown release it was last brought in line with.
func Version() (major, minor, revision int) {
	return 1, 17, 0
}
