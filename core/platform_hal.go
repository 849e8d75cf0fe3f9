package core

// PlatformResolver is the abstract board-identification interface that core
// code uses. Host-specific implementations decide how the board is actually
// detected (on Linux, by parsing /proc/cpuinfo).
type PlatformResolver interface {
	// PiVersion returns the detected board generation, or an error if the
	// platform cannot be determined from the identification source.
	PiVersion() (PiVersion, error)
}

// SetPlatformResolver is called by host-specific code to register its
// resolver with the package-level timer.
func SetPlatformResolver(r PlatformResolver) {
	defaultTimer.resolver = r
}
