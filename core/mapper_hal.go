package core

// PeripheralMapper is the abstract physical-memory mapping interface that
// core code uses. Host-specific implementations handle the actual mapping
// (on Linux, mmap of /dev/mem).
type PeripheralMapper interface {
	// Map returns length bytes of a process-virtual mapping beginning at
	// the given physical address. Implementations map whole pages and are
	// expected to keep the mapping alive for the process lifetime; there
	// is no unmap.
	Map(phys uint64, length int) ([]byte, error)
}

// SetPeripheralMapper is called by host-specific code to register its
// mapper with the package-level timer.
func SetPeripheralMapper(m PeripheralMapper) {
	defaultTimer.mapper = m
}
