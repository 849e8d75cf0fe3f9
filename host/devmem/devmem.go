//go:build linux

// Package devmem maps physical peripheral addresses into the process by
// mmapping the physical-memory device. Mapping device memory requires
// root.
package devmem

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

const defaultDevice = "/dev/mem"

// Mapper implements core.PeripheralMapper over the physical-memory device.
type Mapper struct {
	// Device overrides the memory device path. Tests point it at a
	// regular file; the mmap path is identical.
	Device string
}

// NewMapper returns a mapper for /dev/mem.
func NewMapper() *Mapper {
	return &Mapper{Device: defaultDevice}
}

// Map maps the page(s) containing [phys, phys+length) and returns the
// slice starting at phys. The mapping is never torn down; it lives until
// process exit.
func (m *Mapper) Map(phys uint64, length int) ([]byte, error) {
	device := m.Device
	if device == "" {
		device = defaultDevice
	}

	f, err := os.OpenFile(device, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", device, err)
	}
	// The mapping stays valid after the descriptor is closed.
	defer f.Close()

	pageSize := uint64(unix.Getpagesize())
	pageBase := phys &^ (pageSize - 1)
	offset := int(phys - pageBase)
	mapLen := (uint64(offset+length) + pageSize - 1) &^ (pageSize - 1)

	mem, err := unix.Mmap(int(f.Fd()), int64(pageBase), int(mapLen),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("mmap %s at %#x: %w", device, pageBase, err)
	}
	return mem[offset : offset+length], nil
}
