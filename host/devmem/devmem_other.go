//go:build !linux

package devmem

import "errors"

// Mapper is a placeholder on platforms without a physical-memory device.
type Mapper struct {
	Device string
}

func NewMapper() *Mapper {
	return &Mapper{}
}

func (m *Mapper) Map(phys uint64, length int) ([]byte, error) {
	return nil, errors.New("physical memory mapping is only supported on linux")
}
