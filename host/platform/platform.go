// Package platform detects the Raspberry Pi board generation by parsing
// the revision code published in /proc/cpuinfo.
package platform

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"pisleep/core"
)

const defaultCPUInfo = "/proc/cpuinfo"

// Resolver implements core.PlatformResolver from the kernel's cpuinfo.
type Resolver struct {
	// Path overrides the cpuinfo location. Tests point it at a fixture.
	Path string
}

// NewResolver returns a resolver reading /proc/cpuinfo.
func NewResolver() *Resolver {
	return &Resolver{Path: defaultCPUInfo}
}

// PiVersion implements core.PlatformResolver.
func (r *Resolver) PiVersion() (core.PiVersion, error) {
	path := r.Path
	if path == "" {
		path = defaultCPUInfo
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}

	code, err := revisionCode(string(data))
	if err != nil {
		return 0, err
	}
	return versionFromRevision(code)
}

// revisionCode extracts the hex revision code from cpuinfo text.
func revisionCode(cpuinfo string) (uint32, error) {
	for _, line := range strings.Split(cpuinfo, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(key) != "Revision" {
			continue
		}
		value = strings.TrimSpace(value)
		code, err := strconv.ParseUint(value, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("bad revision code %q: %w", value, err)
		}
		return uint32(code), nil
	}
	return 0, errors.New("no Revision field in cpuinfo")
}

// Revision code layout. Old-style codes (bit 23 clear) are bare sequence
// numbers issued for Pi 1 era boards. New-style codes pack fields:
// bits 0-3 board revision, 4-11 board type, 12-15 processor,
// 16-19 manufacturer, 20-22 memory size, 23 new-style flag,
// 24 warranty.
const (
	revNewStyle = 1 << 23
	revWarranty = 1 << 24

	procBCM2835 = 0
	procBCM2836 = 1
	procBCM2837 = 2
	procBCM2711 = 3
	procBCM2712 = 4

	typeZero  = 0x09
	typeZeroW = 0x0C
)

// versionFromRevision maps a revision code to the board generation.
func versionFromRevision(code uint32) (core.PiVersion, error) {
	if code&revNewStyle == 0 {
		// Old-style codes were only ever issued for Pi 1 boards.
		if c := code &^ revWarranty; c >= 0x0002 && c <= 0x0015 {
			return core.Pi1, nil
		}
		return 0, fmt.Errorf("unrecognized old-style revision %#06x", code)
	}

	proc := (code >> 12) & 0xF
	boardType := (code >> 4) & 0xFF

	switch proc {
	case procBCM2835:
		// The Zero family shares its SoC with the Pi 1.
		if boardType == typeZero || boardType == typeZeroW {
			return core.PiZero, nil
		}
		return core.Pi1, nil
	case procBCM2836:
		return core.Pi2, nil
	case procBCM2837:
		return core.Pi3, nil
	case procBCM2711:
		return core.Pi4, nil
	case procBCM2712:
		return core.Pi5, nil
	}
	return 0, fmt.Errorf("unrecognized processor %d in revision %#08x", proc, code)
}
