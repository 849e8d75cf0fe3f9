package core

// PiVersion identifies the Raspberry Pi board generation. The generation
// selects the physical base address of the BCM peripheral block.
type PiVersion int

const (
	PiZero PiVersion = iota // Zero, Zero W (BCM2835)
	Pi1                     // 1 A/B/A+/B+, CM1 (BCM2835)
	Pi2                     // 2 B (BCM2836)
	Pi3                     // 3 B/B+/A+, Zero 2 W, CM3 (BCM2837)
	Pi4                     // 4 B, 400, CM4 (BCM2711)
	Pi5                     // 5, 500, CM5 (BCM2712)
)

// Physical peripheral base addresses per SoC.
const (
	bcm2835PeriBase uint64 = 0x2000_0000
	bcm2837PeriBase uint64 = 0x3F00_0000
	bcm2711PeriBase uint64 = 0xFE00_0000
	bcm2712PeriBase uint64 = 0x10_7C00_0000
)

// System timer block location within the peripheral window.
const (
	sysTimerOffset uint64 = 0x3000
	sysTimerRegLen        = 28 // cs, clo, chi, c0..c3
)

// periBase returns the physical peripheral base address for a board
// generation, or false for a generation with no known address.
func periBase(v PiVersion) (uint64, bool) {
	switch v {
	case PiZero, Pi1:
		return bcm2835PeriBase, true
	case Pi2, Pi3:
		return bcm2837PeriBase, true
	case Pi4:
		return bcm2711PeriBase, true
	case Pi5:
		return bcm2712PeriBase, true
	}
	return 0, false
}
