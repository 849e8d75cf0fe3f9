package core

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// sysTimerRegs is the register map of the BCM system timer block. The
// free-running counter in clo/chi ticks at 1 MHz; the low word wraps modulo
// 2^32 roughly every 71.6 minutes.
//
// c0 and c2 are compare channels owned by the GPU firmware and must never
// be written from the ARM side. c1 and c3 are free but unused: the delay
// loop only ever reads clo.
type sysTimerRegs struct {
	cs  uint32 // control/status
	clo uint32 // counter low word
	chi uint32 // counter high word
	c0  uint32 // compare 0 (GPU)
	c1  uint32 // compare 1
	c2  uint32 // compare 2 (GPU)
	c3  uint32 // compare 3
}

// SysTimer provides microsecond busy-wait delays against the free-running
// system timer counter.
//
// Microsleep occupies the calling thread for the whole delay by active
// polling. Callers in a concurrent program should route it off
// latency-sensitive threads.
type SysTimer struct {
	mu       sync.Mutex // guards Setup; the delay path takes no lock
	resolver PlatformResolver
	mapper   PeripheralMapper

	regs  *sysTimerRegs
	ready atomic.Bool
}

// New returns a timer that identifies the board through r and maps the
// register block through m. No hardware is touched until Setup or the first
// Microsleep.
func New(r PlatformResolver, m PeripheralMapper) *SysTimer {
	return &SysTimer{resolver: r, mapper: m}
}

// Setup resolves the board generation and maps the system timer register
// block into the process. It is idempotent: the mapping is made at most
// once per timer, and every call after a successful one returns nil without
// side effects. A failed Setup leaves the timer unconfigured, so the call
// may be retried.
func (t *SysTimer) Setup() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Already mapped. Mapping again would create a second independent view
	// of the same hardware page.
	if t.ready.Load() {
		return nil
	}

	if t.resolver == nil || t.mapper == nil {
		return ErrNoDriver
	}

	version, err := t.resolver.PiVersion()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnsupportedPlatform, err)
	}
	base, ok := periBase(version)
	if !ok {
		return fmt.Errorf("%w: pi version %d", ErrUnsupportedPlatform, version)
	}

	mem, err := t.mapper.Map(base+sysTimerOffset, sysTimerRegLen)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMappingFailed, err)
	}
	if len(mem) < sysTimerRegLen {
		return fmt.Errorf("%w: short mapping (%d bytes)", ErrMappingFailed, len(mem))
	}

	t.regs = (*sysTimerRegs)(unsafe.Pointer(&mem[0]))
	t.ready.Store(true)
	return nil
}

// counterLo reads the low word of the free-running counter. The atomic load
// keeps the compiler from caching or eliding the access, so every call is a
// live load from the hardware register.
func (t *SysTimer) counterLo() uint32 {
	return atomic.LoadUint32(&t.regs.clo)
}

// Microsleep busy-waits until the free-running counter has advanced by at
// least usec ticks (microseconds). The timer is set up on first use; a
// Setup failure is returned without any delay. A zero delay returns
// immediately.
//
// The comparison is modular: clo-start is the tick count since the call
// began, modulo 2^32, so the counter wrapping once mid-wait does not end
// the wait early. Delays must stay well short of the ~71.6 minute
// wraparound period.
func (t *SysTimer) Microsleep(usec uint32) error {
	if !t.ready.Load() {
		if err := t.Setup(); err != nil {
			return err
		}
	}

	start := t.counterLo()
	for t.counterLo()-start < usec {
	}
	return nil
}

// Count64 returns the full 64-bit free-running count. The high word is read
// on both sides of the low word to detect a rollover between the loads.
func (t *SysTimer) Count64() (uint64, error) {
	if !t.ready.Load() {
		if err := t.Setup(); err != nil {
			return 0, err
		}
	}
	for {
		hi := atomic.LoadUint32(&t.regs.chi)
		lo := atomic.LoadUint32(&t.regs.clo)
		if atomic.LoadUint32(&t.regs.chi) == hi {
			return uint64(hi)<<32 | uint64(lo), nil
		}
	}
}

// Package-level timer, wired through SetPlatformResolver and
// SetPeripheralMapper, for callers that want the plain function interface.
var defaultTimer SysTimer

// Setup configures the package-level timer.
func Setup() error { return defaultTimer.Setup() }

// Microsleep delays on the package-level timer.
func Microsleep(usec uint32) error { return defaultTimer.Microsleep(usec) }
