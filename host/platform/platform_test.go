package platform

import (
	"os"
	"path/filepath"
	"testing"

	"pisleep/core"
)

func TestVersionFromRevision(t *testing.T) {
	cases := []struct {
		code    uint32
		version core.PiVersion
	}{
		{0x0002, core.Pi1},   // 1 B rev 1.0
		{0x000F, core.Pi1},   // 1 B rev 2.0
		{0x0010, core.Pi1},   // 1 B+
		{0x1000012, core.Pi1}, // 1 A+ with warranty bit
		{0x900092, core.PiZero},
		{0x9000C1, core.PiZero}, // Zero W
		{0xA01041, core.Pi2},
		{0xA02082, core.Pi3}, // 3 B
		{0xA020D3, core.Pi3}, // 3 B+
		{0x902120, core.Pi3}, // Zero 2 W (BCM2710/2837 core)
		{0xA03111, core.Pi4},
		{0xB03115, core.Pi4},
		{0xC03130, core.Pi4}, // Pi 400
		{0xC04170, core.Pi5},
		{0xD04170, core.Pi5}, // 8GB Pi 5
	}

	for _, tc := range cases {
		got, err := versionFromRevision(tc.code)
		if err != nil {
			t.Errorf("versionFromRevision(%#x) failed: %v", tc.code, err)
			continue
		}
		if got != tc.version {
			t.Errorf("versionFromRevision(%#x) = %d, want %d", tc.code, got, tc.version)
		}
	}
}

func TestVersionFromRevisionUnrecognized(t *testing.T) {
	for _, code := range []uint32{0x0000, 0x0001, 0x0016, 0x905120} {
		if _, err := versionFromRevision(code); err == nil {
			t.Errorf("versionFromRevision(%#x) succeeded, want error", code)
		}
	}
}

const cpuinfoPi3 = `processor	: 0
model name	: ARMv7 Processor rev 4 (v7l)
BogoMIPS	: 38.40
Features	: half thumb fastmult vfp edsp neon vfpv3 tls vfpv4 idiva idivt vfpd32 lpae evtstrm crc32

Hardware	: BCM2835
Revision	: a02082
Serial		: 00000000deadbeef
Model		: Raspberry Pi 3 Model B Rev 1.2
`

const cpuinfoNoRevision = `processor	: 0
vendor_id	: GenuineIntel
model name	: Intel(R) Core(TM) i5
`

func TestRevisionCode(t *testing.T) {
	code, err := revisionCode(cpuinfoPi3)
	if err != nil {
		t.Fatalf("revisionCode failed: %v", err)
	}
	if code != 0xA02082 {
		t.Errorf("revisionCode = %#x, want 0xa02082", code)
	}

	if _, err := revisionCode(cpuinfoNoRevision); err == nil {
		t.Error("Expected error for cpuinfo without a Revision field")
	}

	if _, err := revisionCode("Revision\t: zz9012\n"); err == nil {
		t.Error("Expected error for a malformed revision code")
	}
}

func TestResolverFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cpuinfo")
	if err := os.WriteFile(path, []byte(cpuinfoPi3), 0o644); err != nil {
		t.Fatal(err)
	}

	r := &Resolver{Path: path}
	version, err := r.PiVersion()
	if err != nil {
		t.Fatalf("PiVersion failed: %v", err)
	}
	if version != core.Pi3 {
		t.Errorf("PiVersion = %d, want Pi3", version)
	}
}

func TestResolverMissingFile(t *testing.T) {
	r := &Resolver{Path: filepath.Join(t.TempDir(), "nope")}
	if _, err := r.PiVersion(); err == nil {
		t.Error("Expected error for a missing cpuinfo file")
	}
}
