// Command pisleep-bench measures the accuracy of hardware busy-wait delays
// against the wall clock. It maps the system timer through /dev/mem and so
// must run as root on a Raspberry Pi.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"pisleep/core"
	"pisleep/host/devmem"
	"pisleep/host/platform"
)

var (
	usec  = flag.Uint("us", 100, "Delay per iteration in microseconds")
	count = flag.Int("n", 1000, "Number of iterations")
)

func main() {
	flag.Parse()

	timer := core.New(platform.NewResolver(), devmem.NewMapper())
	if err := timer.Setup(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, core.ErrMappingFailed) {
			fmt.Fprintln(os.Stderr, "Mapping /dev/mem requires root; try sudo.")
		}
		os.Exit(1)
	}

	begin, err := timer.Count64()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	wallStart := time.Now()
	for i := 0; i < *count; i++ {
		if err := timer.Microsleep(uint32(*usec)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	wall := time.Since(wallStart)

	end, err := timer.Count64()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	requested := uint64(*usec) * uint64(*count)
	measured := end - begin

	fmt.Printf("%d delays of %d us\n", *count, *usec)
	fmt.Printf("requested:        %d us\n", requested)
	fmt.Printf("hardware counter: %d us (%+.3f us/delay overhead)\n",
		measured, float64(measured-requested)/float64(*count))
	fmt.Printf("wall clock:       %v\n", wall)
}
