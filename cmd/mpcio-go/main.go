package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/protocol"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/ring"
)

var fields = []ring.Field{ring.FM32, ring.FM64, ring.FM128}

func main() {
	parties := flag.Int("parties", 0, "validate the support matrix for this world size")
	flag.Parse()

	log.Printf("mpcio-go version: %s", mpcio.Version)

	for _, kind := range protocol.Kinds() {
		strategy, err := protocol.ForKind(kind)
		if err != nil {
			log.Fatalf("strategy for %v: %v", kind, err)
		}

		for _, field := range fields {
			conf := mpcio.RuntimeConfig{Protocol: kind, Field: field}
			if err := conf.Validate(); err != nil {
				log.Fatalf("config %v/%v: %v", kind, field, err)
			}

			status := "parties " + supportedSizes(strategy)
			if *parties > 0 {
				status = fmt.Sprintf("%d parties supported", *parties)
				if err := strategy.CheckWorldSize(*parties); err != nil {
					status = fmt.Sprintf("unsupported: %v", err)
				}
			}
			fmt.Printf("%-8s %-6s ring width %3d bits  %s\n", kind, field, field.Bits(), status)
		}
	}
}

// supportedSizes probes small world sizes and renders the ones the strategy
// accepts, collapsing a contiguous run ending at the probe limit into "n..".
func supportedSizes(s protocol.Strategy) string {
	const probe = 8
	var sizes []int
	for n := 2; n <= probe; n++ {
		if s.CheckWorldSize(n) == nil {
			sizes = append(sizes, n)
		}
	}
	if len(sizes) == 0 {
		return "none"
	}
	if sizes[len(sizes)-1]-sizes[0] == len(sizes)-1 && sizes[len(sizes)-1] == probe {
		return fmt.Sprintf("%d..", sizes[0])
	}
	parts := make([]string, len(sizes))
	for i, n := range sizes {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}
