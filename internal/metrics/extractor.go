// Package metrics
package metrics

import (
	"math"

	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

// Extractor maps a freshly refreshed hardware tree onto a normalized
// snapshot. It is pure: no I/O, no retained state besides the capacity
// lookup table.
type Extractor struct {
	vramCapacity []vramCapacity
}

func NewExtractor() *Extractor {
	return &Extractor{vramCapacity: defaultVRAMCapacity}
}

// Extract walks the tree once per category. Each snapshot field is set at
// most once: the first rule that produces a value wins, independently per
// field, regardless of how many nodes of the same category exist.
func (e *Extractor) Extract(nodes []*hardware.Node) domain.Snapshot {
	var snap domain.Snapshot

	var motherboard *hardware.Node
	for _, node := range nodes {
		if node.Category == hardware.CategoryMotherboard {
			motherboard = node
			break
		}
	}

	for _, node := range nodes {
		switch {
		case node.Category == hardware.CategoryCPU:
			extractCPU(&snap, node, motherboard)
		case node.Category == hardware.CategoryMemory:
			extractRAM(&snap, node)
		case node.Category.IsGPU():
			extractGPU(&snap, node)
			e.extractVRAM(&snap, node)
		}
	}

	return snap
}

// value returns a sanitized copy of a sensor's current value: nil when the
// sensor is not reporting or the reading is NaN/Infinity.
func value(s hardware.Sensor) *float64 {
	return sanitize(s.Value)
}

func sanitize(v *float64) *float64 {
	if v == nil {
		return nil
	}
	return finite(*v)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func setIfNil(dst **float64, v *float64) {
	if *dst == nil {
		*dst = v
	}
}
