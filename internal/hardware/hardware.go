// Package hardware defines the sensor tree contract between the metric
// extractor and whatever enumerates the machine's sensors. A provider owns
// the tree: it builds the nodes once and rewrites their sensor values on
// every Refresh. The extractor only reads.
package hardware

import "context"

type Category int

const (
	CategoryOther Category = iota
	CategoryCPU
	CategoryMemory
	CategoryMotherboard
	CategoryGPUNvidia
	CategoryGPUAmd
	CategoryGPUIntel
)

func (c Category) String() string {
	switch c {
	case CategoryCPU:
		return "Cpu"
	case CategoryMemory:
		return "Memory"
	case CategoryMotherboard:
		return "Motherboard"
	case CategoryGPUNvidia:
		return "GpuNvidia"
	case CategoryGPUAmd:
		return "GpuAmd"
	case CategoryGPUIntel:
		return "GpuIntel"
	default:
		return "Other"
	}
}

func (c Category) IsGPU() bool {
	return c == CategoryGPUNvidia || c == CategoryGPUAmd || c == CategoryGPUIntel
}

type SensorType int

const (
	SensorTemperature SensorType = iota // degrees Celsius
	SensorLoad                          // percent
	SensorData                          // gigabytes
	SensorSmallData                     // megabytes
)

func (t SensorType) String() string {
	switch t {
	case SensorTemperature:
		return "Temperature"
	case SensorLoad:
		return "Load"
	case SensorData:
		return "Data"
	case SensorSmallData:
		return "SmallData"
	default:
		return "Unknown"
	}
}

// Sensor is a single named reading. Names are vendor-specific and not
// guaranteed unique or stable across hardware revisions. A nil Value means
// the sensor is currently not reporting.
type Sensor struct {
	Name  string
	Type  SensorType
	Value *float64
	Min   *float64
	Max   *float64
}

// Node groups the sensors of one physical or logical component. Parents own
// their sub-nodes.
type Node struct {
	Name     string
	Category Category
	SubNodes []*Node
	Sensors  []Sensor
}

// Flatten returns the node's own sensors followed by those of all sub-nodes,
// depth first.
func (n *Node) Flatten() []Sensor {
	out := make([]Sensor, 0, len(n.Sensors))
	out = append(out, n.Sensors...)
	for _, sub := range n.SubNodes {
		out = append(out, sub.Flatten()...)
	}
	return out
}

// Provider enumerates the machine's hardware and refreshes its sensor
// values. Refresh must be called before every read; a Refresh error means
// one or more nodes could not be updated and their values may be stale.
type Provider interface {
	Enumerate() []*Node
	Refresh(ctx context.Context) error
}
