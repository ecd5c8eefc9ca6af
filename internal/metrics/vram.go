package metrics

import (
	"math"
	"strings"

	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

type vramCapacity struct {
	model string
	gb    float64
}

// defaultVRAMCapacity backs the last-resort total inference for cards whose
// driver reports usage but no capacity. Keyed by case-insensitive substring
// of the reported model name; deliberately incomplete.
var defaultVRAMCapacity = []vramCapacity{
	{"rtx 4050", 6},
	{"rtx 4060", 8},
	{"rtx 4070", 12},
	{"rtx 4080", 16},
	{"rtx 4090", 24},
}

func (e *Extractor) lookupVRAMCapacity(model string) *float64 {
	model = strings.ToLower(model)
	for _, entry := range e.vramCapacity {
		if strings.Contains(model, entry.model) {
			gb := entry.gb
			return &gb
		}
	}
	return nil
}

// volumeGB converts a volume sensor reading to gigabytes. SmallData sensors
// report megabytes, Data sensors are gigabytes already.
func volumeGB(s hardware.Sensor) *float64 {
	v := value(s)
	if v == nil {
		return nil
	}
	if s.Type == hardware.SensorSmallData {
		return finite(*v / 1024)
	}
	return v
}

func (e *Extractor) extractVRAM(snap *domain.Snapshot, node *hardware.Node) {
	var used, total, free *float64

	sensors := node.Flatten()

	for _, s := range sensors {
		if s.Type != hardware.SensorData && s.Type != hardware.SensorSmallData {
			continue
		}
		switch strings.ToLower(s.Name) {
		case "gpu memory used":
			if used == nil {
				used = volumeGB(s)
			}
		case "gpu memory total":
			if total == nil {
				total = volumeGB(s)
			}
		case "gpu memory free":
			if free == nil {
				free = volumeGB(s)
			}
		}
	}

	if used == nil && total != nil && free != nil {
		used = finite(math.Max(0, *total-*free))
	}

	// The exact names above are an NVIDIA convention; other drivers expose
	// loosely named volumes.
	if used == nil || total == nil {
		for _, s := range sensors {
			if s.Type != hardware.SensorData && s.Type != hardware.SensorSmallData {
				continue
			}
			name := strings.ToLower(s.Name)
			if !strings.Contains(name, "vram") && !strings.Contains(name, "gpu memory") {
				continue
			}
			if used == nil && strings.Contains(name, "used") {
				used = volumeGB(s)
			}
			if total == nil && (strings.Contains(name, "total") || strings.Contains(name, "dedicated")) {
				total = volumeGB(s)
			}
		}
	}

	if used != nil && total == nil {
		total = e.lookupVRAMCapacity(node.Name)
	}

	var usedPct *float64
	if used != nil && total != nil && *total > 0 {
		usedPct = finite(100 * *used / *total)
	}

	setIfNil(&snap.VRAM.UsedGB, used)
	setIfNil(&snap.VRAM.TotalGB, total)
	setIfNil(&snap.VRAM.UsedPct, usedPct)
}
