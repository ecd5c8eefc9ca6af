package metrics

import (
	"strings"

	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
	"github.com/Xyon15/Hardware-Monitor/pkg"
)

// dieTempPatterns match the package/die temperature names used by Intel
// (Package), AMD (Tctl, Tdie) and various firmwares (Die).
var dieTempPatterns = []string{"package", "tctl", "tdie", "die"}

func extractCPU(snap *domain.Snapshot, node, motherboard *hardware.Node) {
	if snap.CPU.Load == nil {
		for _, s := range node.Flatten() {
			if s.Type != hardware.SensorLoad || !strings.EqualFold(s.Name, "CPU Total") {
				continue
			}
			if v := value(s); v != nil {
				snap.CPU.Load = v
				break
			}
		}
	}

	if snap.CPU.TempC == nil {
		snap.CPU.TempC = extractCPUTemp(node, motherboard)
	}
}

// extractCPUTemp picks the reading closest to the actual die temperature.
// Priority: a package/die sensor, then a CPU-named sensor, then the hottest
// of whatever temperature sensors the node has. When the CPU node exposes no
// temperature at all, the motherboard's SuperIO chip is the last resort.
// Where several readings are plausible the hottest wins: under-reporting a
// thermal hazard is the worse failure.
func extractCPUTemp(node, motherboard *hardware.Node) *float64 {
	var dieTemp, cpuNamed, hottest *float64

	for _, s := range node.Flatten() {
		if s.Type != hardware.SensorTemperature {
			continue
		}
		v := value(s)
		if v == nil {
			continue
		}

		name := strings.ToLower(s.Name)
		switch {
		case pkg.ContainsAny(name, dieTempPatterns):
			if dieTemp == nil {
				dieTemp = v
			}
		case strings.HasPrefix(name, "cpu") || strings.Contains(name, "core average"):
			if cpuNamed == nil {
				cpuNamed = v
			}
		}

		if hottest == nil || *v > *hottest {
			hottest = v
		}
	}

	switch {
	case dieTemp != nil:
		return dieTemp
	case cpuNamed != nil:
		return cpuNamed
	case hottest != nil:
		return hottest
	}

	if motherboard == nil {
		return nil
	}

	var fallback *float64
	for _, s := range motherboard.Flatten() {
		if s.Type != hardware.SensorTemperature {
			continue
		}
		name := strings.ToLower(s.Name)
		if !strings.Contains(name, "cpu") && !pkg.ContainsAny(name, dieTempPatterns) {
			continue
		}
		v := value(s)
		if v == nil {
			continue
		}
		if fallback == nil || *v > *fallback {
			fallback = v
		}
	}

	return fallback
}
