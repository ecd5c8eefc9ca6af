package metrics

import (
	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
	"github.com/Xyon15/Hardware-Monitor/pkg"
)

var (
	// Engine-load sensor names across NVIDIA ("GPU Core"), AMD
	// ("GPU Core", "D3D 3D") and Intel ("GPU Total", "Graphics").
	gpuLoadPatterns = []string{"core", "graphics", "3d", "gpu", "total"}

	// Hot Spot/junction is listed first in spirit but matching is
	// first-sensor-wins, not pattern-ordered.
	gpuTempPatterns = []string{"hot spot", "hotspot", "core", "gpu", "edge"}
)

func extractGPU(snap *domain.Snapshot, node *hardware.Node) {
	for _, s := range node.Flatten() {
		switch s.Type {
		case hardware.SensorLoad:
			if snap.GPU.Load == nil && pkg.ContainsAny(s.Name, gpuLoadPatterns) {
				snap.GPU.Load = value(s)
			}

		case hardware.SensorTemperature:
			if snap.GPU.TempC == nil && pkg.ContainsAny(s.Name, gpuTempPatterns) {
				snap.GPU.TempC = value(s)
			}
		}
	}
}
