package metrics

import (
	"strings"

	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

func extractRAM(snap *domain.Snapshot, node *hardware.Node) {
	var usedPct, used, available, total *float64

	for _, s := range node.Flatten() {
		name := strings.ToLower(s.Name)

		switch s.Type {
		case hardware.SensorLoad:
			if name == "memory" && usedPct == nil {
				usedPct = value(s)
			}

		case hardware.SensorData:
			if !strings.Contains(name, "memory") {
				continue
			}
			switch {
			case strings.Contains(name, "used"):
				if used == nil {
					used = value(s)
				}
			case strings.Contains(name, "available"):
				if available == nil {
					available = value(s)
				}
			case strings.Contains(name, "total"):
				if total == nil {
					total = value(s)
				}
			}
		}
	}

	// Not every firmware reports a total; used+available covers it.
	if total == nil && used != nil && available != nil {
		total = finite(*used + *available)
	}
	if usedPct == nil && used != nil && total != nil && *total > 0 {
		usedPct = finite(100 * *used / *total)
	}

	setIfNil(&snap.RAM.UsedPct, usedPct)
	setIfNil(&snap.RAM.UsedGB, used)
	setIfNil(&snap.RAM.TotalGB, total)
}
