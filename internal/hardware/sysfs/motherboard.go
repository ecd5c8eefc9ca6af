package sysfs

import (
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

type moboNode struct {
	node  *hardware.Node
	temps []tempInput
}

func buildMotherboard(chips []hwmonChip) *moboNode {
	if len(chips) == 0 {
		return nil
	}

	node := &hardware.Node{
		Name:     "Motherboard",
		Category: hardware.CategoryMotherboard,
	}

	m := &moboNode{node: node}
	for _, chip := range chips {
		for _, t := range chip.temps {
			node.Sensors = append(node.Sensors, hardware.Sensor{
				Name: t.label,
				Type: hardware.SensorTemperature,
			})
			m.temps = append(m.temps, t)
		}
	}

	return m
}

// SuperIO readings are advisory; a chip that stops answering is not a
// refresh failure.
func (m *moboNode) refresh() {
	for i, t := range m.temps {
		if v, err := readMilliDeg(t.input); err == nil {
			m.node.Sensors[i].Value = &v
		} else {
			m.node.Sensors[i].Value = nil
		}
	}
}
