package metrics

import (
	"github.com/Xyon15/Hardware-Monitor/internal/domain"
	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

// DumpSensors flattens the hardware tree into the diagnostic rows served by
// /sensors. Values pass through the same NaN/Infinity guard as snapshots so
// the dump always serializes.
func DumpSensors(nodes []*hardware.Node) []domain.SensorDump {
	out := []domain.SensorDump{}
	for _, node := range nodes {
		dumpNode(node, &out)
	}
	return out
}

func dumpNode(node *hardware.Node, out *[]domain.SensorDump) {
	for _, s := range node.Sensors {
		*out = append(*out, domain.SensorDump{
			Hardware: domain.HardwareInfo{
				Name: node.Name,
				Type: node.Category.String(),
			},
			Sensor: domain.SensorInfo{
				Name:  s.Name,
				Type:  s.Type.String(),
				Value: sanitize(s.Value),
				Min:   sanitize(s.Min),
				Max:   sanitize(s.Max),
			},
		})
	}
	for _, sub := range node.SubNodes {
		dumpNode(sub, out)
	}
}
