package sysfs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

const mbPerByte = 1.0 / (1024 * 1024)

type gpuNode struct {
	node       *hardware.Node
	devicePath string

	busyIdx  int
	usedIdx  int
	totalIdx int
	tempBase int
	temps    []tempInput
}

func (p *Provider) buildGPUs() []*gpuNode {
	root := filepath.Join(p.sysRoot, "class", "drm")
	entries, err := os.ReadDir(root)
	if err != nil {
		p.log.Debug("no drm tree", "path", root, "error", err)
		return nil
	}

	var gpus []*gpuNode
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "card") || strings.Contains(name, "-") {
			continue
		}
		gpus = append(gpus, p.buildGPU(filepath.Join(root, name, "device")))
	}

	return gpus
}

func (p *Provider) buildGPU(devicePath string) *gpuNode {
	node := &hardware.Node{
		Name:     readGPUModel(devicePath),
		Category: gpuCategory(devicePath),
	}

	g := &gpuNode{
		node:       node,
		devicePath: devicePath,
		busyIdx:    -1,
		usedIdx:    -1,
		totalIdx:   -1,
	}

	if _, err := os.Stat(filepath.Join(devicePath, "gpu_busy_percent")); err == nil {
		g.busyIdx = len(node.Sensors)
		node.Sensors = append(node.Sensors, hardware.Sensor{
			Name: "GPU Core",
			Type: hardware.SensorLoad,
		})
	}

	// VRAM counters are bytes in sysfs and exposed here as megabyte
	// sensors, matching the SmallData convention.
	if _, err := os.Stat(filepath.Join(devicePath, "mem_info_vram_used")); err == nil {
		g.usedIdx = len(node.Sensors)
		node.Sensors = append(node.Sensors, hardware.Sensor{
			Name: "GPU Memory Used",
			Type: hardware.SensorSmallData,
		})
	}
	if _, err := os.Stat(filepath.Join(devicePath, "mem_info_vram_total")); err == nil {
		g.totalIdx = len(node.Sensors)
		node.Sensors = append(node.Sensors, hardware.Sensor{
			Name: "GPU Memory Total",
			Type: hardware.SensorSmallData,
		})
	}

	g.tempBase = len(node.Sensors)
	hwmons, _ := os.ReadDir(filepath.Join(devicePath, "hwmon"))
	for _, hw := range hwmons {
		for _, t := range readTempInputs(filepath.Join(devicePath, "hwmon", hw.Name())) {
			node.Sensors = append(node.Sensors, hardware.Sensor{
				Name: gpuTempName(t.label),
				Type: hardware.SensorTemperature,
			})
			g.temps = append(g.temps, t)
		}
	}

	return g
}

func (g *gpuNode) refresh() error {
	if g.busyIdx >= 0 {
		if v, err := readFloatFile(filepath.Join(g.devicePath, "gpu_busy_percent")); err == nil {
			g.node.Sensors[g.busyIdx].Value = &v
		} else {
			g.node.Sensors[g.busyIdx].Value = nil
		}
	}

	if g.usedIdx >= 0 {
		if v, err := readFloatFile(filepath.Join(g.devicePath, "mem_info_vram_used")); err == nil {
			mb := v * mbPerByte
			g.node.Sensors[g.usedIdx].Value = &mb
		} else {
			g.node.Sensors[g.usedIdx].Value = nil
		}
	}
	if g.totalIdx >= 0 {
		if v, err := readFloatFile(filepath.Join(g.devicePath, "mem_info_vram_total")); err == nil {
			mb := v * mbPerByte
			g.node.Sensors[g.totalIdx].Value = &mb
		} else {
			g.node.Sensors[g.totalIdx].Value = nil
		}
	}

	for i, t := range g.temps {
		if v, err := readMilliDeg(t.input); err == nil {
			g.node.Sensors[g.tempBase+i].Value = &v
		} else {
			g.node.Sensors[g.tempBase+i].Value = nil
		}
	}

	return nil
}

// gpuTempName maps amdgpu/i915 hwmon labels onto the naming scheme the
// extractor knows from discrete cards.
func gpuTempName(label string) string {
	switch strings.ToLower(label) {
	case "junction":
		return "GPU Hot Spot"
	case "edge":
		return "GPU Edge"
	case "mem":
		return "GPU Memory Junction"
	default:
		return "GPU Core"
	}
}

func gpuCategory(devicePath string) hardware.Category {
	b, err := os.ReadFile(filepath.Join(devicePath, "vendor"))
	if err != nil {
		return hardware.CategoryOther
	}

	switch strings.TrimSpace(string(b)) {
	case "0x1002":
		return hardware.CategoryGPUAmd
	case "0x10de":
		return hardware.CategoryGPUNvidia
	case "0x8086":
		return hardware.CategoryGPUIntel
	}
	return hardware.CategoryOther
}

func readGPUModel(devicePath string) string {
	if b, err := os.ReadFile(filepath.Join(devicePath, "product_name")); err == nil {
		if name := strings.TrimSpace(string(b)); name != "" {
			return name
		}
	}
	if b, err := os.ReadFile(filepath.Join(devicePath, "device")); err == nil {
		return "GPU " + strings.TrimSpace(string(b))
	}
	return "GPU"
}
