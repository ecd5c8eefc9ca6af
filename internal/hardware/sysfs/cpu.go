package sysfs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

type cpuNode struct {
	node     *hardware.Node
	statPath string
	temps    []tempInput

	prevIdle  uint64
	prevTotal uint64
}

func (p *Provider) buildCPU(chips []hwmonChip) *cpuNode {
	node := &hardware.Node{
		Name:     cpuModelName(p.procRoot),
		Category: hardware.CategoryCPU,
	}

	c := &cpuNode{
		node:     node,
		statPath: filepath.Join(p.procRoot, "stat"),
	}

	// Sensor 0 is always the aggregate load; temperatures follow in hwmon
	// enumeration order.
	node.Sensors = append(node.Sensors, hardware.Sensor{
		Name: "CPU Total",
		Type: hardware.SensorLoad,
	})

	for _, chip := range chips {
		for _, t := range chip.temps {
			node.Sensors = append(node.Sensors, hardware.Sensor{
				Name: t.label,
				Type: hardware.SensorTemperature,
			})
			c.temps = append(c.temps, t)
		}
	}

	return c
}

func (c *cpuNode) refresh() error {
	idle, total, err := readCPUStat(c.statPath)
	if err != nil {
		c.node.Sensors[0].Value = nil
		return err
	}

	// Load is a delta between refreshes; the first pass has no baseline and
	// reports nothing.
	if c.prevTotal > 0 && total > c.prevTotal {
		busy := float64((total-c.prevTotal)-(idle-c.prevIdle)) / float64(total-c.prevTotal) * 100
		c.node.Sensors[0].Value = &busy
	} else {
		c.node.Sensors[0].Value = nil
	}
	c.prevIdle, c.prevTotal = idle, total

	for i, t := range c.temps {
		if v, err := readMilliDeg(t.input); err == nil {
			c.node.Sensors[i+1].Value = &v
		} else {
			c.node.Sensors[i+1].Value = nil
		}
	}

	return nil
}

func readCPUStat(path string) (idle, total uint64, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "cpu ") {
			continue
		}

		for i, field := range strings.Fields(line)[1:] {
			v, parseErr := strconv.ParseUint(field, 10, 64)
			if parseErr != nil {
				return 0, 0, fmt.Errorf("parse %s: %w", path, parseErr)
			}
			total += v
			if i == 3 {
				idle = v
			}
		}
		return idle, total, nil
	}

	return 0, 0, fmt.Errorf("%s: no cpu line", path)
}

func cpuModelName(procRoot string) string {
	f, err := os.Open(filepath.Join(procRoot, "cpuinfo"))
	if err != nil {
		return "CPU"
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if name, ok := strings.CutPrefix(scanner.Text(), "model name"); ok {
			return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), ":"))
		}
	}

	return "CPU"
}
