package sysfs

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
)

const gibPerKB = 1.0 / (1024 * 1024)

type memNode struct {
	node *hardware.Node
	path string
}

// Fixed sensor layout: load, used, available, total.
const (
	memSensorLoad = iota
	memSensorUsed
	memSensorAvailable
	memSensorTotal
)

func (p *Provider) buildMemory() *memNode {
	node := &hardware.Node{
		Name:     "Memory",
		Category: hardware.CategoryMemory,
		Sensors: []hardware.Sensor{
			{Name: "Memory", Type: hardware.SensorLoad},
			{Name: "Memory Used", Type: hardware.SensorData},
			{Name: "Memory Available", Type: hardware.SensorData},
			{Name: "Memory Total", Type: hardware.SensorData},
		},
	}

	return &memNode{
		node: node,
		path: filepath.Join(p.procRoot, "meminfo"),
	}
}

func (m *memNode) refresh() error {
	f, err := os.Open(m.path)
	if err != nil {
		for i := range m.node.Sensors {
			m.node.Sensors[i].Value = nil
		}
		return err
	}
	defer f.Close()

	totalKB, availableKB, err := parseMemInfo(f)
	if err != nil {
		for i := range m.node.Sensors {
			m.node.Sensors[i].Value = nil
		}
		return err
	}

	usedKB := totalKB - availableKB
	setSensor(m.node, memSensorUsed, float64(usedKB)*gibPerKB)
	setSensor(m.node, memSensorAvailable, float64(availableKB)*gibPerKB)
	setSensor(m.node, memSensorTotal, float64(totalKB)*gibPerKB)

	if totalKB > 0 {
		setSensor(m.node, memSensorLoad, float64(usedKB)/float64(totalKB)*100)
	} else {
		m.node.Sensors[memSensorLoad].Value = nil
	}

	return nil
}

func parseMemInfo(r io.Reader) (totalKB, availableKB uint64, err error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}

		valueKB, parseErr := strconv.ParseUint(fields[1], 10, 64)
		if parseErr != nil {
			continue
		}

		switch strings.TrimSuffix(fields[0], ":") {
		case "MemTotal":
			totalKB = valueKB
		case "MemAvailable":
			availableKB = valueKB
		}
	}

	return totalKB, availableKB, scanner.Err()
}

func setSensor(node *hardware.Node, idx int, v float64) {
	node.Sensors[idx].Value = &v
}
