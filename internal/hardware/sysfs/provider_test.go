package sysfs

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
	"github.com/Xyon15/Hardware-Monitor/internal/logger"
)

func discardLogger() logger.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

// fixtureRoots builds a minimal /proc + /sys tree: a k10temp CPU chip, an
// AMD card with busy/vram/edge-temp files and an nct6775 SuperIO chip.
func fixtureRoots(t *testing.T) (procRoot, sysRoot string) {
	t.Helper()
	root := t.TempDir()
	procRoot = filepath.Join(root, "proc")
	sysRoot = filepath.Join(root, "sys")

	writeFile(t, filepath.Join(procRoot, "stat"),
		"cpu  100 0 100 800 0 0 0 0 0 0\ncpu0 50 0 50 400 0 0 0 0 0 0\n")
	writeFile(t, filepath.Join(procRoot, "meminfo"),
		"MemTotal:       16777216 kB\nMemFree:         4194304 kB\nMemAvailable:    8388608 kB\n")
	writeFile(t, filepath.Join(procRoot, "cpuinfo"),
		"processor\t: 0\nmodel name\t: AMD Ryzen 7 7700X 8-Core Processor\n")

	hwmon0 := filepath.Join(sysRoot, "class", "hwmon", "hwmon0")
	writeFile(t, filepath.Join(hwmon0, "name"), "k10temp\n")
	writeFile(t, filepath.Join(hwmon0, "temp1_input"), "48500\n")
	writeFile(t, filepath.Join(hwmon0, "temp1_label"), "Tctl\n")

	hwmon1 := filepath.Join(sysRoot, "class", "hwmon", "hwmon1")
	writeFile(t, filepath.Join(hwmon1, "name"), "nct6775\n")
	writeFile(t, filepath.Join(hwmon1, "temp1_input"), "41000\n")
	writeFile(t, filepath.Join(hwmon1, "temp1_label"), "CPUTIN\n")

	device := filepath.Join(sysRoot, "class", "drm", "card0", "device")
	writeFile(t, filepath.Join(device, "vendor"), "0x1002\n")
	writeFile(t, filepath.Join(device, "product_name"), "Radeon RX 6800\n")
	writeFile(t, filepath.Join(device, "gpu_busy_percent"), "33\n")
	writeFile(t, filepath.Join(device, "mem_info_vram_total"), "17179869184\n") // 16 GiB
	writeFile(t, filepath.Join(device, "mem_info_vram_used"), "4294967296\n")  // 4 GiB
	gpuHwmon := filepath.Join(device, "hwmon", "hwmon2")
	writeFile(t, filepath.Join(gpuHwmon, "name"), "amdgpu\n")
	writeFile(t, filepath.Join(gpuHwmon, "temp1_input"), "62000\n")
	writeFile(t, filepath.Join(gpuHwmon, "temp1_label"), "edge\n")

	return procRoot, sysRoot
}

func findNode(nodes []*hardware.Node, cat hardware.Category) *hardware.Node {
	for _, n := range nodes {
		if n.Category == cat {
			return n
		}
	}
	return nil
}

func findSensor(n *hardware.Node, name string) *hardware.Sensor {
	for i := range n.Sensors {
		if n.Sensors[i].Name == name {
			return &n.Sensors[i]
		}
	}
	return nil
}

func TestProviderEnumeratesFixtureTree(t *testing.T) {
	procRoot, sysRoot := fixtureRoots(t)
	p := newProvider(procRoot, sysRoot, discardLogger())

	nodes := p.Enumerate()

	cpu := findNode(nodes, hardware.CategoryCPU)
	if cpu == nil {
		t.Fatal("no CPU node")
	}
	if !strings.Contains(cpu.Name, "Ryzen 7 7700X") {
		t.Errorf("cpu node name: got %q", cpu.Name)
	}
	if findSensor(cpu, "CPU Total") == nil || findSensor(cpu, "Tctl") == nil {
		t.Errorf("cpu sensors: got %+v", cpu.Sensors)
	}

	gpu := findNode(nodes, hardware.CategoryGPUAmd)
	if gpu == nil {
		t.Fatal("no AMD GPU node")
	}
	if gpu.Name != "Radeon RX 6800" {
		t.Errorf("gpu node name: got %q", gpu.Name)
	}
	for _, want := range []string{"GPU Core", "GPU Memory Used", "GPU Memory Total", "GPU Edge"} {
		if findSensor(gpu, want) == nil {
			t.Errorf("gpu sensor %q missing, have %+v", want, gpu.Sensors)
		}
	}

	mobo := findNode(nodes, hardware.CategoryMotherboard)
	if mobo == nil {
		t.Fatal("no motherboard node")
	}
	if findSensor(mobo, "CPUTIN") == nil {
		t.Errorf("motherboard sensors: got %+v", mobo.Sensors)
	}
}

func TestProviderRefreshPopulatesValues(t *testing.T) {
	procRoot, sysRoot := fixtureRoots(t)
	p := newProvider(procRoot, sysRoot, discardLogger())
	ctx := context.Background()

	if err := p.Refresh(ctx); err != nil {
		t.Fatalf("first refresh: %v", err)
	}

	cpu := findNode(p.Enumerate(), hardware.CategoryCPU)

	// no baseline yet
	if v := findSensor(cpu, "CPU Total").Value; v != nil {
		t.Errorf("cpu load on first refresh: got %v, want nil", *v)
	}
	if v := findSensor(cpu, "Tctl").Value; v == nil || *v != 48.5 {
		t.Errorf("Tctl: got %v, want 48.5", v)
	}

	// 200 more jiffies, 100 of them busy
	writeFile(t, filepath.Join(procRoot, "stat"),
		"cpu  150 0 150 900 0 0 0 0 0 0\ncpu0 75 0 75 450 0 0 0 0 0 0\n")

	if err := p.Refresh(ctx); err != nil {
		t.Fatalf("second refresh: %v", err)
	}
	if v := findSensor(cpu, "CPU Total").Value; v == nil || *v != 50 {
		t.Errorf("cpu load: got %v, want 50", v)
	}

	mem := findNode(p.Enumerate(), hardware.CategoryMemory)
	if v := findSensor(mem, "Memory Total").Value; v == nil || *v != 16 {
		t.Errorf("memory total: got %v, want 16", v)
	}
	if v := findSensor(mem, "Memory Used").Value; v == nil || *v != 8 {
		t.Errorf("memory used: got %v, want 8", v)
	}
	if v := findSensor(mem, "Memory").Value; v == nil || *v != 50 {
		t.Errorf("memory load: got %v, want 50", v)
	}

	gpu := findNode(p.Enumerate(), hardware.CategoryGPUAmd)
	if v := findSensor(gpu, "GPU Core").Value; v == nil || *v != 33 {
		t.Errorf("gpu busy: got %v, want 33", v)
	}
	if v := findSensor(gpu, "GPU Memory Used").Value; v == nil || *v != 4096 {
		t.Errorf("vram used MB: got %v, want 4096", v)
	}
	if v := findSensor(gpu, "GPU Memory Total").Value; v == nil || *v != 16384 {
		t.Errorf("vram total MB: got %v, want 16384", v)
	}
	if v := findSensor(gpu, "GPU Edge").Value; v == nil || *v != 62 {
		t.Errorf("gpu edge temp: got %v, want 62", v)
	}
}

func TestProviderRefreshErrorOnMissingStat(t *testing.T) {
	procRoot, sysRoot := fixtureRoots(t)
	p := newProvider(procRoot, sysRoot, discardLogger())

	if err := os.Remove(filepath.Join(procRoot, "stat")); err != nil {
		t.Fatal(err)
	}

	if err := p.Refresh(context.Background()); err == nil {
		t.Error("expected refresh error with /proc/stat gone")
	}
}

func TestParseMemInfo(t *testing.T) {
	total, available, err := parseMemInfo(strings.NewReader(
		"MemTotal:       32886532 kB\nMemFree:        10000000 kB\nMemAvailable:   20534120 kB\nBuffers: 1 kB\n"))
	if err != nil {
		t.Fatal(err)
	}
	if total != 32886532 {
		t.Errorf("total: got %d", total)
	}
	if available != 20534120 {
		t.Errorf("available: got %d", available)
	}
}

func TestReadCPUStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stat")
	writeFile(t, path, "cpu  10 20 30 40 0 0 0 0 0 0\ncpu0 1 2 3 4 0 0 0 0 0 0\n")

	idle, total, err := readCPUStat(path)
	if err != nil {
		t.Fatal(err)
	}
	if idle != 40 {
		t.Errorf("idle: got %d, want 40", idle)
	}
	if total != 100 {
		t.Errorf("total: got %d, want 100", total)
	}
}
