// Package sysfs implements the hardware provider contract on top of the
// Linux sysfs and procfs trees: hwmon chips for temperatures, /proc/stat and
// /proc/meminfo for load and memory, /sys/class/drm for GPUs. The tree is
// enumerated once at construction; Refresh rewrites sensor values in place.
package sysfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/Xyon15/Hardware-Monitor/internal/hardware"
	"github.com/Xyon15/Hardware-Monitor/internal/logger"
	"github.com/Xyon15/Hardware-Monitor/pkg"
)

var (
	cpuChipNames = []string{"coretemp", "k10temp", "zenpower", "amd_smu", "ryzen_smu"}
	// SuperIO monitoring chips commonly found on motherboards.
	moboChipNames = []string{"it87*", "nct*", "w83*", "f71*", "asus*"}
)

type Provider struct {
	procRoot string
	sysRoot  string
	log      logger.Logger

	cpu  *cpuNode
	mem  *memNode
	gpus []*gpuNode
	mobo *moboNode

	nodes []*hardware.Node
}

func New(log logger.Logger) *Provider {
	return newProvider("/proc", "/sys", log)
}

func newProvider(procRoot, sysRoot string, log logger.Logger) *Provider {
	p := &Provider{procRoot: procRoot, sysRoot: sysRoot, log: log}
	p.build()
	return p
}

func (p *Provider) build() {
	chips := p.scanHwmon()

	var cpuChips, moboChips []hwmonChip
	for _, chip := range chips {
		switch {
		case pkg.ContainsAny(chip.name, cpuChipNames):
			cpuChips = append(cpuChips, chip)
		case pkg.ContainsAny(chip.name, moboChipNames):
			moboChips = append(moboChips, chip)
		}
	}

	p.cpu = p.buildCPU(cpuChips)
	p.mem = p.buildMemory()
	p.gpus = p.buildGPUs()
	p.mobo = buildMotherboard(moboChips)

	p.nodes = []*hardware.Node{p.cpu.node, p.mem.node}
	for _, gpu := range p.gpus {
		p.nodes = append(p.nodes, gpu.node)
	}
	if p.mobo != nil {
		p.nodes = append(p.nodes, p.mobo.node)
	}

	p.log.Info("hardware tree enumerated",
		"cpu_temp_sensors", len(p.cpu.temps),
		"gpus", len(p.gpus),
		"motherboard_chips", len(moboChips),
	)
}

func (p *Provider) Enumerate() []*hardware.Node {
	return p.nodes
}

// Refresh re-reads every sensor source. Optional sensors that stop
// reporting simply go nil; an unreadable mandatory source (a GPU whose
// driver went away, an unreadable /proc/stat) is a refresh error.
func (p *Provider) Refresh(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var errs []error
	if err := p.cpu.refresh(); err != nil {
		errs = append(errs, err)
	}
	if err := p.mem.refresh(); err != nil {
		errs = append(errs, err)
	}
	for _, gpu := range p.gpus {
		if err := gpu.refresh(); err != nil {
			errs = append(errs, err)
		}
	}
	if p.mobo != nil {
		p.mobo.refresh()
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("hardware refresh: %w", err)
	}
	return nil
}
