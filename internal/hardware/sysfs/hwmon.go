package sysfs

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

type hwmonChip struct {
	name  string
	dir   string
	temps []tempInput
}

type tempInput struct {
	label string
	input string
}

func (p *Provider) scanHwmon() []hwmonChip {
	root := filepath.Join(p.sysRoot, "class", "hwmon")
	entries, err := os.ReadDir(root)
	if err != nil {
		p.log.Debug("no hwmon tree", "path", root, "error", err)
		return nil
	}

	var chips []hwmonChip
	for _, e := range entries {
		dir := filepath.Join(root, e.Name())

		nameBytes, err := os.ReadFile(filepath.Join(dir, "name"))
		if err != nil {
			continue
		}

		chips = append(chips, hwmonChip{
			name:  strings.TrimSpace(string(nameBytes)),
			dir:   dir,
			temps: readTempInputs(dir),
		})
	}

	return chips
}

// readTempInputs lists a chip's tempN_input files with their labels. A chip
// without labels falls back to its own name, which still lets the extractor
// pick the sensor up by category.
func readTempInputs(dir string) []tempInput {
	matches, _ := filepath.Glob(filepath.Join(dir, "temp*_input"))
	sort.Strings(matches)

	var temps []tempInput
	for _, input := range matches {
		label := ""
		labelPath := strings.TrimSuffix(input, "_input") + "_label"
		if b, err := os.ReadFile(labelPath); err == nil {
			label = strings.TrimSpace(string(b))
		}
		if label == "" {
			if b, err := os.ReadFile(filepath.Join(dir, "name")); err == nil {
				label = strings.TrimSpace(string(b))
			}
		}

		temps = append(temps, tempInput{label: label, input: input})
	}

	return temps
}

// readMilliDeg reads a hwmon temperature file (millidegrees Celsius).
func readMilliDeg(path string) (float64, error) {
	v, err := readFloatFile(path)
	if err != nil {
		return 0, err
	}
	return v / 1000, nil
}

func readFloatFile(path string) (float64, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(string(b)), 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", path, err)
	}
	return v, nil
}
