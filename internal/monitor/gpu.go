package monitor

import (
	"context"
	"os/exec"
	"strconv"
	"strings"

	"readingrabbit/internal/config"
)

// QueryNvidiaSMI reads GPU utilization and VRAM usage for the given device
// index by invoking nvidia-smi. If the preferred index is out of range the
// query falls back to device 0. Any failure (tool missing, timeout, parse
// error) returns nil, nil so the caller records the metrics as absent.
func QueryNvidiaSMI(index int) (load, memory *float64) {
	ctx, cancel := context.WithTimeout(context.Background(), config.GPUQueryTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "nvidia-smi",
		"--query-gpu=utilization.gpu,memory.used,memory.total",
		"--format=csv,noheader,nounits").Output()
	if err != nil {
		return nil, nil
	}

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return nil, nil
	}
	if index < 0 || index >= len(lines) {
		index = 0
	}

	fields := strings.Split(lines[index], ",")
	if len(fields) != 3 {
		return nil, nil
	}

	util, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
	if err != nil {
		return nil, nil
	}
	used, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
	if err != nil {
		return &util, nil
	}
	total, err := strconv.ParseFloat(strings.TrimSpace(fields[2]), 64)
	if err != nil || total <= 0 {
		return &util, nil
	}

	vram := used / total * 100
	return &util, &vram
}
