package collector

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"mmclife/model"
	"mmclife/util"
)

// Per-device stat record field positions, 1-based, per the standard
// block-layer stat layout. Field 7 is cumulative sectors written,
// field 11 the milliseconds spent writing.
const (
	fieldSectorsWritten = 7
	fieldWriteTimeMs    = 11
	statFieldCount      = 11
)

// WriteStats samples the cumulative write counters for one device along
// with the host uptime. Fails when the stat record is unreadable, which
// aborts analysis of this device only.
func (s *Scanner) WriteStats(name string) (model.WriteStats, error) {
	path := filepath.Join(s.Root, "sys/block", name, "stat")
	raw, err := util.ReadFileString(path)
	if err != nil {
		return model.WriteStats{}, fmt.Errorf("read I/O statistics for %s: %w", name, err)
	}

	fields := strings.Fields(raw)
	if len(fields) < statFieldCount {
		return model.WriteStats{}, fmt.Errorf("read I/O statistics for %s: short record (%d fields)", name, len(fields))
	}

	uptime, err := s.uptime()
	if err != nil {
		return model.WriteStats{}, err
	}

	return model.WriteStats{
		SectorsWritten: util.ParseUint64(fields[fieldSectorsWritten-1]),
		WriteTimeMs:    util.ParseUint64(fields[fieldWriteTimeMs-1]),
		UptimeSeconds:  uptime,
	}, nil
}

// uptime reads the host uptime in seconds.
func (s *Scanner) uptime() (float64, error) {
	raw, err := util.ReadFileString(filepath.Join(s.Root, "proc/uptime"))
	if err != nil {
		return 0, fmt.Errorf("read host uptime: %w", err)
	}
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return 0, fmt.Errorf("read host uptime: empty record")
	}
	v, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("read host uptime: %w", err)
	}
	return v, nil
}
