package collector

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStatFiles(t *testing.T, s *Scanner, name, stat, uptime string) {
	t.Helper()
	dir := filepath.Join(s.Root, "sys/block", name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if stat != "" {
		if err := os.WriteFile(filepath.Join(dir, "stat"), []byte(stat), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if uptime != "" {
		procDir := filepath.Join(s.Root, "proc")
		if err := os.MkdirAll(procDir, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(procDir, "uptime"), []byte(uptime), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestWriteStats(t *testing.T) {
	s := NewScanner(t.TempDir())
	// Fields 7 and 11 of the stat record carry sectors written and
	// write-time milliseconds.
	writeStatFiles(t, s, "mmcblk0",
		"  1011  22  30864  901  77777  88  2348944  4201  0  1860  11111\n",
		"54321.60 401234.11\n")

	stats, err := s.WriteStats("mmcblk0")
	if err != nil {
		t.Fatal(err)
	}
	if stats.SectorsWritten != 2348944 {
		t.Errorf("SectorsWritten = %d, want 2348944", stats.SectorsWritten)
	}
	if stats.WriteTimeMs != 11111 {
		t.Errorf("WriteTimeMs = %d, want 11111", stats.WriteTimeMs)
	}
	if stats.UptimeSeconds != 54321.60 {
		t.Errorf("UptimeSeconds = %v, want 54321.60", stats.UptimeSeconds)
	}
}

func TestWriteStatsMissingRecord(t *testing.T) {
	s := NewScanner(t.TempDir())
	writeStatFiles(t, s, "mmcblk0", "", "100.00 90.00\n")

	_, err := s.WriteStats("mmcblk0")
	if err == nil {
		t.Fatal("missing stat record did not error")
	}
	if !strings.Contains(err.Error(), "mmcblk0") {
		t.Errorf("error does not name the device: %v", err)
	}
}

func TestWriteStatsShortRecord(t *testing.T) {
	s := NewScanner(t.TempDir())
	writeStatFiles(t, s, "mmcblk0", "1 2 3\n", "100.00 90.00\n")

	if _, err := s.WriteStats("mmcblk0"); err == nil {
		t.Fatal("short stat record did not error")
	}
}

func TestWriteStatsMissingUptime(t *testing.T) {
	s := NewScanner(t.TempDir())
	writeStatFiles(t, s, "mmcblk0",
		"1 2 3 4 5 6 7 8 9 10 11\n", "")

	if _, err := s.WriteStats("mmcblk0"); err == nil {
		t.Fatal("missing uptime did not error")
	}
}
