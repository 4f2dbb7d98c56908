package collector

import (
	"os"
	"path/filepath"
	"testing"
)

// fakeRoot builds a sysfs/dev tree for the given block devices.
// Device nodes are plain files; the scanner's node check is replaced
// because creating real block-special files needs mknod privileges.
func fakeRoot(t *testing.T, devices map[string]string) *Scanner {
	t.Helper()
	root := t.TempDir()
	for name, sectors := range devices {
		dir := filepath.Join(root, "sys/block", name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		if sectors != "" {
			if err := os.WriteFile(filepath.Join(dir, "size"), []byte(sectors+"\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		}
	}
	if err := os.MkdirAll(filepath.Join(root, "dev"), 0o755); err != nil {
		t.Fatal(err)
	}

	s := NewScanner(root)
	s.nodeCheck = func(path string) bool {
		_, err := os.Stat(path)
		return err == nil
	}
	return s
}

func addNode(t *testing.T, s *Scanner, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(s.Root, "dev", name), nil, 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDevicesFiltersNames(t *testing.T) {
	s := fakeRoot(t, map[string]string{
		"mmcblk0":      "122191872", // 62.56 GB
		"mmcblk1":      "62333952",
		"mmcblk0boot0": "8192",
		"sda":          "976773168",
		"nvme0n1":      "1953525168",
		"loop0":        "8",
	})
	for _, name := range []string{"mmcblk0", "mmcblk1", "mmcblk0boot0", "sda"} {
		addNode(t, s, name)
	}

	devs, err := s.Devices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devs) != 2 {
		t.Fatalf("found %d devices, want 2: %+v", len(devs), devs)
	}
	if devs[0].Name != "mmcblk0" || devs[1].Name != "mmcblk1" {
		t.Errorf("devices = %s, %s; want mmcblk0, mmcblk1", devs[0].Name, devs[1].Name)
	}
	if devs[0].Path != "/dev/mmcblk0" {
		t.Errorf("path = %q, want /dev/mmcblk0", devs[0].Path)
	}
	if devs[0].SizeBytes != 122191872*512 {
		t.Errorf("SizeBytes = %d, want %d", devs[0].SizeBytes, uint64(122191872)*512)
	}
}

func TestDevicesSkipsMissingNode(t *testing.T) {
	s := fakeRoot(t, map[string]string{"mmcblk0": "1000", "mmcblk1": "1000"})
	addNode(t, s, "mmcblk1")

	devs, err := s.Devices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devs) != 1 || devs[0].Name != "mmcblk1" {
		t.Errorf("devices = %+v, want only mmcblk1", devs)
	}
}

func TestDevicesEmptyIsNotError(t *testing.T) {
	s := fakeRoot(t, map[string]string{"sda": "1000"})
	addNode(t, s, "sda")

	devs, err := s.Devices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devs) != 0 {
		t.Errorf("devices = %+v, want none", devs)
	}
}

func TestDevicesMissingSizeStillListed(t *testing.T) {
	s := fakeRoot(t, map[string]string{"mmcblk0": ""})
	addNode(t, s, "mmcblk0")

	devs, err := s.Devices()
	if err != nil {
		t.Fatal(err)
	}
	if len(devs) != 1 {
		t.Fatalf("devices = %+v, want one", devs)
	}
	if devs[0].SizeBytes != 0 {
		t.Errorf("SizeBytes = %d, want 0 for unknown size", devs[0].SizeBytes)
	}
}

func TestDevicesMissingSysfs(t *testing.T) {
	s := NewScanner(t.TempDir())
	if _, err := s.Devices(); err == nil {
		t.Error("missing sys/block did not error")
	}
}
