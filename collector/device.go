package collector

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"unsafe"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sys/unix"

	"mmclife/model"
	"mmclife/util"
)

// devicePattern matches whole eMMC/SD devices. Partitions (mmcblk0p1)
// and boot/rpmb regions (mmcblk0boot0) do not match.
var devicePattern = regexp.MustCompile(`^mmcblk[0-9]+$`)

// Scanner enumerates eMMC/SD block devices and reads their per-device
// sysfs records. Root is the filesystem root, "/" in production; tests
// point it at a fake tree.
type Scanner struct {
	Root string

	// nodeCheck reports whether the /dev node is a usable block device.
	// Overridden in tests, where creating block-special files needs mknod.
	nodeCheck func(path string) bool
}

// NewScanner returns a Scanner over the real filesystem.
func NewScanner(root string) *Scanner {
	return &Scanner{Root: root, nodeCheck: isBlockDevice}
}

// Devices lists eMMC/SD devices in the order the block layer reports
// them. An empty slice means no devices, not an error.
func (s *Scanner) Devices() ([]model.Device, error) {
	entries, err := os.ReadDir(filepath.Join(s.Root, "sys/block"))
	if err != nil {
		return nil, fmt.Errorf("list block devices: %w", err)
	}

	var devices []model.Device
	for _, e := range entries {
		name := e.Name()
		if !devicePattern.MatchString(name) {
			continue
		}
		node := filepath.Join(s.Root, "dev", name)
		if !s.check(node) {
			log.Debugf("skipping %s: no block device node at %s", name, node)
			continue
		}

		size, err := s.deviceSize(name, node)
		if err != nil {
			log.Warnf("could not determine size of %s: %v", name, err)
		}

		devices = append(devices, model.Device{
			Name:       name,
			Path:       "/dev/" + name,
			SizeBytes:  size,
			CapacityGB: float64(size) / 1e9,
		})
	}
	return devices, nil
}

func (s *Scanner) check(path string) bool {
	if s.nodeCheck != nil {
		return s.nodeCheck(path)
	}
	return isBlockDevice(path)
}

// deviceSize reads the sysfs sector count, falling back to the
// BLKGETSIZE64 ioctl when the sysfs node is missing.
func (s *Scanner) deviceSize(name, node string) (uint64, error) {
	raw, err := util.ReadFileString(filepath.Join(s.Root, "sys/block", name, "size"))
	if err == nil {
		return util.ParseUint64(raw) * sectorSize, nil
	}

	f, oerr := os.Open(node)
	if oerr != nil {
		return 0, fmt.Errorf("read sysfs size: %w", err)
	}
	defer f.Close()
	return blockDeviceSize(f.Fd())
}

const sectorSize = 512

func isBlockDevice(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFBLK
}

// blockDeviceSize asks the kernel for the device size in bytes.
func blockDeviceSize(fd uintptr) (uint64, error) {
	var size uint64
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, unix.BLKGETSIZE64, uintptr(unsafe.Pointer(&size)))
	if errno != 0 {
		return 0, fmt.Errorf("BLKGETSIZE64: %v", errno)
	}
	return size, nil
}
