package model

// Device is one eMMC/SD block device found at scan time.
type Device struct {
	Name       string  // short name: "mmcblk0"
	Path       string  // device node: "/dev/mmcblk0"
	SizeBytes  uint64  // from sysfs sector count × 512
	CapacityGB float64 // SizeBytes / 1e9
}

// WriteStats holds the cumulative write counters for one device,
// sampled from the kernel's per-device I/O statistics.
type WriteStats struct {
	SectorsWritten uint64  // cumulative 512-byte sectors since boot
	WriteTimeMs    uint64  // milliseconds spent writing since boot
	UptimeSeconds  float64 // host uptime at sample time
}

// LifetimeEstimate carries the raw EXT_CSD lifetime register values.
// An empty string means the field was missing from the register dump,
// which is normal for SD cards and pre-5.0 eMMC parts.
type LifetimeEstimate struct {
	TypeAHex  string // EXT_CSD_DEVICE_LIFE_TIME_EST_TYP_A, "0x" stripped
	TypeBHex  string // EXT_CSD_DEVICE_LIFE_TIME_EST_TYP_B, "0x" stripped
	PreEOLHex string // EXT_CSD_PRE_EOL_INFO, "0x" stripped
}

// PreEOL is the decoded EXT_CSD_PRE_EOL_INFO register.
type PreEOL int

const (
	PreEOLUnavailable PreEOL = iota // register absent from the dump
	PreEOLNormal                    // 0x01
	PreEOLWarning                   // 0x02: 80% of reserved blocks consumed
	PreEOLUrgent                    // 0x03
	PreEOLUndefined                 // any other value
)

func (p PreEOL) String() string {
	switch p {
	case PreEOLNormal:
		return "Normal"
	case PreEOLWarning:
		return "Warning"
	case PreEOLUrgent:
		return "Urgent"
	case PreEOLUndefined:
		return "Undefined"
	}
	return "Unavailable"
}

// Label is the long form shown in the report.
func (p PreEOL) Label() string {
	switch p {
	case PreEOLNormal:
		return "Normal (reserved blocks healthy)"
	case PreEOLWarning:
		return "Warning (80% reserved blocks consumed)"
	case PreEOLUrgent:
		return "Urgent (reserved blocks nearly exhausted)"
	case PreEOLUndefined:
		return "Undefined"
	}
	return "Not available"
}

// HealthStatus is the overall classification of a device.
type HealthStatus int

const (
	HealthExcellent HealthStatus = iota
	HealthGood
	HealthAttention
)

func (h HealthStatus) String() string {
	switch h {
	case HealthExcellent:
		return "Excellent"
	case HealthGood:
		return "Good"
	}
	return "Attention required"
}

// WearLevel holds the decoded wear percentages. If either raw hex value
// was absent all three percentages are zero.
type WearLevel struct {
	TypeAPct int
	TypeBPct int
	AvgPct   int
}

// LifespanProjection is the TBW-based remaining-life estimate.
// Infinite is set when the write rate, remaining percentage, or capacity
// leaves nothing to divide by.
type LifespanProjection struct {
	TBWMaxGB     float64
	RemainingPct int
	DaysLeft     int64
	YearsLeft    float64
	Infinite     bool
}

// Report aggregates everything computed for one device; input to the
// renderer.
type Report struct {
	Device     Device
	Stats      WriteStats
	Estimate   LifetimeEstimate
	DailyGB    float64
	TotalGB    float64
	Wear       WearLevel
	PreEOL     PreEOL
	Projection LifespanProjection
	Health     HealthStatus
	Advice     []string // fixed three-line guidance block
}
