// Package engine computes wear metrics and lifespan projections from
// raw device counters. Everything here is pure arithmetic: no I/O,
// deterministic given inputs.
package engine

import (
	"mmclife/model"
	"mmclife/util"
)

const (
	// SectorSize is the unit of the kernel's sector counters.
	SectorSize = 512

	// DefaultPECycles is the program/erase cycle rating used for the
	// theoretical TBW ceiling. Typical for consumer MLC eMMC.
	DefaultPECycles = 3000

	// WearExcellentMax and WearGoodMax are the average-wear thresholds
	// separating the three health classes.
	WearExcellentMax = 50
	WearGoodMax      = 80

	secondsPerDay = 86400
	daysPerYear   = 365
)

// WriteRate extrapolates the daily write volume from the cumulative
// counters. With zero uptime the rate is zero, not a division error;
// total volume is independent of uptime.
func WriteRate(stats model.WriteStats) (dailyGB, totalGB float64) {
	bytes := float64(stats.SectorsWritten) * SectorSize
	totalGB = bytes / 1e9
	if stats.UptimeSeconds > 0 {
		dailyGB = bytes * (secondsPerDay / stats.UptimeSeconds) / 1e9
	}
	return dailyGB, totalGB
}

// Wear decodes the two lifetime registers into percentages. Register
// values are steps of 10% (0x0–0xA); anything above 0xA clamps to 100.
// If either register is absent all three results are zero: "no data",
// not an error.
func Wear(est model.LifetimeEstimate) model.WearLevel {
	a, aok := util.ParseHex(est.TypeAHex)
	b, bok := util.ParseHex(est.TypeBHex)
	if !aok || !bok {
		return model.WearLevel{}
	}
	aPct := stepToPct(a)
	bPct := stepToPct(b)
	return model.WearLevel{
		TypeAPct: aPct,
		TypeBPct: bPct,
		AvgPct:   (aPct + bPct) / 2,
	}
}

func stepToPct(v uint64) int {
	if v <= 10 {
		return int(v) * 10
	}
	return 100
}

// PreEOL decodes the EXT_CSD_PRE_EOL_INFO register. Values outside
// {1,2,3} are reported as Undefined; whether such a value is a
// malformed dump or a reserved future code cannot be told apart here.
func PreEOL(hex string) model.PreEOL {
	v, ok := util.ParseHex(hex)
	if !ok {
		return model.PreEOLUnavailable
	}
	switch v {
	case 1:
		return model.PreEOLNormal
	case 2:
		return model.PreEOLWarning
	case 3:
		return model.PreEOLUrgent
	}
	return model.PreEOLUndefined
}

// Project estimates remaining lifespan against the theoretical TBW
// ceiling (capacity × P/E cycle rating). Without a positive write rate,
// remaining percentage, and capacity there is nothing to divide by and
// the projection is infinite.
func Project(capacityGB float64, avgWearPct int, dailyGB float64, peCycles int) model.LifespanProjection {
	p := model.LifespanProjection{
		TBWMaxGB:     capacityGB * float64(peCycles),
		RemainingPct: clampPct(100 - avgWearPct),
	}
	if dailyGB <= 0 || p.RemainingPct <= 0 || capacityGB <= 0 {
		p.Infinite = true
		return p
	}
	p.DaysLeft = int64(p.TBWMaxGB * float64(p.RemainingPct) / 100 / dailyGB)
	p.YearsLeft = float64(p.DaysLeft) / daysPerYear
	return p
}

func clampPct(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// Classify maps average wear and the Pre-EOL indicator to an overall
// health status. Holding Pre-EOL fixed, more wear never improves the
// class.
func Classify(avgWearPct int, preEOL model.PreEOL) model.HealthStatus {
	switch {
	case avgWearPct <= WearExcellentMax && preEOL == model.PreEOLNormal:
		return model.HealthExcellent
	case avgWearPct <= WearGoodMax && (preEOL == model.PreEOLNormal || preEOL == model.PreEOLWarning):
		return model.HealthGood
	}
	return model.HealthAttention
}

// Recommend returns the fixed three-line guidance block for a wear
// level, keyed off the same thresholds as Classify.
func Recommend(avgWearPct int) []string {
	switch {
	case avgWearPct > WearGoodMax:
		return []string{
			"Plan replacement of this device soon.",
			"Back up important data frequently.",
			"Avoid write-intensive workloads on this device.",
		}
	case avgWearPct > WearExcellentMax:
		return []string{
			"Monitor the wear level regularly.",
			"Reduce unnecessary writes (logging, swap, temp files).",
			"Consider moving write-heavy data to another device.",
		}
	}
	return []string{
		"Device is in excellent condition.",
		"Continue normal operation.",
		"Re-check the wear level periodically.",
	}
}

// Analyze runs the full calculation pipeline for one device.
func Analyze(dev model.Device, stats model.WriteStats, est model.LifetimeEstimate, peCycles int) model.Report {
	daily, total := WriteRate(stats)
	wear := Wear(est)
	preEOL := PreEOL(est.PreEOLHex)

	return model.Report{
		Device:     dev,
		Stats:      stats,
		Estimate:   est,
		DailyGB:    daily,
		TotalGB:    total,
		Wear:       wear,
		PreEOL:     preEOL,
		Projection: Project(dev.CapacityGB, wear.AvgPct, daily, peCycles),
		Health:     Classify(wear.AvgPct, preEOL),
		Advice:     Recommend(wear.AvgPct),
	}
}
