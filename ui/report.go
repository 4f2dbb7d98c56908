package ui

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"mmclife/model"
)

// RenderReport formats one device's computed values as the fixed-layout
// text report. Purely presentational: all decisions were made upstream,
// this only prints them. Output is byte-identical for identical inputs.
func RenderReport(rep model.Report, st Styles) string {
	var sb strings.Builder

	line := func(label, format string, args ...interface{}) {
		sb.WriteString("  " + st.Label.Render(fmt.Sprintf("%-18s", label)))
		sb.WriteString(fmt.Sprintf(format, args...))
		sb.WriteString("\n")
	}
	section := func(name string) {
		sb.WriteString(st.Title.Render(name) + "\n")
	}

	sb.WriteString(st.Title.Render("━━━ Flash Health Report — "+rep.Device.Path+" ━━━") + "\n\n")

	section("Device Information")
	line("Device:", "%s", rep.Device.Path)
	line("Capacity:", "%.2f GB (%s)", rep.Device.CapacityGB, humanize.IBytes(rep.Device.SizeBytes))
	sb.WriteString("\n")

	section("Write Statistics")
	line("Total written:", "%.2f GB (since boot)", rep.TotalGB)
	line("Daily write rate:", "%.2f GB/day", rep.DailyGB)
	line("Time writing:", "%.1f hours", float64(rep.Stats.WriteTimeMs)/3600000)
	line("Uptime:", "%.1f days", rep.Stats.UptimeSeconds/86400)
	sb.WriteString("\n")

	section("Flash Memory Status")
	line("Wear (Type A):", "%s", wearField(rep.Estimate.TypeAHex, rep.Wear.TypeAPct))
	line("Wear (Type B):", "%s", wearField(rep.Estimate.TypeBHex, rep.Wear.TypeBPct))
	line("Average wear:", "%d%%", rep.Wear.AvgPct)
	line("Pre-EOL status:", "%s", st.ForPreEOL(rep.PreEOL).Render(rep.PreEOL.Label()))
	sb.WriteString("\n")

	section("Lifespan Projection")
	line("Rated TBW:", "%s GB", humanize.Comma(int64(rep.Projection.TBWMaxGB)))
	line("Remaining:", "%d%%", rep.Projection.RemainingPct)
	if rep.Projection.Infinite {
		line("Estimated life:", "infinite")
	} else {
		line("Estimated life:", "%s days (%.1f years)",
			humanize.Comma(rep.Projection.DaysLeft), rep.Projection.YearsLeft)
	}
	sb.WriteString("\n")

	section("Health Assessment")
	line("Status:", "%s", st.ForHealth(rep.Health).Render(rep.Health.String()))
	sb.WriteString("\n")

	section("Recommendations")
	for _, a := range rep.Advice {
		sb.WriteString("  • " + a + "\n")
	}

	return sb.String()
}

// wearField shows the raw register next to its decoded percentage, or
// marks the register as missing. Missing registers still show the 0%
// the calculation used.
func wearField(hex string, pct int) string {
	if hex == "" {
		return fmt.Sprintf("not reported — %d%%", pct)
	}
	return fmt.Sprintf("0x%s — %d%%", hex, pct)
}
