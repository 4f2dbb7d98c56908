package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"mmclife/model"
)

// ErrNoExtCSD means the device did not return an extended register set.
// Typical for SD cards, which have no EXT_CSD, and for runs without
// sufficient privilege.
var ErrNoExtCSD = errors.New("extended register set unavailable")

// RegisterReader shells out to mmc-utils to dump a device's EXT_CSD
// register block. Bin is the resolved path of the mmc binary.
type RegisterReader struct {
	Bin string
}

// Read dumps the extended registers of dev as raw text. No timeout is
// applied: if the tool hangs on broken hardware, we hang with it.
func (r *RegisterReader) Read(ctx context.Context, dev model.Device) (string, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Bin, "extcsd", "read", dev.Path)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = err.Error()
		}
		return "", fmt.Errorf("register dump of %s failed (%s): %w", dev.Path, detail, ErrNoExtCSD)
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return "", fmt.Errorf("register dump of %s returned no data: %w", dev.Path, ErrNoExtCSD)
	}
	return string(out), nil
}

// Register dump lines look like:
//
//	eMMC Life Time Estimation A [EXT_CSD_DEVICE_LIFE_TIME_EST_TYP_A]: 0x01
var (
	lifeTimeARe = regexp.MustCompile(`EXT_CSD_DEVICE_LIFE_TIME_EST_TYP_A[^\n]*?0x([0-9a-fA-F]+)`)
	lifeTimeBRe = regexp.MustCompile(`EXT_CSD_DEVICE_LIFE_TIME_EST_TYP_B[^\n]*?0x([0-9a-fA-F]+)`)
	preEOLRe    = regexp.MustCompile(`EXT_CSD_PRE_EOL_INFO[^\n]*?0x([0-9a-fA-F]+)`)
)

// ParseLifetime extracts the three lifetime registers from a raw dump.
// A missing label yields an empty field, never an error; downstream
// calculation treats absence as "no data".
func ParseLifetime(dump string) model.LifetimeEstimate {
	return model.LifetimeEstimate{
		TypeAHex:  matchHex(lifeTimeARe, dump),
		TypeBHex:  matchHex(lifeTimeBRe, dump),
		PreEOLHex: matchHex(preEOLRe, dump),
	}
}

func matchHex(re *regexp.Regexp, dump string) string {
	m := re.FindStringSubmatch(dump)
	if m == nil {
		return ""
	}
	return m[1]
}
