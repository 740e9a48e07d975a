package taskbar

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
)

// TrayInterval is how often the tray is resampled.
const TrayInterval = time.Second

// Stats is one tray sample.
type Stats struct {
	CPU  float64
	Mem  float64
	Time time.Time
}

// Sample reads host CPU and memory usage. A failed probe leaves its field at
// zero and is reported in the error.
func Sample(ctx context.Context, now time.Time) (Stats, error) {
	s := Stats{Time: now}
	var firstErr error

	if pct, err := cpu.PercentWithContext(ctx, 0, false); err != nil {
		firstErr = fmt.Errorf("cpu: %w", err)
	} else if len(pct) > 0 {
		s.CPU = pct[0]
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err != nil {
		if firstErr == nil {
			firstErr = fmt.Errorf("mem: %w", err)
		}
	} else {
		s.Mem = vm.UsedPercent
	}

	return s, firstErr
}

// Clock formats the tray clock as time and date lines.
func Clock(t time.Time) (string, string) {
	return t.Format("3:04 PM"), t.Format("1/2/2006")
}

// Usage formats the usage readout.
func (s Stats) Usage() string {
	return fmt.Sprintf("CPU %2.0f%% RAM %2.0f%%", s.CPU, s.Mem)
}
