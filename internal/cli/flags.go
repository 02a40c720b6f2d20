package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/dechbar/kpause/internal/service"
	"github.com/spf13/pflag"
)

var (
	_ pflag.Value = (*formatValue)(nil)
	_ pflag.Value = (*timeValue)(nil)
)

// formatValue is a --format flag restricted to the export encodings.
type formatValue struct {
	format service.ExportFormat
}

func newFormatValue(def service.ExportFormat) *formatValue {
	return &formatValue{format: def}
}

func (f *formatValue) String() string { return string(f.format) }
func (f *formatValue) Type() string   { return "format" }

func (f *formatValue) Set(s string) error {
	switch v := service.ExportFormat(strings.ToLower(s)); v {
	case service.FormatJSON, service.FormatYAML:
		f.format = v
		return nil
	default:
		return fmt.Errorf("unknown format %q (want json or yaml)", s)
	}
}

// timeValue is a --at flag accepting RFC 3339 or a bare HH:MM, which is
// taken as today in the local zone.
type timeValue struct {
	t     time.Time
	set   bool
	today func() time.Time
}

func newTimeValue(today func() time.Time) *timeValue {
	return &timeValue{today: today}
}

func (v *timeValue) String() string {
	if !v.set {
		return ""
	}
	return v.t.Format(time.RFC3339)
}

func (v *timeValue) Type() string { return "time" }

func (v *timeValue) Set(s string) error {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		v.t, v.set = t, true
		return nil
	}
	hm, err := time.Parse("15:04", s)
	if err != nil {
		return fmt.Errorf("use RFC3339 or HH:MM, got %q", s)
	}
	now := v.today()
	v.t = time.Date(now.Year(), now.Month(), now.Day(), hm.Hour(), hm.Minute(), 0, 0, now.Location())
	v.set = true
	return nil
}

// addDaysFlag registers the shared --days window flag.
func addDaysFlag(fs *pflag.FlagSet, days *int) {
	fs.IntVarP(days, "days", "d", 30, "Window size in days")
}

func validateDays(days int) error {
	if days <= 0 {
		return fmt.Errorf("--days must be positive, got %d", days)
	}
	return nil
}
