package ledger

import (
	"log/slog"
	"time"
)

// PrettyDuration prints a time.Duration with at most three decimals in its
// leading unit.
type PrettyDuration time.Duration

func (d PrettyDuration) String() string {
	v := time.Duration(d)
	abs := v
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= time.Second:
		v = v.Round(time.Millisecond)
	case abs >= time.Millisecond:
		v = v.Round(time.Microsecond)
	}
	return v.String()
}

func (d PrettyDuration) LogValue() slog.Value {
	return slog.StringValue(d.String())
}
