package countdown

import (
	"fmt"
	"time"
)

const (
	msPerDay    = 86_400_000
	msPerHour   = 3_600_000
	msPerMinute = 60_000
	msPerSecond = 1_000
)

// Snapshot is the remaining time split into calendar-agnostic units.
type Snapshot struct {
	Days    int           `json:"days"`
	Hours   int           `json:"hours"`
	Minutes int           `json:"minutes"`
	Seconds int           `json:"seconds"`
	Total   time.Duration `json:"-"`
}

// Decompose splits remaining into days, hours, minutes and seconds. A day is
// exactly 24h. Non-positive durations yield the zero Snapshot.
func Decompose(remaining time.Duration) Snapshot {
	ms := remaining.Milliseconds()
	if ms <= 0 {
		return Snapshot{}
	}
	return Snapshot{
		Days:    int(ms / msPerDay),
		Hours:   int(ms % msPerDay / msPerHour),
		Minutes: int(ms % msPerHour / msPerMinute),
		Seconds: int(ms % msPerMinute / msPerSecond),
		Total:   remaining,
	}
}

// Elapsed reports whether no time remains.
func (s Snapshot) Elapsed() bool { return s.Total <= 0 }

// TotalMs returns the remaining time in milliseconds.
func (s Snapshot) TotalMs() int64 { return s.Total.Milliseconds() }

// Values returns days, hours, minutes and seconds in display order.
func (s Snapshot) Values() [4]int {
	return [4]int{s.Days, s.Hours, s.Minutes, s.Seconds}
}

// FinalMinute reports whether less than a minute remains.
func (s Snapshot) FinalMinute() bool {
	return s.Days == 0 && s.Hours == 0 && s.Minutes == 0
}

func (s Snapshot) String() string {
	return fmt.Sprintf("%dd %02dh %02dm %02ds", s.Days, s.Hours, s.Minutes, s.Seconds)
}
