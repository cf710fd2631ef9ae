package contest

import (
	"fmt"
	"math"
	"time"
)

const week = 7 * 24 * time.Hour

// Window is one Monday to Sunday contest week.
type Window struct {
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	WeekNumber int       `json:"week_number"`
	Year       int       `json:"year"`
}

// Key identifies a window in storage and caches. Every instant of a window maps to the same Key.
type Key struct {
	Year int `json:"year"`
	Week int `json:"week"`
}

func (k Key) String() string {
	return fmt.Sprintf("%d:%d", k.Year, k.Week)
}

type Countdown struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Ended   bool `json:"ended"`
}

// Resolve returns the window containing now, computed in now's location.
// WeekNumber and Year describe now itself and can differ between two instants of the same window; use Key to identify the window.
func Resolve(now time.Time) Window {
	loc := now.Location()
	sinceMonday := (int(now.Weekday()) + 6) % 7
	start := time.Date(now.Year(), now.Month(), now.Day()-sinceMonday, 0, 0, 0, 0, loc)
	end := time.Date(start.Year(), start.Month(), start.Day()+6, 23, 59, 59, int(999*time.Millisecond), loc)

	return Window{
		Start:      start,
		End:        end,
		WeekNumber: WeekNumber(now),
		Year:       now.Year(),
	}
}

// WeekNumber counts started 7-day blocks since Jan 1 00:00. It is not the ISO week.
func WeekNumber(now time.Time) int {
	jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	return int(math.Ceil(float64(now.Sub(jan1)) / float64(week)))
}

func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Key is taken from the window's last instant, so a window spanning New Year belongs to the new year.
func (w Window) Key() Key {
	return Key{Year: w.End.Year(), Week: WeekNumber(w.End)}
}

// Previous returns the week before w. Its WeekNumber and Year are those of its Key.
func (w Window) Previous() Window {
	prev := Window{
		Start: w.Start.AddDate(0, 0, -7),
		End:   w.End.AddDate(0, 0, -7),
	}
	key := prev.Key()
	prev.WeekNumber, prev.Year = key.Week, key.Year
	return prev
}

func (w Window) Remaining(now time.Time) Countdown {
	left := w.End.Sub(now)
	if left <= 0 {
		return Countdown{Ended: true}
	}
	return Countdown{
		Days:    int(left / (24 * time.Hour)),
		Hours:   int(left % (24 * time.Hour) / time.Hour),
		Minutes: int(left % time.Hour / time.Minute),
	}
}

func TimeRemaining(now time.Time) Countdown {
	return Resolve(now).Remaining(now)
}

func (c Countdown) String() string {
	if c.Ended {
		return "Contest ended"
	}
	return fmt.Sprintf("%dd %dh %dm", c.Days, c.Hours, c.Minutes)
}
