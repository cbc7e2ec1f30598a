// Package timezone converts stored UTC instants into wall-clock strings for display.
package timezone

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/Domenick1991/fitstudio/internal/domain"
)

const (
	DefaultZone = "Asia/Kolkata"
	Layout      = "2006-01-02 15:04:05"
)

// zones.txt lists the IANA names bundled by time/tzdata.
//
//go:embed zones.txt
var zoneList string

var canonicalNames = sync.OnceValue(func() map[string]string {
	names := make(map[string]string)
	for _, name := range strings.Fields(zoneList) {
		names[strings.ToLower(name)] = name
	}
	return names
})

// Load resolves an IANA zone name, ignoring case, so "asia/kolkata" and
// "utc" work. The empty name and "Local" resolve to process-dependent zones
// in the time package and are rejected here.
func Load(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" || strings.EqualFold(name, "Local") {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrInvalidTimezone, name)
	}
	lookup := name
	if canonical, ok := canonicalNames()[strings.ToLower(name)]; ok {
		lookup = canonical
	}
	loc, err := time.LoadLocation(lookup)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s'", domain.ErrInvalidTimezone, name)
	}
	return loc, nil
}

func Validate(name string) error {
	_, err := Load(name)
	return err
}

// Format renders t in the named zone as YYYY-MM-DD HH:MM:SS.
func Format(t time.Time, name string) (string, error) {
	loc, err := Load(name)
	if err != nil {
		return "", err
	}
	return FormatIn(t, loc), nil
}

func FormatIn(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(Layout)
}
