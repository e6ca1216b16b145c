package silver

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"lakehouse/internal/schema"
)

// Cast helpers turn raw text into declared types. A value that cannot be
// cast becomes nil so the not-null quality checks can surface it; casts are
// never fatal.

func toFloat(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

func toInt(s string) *int32 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return nil
	}
	v := int32(n)
	return &v
}

// toBool parses source boolean text: "true"/"1"/"yes" (any case) are true,
// everything else false.
func toBool(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "1", "yes":
		return true
	}
	return false
}

// timeLayouts are tried in order when parsing raw timestamps.
var timeLayouts = []string{
	schema.Layout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	schema.DateLayout,
}

func toTime(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

var titleCaser = cases.Title(language.English)

// titleCase trims and title-cases a name part.
func titleCase(s string) string {
	return titleCaser.String(strings.TrimSpace(s))
}

// daysBetween counts whole calendar days from b to a (a later than b gives a
// positive count), ignoring time-of-day.
func daysBetween(a, b time.Time) int32 {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int32(da.Sub(db).Hours() / 24)
}
