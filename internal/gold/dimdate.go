package gold

import (
	"fmt"
	"time"
)

// BuildDimDate materializes one row per calendar day from Jan 1 of
// startYear through Dec 31 of endYear inclusive. It depends on nothing but
// the range, so rebuilding for the same range is idempotent.
func BuildDimDate(startYear, endYear int, now time.Time) []DimDate {
	if endYear < startYear {
		return nil
	}
	start := time.Date(startYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(endYear, time.December, 31, 0, 0, 0, 0, time.UTC)

	out := make([]DimDate, 0, int(end.Sub(start).Hours()/24)+1)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, dimDateRow(d, now))
	}
	return out
}

func dimDateRow(d time.Time, now time.Time) DimDate {
	year, month, day := d.Date()
	quarter := (int(month)-1)/3 + 1
	_, isoWeek := d.ISOWeek()
	weekday := d.Weekday()
	lastOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, -1).Day()

	return DimDate{
		Date:    d,
		DateKey: int32(year*10000 + int(month)*100 + day),

		DayOfMonth: int32(day),
		// 1=Sunday through 7=Saturday.
		DayOfWeek:  int32(weekday) + 1,
		DayOfYear:  int32(d.YearDay()),
		WeekOfYear: int32(isoWeek),
		Month:      int32(month),
		Quarter:    int32(quarter),
		Year:       int32(year),

		DayName:        d.Format("Monday"),
		DayNameShort:   d.Format("Mon"),
		MonthName:      d.Format("January"),
		MonthNameShort: d.Format("Jan"),

		YearMonth:   d.Format("2006-01"),
		YearQuarter: fmt.Sprintf("%d-Q%d", year, quarter),
		YearWeek:    fmt.Sprintf("%d-W%02d", year, isoWeek),

		IsWeekend:      weekday == time.Sunday || weekday == time.Saturday,
		IsWeekday:      weekday != time.Sunday && weekday != time.Saturday,
		IsMonthStart:   day == 1,
		IsMonthEnd:     day == lastOfMonth,
		IsQuarterStart: day == 1 && (month == time.January || month == time.April || month == time.July || month == time.October),
		IsQuarterEnd:   day == lastOfMonth && (month == time.March || month == time.June || month == time.September || month == time.December),
		IsYearStart:    month == time.January && day == 1,
		IsYearEnd:      month == time.December && day == 31,

		FiscalYear:    int32(year),
		FiscalQuarter: int32(quarter),

		CreatedAt: now,
	}
}
