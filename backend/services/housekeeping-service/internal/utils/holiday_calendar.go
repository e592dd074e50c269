package utils

import (
	"time"

	cal "github.com/rickar/cal/v2"
)

// Society holidays on which tasks flagged SkipHolidays are not expected.
var (
	RepublicDay = &cal.Holiday{
		Name:  "Republic Day",
		Type:  cal.ObservancePublic,
		Month: time.January,
		Day:   26,
		Func:  cal.CalcDayOfMonth,
	}
	IndependenceDay = &cal.Holiday{
		Name:  "Independence Day",
		Type:  cal.ObservancePublic,
		Month: time.August,
		Day:   15,
		Func:  cal.CalcDayOfMonth,
	}
	GandhiJayanti = &cal.Holiday{
		Name:  "Gandhi Jayanti",
		Type:  cal.ObservancePublic,
		Month: time.October,
		Day:   2,
		Func:  cal.CalcDayOfMonth,
	}
	Christmas = &cal.Holiday{
		Name:  "Christmas",
		Type:  cal.ObservancePublic,
		Month: time.December,
		Day:   25,
		Func:  cal.CalcDayOfMonth,
	}
)

var society = cal.NewBusinessCalendar()

func init() {
	society.AddHoliday(RepublicDay, IndependenceDay, GandhiJayanti, Christmas)
}

// IsSocietyHoliday reports whether t falls on a society holiday.
func IsSocietyHoliday(t time.Time) bool {
	actual, observed, _ := society.IsHoliday(t)
	return actual || observed
}
