package dv

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/teranos/semval/dv/item"
	"github.com/teranos/semval/dv/msg"
)

var (
	isoDateRe   = regexp.MustCompile(`^(-?\d{1,4})(?:-(\d{1,2})(?:-(\d{1,2})(?:[T ](\d{1,2}):(\d{2})(?::(\d{2}))?)?)?)?$`)
	dayMonthRe  = regexp.MustCompile(`^(\d{1,2})\.?\s+([A-Za-z]+)\.?\s+(-?\d{1,4})$`)
	monthDayRe  = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(\d{1,2}),?\s+(-?\d{1,4})$`)
	monthYearRe = regexp.MustCompile(`^([A-Za-z]+)\.?\s+(-?\d{1,4})$`)
)

// TimeValue is a calendar date, optionally with time of day. A trailing
// "Jl" marks a Julian calendar date.
type TimeValue struct {
	valueBase
}

func newTime(b *valueBase) Value {
	v := &TimeValue{valueBase: *b}
	v.self = v
	return v
}

func (v *TimeValue) parseText(_ context.Context, text string) item.Item {
	t, ok := parseDate(text)
	if !ok {
		v.AddError(msg.New(msg.InvalidDate, text))
		return nil
	}
	return t
}

func parseDate(text string) (item.Time, bool) {
	t := item.Time{Model: item.Gregorian}
	switch {
	case strings.HasSuffix(text, " Jl"):
		t.Model = item.Julian
		text = strings.TrimSpace(strings.TrimSuffix(text, " Jl"))
	case strings.HasSuffix(text, " Gr"):
		text = strings.TrimSpace(strings.TrimSuffix(text, " Gr"))
	}

	var fields [6]string
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		copy(fields[:], m[1:])
	} else if m := dayMonthRe.FindStringSubmatch(text); m != nil {
		fields[0], fields[1], fields[2] = m[3], monthNumber(m[2]), m[1]
	} else if m := monthDayRe.FindStringSubmatch(text); m != nil {
		fields[0], fields[1], fields[2] = m[3], monthNumber(m[1]), m[2]
	} else if m := monthYearRe.FindStringSubmatch(text); m != nil {
		fields[0], fields[1] = m[2], monthNumber(m[1])
	} else {
		return t, false
	}
	if fields[1] == "0" {
		return t, false
	}

	vals := [6]int{}
	for i, f := range fields {
		if f == "" {
			continue
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return t, false
		}
		vals[i] = n
	}
	t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second = vals[0], vals[1], vals[2], vals[3], vals[4], vals[5]

	switch {
	case fields[3] != "":
		t.Precision = item.PrecisionTime
	case fields[2] != "":
		t.Precision = item.PrecisionDay
	case fields[1] != "":
		t.Precision = item.PrecisionMonth
	default:
		t.Precision = item.PrecisionYear
	}

	if t.Precision >= item.PrecisionMonth && (t.Month < 1 || t.Month > 12) {
		return t, false
	}
	if t.Precision >= item.PrecisionDay && (t.Day < 1 || t.Day > daysIn(t.Model, t.Year, t.Month)) {
		return t, false
	}
	if t.Hour > 23 || t.Minute > 59 || t.Second > 59 {
		return t, false
	}
	return t, true
}

// monthNumber returns the month number of an English month name or its
// three letter abbreviation, "0" if unknown.
func monthNumber(name string) string {
	for m := time.January; m <= time.December; m++ {
		full := m.String()
		if strings.EqualFold(name, full) || strings.EqualFold(name, full[:3]) {
			return strconv.Itoa(int(m))
		}
	}
	return "0"
}

func daysIn(model, year, month int) int {
	switch month {
	case 4, 6, 9, 11:
		return 30
	case 2:
		leap := year%4 == 0
		if model != item.Julian {
			leap = leap && (year%100 != 0 || year%400 == 0)
		}
		if leap {
			return 29
		}
		return 28
	}
	return 31
}

// Time is the stored date.
func (v *TimeValue) Time() item.Time {
	t, _ := v.it.(item.Time)
	return t
}

// String is the ISO form, with " Jl" for Julian dates.
func (v *TimeValue) String() string {
	if v.it == nil {
		return ""
	}
	t := v.Time()
	s := t.ISO()
	if t.Model == item.Julian {
		s += " Jl"
	}
	return s
}

// LongText renders the date with an English month name.
func (v *TimeValue) LongText() string {
	if v.it == nil {
		return ""
	}
	t := v.Time()
	var s string
	switch t.Precision {
	case item.PrecisionYear:
		s = strconv.Itoa(t.Year)
	case item.PrecisionMonth:
		s = fmt.Sprintf("%s %d", time.Month(t.Month), t.Year)
	case item.PrecisionDay:
		s = fmt.Sprintf("%d %s %d", t.Day, time.Month(t.Month), t.Year)
	default:
		s = fmt.Sprintf("%d %s %d %02d:%02d:%02d", t.Day, time.Month(t.Month), t.Year, t.Hour, t.Minute, t.Second)
	}
	if t.Model == item.Julian {
		s += " Jl"
	}
	return s
}
