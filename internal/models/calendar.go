package models

import (
	"fmt"
	"strings"
	"time"
)

// VisibleEventsPerDay is how many events a calendar cell lists before
// collapsing the rest into a "+N más" counter.
const VisibleEventsPerDay = 2

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var DayNames = []string{"Dom", "Lun", "Mar", "Mié", "Jue", "Vie", "Sáb"}

type CalendarDay struct {
	Day     int     `json:"day"`
	Date    string  `json:"date"`
	Events  []Event `json:"events"`
	Visible []Event `json:"visible"`
	More    int     `json:"more"`
}

// Calendar is a month grid. Weeks run Sunday to Saturday; nil cells are the
// placeholders before the 1st. The last week is not padded.
type Calendar struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	MonthName string           `json:"month_name"`
	DayNames  []string         `json:"day_names"`
	Weeks     [][]*CalendarDay `json:"weeks"`
}

func daysIn(month time.Month, year int) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func MonthName(month time.Month) string {
	if month < time.January || month > time.December {
		return ""
	}
	return monthNames[month-1]
}

// BuildCalendar lays out the given month and attaches to every day the events
// whose date equals that day, in insertion order.
func BuildCalendar(events []Event, year int, month time.Month) Calendar {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := daysIn(month, year)
	leading := int(first.Weekday())

	byDate := make(map[string][]Event)
	prefix := fmt.Sprintf("%04d-%02d-", year, int(month))
	for _, e := range events {
		if strings.HasPrefix(e.Date, prefix) {
			byDate[e.Date] = append(byDate[e.Date], e)
		}
	}

	cells := make([]*CalendarDay, 0, leading+days)
	for i := 0; i < leading; i++ {
		cells = append(cells, nil)
	}
	for day := 1; day <= days; day++ {
		date := fmt.Sprintf("%s%02d", prefix, day)
		dayEvents := byDate[date]
		if dayEvents == nil {
			dayEvents = []Event{}
		}
		cells = append(cells, &CalendarDay{
			Day:     day,
			Date:    date,
			Events:  dayEvents,
			Visible: dayEvents[:min(len(dayEvents), VisibleEventsPerDay)],
			More:    HiddenEventCount(len(dayEvents)),
		})
	}

	weeks := make([][]*CalendarDay, 0, (len(cells)+6)/7)
	for i := 0; i < len(cells); i += 7 {
		weeks = append(weeks, cells[i:min(i+7, len(cells))])
	}

	return Calendar{
		Year:      year,
		Month:     int(month),
		MonthName: MonthName(month),
		DayNames:  DayNames,
		Weeks:     weeks,
	}
}

// HiddenEventCount is the "+N más" figure for a day with total events.
func HiddenEventCount(total int) int {
	if total > VisibleEventsPerDay {
		return total - VisibleEventsPerDay
	}
	return 0
}
