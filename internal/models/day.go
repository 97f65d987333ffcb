package models

import "github.com/julianstephens/heartline/internal/constants"

// Day describes one themed day of the week
type Day struct {
	ID    int
	Name  string
	Theme string
	Icon  string
}

// Days is the Valentine week catalogue in calendar order
var Days = []Day{
	{ID: 7, Name: "Rose Day", Theme: "rose", Icon: "🌹"},
	{ID: 8, Name: "Propose Day", Theme: "propose", Icon: "💍"},
	{ID: 9, Name: "Chocolate Day", Theme: "chocolate", Icon: "🍫"},
	{ID: 10, Name: "Teddy Day", Theme: "teddy", Icon: "🧸"},
	{ID: 11, Name: "Promise Day", Theme: "promise", Icon: "🤝"},
	{ID: 12, Name: "Hug Day", Theme: "hug", Icon: "🤗"},
	{ID: 13, Name: "Kiss Day", Theme: "kiss", Icon: "💋"},
	{ID: 14, Name: "Valentine's Day", Theme: "valentine", Icon: "❤️"},
}

// IsValidDayID reports whether id names one of the eight days
func IsValidDayID(id int) bool {
	return id >= constants.FirstDay && id <= constants.LastDay
}

// DayByID looks up a day in the catalogue
func DayByID(id int) (Day, bool) {
	if !IsValidDayID(id) {
		return Day{}, false
	}
	return Days[id-constants.FirstDay], true
}
