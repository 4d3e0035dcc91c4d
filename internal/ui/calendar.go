package ui

import (
	"fmt"
	"strings"
	"time"
)

const calendarDateFormat = "2006-01-02"

// renderCalendar 渲染指定月份的日历网格。
// marked 给出需要角标的日期；selected/today 用不同样式高亮。
// 纯函数：同样的输入永远得到同样的文本。
func renderCalendar(theme Theme, month time.Time, selected, today string, marked func(string) bool) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render(month.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(theme.Label.Render("Su Mo Tu We Th Fr Sa"))
	b.WriteString("\n")

	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	startWeekday := int(first.Weekday())
	daysInMonth := first.AddDate(0, 1, -1).Day()

	var cells []string
	for i := 0; i < startWeekday; i++ {
		cells = append(cells, "  ")
	}

	for day := 1; day <= daysInMonth; day++ {
		dateKey := fmt.Sprintf("%04d-%02d-%02d", month.Year(), int(month.Month()), day)
		cell := fmt.Sprintf("%2d", day)

		switch {
		case dateKey == selected:
			cell = theme.Selected.Render(cell)
		case dateKey == today:
			cell = theme.Success.Render(cell)
		case marked != nil && marked(dateKey):
			cell = theme.Marker.Render(cell)
		default:
			cell = theme.Value.Render(cell)
		}
		cells = append(cells, cell)
	}

	for i, cell := range cells {
		b.WriteString(cell)
		if (i+1)%7 == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	if len(cells)%7 != 0 {
		b.WriteString("\n")
	}

	return b.String()
}
