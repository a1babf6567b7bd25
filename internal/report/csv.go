package report

import "strconv"

// Header is the exact report table header. Column names and per-column units
// (minutes for the hour window, hours for day and week) are a compatibility
// contract with report consumers.
var Header = []string{
	"store_id",
	"uptime_last_hour(minutes)",
	"uptime_last_day(hours)",
	"uptime_last_week(hours)",
	"downtime_last_hour(minutes)",
	"downtime_last_day(hours)",
	"downtime_last_week(hours)",
}

// Table renders rows into CSV records, header first.
func Table(rows []Row) [][]string {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, Header)
	for _, r := range rows {
		records = append(records, []string{
			r.StoreID,
			formatFigure(r.UptimeLastHour.Minutes()),
			formatFigure(r.UptimeLastDay.Hours()),
			formatFigure(r.UptimeLastWeek.Hours()),
			formatFigure(r.DowntimeLastHour.Minutes()),
			formatFigure(r.DowntimeLastDay.Hours()),
			formatFigure(r.DowntimeLastWeek.Hours()),
		})
	}
	return records
}

func formatFigure(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
