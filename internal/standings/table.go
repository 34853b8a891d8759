package standings

import (
	"fmt"
	"io"
)

// WriteTable prints rows as a fixed-width text table
func WriteTable(w io.Writer, rows []Row) error {
	if _, err := fmt.Fprintf(w, "%-20s %3s %3s %6s %5s\n", "Team", "W", "L", "PCT", "GB"); err != nil {
		return err
	}
	for _, row := range rows {
		_, err := fmt.Fprintf(w, "%-20s %3d %3d %6.3f %5s\n",
			row.TeamName,
			row.Wins,
			row.Losses,
			row.WinRate,
			formatGamesBehind(row.GamesBehind),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// leaders show a dash, as in a printed box score
func formatGamesBehind(gb float64) string {
	if gb == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", gb)
}
