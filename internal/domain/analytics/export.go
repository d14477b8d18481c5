package analytics

import (
	"fmt"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const statsSheet = "Sheet1"

// ExportStats writes the per-day stats window to an .xlsx workbook so
// admins can hand the numbers on without the dashboard.
func ExportStats(s *Stats, path string) error {
	if s == nil {
		return fmt.Errorf("nil stats")
	}

	file := excelize.NewFile()

	headers := map[string]string{
		"A1": "Date",
		"B1": "Appointments",
		"C1": "Revenue",
	}
	for cell, value := range headers {
		file.SetCellValue(statsSheet, cell, value)
	}

	totalAppointments := 0
	totalRevenue := 0.0
	for i, p := range s.Points {
		row := i + 2
		file.SetCellValue(statsSheet, fmt.Sprintf("A%d", row), p.Date)
		file.SetCellValue(statsSheet, fmt.Sprintf("B%d", row), p.Appointments)
		file.SetCellValue(statsSheet, fmt.Sprintf("C%d", row), p.Revenue)
		totalAppointments += p.Appointments
		totalRevenue += p.Revenue
	}

	summaryRow := len(s.Points) + 2
	file.SetCellValue(statsSheet, fmt.Sprintf("A%d", summaryRow), "Total")
	file.SetCellValue(statsSheet, fmt.Sprintf("B%d", summaryRow), totalAppointments)
	file.SetCellValue(statsSheet, fmt.Sprintf("C%d", summaryRow), totalRevenue)

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save stats workbook: %w", err)
	}
	return nil
}
