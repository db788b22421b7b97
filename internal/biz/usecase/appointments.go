package usecase

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
)

// StatusAll selects every appointment regardless of status
const StatusAll = "All"

// AppointmentView is a non-mutating projection over an appointments
// snapshot. Repeated projections with the same inputs yield identical
// results.
type AppointmentView struct {
	Appointments []domain.AppointmentRecord

	FilteredCount      int
	ScheduledCount     int
	WithEmailCount     int
	RemindersSentCount int
}

// FilterByStatus projects a snapshot down to appointments matching the
// given status ("All" keeps everything) and derives the view counters
// over the filtered set.
func FilterByStatus(snapshot *domain.AppointmentsSnapshot, status string) AppointmentView {
	view := AppointmentView{}

	for _, appt := range snapshot.Appointments {
		if status != StatusAll && string(appt.Status) != status {
			continue
		}

		view.Appointments = append(view.Appointments, appt)
		view.FilteredCount++
		if appt.Status == domain.StatusScheduled {
			view.ScheduledCount++
		}
		if appt.Email != "" {
			view.WithEmailCount++
		}
		if appt.ReminderSent {
			view.RemindersSentCount++
		}
	}

	return view
}

// csvHeader matches the display labels of the appointments table
var csvHeader = []string{"Customer", "Phone", "Email", "Date", "Time", "Status", "Reminder Sent"}

// WriteCSV exports the filtered appointments, one row per record with a
// header row of display labels.
func WriteCSV(w io.Writer, view AppointmentView) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, appt := range view.Appointments {
		row := []string{
			appt.CustomerName,
			appt.Phone,
			appt.Email,
			appt.Date,
			appt.Time,
			string(appt.Status),
			strconv.FormatBool(appt.ReminderSent),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
