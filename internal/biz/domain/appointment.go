package domain

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "scheduled"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
)

// AppointmentRecord represents one booked appointment.
// Email may be absent on the wire (JSON null decodes to "").
type AppointmentRecord struct {
	CustomerName string            `json:"customer_name"`
	Phone        string            `json:"phone"`
	Email        string            `json:"email"`
	Date         string            `json:"date"`
	Time         string            `json:"time"`
	Status       AppointmentStatus `json:"status"`
	ReminderSent bool              `json:"reminder_sent"`
}

// AppointmentsSnapshot is the payload of GET /appointments
type AppointmentsSnapshot struct {
	Total        int                 `json:"total"`
	Appointments []AppointmentRecord `json:"appointments"`
}
