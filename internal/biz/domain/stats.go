package domain

// Channel identifies where a conversation came from
type Channel string

const (
	ChannelWhatsApp Channel = "whatsapp"
	ChannelWeb      Channel = "web"
)

// ConversationRecord represents one entry in the backend's recent list.
// Records carry no id; a record is positioned only by its index in the
// backend-supplied order.
type ConversationRecord struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Channel   Channel `json:"channel"`
	Message   string  `json:"message"`
	Timestamp string  `json:"timestamp"`
}

// StatsSnapshot is the payload of GET /stats, treated as an atomic
// point-in-time snapshot for one render cycle
type StatsSnapshot struct {
	TotalUsers          int                  `json:"total_users"`
	TotalConversations  int                  `json:"total_conversations"`
	TotalAppointments   int                  `json:"total_appointments"`
	Channels            map[string]int       `json:"channels"`
	RecentConversations []ConversationRecord `json:"recent_conversations"`
	RecentAppointments  []AppointmentRecord  `json:"recent_appointments"`
}
