package usecase

import (
	"time"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
)

// unknownUserLabel is shown when a record carries no name
const unknownUserLabel = "Unknown"

// ChannelDistribution holds per-channel message counts
type ChannelDistribution struct {
	WhatsApp int
	Web      int
}

// HourBucket is one bar of the hourly activity histogram
type HourBucket struct {
	Hour  int // 0-23, in the timestamp's own offset
	Count int
}

// UserActivity is the per-phone rollup over recent conversations
type UserActivity struct {
	Name       string
	Phone      string
	Channel    domain.Channel
	LastActive string // timestamp of the last record for this phone in input order
	Messages   int
}

// Channels derives the channel distribution from a snapshot. The second
// return value is false when both channels are zero, so the view can show
// a "no data" state instead of a degenerate chart.
func Channels(s *domain.StatsSnapshot) (ChannelDistribution, bool) {
	dist := ChannelDistribution{
		WhatsApp: s.Channels[string(domain.ChannelWhatsApp)],
		Web:      s.Channels[string(domain.ChannelWeb)],
	}
	return dist, dist.WhatsApp > 0 || dist.Web > 0
}

// HourlyActivity groups recent conversations by hour of day. Hours with
// no activity are omitted rather than zero-filled. Each timestamp is
// bucketed in its own encoded offset; no timezone normalization is
// applied. Buckets are returned in ascending hour order.
func HourlyActivity(records []domain.ConversationRecord) []HourBucket {
	counts := make(map[int]int)
	for _, rec := range records {
		t, err := parseTimestamp(rec.Timestamp)
		if err != nil {
			continue
		}
		counts[t.Hour()]++
	}

	buckets := make([]HourBucket, 0, len(counts))
	for hour := 0; hour < 24; hour++ {
		if n, ok := counts[hour]; ok {
			buckets = append(buckets, HourBucket{Hour: hour, Count: n})
		}
	}
	return buckets
}

// UserRollup groups recent conversations by phone. For each phone the
// displayed name, channel and last-active timestamp come from the LAST
// record for that phone in input order, which is backend-controlled and
// not necessarily the chronologically latest. Entries are returned in
// order of first appearance.
func UserRollup(records []domain.ConversationRecord) []UserActivity {
	index := make(map[string]int)
	var users []UserActivity

	for _, rec := range records {
		name := rec.Name
		if name == "" {
			name = unknownUserLabel
		}

		i, seen := index[rec.Phone]
		if !seen {
			index[rec.Phone] = len(users)
			users = append(users, UserActivity{
				Name:       name,
				Phone:      rec.Phone,
				Channel:    rec.Channel,
				LastActive: rec.Timestamp,
				Messages:   1,
			})
			continue
		}

		users[i].Name = name
		users[i].Channel = rec.Channel
		users[i].LastActive = rec.Timestamp
		users[i].Messages++
	}

	return users
}

// parseTimestamp accepts RFC3339 and offset-less ISO-8601 timestamps
func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, ts)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", ts)
}
