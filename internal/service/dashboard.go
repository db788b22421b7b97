package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/agent-dashboard/internal/biz/domain"
	"github.com/anthropics/agent-dashboard/internal/biz/repo"
	"github.com/anthropics/agent-dashboard/internal/biz/usecase"
)

// Summarizer digests conversation history for the History view
type Summarizer interface {
	Summarize(ctx context.Context, history string) (string, error)
}

// DashboardService assembles view-ready structures from cached backend
// snapshots. It adds no invariants of its own; all derivation rules live
// in the usecase layer.
type DashboardService struct {
	backend    repo.BackendRepo
	summarizer Summarizer // optional, nil disables the history digest
}

// NewDashboardService creates a new dashboard service. summarizer may be
// nil.
func NewDashboardService(backend repo.BackendRepo, summarizer Summarizer) *DashboardService {
	return &DashboardService{
		backend:    backend,
		summarizer: summarizer,
	}
}

// OverviewView backs the Overview page
type OverviewView struct {
	TotalUsers         int
	TotalConversations int
	TotalAppointments  int

	Channels       usecase.ChannelDistribution
	HasChannelData bool
	HourlyActivity []usecase.HourBucket

	RecentConversations []domain.ConversationRecord
	RecentAppointments  []domain.AppointmentRecord
}

// UsersView backs the Users page
type UsersView struct {
	TotalUsers         int
	TotalConversations int
	Users              []usecase.UserActivity
}

// HistoryView backs the History page
type HistoryView struct {
	Conversations []domain.ConversationRecord
	Digest        string
}

// AppointmentsView backs the Appointments page
type AppointmentsView struct {
	Total int
	usecase.AppointmentView
}

// Overview derives the Overview page data from the current stats
// snapshot
func (s *DashboardService) Overview(ctx context.Context) (*OverviewView, error) {
	stats, err := s.backend.FetchStats(ctx)
	if err != nil {
		return nil, err
	}

	channels, hasData := usecase.Channels(stats)
	return &OverviewView{
		TotalUsers:          stats.TotalUsers,
		TotalConversations:  stats.TotalConversations,
		TotalAppointments:   stats.TotalAppointments,
		Channels:            channels,
		HasChannelData:      hasData,
		HourlyActivity:      usecase.HourlyActivity(stats.RecentConversations),
		RecentConversations: stats.RecentConversations,
		RecentAppointments:  stats.RecentAppointments,
	}, nil
}

// Users derives the per-user rollup view
func (s *DashboardService) Users(ctx context.Context) (*UsersView, error) {
	stats, err := s.backend.FetchStats(ctx)
	if err != nil {
		return nil, err
	}

	return &UsersView{
		TotalUsers:         stats.TotalUsers,
		TotalConversations: stats.TotalConversations,
		Users:              usecase.UserRollup(stats.RecentConversations),
	}, nil
}

// History returns the recent conversation list, with an LLM digest when
// a summarizer is configured. A digest failure degrades to an empty
// digest rather than failing the view.
func (s *DashboardService) History(ctx context.Context) (*HistoryView, error) {
	stats, err := s.backend.FetchStats(ctx)
	if err != nil {
		return nil, err
	}

	view := &HistoryView{Conversations: stats.RecentConversations}

	if s.summarizer != nil && len(stats.RecentConversations) > 0 {
		digest, err := s.summarizer.Summarize(ctx, formatHistory(stats.RecentConversations))
		if err != nil {
			fmt.Printf("[Dashboard] History digest failed: %v\n", err)
		} else {
			view.Digest = digest
		}
	}

	return view, nil
}

// Appointments projects the appointments snapshot through the given
// status filter
func (s *DashboardService) Appointments(ctx context.Context, status string) (*AppointmentsView, error) {
	snapshot, err := s.backend.FetchAppointments(ctx)
	if err != nil {
		return nil, err
	}

	return &AppointmentsView{
		Total:           snapshot.Total,
		AppointmentView: usecase.FilterByStatus(snapshot, status),
	}, nil
}

// Healthy probes the backend health endpoint
func (s *DashboardService) Healthy(ctx context.Context) bool {
	return s.backend.Healthy(ctx)
}

// formatHistory renders conversation records as plain text for the
// summarizer
func formatHistory(records []domain.ConversationRecord) string {
	var b strings.Builder
	for _, rec := range records {
		name := rec.Name
		if name == "" {
			name = "Unknown"
		}
		fmt.Fprintf(&b, "[%s] %s (%s): %s\n", rec.Timestamp, name, rec.Channel, rec.Message)
	}
	return b.String()
}
