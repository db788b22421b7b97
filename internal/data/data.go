package data

import (
	"time"

	"github.com/anthropics/agent-dashboard/internal/biz/repo"
)

// Repositories contains all repositories
type Repositories struct {
	Backend    repo.BackendRepo
	Chat       repo.ChatRepo
	Transcript repo.TranscriptRepo
}

// NewRepositories creates all repositories. The backend is wrapped with
// per-endpoint TTL caching; the raw client is shared with the chat repo.
func NewRepositories(baseURL string, fetchTimeout, cacheTTL time.Duration, transcriptDBPath string) (*Repositories, error) {
	client := NewBackendClient(baseURL, WithFetchTimeout(fetchTimeout))

	transcriptRepo, err := NewTranscriptRepo(transcriptDBPath)
	if err != nil {
		return nil, err
	}

	return &Repositories{
		Backend:    NewCachedBackend(client, cacheTTL),
		Chat:       client,
		Transcript: transcriptRepo,
	}, nil
}
