package store

import (
	"sort"
	"sync"

	appErrors "github.com/eloquasai/outreach-backend/internal/errors"
	"github.com/eloquasai/outreach-backend/internal/model"
)

// CampaignStore owns all campaign records. All mutation goes through
// Update, which serializes writers per campaign id so racing events on the
// same campaign cannot lose updates.
type CampaignStore interface {
	Create(c *model.Campaign) error
	Get(id string) (*model.Campaign, error)
	ListByUser(userID string) ([]*model.Campaign, error)
	Update(id string, mutate func(c *model.Campaign) error) (*model.Campaign, error)
}

// MemoryStore keeps campaigns in a map guarded by a read-write mutex, with
// one mutex per campaign for mutation.
type MemoryStore struct {
	mu        sync.RWMutex
	campaigns map[string]*campaignEntry
}

type campaignEntry struct {
	mu sync.Mutex
	c  *model.Campaign
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{campaigns: make(map[string]*campaignEntry)}
}

func (s *MemoryStore) Create(c *model.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.campaigns[c.ID]; exists {
		return appErrors.NewValidation("campaign_id", "campaign already exists")
	}
	s.campaigns[c.ID] = &campaignEntry{c: c.Clone()}
	return nil
}

func (s *MemoryStore) Get(id string) (*model.Campaign, error) {
	s.mu.RLock()
	entry, ok := s.campaigns[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.c.Clone(), nil
}

// ListByUser returns the user's campaigns newest-first.
func (s *MemoryStore) ListByUser(userID string) ([]*model.Campaign, error) {
	s.mu.RLock()
	entries := make([]*campaignEntry, 0, len(s.campaigns))
	for _, entry := range s.campaigns {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	campaigns := []*model.Campaign{}
	for _, entry := range entries {
		entry.mu.Lock()
		if entry.c.UserID == userID {
			campaigns = append(campaigns, entry.c.Clone())
		}
		entry.mu.Unlock()
	}

	sort.Slice(campaigns, func(i, j int) bool {
		if !campaigns[i].CreatedAt.Equal(campaigns[j].CreatedAt) {
			return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
		}
		return campaigns[i].ID > campaigns[j].ID
	})
	return campaigns, nil
}

// Update applies mutate under the campaign's lock and returns a copy of the
// result. A mutate error rolls nothing back; mutate must not leave the
// record half-changed when it errors.
func (s *MemoryStore) Update(id string, mutate func(c *model.Campaign) error) (*model.Campaign, error) {
	s.mu.RLock()
	entry, ok := s.campaigns[id]
	s.mu.RUnlock()
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := mutate(entry.c); err != nil {
		return nil, err
	}
	return entry.c.Clone(), nil
}
