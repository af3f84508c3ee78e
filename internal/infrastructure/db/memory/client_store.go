package memory

import (
	"context"

	"github.com/aCoruja/TechSecurityWebsite/internal/core/domain"
)

// ClientStore is an immutable set of application credentials.
type ClientStore struct {
	clients map[string]domain.ClientCredential
}

func NewClientStore(clients []domain.ClientCredential) *ClientStore {
	m := make(map[string]domain.ClientCredential, len(clients))
	for _, c := range clients {
		m[c.ClientID] = c
	}
	return &ClientStore{clients: m}
}

func (s *ClientStore) FindClient(_ context.Context, clientID string) (domain.ClientCredential, bool) {
	c, ok := s.clients[clientID]
	return c, ok
}

// Len reports how many clients are registered.
func (s *ClientStore) Len() int { return len(s.clients) }
