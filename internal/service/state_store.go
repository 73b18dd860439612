package service

import (
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
)

// PendingAuth is the transient anti-forgery marker for one in-flight
// authorization round trip.
type PendingAuth struct {
	State    string
	Platform string
}

// StateStore keeps at most one pending authorization per team. Starting a new
// authorization overwrites the slot; entries evaporate after the TTL.
type StateStore interface {
	Put(teamID int64, state, platform string)
	Get(teamID int64) (*PendingAuth, bool)
	Clear(teamID int64)
}

type stateStore struct {
	c *cache.Cache
}

func NewStateStore(ttl time.Duration) StateStore {
	return &stateStore{c: cache.New(ttl, 2*ttl)}
}

func (s *stateStore) Put(teamID int64, state, platform string) {
	s.c.SetDefault(stateKey(teamID), &PendingAuth{State: state, Platform: platform})
}

func (s *stateStore) Get(teamID int64) (*PendingAuth, bool) {
	v, ok := s.c.Get(stateKey(teamID))
	if !ok {
		return nil, false
	}
	return v.(*PendingAuth), true
}

func (s *stateStore) Clear(teamID int64) {
	s.c.Delete(stateKey(teamID))
}

func stateKey(teamID int64) string {
	return strconv.FormatInt(teamID, 10)
}
