// Copyright (c) 2025 The bitcoinrules developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package peer

import (
	"log"
	"sync"

	"github.com/decred/dcrd/lru"
	"github.com/nicolafiorillo/bitcoinrules/chain"
	"github.com/nicolafiorillo/bitcoinrules/chainhash"
)

// outstandingLocatorCacheSize bounds how many peers can have a
// getheaders request in flight at once before the coordinator starts
// evicting the oldest entry. One node rarely needs more than a
// handful of simultaneous peers.
const outstandingLocatorCacheSize = 64

// NodeReady is emitted by a session once its handshake completes.
type NodeReady struct {
	ID string
}

// HeadersResponse is emitted by a session when a headers message
// arrives.
type HeadersResponse struct {
	ID      string
	Headers []*chain.Header
}

// GetHeadersRequest is the coordinator's instruction to a session:
// render and send a getheaders message starting after Start.
type GetHeadersRequest struct {
	ID    string
	Start chainhash.Hash
}

// Event is the sum type a session posts to the coordinator: either a
// NodeReady or a HeadersResponse.
type Event interface{}

// Coordinator drives header sync: on NodeReady it issues a single
// getheaders request starting at the repository's tip (or genesis),
// and on HeadersResponse it persists the batch. It does not loop a
// peer to chain tip by itself -- a fresh getheaders is only issued the
// next time that peer reports ready, not automatically after each
// response.
//
// Request correlation is simplified: the coordinator assumes at most
// one outstanding getheaders request per peer (tracked by the LRU
// below) and does not attach a request id to responses. A production
// version would need to correlate responses to requests when several
// can be in flight for the same peer.
type Coordinator struct {
	repo    HeaderRepository
	genesis chainhash.Hash

	mu       sync.Mutex
	sessions map[string]chan<- GetHeadersRequest
	inFlight *lru.Cache[string]
}

// NewCoordinator builds a coordinator that persists through repo,
// falling back to genesis when repo holds no headers yet.
func NewCoordinator(repo HeaderRepository, genesis chainhash.Hash) *Coordinator {
	return &Coordinator{
		repo:     repo,
		genesis:  genesis,
		sessions: make(map[string]chan<- GetHeadersRequest),
		inFlight: lru.NewCache[string](outstandingLocatorCacheSize),
	}
}

// Register associates a session's id with the channel its Run loop
// reads GetHeadersRequest values from. Sessions must register before
// their NodeReady event can be acted on.
func (c *Coordinator) Register(id string, requests chan<- GetHeadersRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[id] = requests
}

// Unregister removes a session, e.g. once its connection closes.
func (c *Coordinator) Unregister(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, id)
	c.inFlight.Delete(id)
}

// Handle processes one event from a session's output channel. Run is
// the usual entry point; Handle is exposed directly for tests.
func (c *Coordinator) Handle(ev Event) error {
	switch e := ev.(type) {
	case NodeReady:
		return c.issueGetHeaders(e.ID)
	case HeadersResponse:
		if err := c.repo.CreateHeaders(e.Headers); err != nil {
			return err
		}
		c.mu.Lock()
		c.inFlight.Delete(e.ID)
		c.mu.Unlock()
	}
	return nil
}

// Run consumes events until the channel is closed, dispatching each to
// Handle and logging (rather than aborting the whole node on) any
// single session's error.
func (c *Coordinator) Run(events <-chan Event) {
	for ev := range events {
		if err := c.Handle(ev); err != nil {
			log.Printf("peer: coordinator error handling event: %v", err)
		}
	}
}

// issueGetHeaders sends a GetHeadersRequest to the named session,
// starting from the repository's tip, skipping the request entirely if
// one is already outstanding for that peer.
func (c *Coordinator) issueGetHeaders(id string) error {
	c.mu.Lock()
	if c.inFlight.Contains(id) {
		c.mu.Unlock()
		return nil
	}
	requests, ok := c.sessions[id]
	if !ok {
		c.mu.Unlock()
		return nil
	}
	c.inFlight.Add(id)
	c.mu.Unlock()

	start, found, err := c.repo.Tip()
	if err != nil {
		return err
	}
	if !found {
		start = c.genesis
	}

	requests <- GetHeadersRequest{ID: id, Start: start}
	return nil
}
