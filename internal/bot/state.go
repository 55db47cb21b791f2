package bot

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"

	"qa-assistant-be/pkg/responder"
)

const (
	// Conversations are dropped after a day without activity so the state
	// store stays bounded.
	conversationTTL   = 12 * time.Hour
	conversationSweep = 10 * time.Minute
)

// Conversation is the per-conversation bot state: the answers of the last
// question, a cursor into them, and the echo toggle.
type Conversation struct {
	Answers      []responder.AnswerRecord
	Cursor       int
	Asked        bool
	Echo         bool
	LastQuestion string
}

// Current returns the answer the cursor points at.
func (c *Conversation) Current() (responder.AnswerRecord, bool) {
	if !c.Asked || c.Cursor < 0 || c.Cursor >= len(c.Answers) {
		return responder.AnswerRecord{}, false
	}
	return c.Answers[c.Cursor], true
}

type conversationEntry struct {
	mu   sync.Mutex
	conv Conversation
}

// Store holds conversation state keyed by conversation id. Access is
// serialized per conversation so concurrent messages on the same id cannot
// interleave state updates.
type Store struct {
	mu      sync.Mutex
	entries *cache.Cache
}

func NewStore() *Store {
	return &Store{entries: cache.New(conversationTTL, conversationSweep)}
}

// WithConversation runs fn with exclusive access to the conversation state
// and refreshes its expiry.
func (s *Store) WithConversation(conversationID string, fn func(*Conversation) (string, error)) (string, error) {
	entry := s.entry(conversationID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	out, err := fn(&entry.conv)
	s.entries.SetDefault(conversationID, entry)
	return out, err
}

func (s *Store) entry(conversationID string) *conversationEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cached, ok := s.entries.Get(conversationID); ok {
		return cached.(*conversationEntry)
	}
	entry := &conversationEntry{}
	s.entries.SetDefault(conversationID, entry)
	return entry
}
