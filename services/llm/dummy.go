package llmsvc

import (
	"context"
	"sync"
)

// DummyClient is a Client stand-in for tests; it records every exchange and
// returns a canned reply.
type DummyClient struct {
	mu       sync.Mutex
	Reply    string
	Err      error
	Requests [][]Message
}

var _ Client = (*DummyClient)(nil)

func NewDummyClient(reply string) *DummyClient {
	return &DummyClient{Reply: reply}
}

func (c *DummyClient) Chat(_ context.Context, messages []Message) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Requests = append(c.Requests, messages)
	if c.Err != nil {
		return "", c.Err
	}
	return c.Reply, nil
}

// LastRequest returns the messages of the most recent exchange, or nil.
func (c *DummyClient) LastRequest() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Requests) == 0 {
		return nil
	}
	return c.Requests[len(c.Requests)-1]
}
