package salesforce

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
)

func TestConnectorDialsOnce(t *testing.T) {
	var dials atomic.Int32
	c := NewConnector(Config{})
	c.dial = func(ctx context.Context, cfg Config) (*Client, error) {
		dials.Add(1)
		return &Client{instanceURL: "https://example.my.salesforce.com"}, nil
	}

	var wg sync.WaitGroup
	clients := make([]*Client, 8)
	for i := range clients {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			clients[i], _ = c.Client(context.Background())
		}(i)
	}
	wg.Wait()

	if dials.Load() != 1 {
		t.Fatalf("expected one dial, got %d", dials.Load())
	}
	for _, cl := range clients {
		if cl != clients[0] {
			t.Fatalf("expected the same client for every caller")
		}
	}
}

func TestConnectorCachesFailure(t *testing.T) {
	boom := errors.New("boom")
	var dials int
	var observed []error
	c := NewConnector(Config{OnLogin: func(err error) { observed = append(observed, err) }})
	c.dial = func(ctx context.Context, cfg Config) (*Client, error) {
		dials++
		return nil, &LoginError{Err: boom}
	}

	for i := 0; i < 3; i++ {
		if _, err := c.Client(context.Background()); !errors.Is(err, boom) {
			t.Fatalf("expected cached login error, got %v", err)
		}
	}
	if dials != 1 {
		t.Fatalf("expected one dial, got %d", dials)
	}
	if len(observed) != 1 {
		t.Fatalf("expected one login observation, got %d", len(observed))
	}
}

func TestConnectorSurvivesCancelledTrigger(t *testing.T) {
	c := NewConnector(Config{})
	c.dial = func(ctx context.Context, cfg Config) (*Client, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return &Client{}, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Client(ctx); err != nil {
		t.Fatalf("login should not inherit the caller's cancellation: %v", err)
	}
}
