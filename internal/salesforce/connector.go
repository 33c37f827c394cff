package salesforce

import (
	"context"
	"sync"
)

// Connector owns the process-wide session. The first call to Client logs in;
// every later call, concurrent or not, gets the same client or the same
// error. A failed login is never retried.
type Connector struct {
	cfg  Config
	dial func(context.Context, Config) (*Client, error)

	once   sync.Once
	client *Client
	err    error
}

func NewConnector(cfg Config) *Connector {
	return &Connector{cfg: cfg, dial: Dial}
}

func (c *Connector) Client(ctx context.Context) (*Client, error) {
	c.once.Do(func() {
		// The session outlives the request that happened to trigger it.
		c.client, c.err = c.dial(context.WithoutCancel(ctx), c.cfg)
		if c.cfg.OnLogin != nil {
			c.cfg.OnLogin(c.err)
		}
		if c.err == nil {
			c.cfg.Logger.Info("Successfully connected to Salesforce", "instance", c.client.InstanceURL())
		}
	})
	return c.client, c.err
}
