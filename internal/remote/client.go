package remote

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-flood/internal/progress"
)

// ErrNotConfigured is returned by a client without a URL.
var ErrNotConfigured = errors.New("remote: not configured")

// DefaultTimeout bounds each request when no timeout is configured.
const DefaultTimeout = 3 * time.Second

// Client is a progress.Store backed by a remote Server.
// It dials on first use and redials on the call after a failure.
type Client struct {
	url     string
	timeout time.Duration
	dialer  *websocket.Dialer

	mu     sync.Mutex
	ws     *websocket.Conn
	nextID uint64
}

// NewClient creates a client for a ws:// or wss:// URL.
func NewClient(url string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		url:     url,
		timeout: timeout,
		dialer: &websocket.Dialer{
			HandshakeTimeout: timeout,
		},
	}
}

// Close drops the connection, if any.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropLocked()
}

func (c *Client) dropLocked() error {
	if c.ws == nil {
		return nil
	}
	err := c.ws.Close()
	c.ws = nil
	return err
}

// roundTrip sends one request and waits for its response.
func (c *Client) roundTrip(ctx context.Context, typ string, payload, out any) error {
	if c.url == "" {
		return ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ws == nil {
		ws, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			return fmt.Errorf("remote: dial %s: %w", c.url, err)
		}
		c.ws = ws
	}

	c.nextID++
	req, err := newMessage(typ, c.nextID, payload)
	if err != nil {
		return err
	}

	deadline, _ := ctx.Deadline()
	c.ws.SetWriteDeadline(deadline)
	if err := c.ws.WriteJSON(req); err != nil {
		c.dropLocked()
		return fmt.Errorf("remote: send %s: %w", typ, err)
	}

	c.ws.SetReadDeadline(deadline)
	for {
		var resp Message
		if err := c.ws.ReadJSON(&resp); err != nil {
			c.dropLocked()
			return fmt.Errorf("remote: receive %s: %w", typ, err)
		}
		if resp.ID != req.ID {
			// Stale response from a request that timed out earlier.
			continue
		}
		if err := resp.Err(); err != nil {
			return err
		}
		if out == nil {
			return nil
		}
		return resp.decode(out)
	}
}

func (c *Client) Profiles(ctx context.Context) ([]progress.Profile, error) {
	var profiles []progress.Profile
	if err := c.roundTrip(ctx, TypeProfilesList, nil, &profiles); err != nil {
		return nil, err
	}
	return profiles, nil
}

func (c *Client) SaveProfile(ctx context.Context, p progress.Profile) error {
	return c.roundTrip(ctx, TypeProfilesSave, p, nil)
}

func (c *Client) DeleteProfile(ctx context.Context, id string) error {
	return c.roundTrip(ctx, TypeProfilesDelete, ProfileRef{ProfileID: id}, nil)
}

func (c *Client) Progress(ctx context.Context, profileID string) ([]progress.Record, error) {
	var records []progress.Record
	if err := c.roundTrip(ctx, TypeProgressList, ProfileRef{ProfileID: profileID}, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) SaveProgress(ctx context.Context, r progress.Record) error {
	return c.roundTrip(ctx, TypeProgressSave, r, nil)
}

var _ progress.Store = (*Client)(nil)
