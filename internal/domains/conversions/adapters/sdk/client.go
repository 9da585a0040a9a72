package sdk

import (
	"context"
	"errors"
	"strings"
	"time"

	kameleoon "github.com/Kameleoon/client-go/v3"
)

// Config carries the SDK credentials and site settings.
type Config struct {
	SiteCode        string
	ClientID        string
	ClientSecret    string
	TopLevelDomain  string
	Environment     string
	RefreshInterval time.Duration
}

// Client adapts kameleoon.KameleoonClient to Tracker and Initializer.
type Client struct {
	client kameleoon.KameleoonClient
}

// Dial creates the SDK client and waits for its first configuration load.
// A client that cannot initialize is an error.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.SiteCode) == "" {
		return nil, errors.New("kameleoon site code is required")
	}
	if strings.TrimSpace(cfg.ClientID) == "" || strings.TrimSpace(cfg.ClientSecret) == "" {
		return nil, errors.New("kameleoon client id and secret are required")
	}
	sdkConfig := &kameleoon.KameleoonClientConfig{
		ClientID:        cfg.ClientID,
		ClientSecret:    cfg.ClientSecret,
		TopLevelDomain:  cfg.TopLevelDomain,
		Environment:     cfg.Environment,
		RefreshInterval: cfg.RefreshInterval,
	}
	kc, err := kameleoon.KameleoonClientFactory.Create(cfg.SiteCode, sdkConfig)
	if err != nil {
		return nil, err
	}
	c := &Client{client: kc}
	if err := WaitReady(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Client) WaitInit() error {
	return c.client.WaitInit()
}

func (c *Client) TrackConversion(visitorCode string, goalID int) error {
	return c.client.TrackConversion(visitorCode, goalID)
}

func (c *Client) TrackConversionRevenue(visitorCode string, goalID int, revenue float64) error {
	return c.client.TrackConversionRevenue(visitorCode, goalID, revenue)
}
