package neo4jsync

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/GoSim-25-26J-441/batch-genealogy-backend/internal/logger"
)

type Options struct {
	URI      string
	User     string
	Password string
	Database string
	Timeout  time.Duration
	MaxPool  int
}

type Client struct {
	Driver   neo4j.DriverWithContext
	Database string
	log      *logger.Logger
}

// New connects and verifies connectivity. An empty URI disables the sync and
// yields a nil client.
func New(ctx context.Context, opt Options, log *logger.Logger) (*Client, error) {
	if opt.URI == "" {
		return nil, nil
	}
	if log == nil {
		log = logger.Nop()
	}
	if opt.User == "" {
		opt.User = "neo4j"
	}
	if opt.Timeout <= 0 {
		opt.Timeout = 10 * time.Second
	}
	if opt.MaxPool <= 0 {
		opt.MaxPool = 20
	}

	auth := neo4j.BasicAuth(opt.User, opt.Password, "")
	driver, err := neo4j.NewDriverWithContext(opt.URI, auth, func(cfg *neo4j.Config) {
		cfg.MaxConnectionPoolSize = opt.MaxPool
		cfg.SocketConnectTimeout = opt.Timeout
	})
	if err != nil {
		return nil, fmt.Errorf("neo4jsync: init driver: %w", err)
	}

	vctx, cancel := context.WithTimeout(ctx, opt.Timeout)
	defer cancel()
	if err := driver.VerifyConnectivity(vctx); err != nil {
		_ = driver.Close(ctx)
		return nil, fmt.Errorf("neo4jsync: verify connectivity: %w", err)
	}

	return &Client{
		Driver:   driver,
		Database: opt.Database,
		log:      log.With("client", "Neo4jSync"),
	}, nil
}

func (c *Client) Close(ctx context.Context) error {
	if c == nil || c.Driver == nil {
		return nil
	}
	err := c.Driver.Close(ctx)
	c.Driver = nil
	return err
}
