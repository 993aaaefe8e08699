package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

const defaultTimeout = 10 * time.Second

// Config captures the minimal settings required to establish a Neo4j connection.
type Config struct {
	URI      string
	Username string
	Password string
	Database string
	Timeout  time.Duration
}

// Connect establishes a Neo4j driver and verifies connectivity before
// returning it. A default timeout is applied when none is provided.
func Connect(ctx context.Context, cfg Config) (neo4j.DriverWithContext, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("neo4j driver: %w", err)
	}

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := driver.VerifyConnectivity(connectCtx); err != nil {
		_ = driver.Close(connectCtx)
		return nil, fmt.Errorf("neo4j connectivity: %w", err)
	}

	return driver, nil
}
