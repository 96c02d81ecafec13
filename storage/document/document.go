// Package document connects region tokens to their backing document
// databases. Every repository call goes through a Gateway so the rest of
// the app never handles connection handles or region fallback itself.
package document

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Akr1040317/hiveUniDash/core"
)

const connectTimeout = 10 * time.Second

// Gateway resolves a region token to its database. Unknown or empty
// tokens fall back to the configured default region.
type Gateway struct {
	conf    core.DatabaseConfig
	clients map[string]*mongo.Client
	dbs     map[string]*mongo.Database
}

// Open connects every configured region. It fails when the default region
// is missing from the region map; a tenant gateway without a fallback
// would turn every typo into an outage.
func Open(ctx context.Context, conf core.DatabaseConfig) (*Gateway, error) {
	if _, ok := conf.Regions[conf.DefaultRegion]; !ok {
		return nil, core.NewConfigurationError(
			fmt.Sprintf("default region %q has no configured database", conf.DefaultRegion))
	}

	gw := &Gateway{
		conf:    conf,
		clients: make(map[string]*mongo.Client, len(conf.Regions)),
		dbs:     make(map[string]*mongo.Database, len(conf.Regions)),
	}
	for region, rc := range conf.Regions {
		cctx, cancel := context.WithTimeout(ctx, connectTimeout)
		client, err := mongo.Connect(cctx, options.Client().ApplyURI(rc.URI))
		cancel()
		if err != nil {
			gw.Close(ctx)
			return nil, fmt.Errorf("connecting %s database: %w", region, err)
		}
		gw.clients[region] = client
		gw.dbs[region] = client.Database(rc.Name)
	}
	return gw, nil
}

// Resolve returns the database backing a region token, falling back to
// the default region when the token is empty or unknown.
func (gw *Gateway) Resolve(region string) *mongo.Database {
	if db, ok := gw.dbs[region]; ok {
		return db
	}
	return gw.dbs[gw.conf.DefaultRegion]
}

// Region normalizes a region token the same way Resolve does. Handlers
// use it to stamp records with the region actually served.
func (gw *Gateway) Region(region string) string {
	if _, ok := gw.dbs[region]; ok {
		return region
	}
	return gw.conf.DefaultRegion
}

// Regions lists the configured region tokens.
func (gw *Gateway) Regions() []string {
	regions := make([]string, 0, len(gw.dbs))
	for region := range gw.dbs {
		regions = append(regions, region)
	}
	return regions
}

// Ping checks every region's connection.
func (gw *Gateway) Ping(ctx context.Context) error {
	for region, client := range gw.clients {
		if err := client.Ping(ctx, readpref.Primary()); err != nil {
			return fmt.Errorf("pinging %s database: %w", region, err)
		}
	}
	return nil
}

// Close disconnects every region.
func (gw *Gateway) Close(ctx context.Context) {
	for _, client := range gw.clients {
		_ = client.Disconnect(ctx)
	}
}
