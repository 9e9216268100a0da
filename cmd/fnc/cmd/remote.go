package cmd

import (
	"context"
	"time"

	mdwlog "github.com/msto63/fnc/foundation/core/log"
	"github.com/msto63/fnc/internal/server"
	fncgrpc "github.com/msto63/fnc/pkg/core/grpc"
)

var (
	remoteAddr    string
	remoteTimeout time.Duration
)

// dialRemote connects to a running parse service
func dialRemote(logger *mdwlog.Logger) (*server.Client, func(), error) {
	cfg := fncgrpc.DefaultClientConfig(remoteAddr)
	cfg.Timeout = remoteTimeout
	cfg.Block = true
	cfg.Logger = logger

	conn, err := fncgrpc.Dial(cfg)
	if err != nil {
		return nil, nil, err
	}
	return server.NewClient(conn), func() { conn.Close() }, nil
}

// remoteContext bounds one remote call
func remoteContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), remoteTimeout)
}
