package simulate

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/logging"
	"github.com/hsiuhsiu/mpcio-go/pkg/mpcio/mocknet"
)

// Run executes fn once per rank, concurrently, each invocation bound to its
// own Session over a shared in-memory fabric. It blocks until every party
// returns and reports the first error. The context handed to fn is canceled
// as soon as any party fails, unblocking peers waiting on the fabric.
// Logging is discarded; use RunWith to customize.
func Run(worldSize int, conf mpcio.RuntimeConfig, fn func(ctx context.Context, sess *mpcio.Session) error) error {
	return RunWith(context.Background(), worldSize, conf, logging.Discard(), fn)
}

// RunWith is Run with an explicit parent context and logger.
func RunWith(ctx context.Context, worldSize int, conf mpcio.RuntimeConfig, logger logging.Logger,
	fn func(ctx context.Context, sess *mpcio.Session) error) error {
	net := mocknet.New(worldSize)
	g, gctx := errgroup.WithContext(ctx)
	for rank := 0; rank < worldSize; rank++ {
		sess, err := mpcio.NewSession(mpcio.RoleID(rank), worldSize, conf, net.Endpoint(mpcio.RoleID(rank)), logger)
		if err != nil {
			return err
		}
		g.Go(func() error { return fn(gctx, sess) })
	}
	return g.Wait()
}
