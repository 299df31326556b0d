package journeys

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// SessionFactory opens a fresh page graph in its own browser session. The returned func
// releases the session.
type SessionFactory func(ctx context.Context) (*Pages, func() error, error)

// RunAll runs every journey in a session of its own, at most parallel at a time. Results
// are returned in the order of js. The error reports a session that could not be opened;
// it aborts the batch, so journeys not yet started keep a zero Result. Journey failures are
// in the results.
func (r *Runner) RunAll(ctx context.Context, js []Journey, open SessionFactory, parallel int) ([]Result, error) {
	if parallel < 1 {
		parallel = 1
	}

	results := make([]Result, len(js))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)

	for i, j := range js {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, release, err := open(gctx)
			if err != nil {
				return fmt.Errorf("%s: failed to open session: %w", j.Name, err)
			}
			defer func() {
				if err := release(); err != nil {
					r.logger.Warn("failed to close session", zap.String("journey", j.Name), zap.Error(err))
				}
			}()

			results[i] = r.Run(gctx, j, p)
			return nil
		})
	}

	err := g.Wait()
	return results, err
}
