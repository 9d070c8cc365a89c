package repair

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/shinji-kodama/mojifix/internal/model"
)

// Run repairs every path and returns one result per path, in the same
// order as paths.
//
// Files share no state, so up to opts.Jobs of them are processed at once.
// Once ctx is done, files that have not started yet are reported as Failed
// with the context error.
func Run(ctx context.Context, paths []string, opts Options) []model.FileResult {
	results := make([]model.FileResult, len(paths))

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	var g errgroup.Group
	g.SetLimit(jobs)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = failed(model.FileResult{Path: path}, "cancelled", err)
				return nil
			}
			results[i] = File(path, opts)
			return nil
		})
	}

	// Workers never return errors; failures live in the results.
	_ = g.Wait()
	return results
}
