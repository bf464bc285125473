package calculator

import (
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// 一个独立的仿真任务
type Job struct {
	Temperatures []float64
	Dt           float64
}

// RunBatch runs independent jobs on at most workers goroutines. Results keep
// the order of jobs. The first failure cancels the others between samples.
func RunBatch(ctx context.Context, cfg Config, jobs []Job, workers int) ([]*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if workers <= 0 || workers > len(jobs) {
		workers = len(jobs)
	}

	start := time.Now()
	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			res, err := Stream(ctx, cfg, job.Temperatures, job.Dt, nil)
			if err != nil {
				return errors.Wrapf(err, "job %d", i)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"jobs":    len(jobs),
		"workers": workers,
		"cost":    time.Since(start),
	}).Debug("batch finished")
	return results, nil
}
