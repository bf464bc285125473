package calculator

import (
	"context"

	"github.com/pkg/errors"

	"thermotube/model"
)

// Stream behaves like Simulate but hands every sample to push as soon as it is
// computed. ctx is checked between samples. push may be nil.
func Stream(ctx context.Context, cfg Config, temperatures []float64, dtExt float64, push func(model.Sample) error) (*Result, error) {
	t, err := prepare(cfg, temperatures, dtExt)
	if err != nil {
		return nil, err
	}
	res := newResult(t.TimeStep(), dtExt, len(temperatures))
	for i, target := range temperatures {
		select {
		case <-ctx.Done():
			return nil, errors.Wrapf(ctx.Err(), "stopped at sample %d", i)
		default:
		}
		s := t.Advance(target)
		res.add(s)
		if push == nil {
			continue
		}
		if err := push(s); err != nil {
			return nil, errors.Wrapf(err, "push sample %d", i)
		}
	}
	return res, nil
}
