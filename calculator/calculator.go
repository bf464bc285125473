package calculator

import (
	"github.com/pkg/errors"

	"thermotube/model"
)

// 一次仿真的结果，三个序列等长
type Result struct {
	Dt       float64
	TimeStep TimeStep
	Time     []float64
	Inlet    []float64
	Outlet   []float64
}

func newResult(ts TimeStep, dtExt float64, n int) *Result {
	return &Result{
		Dt:       dtExt,
		TimeStep: ts,
		Time:     make([]float64, 0, n),
		Inlet:    make([]float64, 0, n),
		Outlet:   make([]float64, 0, n),
	}
}

func (r *Result) add(s model.Sample) {
	r.Time = append(r.Time, s.Time)
	r.Inlet = append(r.Inlet, s.Inlet)
	r.Outlet = append(r.Outlet, s.Outlet)
}

func (r *Result) FinalTemperature() float64 {
	return r.Outlet[len(r.Outlet)-1]
}

// Response builds the record returned by the CLI and the HTTP API.
func (r *Result) Response() *model.SimulationResp {
	return &model.SimulationResp{
		Dt:               r.Dt,
		Points:           len(r.Inlet),
		Time:             r.Time,
		Input:            r.Inlet,
		Output:           r.Outlet,
		FinalTemperature: r.FinalTemperature(),
	}
}

// Simulate runs the tube over the inlet series, one outlet reading per sample.
func Simulate(cfg Config, temperatures []float64, dtExt float64) (*Result, error) {
	t, err := prepare(cfg, temperatures, dtExt)
	if err != nil {
		return nil, err
	}
	res := newResult(t.TimeStep(), dtExt, len(temperatures))
	for _, target := range temperatures {
		res.add(t.Advance(target))
	}
	return res, nil
}

// 校验输入并初始化管道
func prepare(cfg Config, temperatures []float64, dtExt float64) (*Tube, error) {
	if len(temperatures) == 0 {
		return nil, errors.Wrap(ErrInvalidInput, "empty temperature series")
	}
	for i, v := range temperatures {
		if !finite(v) {
			return nil, errors.Wrapf(ErrInvalidInput, "temperature[%d] = %v", i, v)
		}
	}
	t, err := NewTube(cfg, dtExt, temperatures[0])
	if err != nil {
		return nil, err
	}
	ts := t.TimeStep()
	if float64(ts.Steps)*float64(cfg.Sections)*float64(len(temperatures)) > maxUpdatesPerRun {
		return nil, errors.Wrapf(ErrInvalidInput, "%d samples of %d steps over %d sections", len(temperatures), ts.Steps, cfg.Sections)
	}
	return t, nil
}
