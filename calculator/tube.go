package calculator

import (
	"math"

	"github.com/pkg/errors"

	"thermotube/model"
)

// Tube holds the cell temperatures of one run. Not safe for concurrent use.
type Tube struct {
	cfg   Config
	ts    TimeStep
	dtExt float64

	// 两个温度场交替使用，每个内部步长读一个写另一个
	field  []float64
	field1 []float64

	// 为 true 时 field 为当前温度场
	alternating bool

	index int
}

func NewTube(cfg Config, dtExt, initial float64) (*Tube, error) {
	ts, err := NewTimeStep(cfg, dtExt)
	if err != nil {
		return nil, err
	}
	if !finite(initial) {
		return nil, errors.Wrapf(ErrInvalidInput, "initial temperature %v", initial)
	}

	t := &Tube{
		cfg:         cfg,
		ts:          ts,
		dtExt:       dtExt,
		field:       make([]float64, cfg.Sections),
		field1:      make([]float64, cfg.Sections),
		alternating: true,
	}
	// 假设管道初始温度与第一个入口温度相同
	for i := range t.field {
		t.field[i] = initial
	}
	return t, nil
}

func (t *Tube) TimeStep() TimeStep {
	return t.ts
}

func (t *Tube) current() []float64 {
	if t.alternating {
		return t.field
	}
	return t.field1
}

func (t *Tube) next() []float64 {
	if t.alternating {
		return t.field1
	}
	return t.field
}

// Outlet returns the temperature of the last cell.
func (t *Tube) Outlet() float64 {
	cur := t.current()
	return cur[len(cur)-1]
}

// Cells returns a copy of the current temperature field, inlet first.
func (t *Tube) Cells() []float64 {
	res := make([]float64, t.cfg.Sections)
	copy(res, t.current())
	return res
}

// Advance runs one sampling interval with target as the inlet temperature and
// returns the outlet reading stamped index*dtExt.
func (t *Tube) Advance(target float64) model.Sample {
	for step := 0; step < t.ts.Steps; step++ {
		t.step(target)
	}
	s := model.Sample{
		Index:  t.index,
		Time:   float64(t.index) * t.dtExt,
		Inlet:  target,
		Outlet: t.Outlet(),
	}
	t.index++
	return s
}

// 一阶迎风格式
func (t *Tube) step(target float64) {
	old, nxt := t.current(), t.next()
	v, dx, dt := t.cfg.Velocity, t.ts.Dx, t.ts.DtReal
	for j := 1; j < len(old); j++ {
		gradient := (old[j-1] - old[j]) / dx
		nxt[j] = old[j] + v*gradient*dt
	}
	// 入口边界直接赋值
	nxt[0] = target
	t.alternating = !t.alternating // 仅在这里修改
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
