package calculator

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// 安全系数
	safetyFactor = 0.9

	// 单元更新次数上限，Steps*Sections 按一个采样间隔计，乘以序列长度按一次计算计
	maxUpdatesPerSample = 1 << 28
	maxUpdatesPerRun    = 1 << 32
)

// 时间步长
type TimeStep struct {
	Dx          float64 // 网格宽度
	DtStableMax float64 // CFL 稳定性上限 dx / v
	DtInternal  float64 // 目标内部步长
	Steps       int     // 每个采样间隔的内部步数
	DtReal      float64 // 实际内部步长，Steps * DtReal == dtExt
}

// NewTimeStep derives the internal step for one sampling interval.
// Steps is floor(dtExt/DtInternal)+1, so an exact integer ratio gets one extra step.
func NewTimeStep(cfg Config, dtExt float64) (TimeStep, error) {
	if err := cfg.Validate(); err != nil {
		return TimeStep{}, err
	}
	if !positive(dtExt) {
		return TimeStep{}, errors.Wrapf(ErrInvalidInput, "sampling interval %v", dtExt)
	}

	ts := TimeStep{}
	ts.Dx = cfg.Length / float64(cfg.Sections)
	ts.DtStableMax = ts.Dx / cfg.Velocity
	ts.DtInternal = ts.DtStableMax * safetyFactor

	steps := math.Floor(dtExt/ts.DtInternal) + 1
	if steps*float64(cfg.Sections) > maxUpdatesPerSample {
		return TimeStep{}, errors.Wrapf(ErrInvalidInput, "sampling interval %v needs %.0f steps over %d sections", dtExt, steps, cfg.Sections)
	}
	ts.Steps = int(steps)
	ts.DtReal = dtExt / float64(ts.Steps)
	return ts, nil
}

// Courant number of the real step, v*dt/dx.
func (ts TimeStep) Courant(v float64) float64 {
	return v * ts.DtReal / ts.Dx
}
