package calculator

import (
	"math"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"

	"thermotube/model"
)

// 网格数上限，温度场两份缓冲共 2*maxSections 个 float64
const maxSections = 1 << 20

// 管道物性参数，计算开始后只读
type Config struct {
	Length   float64 // 管长 m
	Radius   float64 // 管半径 m，暂未参与计算
	Velocity float64 // 流速 m/s
	Sections int     // 沿管长方向的网格数
}

// DefaultConfig returns the reference tube: 4 m long, 3.5 mm radius, 0.5 m/s, 50 cells.
func DefaultConfig() Config {
	return Config{
		Length:   4.0,
		Radius:   0.0035,
		Velocity: 0.5,
		Sections: 50,
	}
}

// LoadConfig reads the [tube] section, falling back to DefaultConfig for missing keys.
func LoadConfig(file *ini.File) Config {
	d := DefaultConfig()
	section := file.Section("tube")
	return Config{
		Length:   section.Key("Length").MustFloat64(d.Length),
		Radius:   section.Key("Radius").MustFloat64(d.Radius),
		Velocity: section.Key("Velocity").MustFloat64(d.Velocity),
		Sections: section.Key("Sections").MustInt(d.Sections),
	}
}

func FromEnv(env model.Env) Config {
	return Config{
		Length:   env.Length,
		Radius:   env.Radius,
		Velocity: env.Velocity,
		Sections: env.Sections,
	}
}

func (c Config) Env() model.Env {
	return model.Env{
		Length:   c.Length,
		Radius:   c.Radius,
		Velocity: c.Velocity,
		Sections: c.Sections,
	}
}

func (c Config) Validate() error {
	if !positive(c.Length) {
		return errors.Wrapf(ErrInvalidConfig, "length %v", c.Length)
	}
	if !positive(c.Velocity) {
		return errors.Wrapf(ErrInvalidConfig, "velocity %v", c.Velocity)
	}
	if c.Sections < 1 || c.Sections > maxSections {
		return errors.Wrapf(ErrInvalidConfig, "sections %d", c.Sections)
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}
