package main

import (
	"encoding/json"
	"os"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gopkg.in/ini.v1"

	"thermotube/calculator"
	"thermotube/model"
)

var ErrMalformedArguments = errors.New("malformed arguments")

func newRootCmd() *cobra.Command {
	var confPath string
	cmd := &cobra.Command{
		Use:   "simular TEMPERATURES [DT]",
		Short: "Compute the outlet temperature of a tube from an inlet temperature series",
		Long: `simular reads the inlet temperatures as a JSON array, e.g. "[20, 21.5, 30]",
and the sampling interval DT in seconds (default 5). It prints one JSON record
with the elapsed times, the echoed input, the outlet series and the final
outlet temperature. Extra arguments are ignored.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, dt, err := loadConfig(confPath)
			if err != nil {
				return err
			}

			var temperatures []float64
			if err := json.Unmarshal([]byte(args[0]), &temperatures); err != nil {
				return errors.Wrapf(ErrMalformedArguments, "temperatures: %v", err)
			}
			if temperatures == nil {
				return errors.Wrap(ErrMalformedArguments, "temperatures must be an array")
			}
			if len(args) > 1 {
				dt, err = strconv.ParseFloat(args[1], 64)
				if err != nil {
					return errors.Wrapf(ErrMalformedArguments, "dt: %v", err)
				}
			}

			res, err := calculator.Simulate(cfg, temperatures, dt)
			if err != nil {
				return err
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(res.Response())
		},
	}
	cmd.Flags().StringVarP(&confPath, "config", "c", "", "ini file with [tube] and [simulation] sections")
	return cmd
}

// 未指定配置文件时使用缺省参数
func loadConfig(path string) (calculator.Config, float64, error) {
	if path == "" {
		return calculator.DefaultConfig(), model.DefaultDt, nil
	}
	file, err := ini.Load(path)
	if err != nil {
		return calculator.Config{}, 0, errors.Wrapf(ErrMalformedArguments, "config: %v", err)
	}
	return calculator.LoadConfig(file), file.Section("simulation").Key("Dt").MustFloat64(model.DefaultDt), nil
}

func main() {
	log.SetOutput(os.Stderr)
	if err := newRootCmd().Execute(); err != nil {
		log.WithError(err).Error("simulation aborted")
		os.Exit(1)
	}
}
