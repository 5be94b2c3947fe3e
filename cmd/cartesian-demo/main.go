// Package main runs the Cartesian interpolation demonstration against a simulated arm and gripper.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/golang/geo/r3"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
	"go.viam.com/utils"

	"github.com/dvrk-tools/cartinterp/components/arm/fake"
	fakegripper "github.com/dvrk-tools/cartinterp/components/gripper/fake"
	"github.com/dvrk-tools/cartinterp/config"
	"github.com/dvrk-tools/cartinterp/logging"
	"github.com/dvrk-tools/cartinterp/routine"
	"github.com/dvrk-tools/cartinterp/spatialmath"
)

var logger = logging.NewLogger("cartesian_demo")

// Where the simulated arm starts, in meters from its base.
var simulatedHome = r3.Vector{Z: -0.1}

func main() {
	utils.ContextualMain(mainWithArgs, logger)
}

// Arguments for the command.
type Arguments struct {
	Arm        string `flag:"0,usage=name of the arm to move (overrides the config)"`
	ConfigFile string `flag:"config,usage=JSON config file"`
	Schema     bool   `flag:"schema,usage=print the JSON schema of the config file and exit"`
	Debug      bool   `flag:"debug,usage=enable debug logging"`
	LogFile    string `flag:"log-file,usage=also write JSON logs to this file"`
}

func mainWithArgs(ctx context.Context, args []string, logger logging.Logger) (err error) {
	var argsParsed Arguments
	if err := utils.ParseFlags(args, &argsParsed); err != nil {
		return err
	}
	if argsParsed.Schema {
		return printSchema(os.Stdout)
	}
	level := zapcore.InfoLevel
	if argsParsed.Debug {
		level = zapcore.DebugLevel
		logger = logging.NewDebugLogger("cartesian_demo")
	}
	if argsParsed.LogFile != "" {
		fileLogger, closeFile, err := logging.NewFileLogger("cartesian_demo", argsParsed.LogFile, level)
		if err != nil {
			return err
		}
		defer func() {
			err = multierr.Combine(err, closeFile())
		}()
		logger = fileLogger
	}

	conf := config.Default()
	if argsParsed.ConfigFile != "" {
		if conf, err = config.Read(argsParsed.ConfigFile); err != nil {
			return err
		}
	}
	if argsParsed.Arm != "" {
		conf.Arm = argsParsed.Arm
	}
	res, err := runDemo(ctx, conf, clock.New(), logger)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(os.Stdout, res)
	return err
}

func runDemo(ctx context.Context, conf *config.Config, clk clock.Clock, logger logging.Logger) (routine.Result, error) {
	a := fake.NewArm(conf.Arm, spatialmath.NewPoseFromPoint(simulatedHome), logger)
	g := fakegripper.NewGripper(conf.Arm + "-jaw")

	r, err := routine.New(conf, a, g, clk, logger)
	if err != nil {
		return routine.Result{}, err
	}
	res, err := r.Run(ctx)
	if err != nil {
		return res, err
	}
	for _, m := range res.Moves {
		logger.Infow("move", "strategy", m.Strategy, "segments", m.Segments, "distance", m.Distance)
	}
	return res, nil
}

func printSchema(w io.Writer) error {
	md, err := json.MarshalIndent(config.Schema(), "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(md))
	return err
}
