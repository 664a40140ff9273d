package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"patc/internal/builtin"
	"patc/internal/config"
	"patc/internal/convert"
	"patc/internal/driver"
	"patc/internal/format"
)

// app — состояние одного запуска, собранное из конфигурации и флагов.
type app struct {
	cfg      *config.Config
	stderr   io.Writer
	colorOut bool
	colorErr bool
	quiet    bool
	timings  bool
	opts     driver.Options
	cleanup  []func(failed bool)
}

type appKey struct{}

func appFrom(cmd *cobra.Command) *app {
	if a, ok := cmd.Context().Value(appKey{}).(*app); ok {
		return a
	}
	return &app{cfg: config.Default(), stderr: cmd.ErrOrStderr()}
}

// errReported marks failures whose diagnostics are already on stderr.
var errReported = errors.New("reported")

func isReported(err error) bool {
	return errors.Is(err, errReported) || errors.Is(err, driver.ErrSyntax)
}

func setupCommand(cmd *cobra.Command, _ []string) error {
	root := cmd.Root()
	a := &app{stderr: cmd.ErrOrStderr()}

	cfgPath, err := root.PersistentFlags().GetString("config")
	if err != nil {
		return fmt.Errorf("failed to get config flag: %w", err)
	}
	if cfgPath != "" {
		a.cfg, err = config.Load(cfgPath)
	} else {
		var wd string
		if wd, err = os.Getwd(); err == nil {
			a.cfg, _, err = config.Discover(wd)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	colorFlag, err := root.PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(colorFlag) {
	case "on", "always":
		a.colorOut, a.colorErr = true, true
	case "off", "never":
	case "auto", "":
		a.colorOut, a.colorErr = isTerminal(stdoutFile(cmd)), isTerminal(stderrFile(cmd))
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}

	if a.quiet, err = root.PersistentFlags().GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if a.timings, err = root.PersistentFlags().GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	a.opts.MaxDiagnostics = a.cfg.Render.MaxDiagnostics
	maxDiagnostics, err := root.PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if maxDiagnostics > 0 {
		a.opts.MaxDiagnostics = maxDiagnostics
	}

	a.opts.Measure = a.cfg.Measure()
	width, err := root.PersistentFlags().GetString("width")
	if err != nil {
		return fmt.Errorf("failed to get width flag: %w", err)
	}
	if width != "" {
		if a.opts.Measure, err = format.ParseMeasure(width); err != nil {
			return fmt.Errorf("invalid --width: %w", err)
		}
	}
	a.opts.Timings = a.timings

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	a.cleanup = append(a.cleanup, stopProfiling)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(context.WithValue(ctx, appKey{}, a))

	stopTracing, err := setupTracing(cmd)
	if err != nil {
		stopProfiling(true)
		return err
	}
	a.cleanup = append(a.cleanup, stopTracing)
	return nil
}

func teardownCommand(cmd *cobra.Command, _ []string) error {
	appFrom(cmd).finish(false)
	return nil
}

// finish runs cleanups in reverse order exactly once.
func (a *app) finish(failed bool) {
	for i := len(a.cleanup) - 1; i >= 0; i-- {
		a.cleanup[i](failed)
	}
	a.cleanup = nil
}

// fail закрывает трассировку с дампом ring-буфера и возвращает err.
// PersistentPostRunE не вызывается, если RunE вернул ошибку.
func (a *app) fail(err error) error {
	a.finish(true)
	return err
}

// registry builds the builtin converters plus constants from [converters].
func (a *app) registry() (*convert.Registry[builtin.Event], error) {
	reg := builtin.NewRegistry()
	// константы из конфига перекрывают встроенные слова
	if err := builtin.RegisterConstants(reg, a.cfg.Converters); err != nil {
		return nil, fmt.Errorf("config %s: %w", a.cfg.Path, err)
	}
	return reg, nil
}
