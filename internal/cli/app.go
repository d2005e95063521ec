// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
	"github.com/scc-digitalhub/zenodo-cli/sdk/services/deposit"
	"github.com/scc-digitalhub/zenodo-cli/sdk/utils"
)

// app is the per-invocation state every subcommand starts from.
type app struct {
	settings utils.Settings
	log      *zap.Logger
	out      io.Writer
	errOut   io.Writer
	verbose  bool
}

// flagKeys maps flag names to the settings keys they override.
var flagKeys = map[string]string{
	"token":            utils.TokenKey,
	"base-url":         utils.BaseURLKey,
	"timeout":          utils.TimeoutKey,
	"max-file-size":    utils.MaxFileSizeKey,
	"total-size-limit": utils.TotalSizeLimitKey,
}

// newApp resolves the settings once, with this precedence:
// flag > environment variable > settings file > default.
// Extra flag names listed in bindKeys are bound as well (e.g. author on upload).
func newApp(cmd *cobra.Command, bindKeys map[string]string) (*app, error) {
	flags := cmd.Flags()
	sandbox, _ := flags.GetBool("sandbox")
	verbose, _ := flags.GetBool("verbose")
	env := config.ResolveEnvironment(sandbox)

	v := viper.New()
	utils.BindEnv(v, env)
	bindFlags(v, flags, flagKeys)
	bindFlags(v, flags, bindKeys)

	source := utils.SettingsPath()
	if source != "" {
		if err := utils.LoadSettingsFile(v, source, env); err != nil {
			return nil, err
		}
	}
	settings, err := utils.ResolveSettings(v, env, source)
	if err != nil {
		if source != "" {
			return nil, fmt.Errorf("%w (settings file %s)", err, source)
		}
		return nil, err
	}

	errOut := cmd.ErrOrStderr()
	log := utils.NewLogger(errOut, verbose, isTerminal(errOut)).
		With(zap.String("session", utils.NewSessionID()))
	log.Debug("settings resolved",
		zap.String("environment", env.String()),
		zap.String("base_url", settings.BaseURL),
		zap.String("settings_file", source),
		zap.Bool("token", settings.Token != ""))

	return &app{
		settings: settings,
		log:      log,
		out:      cmd.OutOrStdout(),
		errOut:   errOut,
		verbose:  verbose,
	}, nil
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		if f := flags.Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func (a *app) sdkConfig() (config.Config, error) {
	if a.settings.Token == "" {
		return config.Config{}, missingTokenError(a.settings.Environment)
	}
	return a.settings.Config(userAgent()), nil
}

// progressWriter is stderr when it is a terminal; progress lines are noise in logs.
func (a *app) progressWriter() io.Writer {
	if isTerminal(a.errOut) || a.verbose {
		return a.errOut
	}
	return nil
}

func missingTokenError(env config.Environment) error {
	return &hintError{
		err:  deposit.ErrMissingToken,
		hint: "pass --token, set " + utils.TokenEnvVars[env.String()] + " or run 'zenodo configure'",
	}
}

type hintError struct {
	err  error
	hint string
}

func (e *hintError) Error() string { return e.err.Error() + " (" + e.hint + ")" }
func (e *hintError) Unwrap() error { return e.err }

func isTerminal(stream interface{}) bool {
	f, ok := stream.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
