// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
)

// SettingsValues is what the configure command persists.
type SettingsValues struct {
	Author      string
	Affiliation string
	Token       string
	BaseURL     string
}

// SettingsPath returns the settings file to read: the current directory first,
// then the home directory. It returns "" when neither exists.
func SettingsPath() string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	return FindSettings(dirs...)
}

// FindSettings returns the first dir/.zenodo.ini that is a regular file.
func FindSettings(dirs ...string) string {
	for _, dir := range dirs {
		p := filepath.Join(dir, SettingsFileName)
		if st, err := os.Stat(p); err == nil && st.Mode().IsRegular() {
			return p
		}
	}
	return ""
}

// TargetSettingsPath is where configure writes: the home directory when global, the current directory otherwise.
func TargetSettingsPath(global bool) (string, error) {
	if global {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate home directory: %w", err)
		}
		return filepath.Join(home, SettingsFileName), nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, SettingsFileName), nil
}

// ReadSettingsFile returns the values stored for env. A missing file yields empty values.
func ReadSettingsFile(iniPath string, env config.Environment) (SettingsValues, error) {
	if _, err := os.Stat(iniPath); errors.Is(err, os.ErrNotExist) {
		return SettingsValues{}, nil
	}
	cfg, err := ini.Load(iniPath)
	if err != nil {
		return SettingsValues{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	def := cfg.Section(ini.DefaultSection)
	sec := cfg.Section(env.String())
	return SettingsValues{
		Author:      def.Key(AuthorKey).String(),
		Affiliation: def.Key(AffiliationKey).String(),
		Token:       sec.Key(TokenKey).String(),
		BaseURL:     sec.Key(BaseURLKey).String(),
	}, nil
}

// WriteSettings updates (or creates) the settings file. Empty values leave
// the stored ones untouched. The file holds tokens, so it is kept private.
func WriteSettings(iniPath string, env config.Environment, values SettingsValues) error {
	cfg := ini.Empty()
	if _, err := os.Stat(iniPath); err == nil {
		if cfg, err = ini.Load(iniPath); err != nil {
			return fmt.Errorf("failed to read settings file: %w", err)
		}
	}

	def := cfg.Section(ini.DefaultSection)
	setIfNotEmpty(def, AuthorKey, values.Author)
	setIfNotEmpty(def, AffiliationKey, values.Affiliation)

	sec := cfg.Section(env.String())
	setIfNotEmpty(sec, TokenKey, values.Token)
	setIfNotEmpty(sec, BaseURLKey, values.BaseURL)

	if err := cfg.SaveTo(iniPath); err != nil {
		return fmt.Errorf("failed to save settings file: %w", err)
	}
	return os.Chmod(iniPath, 0o600)
}

func setIfNotEmpty(sec *ini.Section, key, value string) {
	if value != "" {
		sec.Key(key).SetValue(value)
	}
}
