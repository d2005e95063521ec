// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"

	"github.com/scc-digitalhub/zenodo-cli/sdk/config"
)

var ErrInvalidSetting = errors.New("invalid setting")

// Settings is resolved once per invocation (flag > env > settings file > default)
// and passed down by value. Nothing writes to it afterwards.
type Settings struct {
	Environment      config.Environment
	BaseURL          string
	Token            string
	Author           string
	Affiliation      string
	MaxFileSizeGB    float64
	TotalSizeLimitGB float64
	Timeout          time.Duration
	S3               config.S3Config

	// Source is the settings file that was read, empty if none.
	Source string
}

// Config turns the settings into the SDK configuration.
func (s Settings) Config(userAgent string) config.Config {
	return config.Config{
		Core: config.CoreConfig{
			BaseURL:     s.BaseURL,
			AccessToken: s.Token,
			UserAgent:   userAgent,
			Timeout:     s.Timeout,
		},
		S3: s.S3,
	}
}

// BindEnv binds the environment variables and defaults of every key to v.
func BindEnv(v *viper.Viper, env config.Environment) {
	keys := make([]string, 0, len(EnvVars))
	for k := range EnvVars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		_ = v.BindEnv(key, EnvVars[key])
	}
	if name := TokenEnvVars[env.String()]; name != "" {
		_ = v.BindEnv(TokenKey, name)
	}

	v.SetDefault(MaxFileSizeKey, DefaultMaxFileSizeGB)
	v.SetDefault(TotalSizeLimitKey, DefaultTotalSizeLimitGB)
	v.SetDefault(TimeoutKey, time.Duration(0))
}

// LoadSettingsFile loads [DEFAULT] + [env] of the INI file into v.
// Keys of the environment section win over [DEFAULT]; flags and env still win over both.
func LoadSettingsFile(v *viper.Viper, iniPath string, env config.Environment) error {
	cfg, err := ini.Load(iniPath)
	if err != nil {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	return loadIniSectionIntoViper(v, cfg, env.String())
}

func loadIniSectionIntoViper(v *viper.Viper, cfg *ini.File, env string) error {
	merged := make(map[string]string)
	for _, k := range cfg.Section(ini.DefaultSection).Keys() {
		merged[k.Name()] = k.Value()
	}
	if env != "" && cfg.HasSection(env) {
		for _, k := range cfg.Section(env).Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	for _, k := range keys {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(merged[k], `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	v.SetConfigType("toml")
	return v.ReadConfig(&buf)
}

// ResolveSettings reads the final values out of v. Size limits and the
// timeout are validated here; a bad value is reported with the key it came from.
func ResolveSettings(v *viper.Viper, env config.Environment, source string) (Settings, error) {
	maxFile, err := sizeLimit(v, MaxFileSizeKey)
	if err != nil {
		return Settings{}, err
	}
	maxTotal, err := sizeLimit(v, TotalSizeLimitKey)
	if err != nil {
		return Settings{}, err
	}
	timeout, err := timeoutValue(v.Get(TimeoutKey))
	if err != nil {
		return Settings{}, err
	}

	baseURL := strings.TrimSpace(v.GetString(BaseURLKey))
	if baseURL == "" {
		baseURL = env.BaseURL()
	}
	return Settings{
		Environment:      env,
		BaseURL:          baseURL,
		Token:            strings.TrimSpace(v.GetString(TokenKey)),
		Author:           v.GetString(AuthorKey),
		Affiliation:      v.GetString(AffiliationKey),
		MaxFileSizeGB:    maxFile,
		TotalSizeLimitGB: maxTotal,
		Timeout:          timeout,
		S3: config.S3Config{
			AccessKey:   v.GetString(AwsAccessKeyID),
			SecretKey:   v.GetString(AwsSecretAccessKey),
			AccessToken: v.GetString(AwsSessionToken),
			Region:      v.GetString(AwsRegion),
			EndpointURL: v.GetString(AwsEndpointURL),
		},
		Source: source,
	}, nil
}

// sizeLimit is a size in GB; it must be a finite number greater than zero.
func sizeLimit(v *viper.Viper, key string) (float64, error) {
	raw := v.Get(key)
	gb, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s = %v is not a number", ErrInvalidSetting, key, raw)
	}
	if math.IsNaN(gb) || math.IsInf(gb, 0) || gb <= 0 {
		return 0, fmt.Errorf("%w: %s = %v must be a positive size in GB", ErrInvalidSetting, key, raw)
	}
	return gb, nil
}

// timeoutValue accepts a Go duration ("90s", "2m") or a bare number of seconds.
func timeoutValue(raw interface{}) (time.Duration, error) {
	var d time.Duration
	switch t := raw.(type) {
	case nil:
		return 0, nil
	case time.Duration:
		d = t
	case string:
		str := strings.TrimSpace(t)
		if str == "" {
			return 0, nil
		}
		if secs, err := strconv.ParseFloat(str, 64); err == nil {
			if d, err = secondsToDuration(secs); err != nil {
				return 0, err
			}
			break
		}
		parsed, err := cast.ToDurationE(str)
		if err != nil {
			return 0, fmt.Errorf("%w: %s = %q is not a duration (e.g. 30s, 5m)", ErrInvalidSetting, TimeoutKey, t)
		}
		d = parsed
	default:
		secs, err := cast.ToFloat64E(t)
		if err != nil {
			return 0, fmt.Errorf("%w: %s = %v is not a duration", ErrInvalidSetting, TimeoutKey, t)
		}
		if d, err = secondsToDuration(secs); err != nil {
			return 0, err
		}
	}
	if d < 0 {
		return 0, fmt.Errorf("%w: %s = %v must not be negative", ErrInvalidSetting, TimeoutKey, raw)
	}
	return d, nil
}

func secondsToDuration(secs float64) (time.Duration, error) {
	if math.IsNaN(secs) || math.IsInf(secs, 0) {
		return 0, fmt.Errorf("%w: %s = %v is not a duration", ErrInvalidSetting, TimeoutKey, secs)
	}
	return time.Duration(secs * float64(time.Second)), nil
}
