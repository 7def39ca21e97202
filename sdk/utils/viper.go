// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"github.com/yadisk-tools/yadisk-sdk/sdk/config"
	"gopkg.in/ini.v1"
)

// Settings holds all logical keys. Tags:
// - vkey: Viper key, also the INI key
// - env: environment variable; derived from vkey when empty
// - persist: "true" to write the key into the INI
// - default: value used when the key is unset
type Settings struct {
	BaseURL      string `vkey:"yadisk_base_url"       env:"YADISK_BASE_URL"       persist:"true" default:"https://cloud-api.yandex.net/v1/"`
	AccessToken  string `vkey:"yadisk_access_token"   env:"YADISK_ACCESS_TOKEN"   persist:"true"`
	PollInterval string `vkey:"yadisk_poll_interval"  env:"YADISK_POLL_INTERVAL"  persist:"true" default:"3s"`
	Timeout      string `vkey:"yadisk_timeout"        env:"YADISK_TIMEOUT"        persist:"true"`

	AwsAccessKeyID     string `vkey:"aws_access_key_id"     env:"AWS_ACCESS_KEY_ID"     persist:"true"`
	AwsSecretAccessKey string `vkey:"aws_secret_access_key" env:"AWS_SECRET_ACCESS_KEY" persist:"true"`
	AwsSessionToken    string `vkey:"aws_session_token"     env:"AWS_SESSION_TOKEN"     persist:"false"`
	AwsRegion          string `vkey:"aws_region"            env:"AWS_REGION"            persist:"true"`
	AwsEndpointURL     string `vkey:"aws_endpoint_url"      env:"AWS_ENDPOINT_URL"      persist:"true"`
	S3Bucket           string `vkey:"s3_bucket"             env:"S3_BUCKET"             persist:"true"`
}

// DefaultIniPath is ~/.yadisk.ini, or ./.yadisk.ini when the home cannot be found.
func DefaultIniPath() string {
	home, err := homedir.Dir()
	if err != nil {
		return IniName
	}
	return home + string(os.PathSeparator) + IniName
}

// resolveEnvName: explicit > "default"
func resolveEnvName(env string) string {
	if env != "" && !strings.EqualFold(env, "null") {
		return env
	}
	return "default"
}

func bindEnv(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	rt := reflect.TypeOf(Settings{})
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		key := f.Tag.Get("vkey")
		if key == "" {
			continue
		}
		env := f.Tag.Get("env")
		if env == "" {
			env = strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
		_ = v.BindEnv(key, env)
		if def := f.Tag.Get("default"); def != "" {
			v.SetDefault(key, def)
		}
	}
}

// loadIniSection loads [DEFAULT] + [env] into v. Environment variables still win on Get.
func loadIniSection(v *viper.Viper, cfg *ini.File, env string) error {
	def := cfg.Section(ini.DefaultSection)
	merged := make(map[string]string)
	for _, k := range def.Keys() {
		merged[k.Name()] = k.Value()
	}
	if env != "" && cfg.HasSection(env) {
		for _, k := range cfg.Section(env).Keys() {
			merged[k.Name()] = k.Value()
		}
	}

	var buf bytes.Buffer
	for k, val := range merged {
		vSafe := strings.ReplaceAll(strings.ReplaceAll(val, `\`, `\\`), `"`, `\"`)
		_, _ = fmt.Fprintf(&buf, "%s = \"%s\"\n", k, vSafe)
	}
	v.SetConfigType("toml")
	return v.ReadConfig(&buf)
}

// LoadSettings resolves Settings from environment variables and the INI file at
// iniPath (DefaultIniPath when empty). A missing INI is not an error. The active
// section is env, else [DEFAULT] current_environment, else "default".
func LoadSettings(iniPath, env string) (*Settings, string, error) {
	if iniPath == "" {
		iniPath = DefaultIniPath()
	}
	v := viper.New()
	bindEnv(v)

	envName := resolveEnvName(env)
	if _, err := os.Stat(iniPath); err == nil {
		cfg, err := ini.Load(iniPath)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read %s: %w", iniPath, err)
		}
		if env == "" {
			if cur := cfg.Section(ini.DefaultSection).Key(CurrentEnvironment).String(); cur != "" {
				envName = cur
			}
		}
		if err := loadIniSection(v, cfg, envName); err != nil {
			return nil, "", fmt.Errorf("failed to load INI into viper: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, "", fmt.Errorf("failed to stat %s: %w", iniPath, err)
	}

	s := &Settings{}
	rv := reflect.ValueOf(s).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		if key := rt.Field(i).Tag.Get("vkey"); key != "" {
			rv.Field(i).SetString(v.GetString(key))
		}
	}
	return s, envName, nil
}

// LoadConfig is LoadSettings followed by Settings.Config.
func LoadConfig(iniPath, env string) (config.Config, error) {
	s, _, err := LoadSettings(iniPath, env)
	if err != nil {
		return config.Config{}, err
	}
	return s.Config()
}

// Config converts the settings into the SDK configuration.
func (s *Settings) Config() (config.Config, error) {
	poll, err := parseDuration(s.PollInterval)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid %s: %w", YadiskPollInterval, err)
	}
	timeout, err := parseDuration(s.Timeout)
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid %s: %w", YadiskTimeout, err)
	}
	return config.Config{
		Disk: config.DiskConfig{
			BaseURL:      s.BaseURL,
			AccessToken:  s.AccessToken,
			PollInterval: poll,
			Timeout:      timeout,
		},
		S3: config.S3Config{
			AccessKey:   s.AwsAccessKeyID,
			SecretKey:   s.AwsSecretAccessKey,
			AccessToken: s.AwsSessionToken,
			Region:      s.AwsRegion,
			EndpointURL: s.AwsEndpointURL,
			Bucket:      s.S3Bucket,
		},
	}, nil
}

// parseDuration accepts Go durations ("1m30s") and bare numbers of seconds.
func parseDuration(s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	if secs, err := cast.ToFloat64E(s); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return cast.ToDurationE(s)
}

// SaveSettings writes the persist:"true" fields of s into section env of the INI at
// iniPath, creating the file when missing, and marks env as current.
func SaveSettings(iniPath, env string, s *Settings) error {
	if iniPath == "" {
		iniPath = DefaultIniPath()
	}
	env = resolveEnvName(env)

	cfg := ini.Empty()
	if _, err := os.Stat(iniPath); err == nil {
		if cfg, err = ini.Load(iniPath); err != nil {
			return fmt.Errorf("failed to read %s: %w", iniPath, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", iniPath, err)
	}
	sec := cfg.Section(env)

	rv := reflect.ValueOf(s).Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.Tag.Get("persist") != "true" {
			continue
		}
		key := f.Tag.Get("vkey")
		val := rv.Field(i).String()
		if key == "" || val == "" {
			continue
		}
		sec.Key(key).SetValue(val)
	}

	cfg.Section(ini.DefaultSection).Key(CurrentEnvironment).SetValue(env)
	sec.Key(UpdatedEnvKey).SetValue(time.Now().UTC().Format(time.RFC3339))
	if err := cfg.SaveTo(iniPath); err != nil {
		return fmt.Errorf("failed to save ini: %w", err)
	}
	return nil
}
