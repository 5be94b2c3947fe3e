package config

import (
	"io"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.viam.com/utils"
)

// AttributeMap is a loosely typed set of config values, as found in a JSON object.
type AttributeMap map[string]interface{}

// FromAttributes overlays attrs onto the default config. Durations may be given as strings such as "2s".
// Unknown keys are an error. The result is not validated.
func FromAttributes(attrs AttributeMap) (*Config, error) {
	conf := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     "json",
		Result:      conf,
		ErrorUnused: true,
		DecodeHook:  mapstructure.StringToTimeDurationHookFunc(),
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]interface{}(attrs)); err != nil {
		return nil, errors.Wrap(err, "error decoding config")
	}
	return conf, nil
}

// FromReader reads a config from r and validates it. The file is JSON5, so hand-edited configs may carry
// comments, unquoted keys and trailing commas. originalPath is only used in errors.
func FromReader(originalPath string, r io.Reader) (*Config, error) {
	contents, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read config %q", originalPath)
	}
	var attrs AttributeMap
	if err := json5.Unmarshal(contents, &attrs); err != nil {
		return nil, errors.Wrapf(err, "cannot parse config %q", originalPath)
	}
	conf, err := FromAttributes(attrs)
	if err != nil {
		return nil, err
	}
	if err := conf.Validate(originalPath); err != nil {
		return nil, err
	}
	return conf, nil
}

// Read reads a JSON5 config from the given file and validates it.
func Read(filePath string) (*Config, error) {
	//nolint:gosec
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	return FromReader(filePath, f)
}
