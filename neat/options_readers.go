package neat

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// LoadYAMLOptions loads NEAT Options encoded as a YAML document.
func LoadYAMLOptions(r io.Reader) (*Options, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	opts := DefaultOptions()
	if err = yaml.Unmarshal(content, opts); err != nil {
		return nil, errors.Wrap(err, "failed to decode NEAT options from YAML")
	}

	if err = InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err = opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return opts, nil
}

// LoadOptions loads NEAT Options encoded as "name value" lines, in the
// plain-text format the original NEAT tooling used.
func LoadOptions(r io.Reader) (*Options, error) {
	opts := DefaultOptions()
	var name string
	var param string
	for {
		_, err := fmt.Fscanf(r, "%s %v\n", &name, &param)
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		switch name {
		case "demography":
			opts.Demography = cast.ToInt(param)
		case "sensor":
			opts.Sensor = cast.ToInt(param)
		case "output":
			opts.Output = cast.ToInt(param)
		case "bias":
			opts.Bias = cast.ToBool(param)
		case "initState":
			opts.InitState = InitialTopology(param)
		case "log_level":
			opts.LogLevel = param
		default:
			return nil, errors.Errorf("unknown configuration parameter found: %s = %s", name, param)
		}
	}

	if err := InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// LoadINIOptions loads NEAT Options from an INI document with a single
// [NEAT] section, the format the wider NEAT-Python-derived tooling in
// the ecosystem favors over the plain key/value format above.
func LoadINIOptions(path string) (*Options, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
	}, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load INI config file %q", path)
	}

	opts := DefaultOptions()
	if err := cfg.Section("NEAT").MapTo(opts); err != nil {
		return nil, errors.Wrap(err, "failed to map [NEAT] section onto options")
	}
	if key, err := cfg.Section("NEAT").GetKey("initState"); err == nil {
		opts.InitState = InitialTopology(key.String())
	}

	if err := InitLogger(opts.LogLevel); err != nil {
		return nil, errors.Wrap(err, "failed to initialize logger")
	}
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid NEAT options")
	}
	return opts, nil
}

// ReadOptionsFromFile reads NEAT options from the given file path,
// dispatching on its extension: ".yml"/".yaml" decode as YAML, ".ini"
// decodes as INI, anything else is treated as the plain-text format.
func ReadOptionsFromFile(configFilePath string) (*Options, error) {
	if strings.HasSuffix(configFilePath, "ini") {
		return LoadINIOptions(configFilePath)
	}

	configFile, err := os.Open(configFilePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config file")
	}
	defer configFile.Close()

	if strings.HasSuffix(configFile.Name(), "yml") || strings.HasSuffix(configFile.Name(), "yaml") {
		return LoadYAMLOptions(configFile)
	}
	return LoadOptions(configFile)
}
