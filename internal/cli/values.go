package cli

import (
	"fmt"
	"os"

	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"

	"github.com/artisanexperiences/carebook/internal/config"
	"github.com/artisanexperiences/carebook/internal/validation"
)

// readValues merges a YAML values file with --set pairs; pairs win.
func readValues(path string, sets map[string]string) (validation.Values, error) {
	values := validation.Values{}

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, withExitCode(config.ExitInvalidArguments, fmt.Errorf("reading values: %w", err))
		}
		decoded, err := decodeValues(content)
		if err != nil {
			return nil, withExitCode(config.ExitInvalidArguments, fmt.Errorf("parsing values %s: %w", path, err))
		}
		for k, v := range decoded {
			values[k] = v
		}
	}

	for k, v := range sets {
		values[k] = v
	}
	return values, nil
}

// decodeValues reads a flat YAML mapping. Scalars of any type become text, so
// "age: 34" and "age: '34'" are the same.
func decodeValues(content []byte) (map[string]string, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(raw))
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           &out,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, err
	}
	return out, nil
}
