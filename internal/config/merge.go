package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Top-level YAML config key names used for shallow merge.
const (
	keySources  = "sources"
	keyPageSize = "page_size"
	keyTimeout  = "timeout"
	keyStrict   = "strict"
	keyRequired = "required_version"
	keyLogging  = "logging"
	keyCache    = "cache"
	keyS3       = "s3"
)

// knownTopLevelKeys lists the YAML keys that correspond to exported Config fields.
// Keys not in this list are silently ignored during merge.
//
//nolint:gochecknoglobals // Compile-time constant lookup table.
var knownTopLevelKeys = map[string]bool{
	keySources:  true,
	keyPageSize: true,
	keyTimeout:  true,
	keyStrict:   true,
	keyRequired: true,
	keyLogging:  true,
	keyCache:    true,
	keyS3:       true,
}

// ShallowMergeYAML loads a YAML file and merges its top-level keys onto
// the target Config. Keys present in the overlay replace entire sections
// in the target. Keys absent in the overlay are left unchanged.
func ShallowMergeYAML(target *Config, overlayPath string) error {
	if target == nil {
		return errors.New("nil target *Config in ShallowMergeYAML")
	}

	data, err := os.ReadFile(overlayPath)
	if err != nil {
		return fmt.Errorf("reading overlay file %s: %w", overlayPath, err)
	}

	var overlay map[string]interface{}
	if err = yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing overlay YAML from %s: %w", overlayPath, err)
	}

	// Empty or comment-only file: nothing to merge.
	if len(overlay) == 0 {
		return nil
	}

	for key, value := range overlay {
		if !knownTopLevelKeys[key] {
			continue
		}

		// Re-marshal the single section so we can unmarshal it onto the
		// strongly-typed target field.
		sectionBytes, marshalErr := yaml.Marshal(value)
		if marshalErr != nil {
			return fmt.Errorf("re-marshalling overlay section %q: %w", key, marshalErr)
		}

		if err = unmarshalSection(target, key, sectionBytes); err != nil {
			return fmt.Errorf("applying overlay section %q: %w", key, err)
		}
	}

	return nil
}

// unmarshalSection unmarshals raw YAML bytes into the correct field of target.
// Each section is unmarshalled into a fresh zero value so the overlay replaces
// the section instead of merging into it.
func unmarshalSection(target *Config, key string, data []byte) error {
	switch key {
	case keySources:
		var v []string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Sources = v
	case keyPageSize:
		var v int
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.PageSize = v
	case keyTimeout:
		var v time.Duration
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Timeout = v
	case keyStrict:
		var v bool
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Strict = v
	case keyRequired:
		var v string
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.RequiredVersion = v
	case keyLogging:
		var v LoggingConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Logging = v
	case keyCache:
		var v CacheConfig
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.Cache = v
	case keyS3:
		var v S3Config
		if err := yaml.Unmarshal(data, &v); err != nil {
			return err
		}
		target.S3 = v
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
