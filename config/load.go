package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"
)

// Format is the encoding of a configuration file.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unsupported config file %s: want .toml, .yaml or .yml", path)
}

// Load reads the file at path on top of Default and validates the result.
// An empty path returns the defaults.
func Load(path string) (Document, error) {
	doc := Default()
	if path == "" {
		return doc, nil
	}
	format, err := FormatOf(path)
	if err != nil {
		return Document{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := Decode(data, format, &doc); err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Decode superimposes data on doc. Keys that doc does not know are errors.
func Decode(data []byte, format Format, doc *Document) error {
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), doc)
		if err != nil {
			return fmt.Errorf("failed to decode configuration data: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}
			return fmt.Errorf("unknown configuration keys: %s", strings.Join(keys, ", "))
		}
		return nil
	case FormatYAML:
		// only fields we defined are allowed, so no yaml.Unmarshal here
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(doc); err != nil && err != io.EOF {
			return fmt.Errorf("failed to decode configuration data: %w", err)
		}
		return nil
	}
	return fmt.Errorf("unsupported config format %q", format)
}

// Dump encodes doc in the given format.
func Dump(doc Document, format Format) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case FormatTOML:
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal config to toml: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("failed to marshal config to yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", format)
	}
	return buf.Bytes(), nil
}
