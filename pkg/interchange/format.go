package interchange

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"gopkg.in/yaml.v3"
)

// Format names a human-readable or debug serialization.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
	CBOR Format = "cbor"
)

// encMode uses Core Deterministic Encoding so the same entries always
// produce the same bytes.
var encMode cbor.EncMode

var decMode cbor.DecMode

func init() {
	var err error
	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("interchange: CBOR encoder initialization failed: " + err.Error())
	}
	decMode, err = cbor.DecOptions{
		DefaultMapType: reflect.TypeOf(map[string]any(nil)),
	}.DecMode()
	if err != nil {
		panic("interchange: CBOR decoder initialization failed: " + err.Error())
	}
}

// ParseFormat accepts yaml, yml, json or cbor, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	case "cbor":
		return CBOR, nil
	default:
		return "", fmt.Errorf("interchange: unknown format %q", s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", fmt.Errorf("interchange: %s has no extension", path)
	}
	return ParseFormat(ext)
}

// Marshal serializes v in format f.
func Marshal(f Format, v any) ([]byte, error) {
	switch f {
	case YAML:
		return yaml.Marshal(v)
	case JSON:
		return json.MarshalIndent(v, "", "  ")
	case CBOR:
		return encMode.Marshal(v)
	default:
		return nil, fmt.Errorf("interchange: unknown format %q", f)
	}
}

// Unmarshal decodes data in format f into v.
func Unmarshal(f Format, data []byte, v any) error {
	switch f {
	case YAML:
		return yaml.Unmarshal(data, v)
	case JSON:
		return json.Unmarshal(data, v)
	case CBOR:
		return decMode.Unmarshal(data, v)
	default:
		return fmt.Errorf("interchange: unknown format %q", f)
	}
}

// Decode is Unmarshal into a fresh T.
func Decode[T any](f Format, data []byte) (T, error) {
	var v T
	err := Unmarshal(f, data, &v)
	return v, err
}
