// Package config loads service configuration into tagged structs.
//
// Values are layered, later sources overriding earlier ones:
//
//  1. envDefault struct tags
//  2. an optional YAML (.yaml, .yml) or JSON (.json) file
//  3. environment variables named by env tags, joined with the loader's
//     prefix and the env tags of enclosing structs
//
// Fields tagged required:"true" must be non-zero after all layers apply,
// and a struct implementing [Validator] is validated last:
//
//	type ServiceConfig struct {
//	    HTTPAddr string          `yaml:"http_addr" env:"HTTP_ADDR" envDefault:":8080"`
//	    Postgres postgres.Config `yaml:"postgres" env:"POSTGRES"`
//	}
//
//	cfg := config.MustLoad[ServiceConfig](config.New().WithEnvPrefix("COMMUNITY"))
//	// COMMUNITY_POSTGRES_HOST overrides cfg.Postgres.Host
//
// Every failure is returned as an unclassified [*sserr.Error].
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

var durationType = reflect.TypeOf(time.Duration(0))

// Loader loads configuration from defaults, a file, and the environment.
type Loader struct {
	envPrefix string
	filePath  string
	lookupEnv func(string) (string, bool)
}

// New returns a Loader reading the process environment.
func New() *Loader {
	return &Loader{lookupEnv: os.LookupEnv}
}

// WithEnvPrefix sets the prefix prepended (with "_") to every env var name.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = strings.ToUpper(prefix)
	return l
}

// WithFile sets an optional config file. A missing file is ignored.
func (l *Loader) WithFile(path string) *Loader {
	l.filePath = path
	return l
}

// WithLookupEnv replaces the environment lookup, mainly for tests.
func (l *Loader) WithLookupEnv(lookup func(string) (string, bool)) *Loader {
	l.lookupEnv = lookup
	return l
}

// Load fills cfg, which must be a non-nil pointer to a struct.
func (l *Loader) Load(cfg any) error {
	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return sserr.Unclassified(fmt.Errorf("config: Load requires a non-nil pointer to a struct, got %T", cfg))
	}
	rv = rv.Elem()

	if err := applyDefaults(rv); err != nil {
		return err
	}
	if l.filePath != "" {
		if err := l.loadFile(cfg); err != nil {
			return err
		}
	}
	if err := l.applyEnv(rv, l.envPrefix); err != nil {
		return err
	}
	return validate(cfg, rv)
}

// MustLoad loads a T and panics on failure. Use it in main only.
func MustLoad[T any](loader *Loader) T {
	var cfg T
	if err := loader.Load(&cfg); err != nil {
		panic(fmt.Sprintf("config: MustLoad failed: %v", err))
	}
	return cfg
}

func (l *Loader) loadFile(cfg any) error {
	if strings.Contains(l.filePath, "..") {
		return sserr.Unclassified(fmt.Errorf("config: file path %q must not contain '..'", l.filePath))
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return sserr.Unclassified(fmt.Errorf("config: read %q: %w", l.filePath, err))
	}

	switch ext := strings.ToLower(filepath.Ext(l.filePath)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".json":
		err = json.Unmarshal(data, cfg)
	default:
		return sserr.Unclassified(fmt.Errorf("config: unsupported file extension %q (use .yaml, .yml, or .json)", ext))
	}
	if err != nil {
		return sserr.Unclassified(fmt.Errorf("config: parse %q: %w", l.filePath, err))
	}
	return nil
}

// isNested reports whether a field is a struct to descend into.
func isNested(field reflect.Value) bool {
	return field.Kind() == reflect.Struct && field.Type() != reflect.TypeOf(time.Time{})
}

func applyDefaults(rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		if isNested(field) {
			if err := applyDefaults(field); err != nil {
				return err
			}
			continue
		}

		def, ok := sf.Tag.Lookup("envDefault")
		if !ok || !field.IsZero() {
			continue
		}
		if err := setField(field, def); err != nil {
			return sserr.Unclassified(fmt.Errorf("config: default for field %q: %w", sf.Name, err))
		}
	}
	return nil
}

func (l *Loader) applyEnv(rv reflect.Value, prefix string) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}
		name := sf.Tag.Get("env")

		if isNested(field) {
			if err := l.applyEnv(field, joinEnv(prefix, name)); err != nil {
				return err
			}
			continue
		}
		if name == "" {
			continue
		}

		key := joinEnv(prefix, name)
		val, ok := l.lookupEnv(key)
		if !ok {
			continue
		}
		if err := setField(field, val); err != nil {
			return sserr.Unclassified(fmt.Errorf("config: env var %s for field %q: %w", key, sf.Name, err))
		}
	}
	return nil
}

func joinEnv(prefix, name string) string {
	switch {
	case prefix == "":
		return name
	case name == "":
		return prefix
	default:
		return prefix + "_" + name
	}
}

func setField(field reflect.Value, value string) error {
	if field.Type() == durationType {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.SetInt(int64(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(n)
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice element type %s", field.Type().Elem())
		}
		parts := strings.Split(value, ",")
		slice := reflect.MakeSlice(field.Type(), len(parts), len(parts))
		for i, p := range parts {
			slice.Index(i).SetString(strings.TrimSpace(p))
		}
		field.Set(slice)
	default:
		return fmt.Errorf("unsupported field type %s", field.Type())
	}
	return nil
}
