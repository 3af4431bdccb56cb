package config

import (
	"fmt"
	"reflect"

	sserr "github.com/StricklySoft/stricklysoft-community/pkg/errors"
)

// Validator is implemented by config structs that check themselves after
// loading. Errors that are already containers are returned unchanged;
// others are wrapped unclassified.
type Validator interface {
	Validate() error
}

func validate(cfg any, rv reflect.Value) error {
	if err := validateRequired(rv, ""); err != nil {
		return err
	}

	v, ok := cfg.(Validator)
	if !ok {
		return nil
	}
	if err := v.Validate(); err != nil {
		if _, isContainer := sserr.AsError(err); isContainer {
			return err
		}
		return sserr.Unclassified(fmt.Errorf("config: validation failed: %w", err))
	}
	return nil
}

// validateRequired checks required:"true" fields, reporting the dotted
// path of the first empty one (e.g. "Postgres.Host").
func validateRequired(rv reflect.Value, path string) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field, sf := rv.Field(i), rt.Field(i)
		if !field.CanSet() {
			continue
		}

		fieldPath := sf.Name
		if path != "" {
			fieldPath = path + "." + sf.Name
		}

		if isNested(field) {
			if err := validateRequired(field, fieldPath); err != nil {
				return err
			}
			continue
		}
		if sf.Tag.Get("required") == "true" && field.IsZero() {
			return sserr.Unclassified(fmt.Errorf("config: required field %q is empty", fieldPath))
		}
	}
	return nil
}
