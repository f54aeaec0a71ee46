package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeOf(time.Duration(0))

// applyEnv overrides every field of the struct pointed to by s that carries an `env`
// tag whose variable is set. Nested structs are walked.
func applyEnv(s interface{}) error {
	val := reflect.Indirect(reflect.ValueOf(s))
	if val.Kind() != reflect.Struct {
		return nil
	}

	typ := val.Type()
	for i := 0; i < val.NumField(); i++ {
		field, meta := val.Field(i), typ.Field(i)

		if field.Kind() == reflect.Struct {
			if err := applyEnv(field.Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := meta.Tag.Get("env")
		if key == "" {
			continue
		}
		raw, ok := os.LookupEnv(key)
		if !ok {
			continue
		}
		if err := setFromEnv(field, raw); err != nil {
			return fmt.Errorf("%s (%s): %w", key, meta.Name, err)
		}
	}
	return nil
}

// setFromEnv parses raw into field. Slices are comma separated and maps are comma
// separated key=value pairs. Blank items are dropped.
func setFromEnv(field reflect.Value, raw string) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(raw)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == durationType {
			d, err := time.ParseDuration(raw)
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			field.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid integer: %w", err)
		}
		field.SetInt(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(raw, field.Type().Bits())
		if err != nil {
			return fmt.Errorf("invalid number: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("invalid boolean: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice of %s", field.Type().Elem().Kind())
		}
		items := splitList(raw)
		field.Set(reflect.ValueOf(items))

	case reflect.Map:
		if field.Type().Key().Kind() != reflect.String || field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported map type %s", field.Type())
		}
		m := make(map[string]string)
		for _, pair := range splitList(raw) {
			k, v, ok := strings.Cut(pair, "=")
			k = strings.TrimSpace(k)
			if !ok || k == "" {
				return fmt.Errorf("invalid pair %q, want key=value", pair)
			}
			m[k] = strings.TrimSpace(v)
		}
		field.Set(reflect.ValueOf(m))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}
	return nil
}

func splitList(raw string) []string {
	items := []string{}
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
