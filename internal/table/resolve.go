package table

import (
	"fmt"
	"reflect"
	"strings"
	"time"
)

// lookupPath resolves a dotted field path on row. It reports false when any
// segment is missing or the final value is nil.
func lookupPath(row any, path string) (any, bool) {
	v := reflect.ValueOf(row)
	for _, part := range strings.Split(path, ".") {
		v = indirect(v)
		if !v.IsValid() {
			return nil, false
		}
		switch v.Kind() {
		case reflect.Struct:
			field, ok := fieldByName(v, part)
			if !ok {
				return nil, false
			}
			v = field
		case reflect.Map:
			keyType := v.Type().Key()
			if keyType.Kind() != reflect.String {
				return nil, false
			}
			item := v.MapIndex(reflect.ValueOf(part).Convert(keyType))
			if !item.IsValid() {
				return nil, false
			}
			v = item
		default:
			return nil, false
		}
	}
	v = indirect(v)
	if !v.IsValid() || !v.CanInterface() {
		return nil, false
	}
	return v.Interface(), true
}

func indirect(v reflect.Value) reflect.Value {
	for v.IsValid() && (v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}
		}
		v = v.Elem()
	}
	return v
}

func fieldByName(v reflect.Value, name string) (reflect.Value, bool) {
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		if sf.Name == name || jsonName(sf) == name {
			return v.Field(i), true
		}
	}
	return reflect.Value{}, false
}

func jsonName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")
	return name
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func formatValue(v any) string {
	if ptr := indirect(reflect.ValueOf(v)); ptr.IsValid() && ptr.CanInterface() {
		v = ptr.Interface()
	} else {
		return Placeholder
	}
	switch val := v.(type) {
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return Placeholder
		}
		return val.Format(defaultDateLayout)
	case []string:
		return strings.Join(val, ", ")
	case fmt.Stringer:
		return val.String()
	case bool:
		if val {
			return "Yes"
		}
		return "No"
	default:
		return fmt.Sprint(val)
	}
}

func formatDate(v any, layout string) string {
	if layout == "" {
		layout = defaultDateLayout
	}
	switch val := v.(type) {
	case time.Time:
		if val.IsZero() {
			return Placeholder
		}
		return val.Format(layout)
	case *time.Time:
		if val == nil || val.IsZero() {
			return Placeholder
		}
		return val.Format(layout)
	default:
		return formatValue(v)
	}
}
