package mystore

import (
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"
)

func applyQuery[T any](items []T, filters []Filter, orderByField string) ([]T, error) {
	result := make([]T, 0, len(items))
	for _, item := range items {
		ok, err := matchesAll(item, filters)
		if err != nil {
			return nil, err
		}
		if ok {
			result = append(result, item)
		}
	}

	if orderByField == "" {
		return result, nil
	}

	descending := strings.HasPrefix(orderByField, "-")
	field := strings.TrimPrefix(orderByField, "-")

	var sortErr error
	sort.SliceStable(result, func(i, j int) bool {
		left, err := fieldValue(result[i], field)
		if err != nil {
			sortErr = err
			return false
		}
		right, err := fieldValue(result[j], field)
		if err != nil {
			sortErr = err
			return false
		}
		cmp, err := compareValues(left, right)
		if err != nil {
			sortErr = err
			return false
		}
		if descending {
			return cmp > 0
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	return result, nil
}

func matchesAll(item any, filters []Filter) (bool, error) {
	for _, f := range filters {
		v, err := fieldValue(item, f.Field)
		if err != nil {
			return false, err
		}
		cmp, err := compareValues(v, reflect.ValueOf(f.Value))
		if err != nil {
			return false, fmt.Errorf("error comparing field %s: %s", f.Field, err)
		}

		var ok bool
		switch f.Compare {
		case "=", "==":
			ok = cmp == 0
		case "!=":
			ok = cmp != 0
		case "<":
			ok = cmp < 0
		case "<=":
			ok = cmp <= 0
		case ">":
			ok = cmp > 0
		case ">=":
			ok = cmp >= 0
		default:
			return false, fmt.Errorf("unsupported comparison %q", f.Compare)
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func fieldValue(item any, name string) (reflect.Value, error) {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, fmt.Errorf("nil item")
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("item of kind %s has no fields", v.Kind())
	}
	f := v.FieldByName(name)
	if !f.IsValid() {
		return reflect.Value{}, fmt.Errorf("unknown field %s", name)
	}
	return f, nil
}

var timeType = reflect.TypeOf(time.Time{})

func compareValues(left, right reflect.Value) (int, error) {
	if !left.IsValid() || !right.IsValid() {
		return 0, fmt.Errorf("invalid value")
	}
	if left.Type() == timeType && right.Type() == timeType {
		return left.Interface().(time.Time).Compare(right.Interface().(time.Time)), nil
	}

	switch left.Kind() {
	case reflect.String:
		if right.Kind() != reflect.String {
			break
		}
		return strings.Compare(left.String(), right.String()), nil
	case reflect.Bool:
		if right.Kind() != reflect.Bool {
			break
		}
		l, r := left.Bool(), right.Bool()
		switch {
		case l == r:
			return 0, nil
		case !l:
			return -1, nil
		default:
			return 1, nil
		}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !isNumber(right) {
			break
		}
		return compareFloats(float64(left.Int()), toFloat(right)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !isNumber(right) {
			break
		}
		return compareFloats(float64(left.Uint()), toFloat(right)), nil
	case reflect.Float32, reflect.Float64:
		if !isNumber(right) {
			break
		}
		return compareFloats(left.Float(), toFloat(right)), nil
	}
	return 0, fmt.Errorf("cannot compare %s with %s", left.Type(), right.Type())
}

func isNumber(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint())
	}
	return v.Float()
}

func compareFloats(l, r float64) int {
	switch {
	case l < r:
		return -1
	case l > r:
		return 1
	}
	return 0
}
