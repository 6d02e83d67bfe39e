package utils

import (
	"reflect"
	"strings"
)

// ColumnList returns the `db` tags of a struct, in field order, optionally prefixed with a table alias.
// Embedded structs are flattened.
func ColumnList[T any](prefixes ...string) []string {
	var zero T
	prefix := ""
	if len(prefixes) > 0 {
		prefix = prefixes[0] + "."
	}
	return columnsOfType(reflect.TypeOf(zero), prefix)
}

func columnsOfType(t reflect.Type, prefix string) []string {
	columns := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			columns = append(columns, columnsOfType(field.Type, prefix)...)
			continue
		}
		tag := strings.Split(field.Tag.Get("db"), ",")[0]
		if tag == "" || tag == "-" {
			continue
		}
		columns = append(columns, prefix+tag)
	}
	return columns
}
