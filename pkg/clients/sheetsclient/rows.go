package sheetsclient

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// DecodeRows maps spreadsheet rows onto structs of type T.
//
// The first row holds the headers. Struct fields opt in with a `sheet:"Header"` tag;
// every tagged header must be present. Rows whose tagged cells are all blank are skipped.
// Supported field kinds are string, ints, floats, bool, []string (comma separated) and pointers to
// those; blank cells leave pointer fields nil.
func DecodeRows[T any](raw [][]interface{}) ([]T, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("row type must be a struct, got %s", t.Kind())
	}

	headerIndexes := make(map[string]int)
	for i, cell := range raw[0] {
		if header, ok := cell.(string); ok {
			headerIndexes[strings.TrimSpace(header)] = i
		}
	}

	type column struct {
		fieldIndex int
		header     string
		cellIndex  int
	}
	var columns []column
	for i := 0; i < t.NumField(); i++ {
		header := t.Field(i).Tag.Get("sheet")
		if header == "" {
			continue
		}
		cellIndex, ok := headerIndexes[header]
		if !ok {
			return nil, fmt.Errorf("missing required field in header: %s", header)
		}
		columns = append(columns, column{fieldIndex: i, header: header, cellIndex: cellIndex})
	}

	results := make([]T, 0, len(raw)-1)
	for rowIdx := 1; rowIdx < len(raw); rowIdx++ {
		row := raw[rowIdx]

		var result T
		v := reflect.ValueOf(&result).Elem()
		blank := true
		for _, col := range columns {
			cell := cellString(row, col.cellIndex)
			if cell == "" {
				continue
			}
			blank = false
			if err := setField(v.Field(col.fieldIndex), cell); err != nil {
				// Spreadsheet rows are 1-based
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+1, col.header, err)
			}
		}

		if !blank {
			results = append(results, result)
		}
	}

	return results, nil
}

func cellString(row []interface{}, index int) string {
	if index >= len(row) || row[index] == nil {
		return ""
	}
	if s, ok := row[index].(string); ok {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprint(row[index]))
}

// setField converts a non-empty cell to the field's type
func setField(field reflect.Value, cell string) error {
	switch field.Kind() {
	case reflect.Pointer:
		elem := reflect.New(field.Type().Elem())
		if err := setField(elem.Elem(), cell); err != nil {
			return err
		}
		field.Set(elem)

	case reflect.String:
		field.SetString(cell)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(cell, 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return fmt.Errorf("failed to parse float: %w", err)
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(cell)
		if err != nil {
			return fmt.Errorf("failed to parse bool: %w", err)
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type: %s", field.Type())
		}
		var items []string
		for _, item := range strings.Split(cell, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		field.Set(reflect.ValueOf(items))

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}
