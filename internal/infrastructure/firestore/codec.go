// Package firestore implementa el puerto DocumentStore contra la API REST
// de Firestore (https://firestore.googleapis.com/v1). Los documentos viajan
// como mapas de Value tipados; este códec traduce entre esos Value y los
// map[string]any schemaless que maneja la aplicación.
package firestore

import (
	"fmt"
	"strconv"
	"time"
)

// value es la representación JSON de un Value de Firestore. Solo uno de
// los campos está presente a la vez.
type value struct {
	NullValue      *string    `json:"nullValue,omitempty"`
	BooleanValue   *bool      `json:"booleanValue,omitempty"`
	IntegerValue   *string    `json:"integerValue,omitempty"` // int64 serializado como string
	DoubleValue    *float64   `json:"doubleValue,omitempty"`
	TimestampValue *time.Time `json:"timestampValue,omitempty"`
	StringValue    *string    `json:"stringValue,omitempty"`
	MapValue       *mapValue  `json:"mapValue,omitempty"`
	ArrayValue     *arrValue  `json:"arrayValue,omitempty"`
}

type mapValue struct {
	Fields map[string]value `json:"fields,omitempty"`
}

type arrValue struct {
	Values []value `json:"values,omitempty"`
}

// document es el recurso Document de la API.
type document struct {
	Name   string           `json:"name,omitempty"`
	Fields map[string]value `json:"fields,omitempty"`
}

func encodeFields(fields map[string]any) (map[string]value, error) {
	out := make(map[string]value, len(fields))
	for k, v := range fields {
		ev, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("campo %q: %w", k, err)
		}
		out[k] = ev
	}
	return out, nil
}

func encodeValue(v any) (value, error) {
	switch t := v.(type) {
	case nil:
		null := "NULL_VALUE"
		return value{NullValue: &null}, nil
	case string:
		return value{StringValue: &t}, nil
	case bool:
		return value{BooleanValue: &t}, nil
	case int:
		s := strconv.FormatInt(int64(t), 10)
		return value{IntegerValue: &s}, nil
	case int64:
		s := strconv.FormatInt(t, 10)
		return value{IntegerValue: &s}, nil
	case float64:
		return value{DoubleValue: &t}, nil
	case time.Time:
		utc := t.UTC()
		return value{TimestampValue: &utc}, nil
	case map[string]any:
		fields, err := encodeFields(t)
		if err != nil {
			return value{}, err
		}
		return value{MapValue: &mapValue{Fields: fields}}, nil
	case []any:
		values := make([]value, 0, len(t))
		for _, elem := range t {
			ev, err := encodeValue(elem)
			if err != nil {
				return value{}, err
			}
			values = append(values, ev)
		}
		return value{ArrayValue: &arrValue{Values: values}}, nil
	default:
		return value{}, fmt.Errorf("tipo no soportado %T", v)
	}
}

func decodeFields(fields map[string]value) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = decodeValue(v)
	}
	return out
}

func decodeValue(v value) any {
	switch {
	case v.StringValue != nil:
		return *v.StringValue
	case v.BooleanValue != nil:
		return *v.BooleanValue
	case v.IntegerValue != nil:
		n, _ := strconv.ParseInt(*v.IntegerValue, 10, 64)
		return n
	case v.DoubleValue != nil:
		return *v.DoubleValue
	case v.TimestampValue != nil:
		return *v.TimestampValue
	case v.MapValue != nil:
		return decodeFields(v.MapValue.Fields)
	case v.ArrayValue != nil:
		out := make([]any, 0, len(v.ArrayValue.Values))
		for _, elem := range v.ArrayValue.Values {
			out = append(out, decodeValue(elem))
		}
		return out
	}
	return nil
}
