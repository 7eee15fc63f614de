// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/stacklok/connect-client-go/entity"
)

// EncodeFields converts form fields to urlencoded values. Strings are sent
// as-is, booleans as 1 or 0, numbers in their shortest form, nil as an empty
// value and entities as their self URL. Lists repeat the key; maps use
// key[sub] names.
func EncodeFields(fields map[string]any) (url.Values, error) {
	vals := make(url.Values, len(fields))
	for key, v := range fields {
		if err := encodeField(vals, key, v); err != nil {
			return nil, err
		}
	}
	return vals, nil
}

func encodeField(vals url.Values, key string, v any) error {
	switch t := v.(type) {
	case []any:
		for _, item := range t {
			if err := encodeField(vals, key, item); err != nil {
				return err
			}
		}
		return nil
	case []string:
		for _, item := range t {
			vals.Add(key, item)
		}
		return nil
	case []*entity.Entity:
		for _, item := range t {
			vals.Add(key, selfURL(item))
		}
		return nil
	case map[string]any:
		for sub, item := range t {
			if err := encodeField(vals, key+"["+sub+"]", item); err != nil {
				return err
			}
		}
		return nil
	}

	s, err := scalar(v)
	if err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	vals.Add(key, s)
	return nil
}

func scalar(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case string:
		return t, nil
	case bool:
		if t {
			return "1", nil
		}
		return "0", nil
	case int:
		return strconv.Itoa(t), nil
	case int64:
		return strconv.FormatInt(t, 10), nil
	case int32:
		return strconv.FormatInt(int64(t), 10), nil
	case uint:
		return strconv.FormatUint(uint64(t), 10), nil
	case uint64:
		return strconv.FormatUint(t, 10), nil
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), nil
	case json.Number:
		return t.String(), nil
	case *entity.Entity:
		return selfURL(t), nil
	case fmt.Stringer:
		return t.String(), nil
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupportedField, v)
	}
}

func selfURL(e *entity.Entity) string {
	if e == nil {
		return ""
	}
	return e.SelfURL()
}
