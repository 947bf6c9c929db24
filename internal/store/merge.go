package store

import (
	"encoding/json"
	"fmt"
)

// mergeShallow overlays the top-level keys of patch onto current. Nested
// objects in patch replace the stored value whole.
func mergeShallow[T any](current T, patch json.RawMessage) (T, error) {
	fields, err := patchFields(patch)
	if err != nil {
		return current, err
	}

	encoded, err := json.Marshal(current)
	if err != nil {
		return current, err
	}
	merged := make(map[string]json.RawMessage)
	if err := json.Unmarshal(encoded, &merged); err != nil {
		return current, err
	}
	for key, value := range fields {
		merged[key] = value
	}

	combined, err := json.Marshal(merged)
	if err != nil {
		return current, err
	}
	var result T
	if err := json.Unmarshal(combined, &result); err != nil {
		return current, err
	}
	return result, nil
}

func patchFields(patch json.RawMessage) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(patch, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", errPatchNotObject, err)
	}
	if fields == nil {
		return nil, errPatchNotObject
	}
	return fields, nil
}

func validatePatch[T any](patch json.RawMessage) error {
	if _, err := patchFields(patch); err != nil {
		return err
	}
	var target T
	if err := json.Unmarshal(patch, &target); err != nil {
		return fmt.Errorf("decode patch: %w", err)
	}
	return nil
}

func appendCopy[T any](items []T, item T) []T {
	result := make([]T, 0, len(items)+1)
	result = append(result, items...)
	return append(result, item)
}

func prependCopy[T any](items []T, item T) []T {
	result := make([]T, 0, len(items)+1)
	result = append(result, item)
	return append(result, items...)
}

func replaceCopy[T any](items []T, index int, item T) []T {
	result := make([]T, len(items))
	copy(result, items)
	result[index] = item
	return result
}

func filterCopy[T any](items []T, keep func(T) bool) []T {
	result := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			result = append(result, item)
		}
	}
	return result
}

func indexOf[T any](items []T, match func(T) bool) int {
	for index, item := range items {
		if match(item) {
			return index
		}
	}
	return -1
}
