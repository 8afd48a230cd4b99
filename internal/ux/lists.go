package ux

import (
	"sort"
	"strings"
)

// Filter returns the elements whose key contains the query,
// case-insensitive. An empty query keeps everything.
func Filter[T any](items []T, query string, key func(T) string) []T {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	out := make([]T, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(key(item)), q) {
			out = append(out, item)
		}
	}
	return out
}

// Page slices items to the given 1-based page. Out-of-range pages
// return an empty slice rather than panicking.
func Page[T any](items []T, page, pageSize int) []T {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		return items
	}
	start := (page - 1) * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// Group buckets items by label, with bucket keys returned in sorted
// order for deterministic output.
func Group[T any](items []T, label func(T) string) ([]string, map[string][]T) {
	groups := make(map[string][]T)
	for _, item := range items {
		l := label(item)
		groups[l] = append(groups[l], item)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, groups
}
