// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package slice complements the standard [slices] package with the small generic
transforms the client layer repeats: projecting payloads, filtering staged files
and building identity sets.
*/
package slice

// Map projects every element of input. A nil input stays nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for index, value := range input {
		result[index] = transform(value)
	}
	return result
}

// Filter keeps the elements matching predicate, reusing the backing array of input.
func Filter[T any](input []T, predicate func(T) bool) []T {
	result := input[:0]
	for _, value := range input {
		if predicate(value) {
			result = append(result, value)
		}
	}
	return result
}

// Set collects the keys of input for membership checks.
//
//	uploaded := slice.Set(files, UploadableFile.Key)
func Set[T any, K comparable](input []T, key func(T) K) map[K]bool {
	result := make(map[K]bool, len(input))
	for _, value := range input {
		result[key(value)] = true
	}
	return result
}
