// Package pagemath provides page-granular size arithmetic.
//
// The functions here are pure integer math, deliberately isolated from the
// system-call boundary so capacity calculations can be unit-tested with an
// injected page size and without performing real memory mapping.
package pagemath

// Pages returns the number of whole pages needed to hold n bytes.
// The result is never less than one page, even for n == 0: a mapping
// always covers at least a full page.
func Pages(n, pageSize int) int {
	if n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// Round rounds n bytes up to a whole number of pages, minimum one page.
func Round(n, pageSize int) int {
	return Pages(n, pageSize) * pageSize
}

// Slots returns the number of elemSize-sized slots backed by mapped bytes.
func Slots(mapped, elemSize int) int {
	return mapped / elemSize
}
