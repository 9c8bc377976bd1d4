//go:build unix

package pagevec_test

import (
	"fmt"
	"log"

	"github.com/hupe1980/pagevec"
)

func Example() {
	arr, err := pagevec.New[int64](4)
	if err != nil {
		log.Fatal(err)
	}
	defer arr.Close()

	s := arr.Slice()
	s[0], s[1], s[2] = 2, 3, 5
	arr.SetLen(3)

	// Growing prefers extending the mapping in place; the elements only
	// move if the adjacent address space is occupied.
	if err := arr.Grow(arr.Cap() + 1); err != nil {
		log.Fatal(err)
	}

	fmt.Println(arr.Slice()[:arr.Len()])
	fmt.Println(arr.Len())
	// Output:
	// [2 3 5]
	// 3
}
