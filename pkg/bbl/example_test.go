package bbl_test

import (
	"fmt"

	"github.com/matzehuels/hpdgraph/pkg/bbl"
)

func ExampleFromNumbers() {
	b, _ := bbl.FromNumbers(5, 1, 2)
	fmt.Println(b)

	parsed, _ := bbl.Parse(b.String())
	fmt.Println(parsed.Boro, parsed.Block, parsed.Lot)
	// Output:
	// 5000010002
	// Staten Island 1 2
}
