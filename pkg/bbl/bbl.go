// Package bbl implements the NYC Borough-Block-Lot parcel identifier.
//
// A BBL is rendered in its canonical fixed-width form: one digit of borough,
// five digits of block and four digits of lot, e.g. borough 5, block 1,
// lot 2 is "5000010002". [Parse] is the exact inverse of [BBL.String].
//
// See https://en.wikipedia.org/wiki/Borough,_Block_and_Lot.
package bbl

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/hpdgraph/pkg/errors"
)

// Boro is a borough code.
type Boro uint8

const (
	Manhattan    Boro = 1
	Bronx        Boro = 2
	Brooklyn     Boro = 3
	Queens       Boro = 4
	StatenIsland Boro = 5
)

const (
	// MaxBlock is the largest block number representable in five digits.
	MaxBlock = 99999
	// MaxLot is the largest lot number representable in four digits.
	MaxLot = 9999

	canonicalLen = 10
)

var boroNames = map[Boro]string{
	Manhattan:    "Manhattan",
	Bronx:        "Bronx",
	Brooklyn:     "Brooklyn",
	Queens:       "Queens",
	StatenIsland: "Staten Island",
}

// BoroFromNumber validates a raw borough code.
func BoroFromNumber(n uint8) (Boro, error) {
	b := Boro(n)
	if _, ok := boroNames[b]; !ok {
		return 0, errors.New(errors.ErrCodeInvalidBBL, "invalid boro ID: %d", n)
	}
	return b, nil
}

// String returns the borough's display name.
func (b Boro) String() string {
	if name, ok := boroNames[b]; ok {
		return name
	}
	return fmt.Sprintf("Boro(%d)", uint8(b))
}

// BBL identifies a tax lot.
type BBL struct {
	Boro  Boro
	Block uint32
	Lot   uint16
}

// FromNumbers builds a BBL from its numeric components, validating each.
func FromNumbers(boro uint8, block uint32, lot uint16) (BBL, error) {
	b, err := BoroFromNumber(boro)
	if err != nil {
		return BBL{}, err
	}
	if block > MaxBlock {
		return BBL{}, errors.New(errors.ErrCodeInvalidBBL, "block %d exceeds %d", block, MaxBlock)
	}
	if lot > MaxLot {
		return BBL{}, errors.New(errors.ErrCodeInvalidBBL, "lot %d exceeds %d", lot, MaxLot)
	}
	return BBL{Boro: b, Block: block, Lot: lot}, nil
}

// String returns the canonical 10-digit form.
func (b BBL) String() string {
	return fmt.Sprintf("%d%05d%04d", uint8(b.Boro), b.Block, b.Lot)
}

// Parse reads the canonical 10-digit form produced by [BBL.String].
func Parse(s string) (BBL, error) {
	if len(s) != canonicalLen {
		return BBL{}, errors.New(errors.ErrCodeInvalidBBL, "%q: expected %d digits", s, canonicalLen)
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return BBL{}, errors.New(errors.ErrCodeInvalidBBL, "%q: non-digit character", s)
		}
	}
	boro, _ := strconv.ParseUint(s[0:1], 10, 8)
	block, _ := strconv.ParseUint(s[1:6], 10, 32)
	lot, _ := strconv.ParseUint(s[6:10], 10, 16)
	return FromNumbers(uint8(boro), uint32(block), uint16(lot))
}
