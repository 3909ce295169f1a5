package hpd

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/hpdgraph/pkg/bbl"
	"github.com/matzehuels/hpdgraph/pkg/errors"
)

// DateLayout is the fixed month/day/year layout of RegistrationEndDate.
const DateLayout = "01/02/2006"

// DefaultMaxExpirationAge is the default number of days a registration may
// have been expired and still count as valid.
const DefaultMaxExpirationAge = 90

// Column names of the registrations table.
const (
	colRegistrationID  = "RegistrationID"
	colBoroID          = "BoroID"
	colBlock           = "Block"
	colLot             = "Lot"
	colBIN             = "BIN"
	colRegistrationEnd = "RegistrationEndDate"
)

var registrationColumns = []string{colRegistrationID, colBoroID, colBlock, colLot, colRegistrationEnd}

// Registration is one building row of a multiple-dwelling registration.
type Registration struct {
	ID      uint32
	BBL     bbl.BBL
	BIN     uint32 // Building Identification Number, zero when HasBIN is false
	HasBIN  bool
	EndDate time.Time
}

// IndexOptions configures [LoadIndex].
type IndexOptions struct {
	// MaxExpirationAge is the exclusive upper bound, in days, on how long ago
	// a registration may have ended. Zero means DefaultMaxExpirationAge.
	MaxExpirationAge int

	// Today is the reference date for ages. Zero means the current local date.
	Today time.Time

	// Logger receives per-row warnings at debug level. Nil discards them.
	Logger *log.Logger
}

// IndexStats summarizes a load.
type IndexStats struct {
	Rows       int // data rows read
	Kept       int // rows retained in the index
	Expired    int // rows dropped for being too old
	MissingBIN int // retained rows without a BIN
}

// Index maps registration ids to the building rows filed under them.
// A registration id is valid iff it is present. The zero value is an empty
// index; use [LoadIndex] or [NewIndex].
type Index struct {
	byID  map[uint32][]Registration
	stats IndexStats
}

// NewIndex builds an index from already-filtered registrations, preserving
// their order per id.
func NewIndex(regs ...Registration) *Index {
	idx := &Index{byID: make(map[uint32][]Registration)}
	for _, r := range regs {
		idx.add(r)
	}
	idx.stats.Rows = len(regs)
	return idx
}

func (idx *Index) add(r Registration) {
	idx.byID[r.ID] = append(idx.byID[r.ID], r)
	idx.stats.Kept++
	if !r.HasBIN {
		idx.stats.MissingBIN++
	}
}

// LoadIndex reads the registrations table from r and keeps every row whose
// end date lies strictly less than opts.MaxExpirationAge days before
// opts.Today. An unparseable date, borough, block, lot or id is fatal.
func LoadIndex(r io.Reader, opts IndexOptions) (*Index, error) {
	maxAge := opts.MaxExpirationAge
	if maxAge == 0 {
		maxAge = DefaultMaxExpirationAge
	}
	if maxAge < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "max expiration age must not be negative: %d", maxAge)
	}
	today := civilDate(opts.Today)
	if opts.Today.IsZero() {
		today = civilDate(time.Now())
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	t, err := newTable(r, registrationColumns...)
	if err != nil {
		return nil, err
	}

	idx := &Index{byID: make(map[uint32][]Registration)}
	for {
		rec, err := t.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		idx.stats.Rows++

		reg, err := parseRegistration(rec)
		if err != nil {
			return nil, err
		}
		if ageInDays(today, reg.EndDate) >= maxAge {
			idx.stats.Expired++
			continue
		}
		if !reg.HasBIN {
			logger.Debug("registration has no BIN", "registration", reg.ID, "end", rec.str(colRegistrationEnd))
		}
		idx.add(reg)
	}
	return idx, nil
}

func parseRegistration(rec row) (Registration, error) {
	id, err := rec.uint32(colRegistrationID)
	if err != nil {
		return Registration{}, err
	}
	end, err := time.Parse(DateLayout, rec.str(colRegistrationEnd))
	if err != nil {
		return Registration{}, rec.malformed(colRegistrationEnd, err)
	}
	boro, err := rec.uint8(colBoroID)
	if err != nil {
		return Registration{}, err
	}
	block, err := rec.uint32(colBlock)
	if err != nil {
		return Registration{}, err
	}
	lot, err := rec.uint16(colLot)
	if err != nil {
		return Registration{}, err
	}
	parcel, err := bbl.FromNumbers(boro, block, lot)
	if err != nil {
		return Registration{}, rec.malformed(colBoroID, err)
	}
	bin, hasBIN, err := rec.optUint32(colBIN)
	if err != nil {
		return Registration{}, err
	}
	return Registration{ID: id, BBL: parcel, BIN: bin, HasBIN: hasBIN, EndDate: end}, nil
}

// civilDate truncates t to midnight UTC of its calendar date.
func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ageInDays is the whole number of days from end to today. Registrations
// ending in the future have a negative age.
func ageInDays(today, end time.Time) int {
	return int(today.Sub(civilDate(end)).Hours() / 24)
}

// IsValid reports whether id survived filtering.
func (idx *Index) IsValid(id uint32) bool {
	_, ok := idx.byID[id]
	return ok
}

// Get returns the building rows of a registration, or nil.
func (idx *Index) Get(id uint32) []Registration {
	return idx.byID[id]
}

// BINs returns the distinct BINs filed under a registration.
func (idx *Index) BINs(id uint32) []uint32 {
	var bins []uint32
	seen := make(map[uint32]bool)
	for _, r := range idx.byID[id] {
		if r.HasBIN && !seen[r.BIN] {
			seen[r.BIN] = true
			bins = append(bins, r.BIN)
		}
	}
	return bins
}

// RepresentativeBBL returns the canonical BBL of the first building filed
// under a registration.
func (idx *Index) RepresentativeBBL(id uint32) (string, bool) {
	regs := idx.byID[id]
	if len(regs) == 0 {
		return "", false
	}
	return regs[0].BBL.String(), true
}

// Len returns the number of distinct valid registration ids.
func (idx *Index) Len() int { return len(idx.byID) }

// Stats returns load statistics.
func (idx *Index) Stats() IndexStats { return idx.stats }
