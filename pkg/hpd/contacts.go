package hpd

import (
	"io"
)

// Role type values that identify a controlling party. Other roles (agents,
// site managers, lessees) never become graph nodes.
const (
	RoleHeadOfficer     = "HeadOfficer"
	RoleIndividualOwner = "IndividualOwner"
	RoleCorporateOwner  = "CorporateOwner"
)

// Column names of the contacts table.
const (
	colType              = "Type"
	colCorporationName   = "CorporationName"
	colFirstName         = "FirstName"
	colLastName          = "LastName"
	colBusinessHouseNo   = "BusinessHouseNumber"
	colBusinessStreet    = "BusinessStreetName"
	colBusinessApartment = "BusinessApartment"
	colBusinessCity      = "BusinessCity"
	colBusinessState     = "BusinessState"
	colRegContactID      = "RegistrationContactID"
	colContactRegID      = "RegistrationID"
)

var contactColumns = []string{
	colType, colCorporationName, colFirstName, colLastName,
	colBusinessHouseNo, colBusinessStreet, colBusinessApartment,
	colBusinessCity, colBusinessState, colRegContactID, colContactRegID,
}

// Contact is one raw row of the contacts table with whitespace trimmed.
type Contact struct {
	Type           string
	CorpName       string
	FirstName      string
	LastName       string
	HouseNumber    string
	StreetName     string
	Apartment      string
	City           string
	State          string
	ContactID      uint32
	RegistrationID uint32
}

// ReadContacts streams the contacts table from r, calling fn for every row
// in file order. Iteration stops at the first error returned by fn.
func ReadContacts(r io.Reader, fn func(Contact) error) error {
	t, err := newTable(r, contactColumns...)
	if err != nil {
		return err
	}
	for {
		rec, err := t.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		c, err := parseContact(rec)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
	}
}

func parseContact(rec row) (Contact, error) {
	contactID, err := rec.uint32(colRegContactID)
	if err != nil {
		return Contact{}, err
	}
	regID, err := rec.uint32(colContactRegID)
	if err != nil {
		return Contact{}, err
	}
	return Contact{
		Type:           rec.str(colType),
		CorpName:       rec.str(colCorporationName),
		FirstName:      rec.str(colFirstName),
		LastName:       rec.str(colLastName),
		HouseNumber:    rec.str(colBusinessHouseNo),
		StreetName:     rec.str(colBusinessStreet),
		Apartment:      rec.str(colBusinessApartment),
		City:           rec.str(colBusinessCity),
		State:          rec.str(colBusinessState),
		ContactID:      contactID,
		RegistrationID: regID,
	}, nil
}
