package hpd

import (
	"fmt"
	"strings"
)

// Validity answers whether a registration id is still current.
// [*Index] implements it.
type Validity interface {
	IsValid(id uint32) bool
}

// Record is an accepted contact, normalized for graph construction.
type Record struct {
	Name           string
	Address        string
	RegistrationID uint32
	ContactID      uint32
}

// Reason explains why a contact was rejected.
type Reason string

const (
	Accepted           Reason = ""
	RejectRole         Reason = "role"
	RejectAddress      Reason = "address"
	RejectName         Reason = "name"
	RejectRegistration Reason = "registration"
)

// Filter decides which contacts become graph edges.
type Filter struct {
	// Validity rejects contacts whose registration is absent. Required.
	Validity Validity

	// IncludeCorps lets a corporation name stand in when no natural-person
	// name is present.
	IncludeCorps bool

	// Synonyms canonicalizes the chosen name. Nil leaves names unchanged.
	Synonyms *Synonyms
}

// Evaluate normalizes c, or reports the first eligibility rule it fails.
func (f *Filter) Evaluate(c Contact) (Record, Reason) {
	switch c.Type {
	case RoleHeadOfficer, RoleIndividualOwner, RoleCorporateOwner:
	default:
		return Record{}, RejectRole
	}
	if c.HouseNumber == "" || c.StreetName == "" {
		return Record{}, RejectAddress
	}

	hasFullName := c.FirstName != "" && c.LastName != ""
	if !hasFullName && !(f.IncludeCorps && c.CorpName != "") {
		return Record{}, RejectName
	}
	if !f.Validity.IsValid(c.RegistrationID) {
		return Record{}, RejectRegistration
	}

	name := c.CorpName
	if hasFullName {
		name = c.FirstName + " " + c.LastName
	}
	if f.Synonyms != nil {
		name = f.Synonyms.Resolve(name)
	}

	return Record{
		Name:           name,
		Address:        FormatAddress(c),
		RegistrationID: c.RegistrationID,
		ContactID:      c.ContactID,
	}, Accepted
}

// Accept reports whether c is eligible and returns its normalized form.
func (f *Filter) Accept(c Contact) (Record, bool) {
	rec, reason := f.Evaluate(c)
	return rec, reason == Accepted
}

// FormatAddress renders a contact's business address as
// "HOUSE STREET APT, CITY STATE", uppercased.
func FormatAddress(c Contact) string {
	return strings.ToUpper(fmt.Sprintf("%s %s %s, %s %s",
		c.HouseNumber, c.StreetName, c.Apartment, c.City, c.State))
}
