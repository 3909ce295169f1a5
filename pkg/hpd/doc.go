// Package hpd reads the NYC Housing Preservation & Development (HPD)
// multiple-dwelling registration datasets.
//
// Two tables are involved:
//
//   - Multiple_Dwelling_Registrations.csv: one row per registered building,
//     carrying the registration id, its BBL, an optional BIN and the date the
//     registration ends. [LoadIndex] turns it into a validity [Index].
//   - Registration_Contacts.csv: one row per contact (owner, officer, agent)
//     on a registration. [ReadContacts] streams it and a [Filter] decides
//     which rows are eligible to become graph edges.
//
// Both tables have fixed schemas. A value that cannot be parsed means the
// file is corrupt, so readers fail with [errors.ErrCodeMalformedDataset]
// instead of skipping the row. Rows that are well-formed but ineligible
// (wrong role, no street address, expired registration) are filtered
// silently; that is routine cleaning.
//
// [errors.ErrCodeMalformedDataset]: github.com/matzehuels/hpdgraph/pkg/errors
package hpd
