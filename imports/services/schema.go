package services

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Column names are the contract between the template generator and the
// validator: templates emit them, uploads must carry them back verbatim.
const (
	colName         = "Name"
	colVAT          = "VAT"
	colIsSupplier   = "IsSupplier"
	colIsSeller     = "IsSeller"
	colAddressLine1 = "AddressLine1"
	colAddressLine2 = "AddressLine2"
	colCity         = "City"
	colState        = "State"
	colPostalCode   = "PostalCode"
	colCountry      = "Country"
	colLatitude     = "Latitude"
	colLongitude    = "Longitude"
	colCategoryID   = "CategoryId"
	colSellerID     = "SellerCompanyId"
	colPhone        = "Phone"
	colSurname      = "Surname"
	colEmail        = "Email"
	colCompanyID    = "CompanyId"
	colSellingPtID  = "SellingPointId"
	colRoleID       = "RoleId"
)

// supplierColumns are the legacy fixed-arity link columns. The parser keeps
// them as-is; the validator folds the filled ones into a genuine list.
var supplierColumns = []string{"SupplierId1", "SupplierId2", "SupplierId3", "SupplierId4"}

// EntitySchema describes one entity type's tabular layout.
type EntitySchema struct {
	// Headers in template column order.
	Headers []string
	// Required fields checked in order; the first missing one stops the row.
	Required []string
}

var entitySchemas = map[EntityType]EntitySchema{
	CompaniesEntity: {
		Headers: []string{
			colName, colVAT, colIsSupplier, colIsSeller,
			colAddressLine1, colAddressLine2, colCity, colState, colPostalCode, colCountry,
			colLatitude, colLongitude, colCategoryID,
		},
		Required: []string{
			colName, colVAT, colIsSupplier, colIsSeller,
			colAddressLine1, colCity, colState, colCountry, colCategoryID,
		},
	},
	SellingPointsEntity: {
		Headers: append([]string{
			colName, colSellerID, colPhone,
			colAddressLine1, colAddressLine2, colCity, colState, colPostalCode, colCountry,
			colLatitude, colLongitude,
		}, supplierColumns...),
		Required: []string{
			colName, colSellerID,
			colAddressLine1, colCity, colState, colCountry,
		},
	},
	PeopleEntity: {
		Headers: []string{
			colName, colSurname, colEmail, colPhone, colCompanyID, colSellingPtID, colRoleID,
		},
		Required: []string{
			colName, colSurname, colEmail, colPhone, colCompanyID, colRoleID,
		},
	},
	ActivitiesEntity: {
		Headers:  []string{colName},
		Required: []string{colName},
	},
}

// SchemaFor returns the tabular schema of an entity type.
func SchemaFor(entityType EntityType) EntitySchema {
	return entitySchemas[entityType]
}

// Accepted boolean tokens, compared case-insensitively. The affirmative set
// includes the Italian spellings used by the field teams' spreadsheets.
var (
	yesTokens = map[string]struct{}{"sì": {}, "si": {}, "yes": {}, "true": {}, "1": {}}
	noTokens  = map[string]struct{}{"no": {}, "false": {}, "0": {}}
)

// parseYesNo normalizes an enumerated yes/no cell. ok is false when the
// token is outside both accepted sets.
func parseYesNo(raw string) (value, ok bool) {
	token := strings.ToLower(strings.TrimSpace(raw))
	if _, yes := yesTokens[token]; yes {
		return true, true
	}
	if _, no := noTokens[token]; no {
		return false, true
	}
	return false, false
}

var (
	vatPattern        = regexp.MustCompile(`^\d{11}$`)
	postalCodePattern = regexp.MustCompile(`^\d{4,10}$`)
	emailPattern      = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// forbiddenNames are placeholder values that must never become real records.
var forbiddenNames = map[string]struct{}{
	"test":    {},
	"prova":   {},
	"n/a":     {},
	"unknown": {},
	"-":       {},
}

func isForbiddenName(name string) bool {
	_, bad := forbiddenNames[strings.ToLower(strings.TrimSpace(name))]
	return bad
}

// ValidVAT reports whether s is an 11-digit fiscal code. Shared with the
// interactive company form, which applies the same rule as bulk rows.
func ValidVAT(s string) bool {
	return vatPattern.MatchString(s)
}

// ForbiddenName reports whether name is one of the placeholder values
// rejected everywhere an entity name is accepted.
func ForbiddenName(name string) bool {
	return isForbiddenName(name)
}

// AddressInput is the raw address slice of a row or interactive form,
// before coordinate resolution.
type AddressInput struct {
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
	Latitude   *decimal.Decimal
	Longitude  *decimal.Decimal
}

// HasCoordinates reports whether both latitude and longitude were supplied,
// in which case the geocoder is never consulted.
func (a AddressInput) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// SupplierRef is one supplier-to-selling-point link parsed from the legacy
// SupplierId1..4 columns.
type SupplierRef struct {
	SupplierID uuid.UUID
	Column     string
}

// CompanyRow is a validated, typed company line.
type CompanyRow struct {
	Row        Row
	Name       string
	VAT        string
	IsSupplier bool
	IsSeller   bool
	Address    AddressInput
	CategoryID uuid.UUID
}

// SellingPointRow is a validated, typed selling-point line.
type SellingPointRow struct {
	Row             Row
	Name            string
	SellerCompanyID uuid.UUID
	Phone           string
	Address         AddressInput
	Suppliers       []SupplierRef
}

// PersonRow is a validated, typed person line.
type PersonRow struct {
	Row            Row
	Name           string
	Surname        string
	Email          string
	Phone          string
	CompanyID      uuid.UUID
	SellingPointID *uuid.UUID
	RoleID         uuid.UUID
}

// ActivityRow is a validated, typed activity line.
type ActivityRow struct {
	Row  Row
	Name string
}

// ValidatedBatch carries the typed rows of one fully validated job. Exactly
// one slice is populated, matching the job's entity type.
type ValidatedBatch struct {
	EntityType    EntityType
	Companies     []CompanyRow
	SellingPoints []SellingPointRow
	People        []PersonRow
	Activities    []ActivityRow
}

// Len returns the number of validated rows regardless of entity type.
func (b *ValidatedBatch) Len() int {
	switch b.EntityType {
	case CompaniesEntity:
		return len(b.Companies)
	case SellingPointsEntity:
		return len(b.SellingPoints)
	case PeopleEntity:
		return len(b.People)
	case ActivitiesEntity:
		return len(b.Activities)
	}
	return 0
}
