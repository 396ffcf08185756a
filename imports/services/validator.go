package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/shopspring/decimal"
)

// phoneRegion is the default region used when a phone number carries no
// international prefix.
const phoneRegion = "IT"

// ReferenceChecker is the slice of the storage layer the validator needs:
// existence checks for foreign keys and uniqueness checks against records
// already persisted by earlier jobs or the interactive screens.
type ReferenceChecker interface {
	CategoryExists(ctx context.Context, id uuid.UUID) (bool, error)
	CompanyExists(ctx context.Context, id uuid.UUID) (bool, error)
	SellerCompanyExists(ctx context.Context, id uuid.UUID) (bool, error)
	SupplierCompanyExists(ctx context.Context, id uuid.UUID) (bool, error)
	SellingPointExists(ctx context.Context, id uuid.UUID) (bool, error)
	RoleExists(ctx context.Context, id uuid.UUID) (bool, error)
	CompanyVATExists(ctx context.Context, vat string) (bool, error)
	PersonEmailExists(ctx context.Context, email string) (bool, error)
	ActivityNameExists(ctx context.Context, name string) (bool, error)
}

// Validator applies the entity schema to every row of a job before any write
// occurs. Validation is fail-fast at the job level: the first row that fails
// any check aborts the whole job, so rows after it are never evaluated.
type Validator struct {
	refs ReferenceChecker
}

func NewValidator(refs ReferenceChecker) *Validator {
	return &Validator{refs: refs}
}

// batchState tracks uniqueness within one job. It lives and dies with the
// ValidateJob call, so nothing leaks across independent uploads.
type batchState struct {
	emails map[string]int // normalized email -> sheet row that introduced it
	vats   map[string]int
	names  map[string]int
}

func newBatchState() *batchState {
	return &batchState{
		emails: make(map[string]int),
		vats:   make(map[string]int),
		names:  make(map[string]int),
	}
}

// ValidateJob checks all rows in order and returns the typed batch on full
// success, or the first *ValidationError encountered.
func (v *Validator) ValidateJob(ctx context.Context, job *ImportJob) (*ValidatedBatch, error) {
	batch := &ValidatedBatch{EntityType: job.EntityType}
	state := newBatchState()

	for _, row := range job.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if err := v.checkRequired(row, SchemaFor(job.EntityType).Required); err != nil {
			return nil, err
		}

		switch job.EntityType {
		case CompaniesEntity:
			parsed, err := v.validateCompanyRow(ctx, row, state)
			if err != nil {
				return nil, err
			}
			batch.Companies = append(batch.Companies, *parsed)
		case SellingPointsEntity:
			parsed, err := v.validateSellingPointRow(ctx, row)
			if err != nil {
				return nil, err
			}
			batch.SellingPoints = append(batch.SellingPoints, *parsed)
		case PeopleEntity:
			parsed, err := v.validatePersonRow(ctx, row, state)
			if err != nil {
				return nil, err
			}
			batch.People = append(batch.People, *parsed)
		case ActivitiesEntity:
			parsed, err := v.validateActivityRow(ctx, row, state)
			if err != nil {
				return nil, err
			}
			batch.Activities = append(batch.Activities, *parsed)
		default:
			return nil, fmt.Errorf("unknown entity type %q", job.EntityType)
		}
	}

	return batch, nil
}

// checkRequired enforces the required-field list in schema order. The first
// missing field stops validation for the row (and therefore the job).
func (v *Validator) checkRequired(row Row, required []string) *ValidationError {
	for _, field := range required {
		if row.Get(field) == "" {
			return &ValidationError{
				Row:     row.SheetRow(),
				Message: fmt.Sprintf("%s missing or empty", field),
			}
		}
	}
	return nil
}

func (v *Validator) validateCompanyRow(ctx context.Context, row Row, state *batchState) (*CompanyRow, error) {
	name := row.Get(colName)
	if isForbiddenName(name) {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("Name %q is not an acceptable company name", name)}
	}

	vat := row.Get(colVAT)
	if !vatPattern.MatchString(vat) {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("VAT %q must be exactly 11 digits", vat)}
	}
	if firstRow, seen := state.vats[vat]; seen {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("duplicate VAT %s, already used in row %d of this file", vat, firstRow)}
	}
	exists, err := v.refs.CompanyVATExists(ctx, vat)
	if err != nil {
		return nil, fmt.Errorf("row %d: VAT lookup failed: %w", row.SheetRow(), err)
	}
	if exists {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("a company with VAT %s already exists", vat)}
	}
	state.vats[vat] = row.SheetRow()

	isSupplier, ok := parseYesNo(row.Get(colIsSupplier))
	if !ok {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("IsSupplier value %q is not a recognised yes/no token", row.Get(colIsSupplier))}
	}
	isSeller, ok := parseYesNo(row.Get(colIsSeller))
	if !ok {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("IsSeller value %q is not a recognised yes/no token", row.Get(colIsSeller))}
	}

	categoryID, vErr := v.parseReference(ctx, row, colCategoryID, v.refs.CategoryExists, "category")
	if vErr != nil {
		return nil, vErr
	}

	address, vErr2 := v.validateAddress(row)
	if vErr2 != nil {
		return nil, vErr2
	}

	return &CompanyRow{
		Row:        row,
		Name:       name,
		VAT:        vat,
		IsSupplier: isSupplier,
		IsSeller:   isSeller,
		Address:    *address,
		CategoryID: categoryID,
	}, nil
}

func (v *Validator) validateSellingPointRow(ctx context.Context, row Row) (*SellingPointRow, error) {
	name := row.Get(colName)
	if isForbiddenName(name) {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("Name %q is not an acceptable selling point name", name)}
	}

	sellerID, vErr := v.parseReference(ctx, row, colSellerID, v.refs.SellerCompanyExists, "seller company")
	if vErr != nil {
		return nil, vErr
	}

	phone := row.Get(colPhone)
	if phone != "" {
		normalized, err := normalizePhone(phone)
		if err != nil {
			return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("Phone %q is not a valid phone number", phone)}
		}
		phone = normalized
	}

	address, vErr2 := v.validateAddress(row)
	if vErr2 != nil {
		return nil, vErr2
	}

	// Fold the fixed SupplierId1..4 columns into a real list, skipping
	// blanks. Duplicate suppliers on one row collapse to a single link.
	var suppliers []SupplierRef
	seen := make(map[uuid.UUID]struct{})
	for _, column := range supplierColumns {
		raw := row.Get(column)
		if raw == "" {
			continue
		}
		supplierID, vErr := v.parseReference(ctx, row, column, v.refs.SupplierCompanyExists, "supplier company")
		if vErr != nil {
			return nil, vErr
		}
		if _, dup := seen[supplierID]; dup {
			continue
		}
		seen[supplierID] = struct{}{}
		suppliers = append(suppliers, SupplierRef{SupplierID: supplierID, Column: column})
	}

	return &SellingPointRow{
		Row:             row,
		Name:            name,
		SellerCompanyID: sellerID,
		Phone:           phone,
		Address:         *address,
		Suppliers:       suppliers,
	}, nil
}

func (v *Validator) validatePersonRow(ctx context.Context, row Row, state *batchState) (*PersonRow, error) {
	email := strings.ToLower(row.Get(colEmail))
	if !emailPattern.MatchString(email) {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("Email %q is not a valid email address", row.Get(colEmail))}
	}
	if firstRow, seen := state.emails[email]; seen {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("duplicate email %s, already used in row %d of this file", email, firstRow)}
	}
	exists, err := v.refs.PersonEmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("row %d: email lookup failed: %w", row.SheetRow(), err)
	}
	if exists {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("a person with email %s already exists", email)}
	}
	state.emails[email] = row.SheetRow()

	phone, err := normalizePhone(row.Get(colPhone))
	if err != nil {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("Phone %q is not a valid phone number", row.Get(colPhone))}
	}

	companyID, vErr := v.parseReference(ctx, row, colCompanyID, v.refs.CompanyExists, "company")
	if vErr != nil {
		return nil, vErr
	}

	roleID, vErr := v.parseReference(ctx, row, colRoleID, v.refs.RoleExists, "role")
	if vErr != nil {
		return nil, vErr
	}

	var sellingPointID *uuid.UUID
	if row.Get(colSellingPtID) != "" {
		id, vErr := v.parseReference(ctx, row, colSellingPtID, v.refs.SellingPointExists, "selling point")
		if vErr != nil {
			return nil, vErr
		}
		sellingPointID = &id
	}

	return &PersonRow{
		Row:            row,
		Name:           row.Get(colName),
		Surname:        row.Get(colSurname),
		Email:          email,
		Phone:          phone,
		CompanyID:      companyID,
		SellingPointID: sellingPointID,
		RoleID:         roleID,
	}, nil
}

func (v *Validator) validateActivityRow(ctx context.Context, row Row, state *batchState) (*ActivityRow, error) {
	name := row.Get(colName)
	if isForbiddenName(name) {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("Name %q is not an acceptable activity name", name)}
	}

	normalized := strings.ToLower(name)
	if firstRow, seen := state.names[normalized]; seen {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("duplicate activity %q, already used in row %d of this file", name, firstRow)}
	}
	exists, err := v.refs.ActivityNameExists(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("row %d: activity lookup failed: %w", row.SheetRow(), err)
	}
	if exists {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("an activity named %q already exists", name)}
	}
	state.names[normalized] = row.SheetRow()

	return &ActivityRow{Row: row, Name: name}, nil
}

// validateAddress applies the address sub-schema. Required components were
// already enforced by checkRequired; here the optional pieces get their
// format checks and the coordinate pair is parsed when present.
func (v *Validator) validateAddress(row Row) (*AddressInput, *ValidationError) {
	address := &AddressInput{
		Line1:      row.Get(colAddressLine1),
		Line2:      row.Get(colAddressLine2),
		City:       row.Get(colCity),
		State:      row.Get(colState),
		PostalCode: row.Get(colPostalCode),
		Country:    row.Get(colCountry),
	}

	if address.PostalCode != "" && !postalCodePattern.MatchString(address.PostalCode) {
		return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("PostalCode %q is not a valid postal code", address.PostalCode)}
	}

	for _, coord := range []struct {
		column string
		target **decimal.Decimal
	}{
		{colLatitude, &address.Latitude},
		{colLongitude, &address.Longitude},
	} {
		raw := row.Get(coord.column)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("%s %q is not a valid coordinate", coord.column, raw)}
		}
		*coord.target = &value
	}

	return address, nil
}

// parseReference parses a foreign-key cell as a UUID and checks the record
// exists, in one place so every reference column reports the same way.
func (v *Validator) parseReference(
	ctx context.Context,
	row Row,
	column string,
	exists func(context.Context, uuid.UUID) (bool, error),
	label string,
) (uuid.UUID, error) {
	raw := row.Get(column)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("%s value %q is not a valid id", column, raw)}
	}

	found, err := exists(ctx, id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("row %d: %s lookup failed: %w", row.SheetRow(), label, err)
	}
	if !found {
		return uuid.Nil, &ValidationError{Row: row.SheetRow(), Message: fmt.Sprintf("no %s found for %s %s", label, column, raw)}
	}
	return id, nil
}

// normalizePhone parses a phone number, defaulting to the Italian region
// when no prefix is present, and renders it in E.164.
func normalizePhone(raw string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, phoneRegion)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", fmt.Errorf("invalid phone number %q", raw)
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
