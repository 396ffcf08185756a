package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRefs answers validator lookups from in-memory sets and counts every
// call, so tests can prove a failing row stopped the job before the store
// was consulted.
type stubRefs struct {
	categories    map[uuid.UUID]bool
	companies     map[uuid.UUID]bool
	sellers       map[uuid.UUID]bool
	suppliers     map[uuid.UUID]bool
	sellingPoints map[uuid.UUID]bool
	roles         map[uuid.UUID]bool
	vats          map[string]bool
	emails        map[string]bool
	activities    map[string]bool

	calls int
}

func newStubRefs() *stubRefs {
	return &stubRefs{
		categories:    make(map[uuid.UUID]bool),
		companies:     make(map[uuid.UUID]bool),
		sellers:       make(map[uuid.UUID]bool),
		suppliers:     make(map[uuid.UUID]bool),
		sellingPoints: make(map[uuid.UUID]bool),
		roles:         make(map[uuid.UUID]bool),
		vats:          make(map[string]bool),
		emails:        make(map[string]bool),
		activities:    make(map[string]bool),
	}
}

func (s *stubRefs) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	return s.categories[id], nil
}

func (s *stubRefs) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	return s.companies[id], nil
}

func (s *stubRefs) SellerCompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	return s.sellers[id], nil
}

func (s *stubRefs) SupplierCompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	return s.suppliers[id], nil
}

func (s *stubRefs) SellingPointExists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	return s.sellingPoints[id], nil
}

func (s *stubRefs) RoleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	s.calls++
	return s.roles[id], nil
}

func (s *stubRefs) CompanyVATExists(ctx context.Context, vat string) (bool, error) {
	s.calls++
	return s.vats[vat], nil
}

func (s *stubRefs) PersonEmailExists(ctx context.Context, email string) (bool, error) {
	s.calls++
	return s.emails[email], nil
}

func (s *stubRefs) ActivityNameExists(ctx context.Context, name string) (bool, error) {
	s.calls++
	return s.activities[name], nil
}

func makeRow(index int, fields map[string]string) Row {
	return Row{Index: index, Fields: fields}
}

func validCompanyFields(vat string, categoryID uuid.UUID) map[string]string {
	return map[string]string{
		"Name":         "Rossi Distribuzione",
		"VAT":          vat,
		"IsSupplier":   "sì",
		"IsSeller":     "no",
		"AddressLine1": "Via Roma 10",
		"City":         "Milano",
		"State":        "MI",
		"Country":      "Italia",
		"CategoryId":   categoryID.String(),
	}
}

func TestValidateJobMissingRequiredFieldStopsBeforeStore(t *testing.T) {
	refs := newStubRefs()
	v := NewValidator(refs)

	fields := validCompanyFields("01234567890", uuid.New())
	fields["VAT"] = ""
	job := &ImportJob{
		EntityType: CompaniesEntity,
		Rows:       []Row{makeRow(0, fields)},
	}

	batch, err := v.ValidateJob(context.Background(), job)
	require.Error(t, err)
	assert.Nil(t, batch)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 2, validationErr.Row)
	assert.Equal(t, "VAT missing or empty", validationErr.Message)
	assert.Zero(t, refs.calls, "a row failing the required check must never reach the store")
}

func TestValidateJobFailFastSkipsLaterRows(t *testing.T) {
	categoryID := uuid.New()
	refs := newStubRefs()
	refs.categories[categoryID] = true
	v := NewValidator(refs)

	bad := validCompanyFields("09876543210", categoryID)
	bad["VAT"] = ""
	// The third row carries a VAT that would also fail; its error must never
	// surface because the job stops at the second row.
	alsoBad := validCompanyFields("not-a-vat", categoryID)

	job := &ImportJob{
		EntityType: CompaniesEntity,
		Rows: []Row{
			makeRow(0, validCompanyFields("01234567890", categoryID)),
			makeRow(1, bad),
			makeRow(2, alsoBad),
		},
	}

	_, err := v.ValidateJob(context.Background(), job)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 3, validationErr.Row)
	assert.Equal(t, "VAT missing or empty", validationErr.Message)
}

func TestValidateCompanyVATFormat(t *testing.T) {
	categoryID := uuid.New()
	refs := newStubRefs()
	refs.categories[categoryID] = true
	v := NewValidator(refs)

	job := &ImportJob{
		EntityType: CompaniesEntity,
		Rows:       []Row{makeRow(0, validCompanyFields("12345", categoryID))},
	}

	_, err := v.ValidateJob(context.Background(), job)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "must be exactly 11 digits")
}

func TestValidateCompanyDuplicateVATWithinFile(t *testing.T) {
	categoryID := uuid.New()
	refs := newStubRefs()
	refs.categories[categoryID] = true
	v := NewValidator(refs)

	job := &ImportJob{
		EntityType: CompaniesEntity,
		Rows: []Row{
			makeRow(0, validCompanyFields("01234567890", categoryID)),
			makeRow(1, validCompanyFields("01234567890", categoryID)),
		},
	}

	_, err := v.ValidateJob(context.Background(), job)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 3, validationErr.Row)
	assert.Contains(t, validationErr.Message, "duplicate VAT")
	assert.Contains(t, validationErr.Message, "row 2")
}

func TestValidateCompanyVATAlreadyPersisted(t *testing.T) {
	categoryID := uuid.New()
	refs := newStubRefs()
	refs.categories[categoryID] = true
	refs.vats["01234567890"] = true
	v := NewValidator(refs)

	job := &ImportJob{
		EntityType: CompaniesEntity,
		Rows:       []Row{makeRow(0, validCompanyFields("01234567890", categoryID))},
	}

	_, err := v.ValidateJob(context.Background(), job)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "already exists")
}

func TestValidateCompanyForbiddenName(t *testing.T) {
	categoryID := uuid.New()
	refs := newStubRefs()
	refs.categories[categoryID] = true
	v := NewValidator(refs)

	fields := validCompanyFields("01234567890", categoryID)
	fields["Name"] = "test"
	job := &ImportJob{EntityType: CompaniesEntity, Rows: []Row{makeRow(0, fields)}}

	_, err := v.ValidateJob(context.Background(), job)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "not an acceptable company name")
}

func validPersonFields(email string, companyID, roleID uuid.UUID) map[string]string {
	return map[string]string{
		"Name":      "Mario",
		"Surname":   "Rossi",
		"Email":     email,
		"Phone":     "347 123 4567",
		"CompanyId": companyID.String(),
		"RoleId":    roleID.String(),
	}
}

func TestValidatePersonDuplicateEmailWithinFile(t *testing.T) {
	companyID, roleID := uuid.New(), uuid.New()
	refs := newStubRefs()
	refs.companies[companyID] = true
	refs.roles[roleID] = true
	v := NewValidator(refs)

	job := &ImportJob{
		EntityType: PeopleEntity,
		Rows: []Row{
			makeRow(0, validPersonFields("mario.rossi@example.com", companyID, roleID)),
			makeRow(1, validPersonFields("MARIO.ROSSI@example.com", companyID, roleID)),
		},
	}

	_, err := v.ValidateJob(context.Background(), job)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, 3, validationErr.Row)
	assert.Contains(t, validationErr.Message, "duplicate email")
}

func TestValidatePersonDuplicateStateNotSharedAcrossJobs(t *testing.T) {
	companyID, roleID := uuid.New(), uuid.New()
	refs := newStubRefs()
	refs.companies[companyID] = true
	refs.roles[roleID] = true
	v := NewValidator(refs)

	run := func() error {
		job := &ImportJob{
			EntityType: PeopleEntity,
			Rows:       []Row{makeRow(0, validPersonFields("mario.rossi@example.com", companyID, roleID))},
		}
		_, err := v.ValidateJob(context.Background(), job)
		return err
	}

	// The same email in two independent jobs is fine as long as nothing was
	// persisted in between: duplicate tracking lives inside one job only.
	require.NoError(t, run())
	require.NoError(t, run())
}

func TestValidatePersonNormalizesPhone(t *testing.T) {
	companyID, roleID := uuid.New(), uuid.New()
	refs := newStubRefs()
	refs.companies[companyID] = true
	refs.roles[roleID] = true
	v := NewValidator(refs)

	job := &ImportJob{
		EntityType: PeopleEntity,
		Rows:       []Row{makeRow(0, validPersonFields("mario.rossi@example.com", companyID, roleID))},
	}

	batch, err := v.ValidateJob(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, batch.People, 1)
	assert.Equal(t, "+393471234567", batch.People[0].Phone)
}

func TestValidatePersonUnknownCompanyReference(t *testing.T) {
	companyID, roleID := uuid.New(), uuid.New()
	refs := newStubRefs()
	refs.roles[roleID] = true
	v := NewValidator(refs)

	job := &ImportJob{
		EntityType: PeopleEntity,
		Rows:       []Row{makeRow(0, validPersonFields("mario.rossi@example.com", companyID, roleID))},
	}

	_, err := v.ValidateJob(context.Background(), job)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "no company found")
}

func TestValidateSellingPointFoldsSupplierColumns(t *testing.T) {
	sellerID := uuid.New()
	supplierA, supplierB := uuid.New(), uuid.New()
	refs := newStubRefs()
	refs.sellers[sellerID] = true
	refs.suppliers[supplierA] = true
	refs.suppliers[supplierB] = true
	v := NewValidator(refs)

	fields := map[string]string{
		"Name":            "Punto Vendita Centro",
		"SellerCompanyId": sellerID.String(),
		"AddressLine1":    "Via Roma 10",
		"City":            "Milano",
		"State":           "MI",
		"Country":         "Italia",
		"SupplierId1":     supplierA.String(),
		"SupplierId2":     "",
		"SupplierId3":     supplierB.String(),
		"SupplierId4":     supplierA.String(), // duplicate collapses
	}
	job := &ImportJob{EntityType: SellingPointsEntity, Rows: []Row{makeRow(0, fields)}}

	batch, err := v.ValidateJob(context.Background(), job)
	require.NoError(t, err)
	require.Len(t, batch.SellingPoints, 1)

	suppliers := batch.SellingPoints[0].Suppliers
	require.Len(t, suppliers, 2)
	assert.Equal(t, supplierA, suppliers[0].SupplierID)
	assert.Equal(t, supplierB, suppliers[1].SupplierID)
}

func TestValidateActivityDuplicateWithinFile(t *testing.T) {
	refs := newStubRefs()
	v := NewValidator(refs)

	job := &ImportJob{
		EntityType: ActivitiesEntity,
		Rows: []Row{
			makeRow(0, map[string]string{"Name": "Visita"}),
			makeRow(1, map[string]string{"Name": "visita"}),
		},
	}

	_, err := v.ValidateJob(context.Background(), job)
	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Contains(t, validationErr.Message, "duplicate activity")
}

func TestParseYesNoTokens(t *testing.T) {
	cases := []struct {
		raw   string
		value bool
		ok    bool
	}{
		{"sì", true, true},
		{"si", true, true},
		{"SI", true, true},
		{"yes", true, true},
		{"true", true, true},
		{"1", true, true},
		{"no", false, true},
		{"false", false, true},
		{"0", false, true},
		{"maybe", false, false},
		{"", false, false},
	}

	for _, tc := range cases {
		value, ok := parseYesNo(tc.raw)
		assert.Equal(t, tc.ok, ok, "token %q", tc.raw)
		assert.Equal(t, tc.value, value, "token %q", tc.raw)
	}
}
