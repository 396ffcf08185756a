package services

import (
	"context"
	"errors"
	"testing"

	"sales-ops-backend/db/models"
	"sales-ops-backend/geocoding"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// recordingStore captures every create so tests can assert write order and
// rollback behaviour without a database.
type recordingStore struct {
	addresses     []*models.Address
	companies     []*models.Company
	sellingPoints []*models.SellingPoint
	supplierLinks []*models.SupplierLink
	people        []*models.Person
	activities    []*models.Activity

	failCompanyAt int // 1-based create call that fails, 0 disables
	txCalls       int
	rolledBack    bool
}

func (s *recordingStore) Transaction(ctx context.Context, fn func(EntityStore) error) error {
	s.txCalls++
	if err := fn(s); err != nil {
		s.rolledBack = true
		return err
	}
	return nil
}

func (s *recordingStore) CreateAddress(ctx context.Context, address *models.Address) error {
	s.addresses = append(s.addresses, address)
	return nil
}

func (s *recordingStore) CreateCompany(ctx context.Context, company *models.Company) error {
	if s.failCompanyAt > 0 && len(s.companies)+1 == s.failCompanyAt {
		return errors.New("unique constraint violation")
	}
	s.companies = append(s.companies, company)
	return nil
}

func (s *recordingStore) CreateSellingPoint(ctx context.Context, sellingPoint *models.SellingPoint) error {
	s.sellingPoints = append(s.sellingPoints, sellingPoint)
	return nil
}

func (s *recordingStore) CreateSupplierLink(ctx context.Context, link *models.SupplierLink) error {
	s.supplierLinks = append(s.supplierLinks, link)
	return nil
}

func (s *recordingStore) CreatePerson(ctx context.Context, person *models.Person) error {
	s.people = append(s.people, person)
	return nil
}

func (s *recordingStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	s.activities = append(s.activities, activity)
	return nil
}

// stubGeocoder returns a fixed coordinate pair and counts calls.
type stubGeocoder struct {
	result *geocoding.Result
	err    error
	calls  int
}

func (g *stubGeocoder) Geocode(ctx context.Context, components geocoding.Components) (*geocoding.Result, error) {
	g.calls++
	if g.err != nil {
		return nil, g.err
	}
	return g.result, nil
}

func fixedCoordinates() (decimal.Decimal, decimal.Decimal) {
	return decimal.RequireFromString("45.4642"), decimal.RequireFromString("9.1900")
}

func addressWithCoordinates() AddressInput {
	lat, lng := fixedCoordinates()
	return AddressInput{
		Line1:     "Via Roma 10",
		City:      "Milano",
		State:     "MI",
		Country:   "Italia",
		Latitude:  &lat,
		Longitude: &lng,
	}
}

func addressWithoutCoordinates(city string) AddressInput {
	return AddressInput{
		Line1:   "Via Roma 10",
		City:    city,
		State:   "MI",
		Country: "Italia",
	}
}

func companyRow(index int, vat string, address AddressInput) CompanyRow {
	return CompanyRow{
		Row:        Row{Index: index},
		Name:       "Rossi Distribuzione",
		VAT:        vat,
		IsSupplier: true,
		Address:    address,
		CategoryID: uuid.New(),
	}
}

func newTestWriter(store EntityStore, geocoder geocoding.Geocoder) *Writer {
	return NewWriter(store, NewAddressResolver(geocoder), zap.NewNop())
}

func TestWriteBatchCompaniesAllSucceed(t *testing.T) {
	store := &recordingStore{}
	geocoder := &stubGeocoder{}
	w := newTestWriter(store, geocoder)

	batch := &ValidatedBatch{
		EntityType: CompaniesEntity,
		Companies: []CompanyRow{
			companyRow(0, "01234567890", addressWithCoordinates()),
			companyRow(1, "09876543210", addressWithCoordinates()),
		},
	}

	count, err := w.WriteBatch(context.Background(), batch, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Len(t, store.companies, 2)
	assert.Len(t, store.addresses, 2)
	assert.Equal(t, 1, store.txCalls, "the whole batch shares one transaction")
	assert.Zero(t, geocoder.calls, "rows carrying coordinates never hit the geocoder")

	// Every company points at the address created just before it.
	for i, company := range store.companies {
		require.NotNil(t, company.AddressID)
		assert.Equal(t, store.addresses[i].ID, *company.AddressID)
		assert.Equal(t, "ops@example.com", company.CreatedBy)
	}
}

func TestWriteBatchGeocodesOnlyRowsMissingCoordinates(t *testing.T) {
	lat, lng := fixedCoordinates()
	store := &recordingStore{}
	geocoder := &stubGeocoder{result: &geocoding.Result{Latitude: lat, Longitude: lng}}
	w := newTestWriter(store, geocoder)

	batch := &ValidatedBatch{
		EntityType: CompaniesEntity,
		Companies: []CompanyRow{
			companyRow(0, "01234567890", addressWithCoordinates()),
			companyRow(1, "09876543210", addressWithoutCoordinates("Torino")),
			companyRow(2, "11111111111", addressWithoutCoordinates("Napoli")),
		},
	}

	count, err := w.WriteBatch(context.Background(), batch, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
	assert.Equal(t, 2, geocoder.calls)

	// Geocoded coordinates end up on the persisted address.
	require.Len(t, store.addresses, 3)
	assert.True(t, store.addresses[1].Latitude.Equal(lat))
	assert.True(t, store.addresses[1].Longitude.Equal(lng))
}

func TestWriteBatchGeocodeFailureAbortsWholeBatch(t *testing.T) {
	store := &recordingStore{}
	geocoder := &stubGeocoder{err: geocoding.ErrNoResults}
	w := newTestWriter(store, geocoder)

	batch := &ValidatedBatch{
		EntityType: CompaniesEntity,
		Companies: []CompanyRow{
			companyRow(0, "01234567890", addressWithCoordinates()),
			companyRow(1, "09876543210", addressWithoutCoordinates("Atlantide")),
		},
	}

	count, err := w.WriteBatch(context.Background(), batch, "ops@example.com")
	require.Error(t, err)
	assert.Zero(t, count)
	assert.True(t, store.rolledBack, "a failing row must roll back the rows already written")

	var failure *GeocodeFailure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, 3, failure.Row)
	assert.Equal(t, "Atlantide", failure.City)
}

func TestWriteBatchStorageFailureRollsBack(t *testing.T) {
	store := &recordingStore{failCompanyAt: 2}
	w := newTestWriter(store, &stubGeocoder{})

	batch := &ValidatedBatch{
		EntityType: CompaniesEntity,
		Companies: []CompanyRow{
			companyRow(0, "01234567890", addressWithCoordinates()),
			companyRow(1, "09876543210", addressWithCoordinates()),
		},
	}

	count, err := w.WriteBatch(context.Background(), batch, "ops@example.com")
	require.Error(t, err)
	assert.Zero(t, count)
	assert.True(t, store.rolledBack)

	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, 3, writeErr.Row)
}

func TestWriteBatchSellingPointsCreateSupplierLinks(t *testing.T) {
	supplierA, supplierB := uuid.New(), uuid.New()
	store := &recordingStore{}
	w := newTestWriter(store, &stubGeocoder{})

	batch := &ValidatedBatch{
		EntityType: SellingPointsEntity,
		SellingPoints: []SellingPointRow{
			{
				Row:             Row{Index: 0},
				Name:            "Punto Vendita Centro",
				SellerCompanyID: uuid.New(),
				Phone:           "+390212345678",
				Address:         addressWithCoordinates(),
				Suppliers: []SupplierRef{
					{SupplierID: supplierA, Column: "SupplierId1"},
					{SupplierID: supplierB, Column: "SupplierId2"},
				},
			},
		},
	}

	count, err := w.WriteBatch(context.Background(), batch, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "supplier links do not count as primary entities")
	require.Len(t, store.sellingPoints, 1)
	require.Len(t, store.supplierLinks, 2)

	sellingPointID := store.sellingPoints[0].ID
	assert.Equal(t, supplierA, store.supplierLinks[0].SupplierID)
	assert.Equal(t, sellingPointID, store.supplierLinks[0].SellingPointID)
	assert.Equal(t, supplierB, store.supplierLinks[1].SupplierID)
	assert.Equal(t, sellingPointID, store.supplierLinks[1].SellingPointID)
}

func TestWriteBatchPeople(t *testing.T) {
	store := &recordingStore{}
	w := newTestWriter(store, &stubGeocoder{})

	companyID, roleID := uuid.New(), uuid.New()
	batch := &ValidatedBatch{
		EntityType: PeopleEntity,
		People: []PersonRow{
			{
				Row:       Row{Index: 0},
				Name:      "Mario",
				Surname:   "Rossi",
				Email:     "mario.rossi@example.com",
				Phone:     "+393471234567",
				CompanyID: companyID,
				RoleID:    roleID,
			},
		},
	}

	count, err := w.WriteBatch(context.Background(), batch, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, store.people, 1)
	assert.Equal(t, companyID, store.people[0].CompanyID)
	assert.Nil(t, store.people[0].SellingPointID)
}

func TestWriteBatchCancelledContext(t *testing.T) {
	store := &recordingStore{}
	w := newTestWriter(store, &stubGeocoder{})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch := &ValidatedBatch{
		EntityType: CompaniesEntity,
		Companies:  []CompanyRow{companyRow(0, "01234567890", addressWithCoordinates())},
	}

	_, err := w.WriteBatch(ctx, batch, "ops@example.com")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, store.companies)
}
