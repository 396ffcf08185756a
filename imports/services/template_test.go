package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLister serves canned reference lists and counts fetches so tests can
// prove every generation hits the store again.
type stubLister struct {
	categories []ReferenceItem
	sellers    []ReferenceItem
	suppliers  []ReferenceItem

	fetches int
}

func (s *stubLister) ListCategories(ctx context.Context) ([]ReferenceItem, error) {
	s.fetches++
	return s.categories, nil
}

func (s *stubLister) ListCompanies(ctx context.Context) ([]ReferenceItem, error) {
	s.fetches++
	return nil, nil
}

func (s *stubLister) ListSellerCompanies(ctx context.Context) ([]ReferenceItem, error) {
	s.fetches++
	return s.sellers, nil
}

func (s *stubLister) ListSupplierCompanies(ctx context.Context) ([]ReferenceItem, error) {
	s.fetches++
	return s.suppliers, nil
}

func (s *stubLister) ListRoles(ctx context.Context) ([]ReferenceItem, error) {
	s.fetches++
	return nil, nil
}

func (s *stubLister) ListSellingPoints(ctx context.Context) ([]ReferenceItem, error) {
	s.fetches++
	return nil, nil
}

func TestGenerateCompaniesTemplateHeaders(t *testing.T) {
	g := NewTemplateGenerator(&stubLister{})

	f, err := g.Generate(context.Background(), CompaniesEntity)
	require.NoError(t, err)

	rows, err := f.GetRows(templateDataSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1, "a template has a header row and nothing else")
	assert.Equal(t, SchemaFor(CompaniesEntity).Headers, rows[0])
}

func TestGenerateSellingPointsTemplateReferenceSheets(t *testing.T) {
	sellerID, supplierID := uuid.New(), uuid.New()
	lister := &stubLister{
		sellers:   []ReferenceItem{{ID: sellerID, Name: "Rossi Distribuzione"}},
		suppliers: []ReferenceItem{{ID: supplierID, Name: "Fornitore Nord"}},
	}
	g := NewTemplateGenerator(lister)

	f, err := g.Generate(context.Background(), SellingPointsEntity)
	require.NoError(t, err)

	sellers, err := f.GetRows("Sellers")
	require.NoError(t, err)
	require.Len(t, sellers, 2)
	assert.Equal(t, []string{"Id", "Name"}, sellers[0])
	assert.Equal(t, []string{sellerID.String(), "Rossi Distribuzione"}, sellers[1])

	suppliers, err := f.GetRows("Suppliers")
	require.NoError(t, err)
	require.Len(t, suppliers, 2)
	assert.Equal(t, supplierID.String(), suppliers[1][0])
}

func TestGenerateTemplateFetchesFreshDataEveryTime(t *testing.T) {
	lister := &stubLister{}
	g := NewTemplateGenerator(lister)

	_, err := g.Generate(context.Background(), CompaniesEntity)
	require.NoError(t, err)
	_, err = g.Generate(context.Background(), CompaniesEntity)
	require.NoError(t, err)

	assert.Equal(t, 2, lister.fetches, "reference lists are re-read on every generation")
}

func TestGenerateTemplateUnknownEntityType(t *testing.T) {
	g := NewTemplateGenerator(&stubLister{})
	_, err := g.Generate(context.Background(), EntityType("warehouses"))
	assert.Error(t, err)
}

// A filled-in template must parse back with the exact column names the
// validator checks, proving template and schema cannot drift apart.
func TestTemplateRoundTripsThroughParser(t *testing.T) {
	g := NewTemplateGenerator(&stubLister{})

	f, err := g.Generate(context.Background(), ActivitiesEntity)
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue(templateDataSheet, "A2", "Visita"))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	rows, err := ParseUpload(context.Background(), "activities.xlsx", bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Visita", rows[0].Get("Name"))
}
