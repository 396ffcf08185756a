package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// templateDataSheet is the sheet the uploader fills in; reference sheets sit
// after it.
const templateDataSheet = "Data"

// ReferenceItem is one (id, display name) pair shown on a reference sheet so
// the uploader can copy valid foreign keys into the data sheet.
type ReferenceItem struct {
	ID   uuid.UUID
	Name string
}

// ReferenceLister is the slice of the storage layer the template generator
// needs. Every call hits the store directly: templates must reflect the
// reference rows as they are at generation time, never a cached copy.
type ReferenceLister interface {
	ListCategories(ctx context.Context) ([]ReferenceItem, error)
	ListCompanies(ctx context.Context) ([]ReferenceItem, error)
	ListSellerCompanies(ctx context.Context) ([]ReferenceItem, error)
	ListSupplierCompanies(ctx context.Context) ([]ReferenceItem, error)
	ListRoles(ctx context.Context) ([]ReferenceItem, error)
	ListSellingPoints(ctx context.Context) ([]ReferenceItem, error)
}

// TemplateGenerator builds the downloadable import template for one entity
// type: a header row matching the validator's schema plus one reference
// sheet per foreign-key domain the schema references.
type TemplateGenerator struct {
	refs ReferenceLister
}

func NewTemplateGenerator(refs ReferenceLister) *TemplateGenerator {
	return &TemplateGenerator{refs: refs}
}

// Generate builds the workbook in memory; the caller streams or saves it.
func (g *TemplateGenerator) Generate(ctx context.Context, entityType EntityType) (*excelize.File, error) {
	schema := SchemaFor(entityType)
	if len(schema.Headers) == 0 {
		return nil, fmt.Errorf("unknown entity type %q", entityType)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", templateDataSheet); err != nil {
		return nil, err
	}

	for col, header := range schema.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(templateDataSheet, cell, header); err != nil {
			return nil, fmt.Errorf("error setting header %s: %w", header, err)
		}
	}

	for _, sheet := range g.referenceSheets(entityType) {
		items, err := sheet.list(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s reference data: %w", sheet.name, err)
		}
		if err := writeReferenceSheet(f, sheet.name, items); err != nil {
			return nil, err
		}
	}

	return f, nil
}

type referenceSheet struct {
	name string
	list func(ctx context.Context) ([]ReferenceItem, error)
}

// referenceSheets maps an entity type to the foreign-key domains its schema
// references, in template order.
func (g *TemplateGenerator) referenceSheets(entityType EntityType) []referenceSheet {
	switch entityType {
	case CompaniesEntity:
		return []referenceSheet{
			{name: "Categories", list: g.refs.ListCategories},
		}
	case SellingPointsEntity:
		return []referenceSheet{
			{name: "Sellers", list: g.refs.ListSellerCompanies},
			{name: "Suppliers", list: g.refs.ListSupplierCompanies},
		}
	case PeopleEntity:
		return []referenceSheet{
			{name: "Companies", list: g.refs.ListCompanies},
			{name: "SellingPoints", list: g.refs.ListSellingPoints},
			{name: "Roles", list: g.refs.ListRoles},
		}
	default:
		return nil
	}
}

func writeReferenceSheet(f *excelize.File, name string, items []ReferenceItem) error {
	if _, err := f.NewSheet(name); err != nil {
		return err
	}
	if err := f.SetCellValue(name, "A1", "Id"); err != nil {
		return err
	}
	if err := f.SetCellValue(name, "B1", "Name"); err != nil {
		return err
	}
	for i, item := range items {
		rowNumber := i + 2
		if err := f.SetCellValue(name, fmt.Sprintf("A%d", rowNumber), item.ID.String()); err != nil {
			return err
		}
		if err := f.SetCellValue(name, fmt.Sprintf("B%d", rowNumber), item.Name); err != nil {
			return err
		}
	}
	return nil
}
