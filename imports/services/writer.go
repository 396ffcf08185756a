package services

import (
	"context"
	"time"

	"sales-ops-backend/db/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// EntityStore is the slice of the storage layer the writer needs: ordered
// creates plus a transaction boundary. The production implementation wraps
// GORM; tests substitute a recording stub.
type EntityStore interface {
	CreateAddress(ctx context.Context, address *models.Address) error
	CreateCompany(ctx context.Context, company *models.Company) error
	CreateSellingPoint(ctx context.Context, sellingPoint *models.SellingPoint) error
	CreateSupplierLink(ctx context.Context, link *models.SupplierLink) error
	CreatePerson(ctx context.Context, person *models.Person) error
	CreateActivity(ctx context.Context, activity *models.Activity) error

	// Transaction runs fn against a store bound to one database
	// transaction; any error rolls the whole batch back.
	Transaction(ctx context.Context, fn func(EntityStore) error) error
}

// Writer persists a fully validated batch. Rows are processed strictly in
// original order, each as address then primary entity then link records, and
// the entire batch shares one transaction: validation already promised the
// uploader all-or-nothing, so a failure on a later row must not leave the
// earlier rows behind.
type Writer struct {
	store    EntityStore
	resolver *AddressResolver
	logger   *zap.Logger
}

func NewWriter(store EntityStore, resolver *AddressResolver, logger *zap.Logger) *Writer {
	return &Writer{store: store, resolver: resolver, logger: logger}
}

// WriteBatch persists the batch and returns the number of primary entities
// created. On error nothing is left persisted.
func (w *Writer) WriteBatch(ctx context.Context, batch *ValidatedBatch, createdBy string) (int, error) {
	count := 0
	err := w.store.Transaction(ctx, func(tx EntityStore) error {
		switch batch.EntityType {
		case CompaniesEntity:
			return w.writeCompanies(ctx, tx, batch.Companies, createdBy, &count)
		case SellingPointsEntity:
			return w.writeSellingPoints(ctx, tx, batch.SellingPoints, createdBy, &count)
		case PeopleEntity:
			return w.writePeople(ctx, tx, batch.People, createdBy, &count)
		case ActivitiesEntity:
			return w.writeActivities(ctx, tx, batch.Activities, createdBy, &count)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (w *Writer) writeCompanies(ctx context.Context, tx EntityStore, rows []CompanyRow, createdBy string, count *int) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		address, err := w.resolveRowAddress(ctx, row.Row, row.Address, createdBy)
		if err != nil {
			return err
		}
		if err := tx.CreateAddress(ctx, address); err != nil {
			return &WriteError{Row: row.Row.SheetRow(), Err: err}
		}

		company := &models.Company{
			ID:         uuid.New(),
			Name:       row.Name,
			VAT:        row.VAT,
			IsSupplier: row.IsSupplier,
			IsSeller:   row.IsSeller,
			AddressID:  &address.ID,
			CategoryID: &row.CategoryID,
			IsActive:   true,
			CreatedBy:  createdBy,
		}
		if err := tx.CreateCompany(ctx, company); err != nil {
			return &WriteError{Row: row.Row.SheetRow(), Err: err}
		}
		*count++
	}
	return nil
}

func (w *Writer) writeSellingPoints(ctx context.Context, tx EntityStore, rows []SellingPointRow, createdBy string, count *int) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		address, err := w.resolveRowAddress(ctx, row.Row, row.Address, createdBy)
		if err != nil {
			return err
		}
		if err := tx.CreateAddress(ctx, address); err != nil {
			return &WriteError{Row: row.Row.SheetRow(), Err: err}
		}

		sellingPoint := &models.SellingPoint{
			ID:              uuid.New(),
			Name:            row.Name,
			SellerCompanyID: row.SellerCompanyID,
			AddressID:       address.ID,
			IsActive:        true,
			CreatedBy:       createdBy,
		}
		if row.Phone != "" {
			phone := row.Phone
			sellingPoint.Phone = &phone
		}
		if err := tx.CreateSellingPoint(ctx, sellingPoint); err != nil {
			return &WriteError{Row: row.Row.SheetRow(), Err: err}
		}
		*count++

		for _, supplier := range row.Suppliers {
			link := &models.SupplierLink{
				ID:             uuid.New(),
				SupplierID:     supplier.SupplierID,
				SellingPointID: sellingPoint.ID,
				StartDate:      time.Now(),
				IsActive:       true,
				CreatedBy:      createdBy,
			}
			if err := tx.CreateSupplierLink(ctx, link); err != nil {
				return &WriteError{Row: row.Row.SheetRow(), Err: err}
			}
		}
	}
	return nil
}

func (w *Writer) writePeople(ctx context.Context, tx EntityStore, rows []PersonRow, createdBy string, count *int) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		person := &models.Person{
			ID:             uuid.New(),
			Name:           row.Name,
			Surname:        row.Surname,
			Email:          row.Email,
			Phone:          row.Phone,
			CompanyID:      row.CompanyID,
			SellingPointID: row.SellingPointID,
			RoleID:         row.RoleID,
			IsActive:       true,
			CreatedBy:      createdBy,
		}
		if err := tx.CreatePerson(ctx, person); err != nil {
			return &WriteError{Row: row.Row.SheetRow(), Err: err}
		}
		*count++
	}
	return nil
}

func (w *Writer) writeActivities(ctx context.Context, tx EntityStore, rows []ActivityRow, createdBy string, count *int) error {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		activity := &models.Activity{
			ID:        uuid.New(),
			Name:      row.Name,
			IsActive:  true,
			CreatedBy: createdBy,
		}
		if err := tx.CreateActivity(ctx, activity); err != nil {
			return &WriteError{Row: row.Row.SheetRow(), Err: err}
		}
		*count++
	}
	return nil
}

// resolveRowAddress resolves an address for one row, stamping the row number
// onto a geocoding failure so the uploader can find the offending line.
func (w *Writer) resolveRowAddress(ctx context.Context, row Row, input AddressInput, createdBy string) (*models.Address, error) {
	address, err := w.resolver.Resolve(ctx, input, createdBy)
	if err != nil {
		if failure, ok := err.(*GeocodeFailure); ok {
			failure.Row = row.SheetRow()
			w.logger.Warn("geocoding failed for import row",
				zap.Int("row", failure.Row),
				zap.String("city", failure.City),
				zap.Error(failure.Err),
			)
			return nil, failure
		}
		return nil, err
	}
	return address, nil
}
