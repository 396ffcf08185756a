package repositories

import (
	"context"

	"sales-ops-backend/db/models"
	"sales-ops-backend/imports/services"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ImportRepository is the storage collaborator behind the import pipeline:
// existence checks for the validator, reference lists for the template
// generator, ordered creates for the writer, and error/email bookkeeping.
type ImportRepository interface {
	services.ReferenceChecker
	services.ReferenceLister
	services.EntityStore

	LogImportErrors(ctx context.Context, records []models.BulkImportError) error
	LogEmailSent(ctx context.Context, emailLog *models.EmailLog) error

	// Full fetches feeding the startup search reindex.
	GetAllSellingPoints(ctx context.Context) ([]models.SellingPoint, error)
	GetAllPeople(ctx context.Context) ([]models.Person, error)
}

type importRepository struct {
	db *gorm.DB
}

func NewImportRepository(db *gorm.DB) ImportRepository {
	return &importRepository{db: db}
}

// Transaction re-binds the repository to one database transaction so every
// write of a batch commits or rolls back together.
func (r *importRepository) Transaction(ctx context.Context, fn func(services.EntityStore) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&importRepository{db: tx})
	})
}

// ---- Creates (writer) ----

func (r *importRepository) CreateAddress(ctx context.Context, address *models.Address) error {
	return r.db.WithContext(ctx).Create(address).Error
}

func (r *importRepository) CreateCompany(ctx context.Context, company *models.Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *importRepository) CreateSellingPoint(ctx context.Context, sellingPoint *models.SellingPoint) error {
	return r.db.WithContext(ctx).Create(sellingPoint).Error
}

func (r *importRepository) CreateSupplierLink(ctx context.Context, link *models.SupplierLink) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *importRepository) CreatePerson(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *importRepository) CreateActivity(ctx context.Context, activity *models.Activity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

// ---- Existence checks (validator) ----

func (r *importRepository) CategoryExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Category{}, "id = ? AND is_active = ?", id, true)
}

func (r *importRepository) CompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Company{}, "id = ? AND is_active = ?", id, true)
}

func (r *importRepository) SellerCompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Company{}, "id = ? AND is_seller = ? AND is_active = ?", id, true, true)
}

func (r *importRepository) SupplierCompanyExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Company{}, "id = ? AND is_supplier = ? AND is_active = ?", id, true, true)
}

func (r *importRepository) SellingPointExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.SellingPoint{}, "id = ? AND is_active = ?", id, true)
}

func (r *importRepository) RoleExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return r.exists(ctx, &models.Role{}, "id = ? AND is_active = ?", id, true)
}

func (r *importRepository) CompanyVATExists(ctx context.Context, vat string) (bool, error) {
	return r.exists(ctx, &models.Company{}, "vat = ?", vat)
}

func (r *importRepository) PersonEmailExists(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, &models.Person{}, "LOWER(email) = LOWER(?)", email)
}

func (r *importRepository) ActivityNameExists(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, &models.Activity{}, "LOWER(name) = LOWER(?)", name)
}

func (r *importRepository) exists(ctx context.Context, model interface{}, query string, args ...interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(model).Where(query, args...).Count(&count).Error
	return count > 0, err
}

// ---- Reference lists (template generator) ----

func (r *importRepository) ListCategories(ctx context.Context) ([]services.ReferenceItem, error) {
	return r.listReference(ctx, &models.Category{}, "is_active = ?", true)
}

func (r *importRepository) ListCompanies(ctx context.Context) ([]services.ReferenceItem, error) {
	return r.listReference(ctx, &models.Company{}, "is_active = ?", true)
}

func (r *importRepository) ListSellerCompanies(ctx context.Context) ([]services.ReferenceItem, error) {
	return r.listReference(ctx, &models.Company{}, "is_seller = ? AND is_active = ?", true, true)
}

func (r *importRepository) ListSupplierCompanies(ctx context.Context) ([]services.ReferenceItem, error) {
	return r.listReference(ctx, &models.Company{}, "is_supplier = ? AND is_active = ?", true, true)
}

func (r *importRepository) ListRoles(ctx context.Context) ([]services.ReferenceItem, error) {
	return r.listReference(ctx, &models.Role{}, "is_active = ?", true)
}

func (r *importRepository) ListSellingPoints(ctx context.Context) ([]services.ReferenceItem, error) {
	return r.listReference(ctx, &models.SellingPoint{}, "is_active = ?", true)
}

func (r *importRepository) listReference(ctx context.Context, model interface{}, query string, args ...interface{}) ([]services.ReferenceItem, error) {
	var items []services.ReferenceItem
	err := r.db.WithContext(ctx).
		Model(model).
		Select("id", "name").
		Where(query, args...).
		Order("name").
		Scan(&items).Error
	return items, err
}

// ---- Full fetches (startup reindex) ----

func (r *importRepository) GetAllSellingPoints(ctx context.Context) ([]models.SellingPoint, error) {
	var points []models.SellingPoint
	err := r.db.WithContext(ctx).
		Preload("SellerCompany").
		Preload("Address").
		Find(&points).Error
	return points, err
}

func (r *importRepository) GetAllPeople(ctx context.Context) ([]models.Person, error) {
	var people []models.Person
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Role").
		Find(&people).Error
	return people, err
}

// ---- Bookkeeping ----

func (r *importRepository) LogImportErrors(ctx context.Context, records []models.BulkImportError) error {
	if len(records) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&records).Error
}

func (r *importRepository) LogEmailSent(ctx context.Context, emailLog *models.EmailLog) error {
	return r.db.WithContext(ctx).Create(emailLog).Error
}
