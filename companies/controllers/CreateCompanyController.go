package controllers

import (
	"errors"

	"sales-ops-backend/companies/services"
	"sales-ops-backend/config"
	"sales-ops-backend/db/models"
	"sales-ops-backend/geocoding"
	importservices "sales-ops-backend/imports/services"
	"sales-ops-backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type createCompanyRequest struct {
	Name       string                `json:"name"`
	VAT        string                `json:"vat"`
	IsSupplier bool                  `json:"is_supplier"`
	IsSeller   bool                  `json:"is_seller"`
	CategoryID *string               `json:"category_id"`
	CreatedBy  string                `json:"created_by"`
	Address    *createAddressPayload `json:"address"`
}

type createAddressPayload struct {
	Line1      string   `json:"line1"`
	Line2      string   `json:"line2"`
	City       string   `json:"city"`
	State      string   `json:"state"`
	PostalCode string   `json:"postal_code"`
	Country    string   `json:"country"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
}

// CreateCompany handles the interactive creation form. Address coordinates
// are geocoded through the same resolver the bulk importer uses, so a form
// submission without latitude and longitude still ends up with both.
func (cc *CompanyController) CreateCompany(c *fiber.Ctx) error {
	var req createCompanyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"message": "Invalid request",
			"error":   err.Error(),
		})
	}

	company := &models.Company{
		ID:         uuid.New(),
		Name:       req.Name,
		VAT:        req.VAT,
		IsSupplier: req.IsSupplier,
		IsSeller:   req.IsSeller,
		IsActive:   true,
		CreatedBy:  req.CreatedBy,
	}

	if validationError := services.ValidateCompany(company); validationError != "" {
		return c.Status(400).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   validationError,
		})
	}

	if req.CategoryID != nil {
		categoryID := utils.StringToUUIDPtr(*req.CategoryID)
		if categoryID == nil {
			return c.Status(400).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   "CategoryId is not a valid UUID",
			})
		}
		exists, err := cc.CompanyRepo.CategoryExists(c.Context(), *categoryID)
		if err != nil {
			return c.Status(500).JSON(fiber.Map{
				"message": "Failed to check category",
				"error":   err.Error(),
			})
		}
		if !exists {
			return c.Status(400).JSON(fiber.Map{
				"message": "Validation failed",
				"error":   "CategoryId does not reference an active category",
			})
		}
		company.CategoryID = categoryID
	}

	// Check for duplicate VAT
	existingCompany, err := cc.CompanyRepo.GetCompanyByVAT(c.Context(), company.VAT)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Failed to check VAT",
			"error":   err.Error(),
		})
	}
	if existingCompany != nil {
		return c.Status(409).JSON(fiber.Map{
			"message": "Duplicate VAT",
			"error":   "A company with this VAT already exists.",
			"vat":     company.VAT,
		})
	}

	var address *models.Address
	if req.Address != nil {
		input := importservices.AddressInput{
			Line1:      req.Address.Line1,
			Line2:      req.Address.Line2,
			City:       req.Address.City,
			State:      req.Address.State,
			PostalCode: req.Address.PostalCode,
			Country:    req.Address.Country,
		}
		if req.Address.Latitude != nil {
			lat := decimal.NewFromFloat(*req.Address.Latitude)
			input.Latitude = &lat
		}
		if req.Address.Longitude != nil {
			lng := decimal.NewFromFloat(*req.Address.Longitude)
			input.Longitude = &lng
		}

		address, err = cc.Resolver.Resolve(c.Context(), input, req.CreatedBy)
		if err != nil {
			if errors.Is(err, geocoding.ErrInsufficientComponents) {
				return c.Status(400).JSON(fiber.Map{
					"message": "Validation failed",
					"error":   "Address needs at least city, state and country to be geocoded",
				})
			}
			var geocodeFailure *importservices.GeocodeFailure
			if errors.As(err, &geocodeFailure) {
				return c.Status(422).JSON(fiber.Map{
					"message": "Geocoding failed",
					"error":   geocodeFailure.Error(),
				})
			}
			return c.Status(500).JSON(fiber.Map{
				"message": "Failed to resolve address",
				"error":   err.Error(),
			})
		}
	}

	createdCompany, err := cc.CompanyRepo.CreateCompanyWithAddress(c.Context(), company, address)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{
			"message": "Failed to create company",
			"error":   err.Error(),
		})
	}

	// Index the company in Bleve
	if cc.BleveRepo != nil {
		if err := cc.BleveRepo.IndexSingleCompany(*createdCompany); err != nil {
			config.Logger.Error("Error indexing company", zap.Error(err), zap.String("companyID", createdCompany.ID.String()))
		} else {
			config.Logger.Info("Successfully indexed company in Bleve", zap.String("companyID", createdCompany.ID.String()))
		}
	} else {
		config.Logger.Warn("IndexingService is nil, skipping document indexing", zap.String("companyID", createdCompany.ID.String()))
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Company created successfully",
		"data":    createdCompany,
	})
}
