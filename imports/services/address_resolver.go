package services

import (
	"context"

	"sales-ops-backend/db/models"
	"sales-ops-backend/geocoding"

	"github.com/google/uuid"
)

// AddressResolver turns address components into a persistable Address. The
// same resolver serves both entry points: the interactive creation forms and
// the per-row resolution inside a bulk job. When the caller supplied both
// coordinates the geocoder is never consulted; otherwise a single geocoding
// round (with the service's own bounded retries) fills them in.
type AddressResolver struct {
	geocoder geocoding.Geocoder
}

func NewAddressResolver(geocoder geocoding.Geocoder) *AddressResolver {
	return &AddressResolver{geocoder: geocoder}
}

// Resolve builds an unsaved Address with both coordinates populated, or a
// *GeocodeFailure naming the city that could not be resolved.
func (r *AddressResolver) Resolve(ctx context.Context, input AddressInput, createdBy string) (*models.Address, error) {
	address := &models.Address{
		ID:        uuid.New(),
		City:      input.City,
		State:     input.State,
		Country:   input.Country,
		IsActive:  true,
		CreatedBy: createdBy,
	}
	if input.Line1 != "" {
		line1 := input.Line1
		address.Line1 = &line1
	}
	if input.Line2 != "" {
		line2 := input.Line2
		address.Line2 = &line2
	}
	if input.PostalCode != "" {
		postalCode := input.PostalCode
		address.PostalCode = &postalCode
	}

	if input.HasCoordinates() {
		address.Latitude = *input.Latitude
		address.Longitude = *input.Longitude
		return address, nil
	}

	result, err := r.geocoder.Geocode(ctx, geocoding.Components{
		Line1:      input.Line1,
		City:       input.City,
		State:      input.State,
		PostalCode: input.PostalCode,
		Country:    input.Country,
	})
	if err != nil {
		return nil, &GeocodeFailure{City: input.City, Err: err}
	}

	address.Latitude = result.Latitude
	address.Longitude = result.Longitude
	return address, nil
}
