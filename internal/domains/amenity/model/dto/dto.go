package dto

import "hotel/internal/domains/amenity/model"

type CreateAmenityRequest struct {
	Name        *string `json:"name"        validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

func (c *CreateAmenityRequest) ToModel() model.Amenity {
	return model.Amenity{
		Name:        *c.Name,
		Description: c.Description,
	}
}

type UpdateAmenityRequest struct {
	Name        *string `db:"name"        json:"name"        validate:"omitempty,min=1,max=100"`
	Description *string `db:"description" json:"description" validate:"omitempty,max=500"`
}

type AmenityResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (a *AmenityResponse) FromModel(amenity model.Amenity) {
	a.ID = amenity.ID
	a.Name = amenity.Name
	a.Description = amenity.Description
}

func FromModels(amenities []model.Amenity) []AmenityResponse {
	res := make([]AmenityResponse, len(amenities))
	for i, amenity := range amenities {
		res[i].FromModel(amenity)
	}

	return res
}
