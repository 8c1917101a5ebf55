package handler

import "github.com/prostore/catalog-api/internal/core/ports"

type createProductRequest struct {
	Name  string  `json:"name"  validate:"required"`
	Price float64 `json:"price" validate:"required,gt=0"`
	Image string  `json:"image" validate:"required"`
}

// updateProductRequest is a partial update: nil fields are left
// untouched so the JSON contract distinguishes "absent" from "zero".
type updateProductRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
	Image *string  `json:"image"`
}

func (r updateProductRequest) toPatch() ports.ProductPatch {
	return ports.ProductPatch{
		Name:  r.Name,
		Price: r.Price,
		Image: r.Image,
	}
}

// dataResponse is the standard success envelope carrying a payload.
type dataResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// ackResponse is the success envelope for operations with no payload.
type ackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
