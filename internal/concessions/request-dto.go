package concessions

type CreateItemRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Category string `json:"category" validate:"max=100"`
	Price    int64  `json:"price" validate:"required,gte=0"`
	ImageURL string `json:"image_url" validate:"omitempty,url,max=500"`
}

type UpdateItemRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=255"`
	Category  *string `json:"category" validate:"omitempty,max=100"`
	Price     *int64  `json:"price" validate:"omitempty,gte=0"`
	ImageURL  *string `json:"image_url" validate:"omitempty,url,max=500"`
	Available *bool   `json:"available"`
}
