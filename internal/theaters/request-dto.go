package theaters

type CreateTheaterRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=255"`
	City    string `json:"city" validate:"required,min=1,max=100"`
	Address string `json:"address" validate:"max=500"`
}

type UpdateTheaterRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=255"`
	City    *string `json:"city" validate:"omitempty,min=1,max=100"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// RowSpec declares one row of the auditorium layout. Every seat in a row
// shares the same class.
type RowSpec struct {
	Label string `json:"label" validate:"required,min=1,max=5"`
	Seats int    `json:"seats" validate:"required,gt=0,lte=50"`
	Class string `json:"class" validate:"required,oneof=STANDARD PREMIUM DOUBLE"`
}

type CreateAuditoriumRequest struct {
	Name string    `json:"name" validate:"required,min=1,max=100"`
	Rows []RowSpec `json:"rows" validate:"required,min=1,max=30,dive"`
}
