package sessions

type CreateSessionRequest struct {
	ShowtimeID string `json:"showtime_id" validate:"required,uuid"`
}

type UpdateSeatsRequest struct {
	Seats []string `json:"seats" validate:"required,max=8,dive,min=2,max=10"`
}

type AdjustConcessionRequest struct {
	ItemID string `json:"item_id" validate:"required,uuid"`
	Delta  int    `json:"delta" validate:"required,ne=0"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" validate:"required,min=3,max=50"`
}

type RedeemPointsRequest struct {
	Points int64 `json:"points" validate:"gte=0"`
}

type ConfirmPaymentRequest struct {
	Method        string `json:"method" validate:"required,oneof=CARD WALLET BANK_TRANSFER"`
	TransactionID string `json:"transaction_id" validate:"required,min=1,max=100"`
}
