package request

type UpdateReservationStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Reason string `json:"reason"`
}

type UpdateUserStatusRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}
