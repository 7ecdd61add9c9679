package http

type CreateOrderRequest struct {
	ItemName string `json:"itemName" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
