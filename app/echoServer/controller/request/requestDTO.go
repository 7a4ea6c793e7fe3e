package request

type CreateRequestReq struct {
	Description string `json:"description" validate:"required"`
}

type UpdateRequestReq struct {
	ID          int64  `json:"id"`
	Description string `json:"description" validate:"required"`
}
