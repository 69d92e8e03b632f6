package dto

type BuyerProfileResponse struct {
	ID          uint   `json:"id"`
	CompanyName string `json:"company_name"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	TotalOrders int    `json:"total_orders"`
}
