package request

// CreateClientRequest represents a create client request
type CreateClientRequest struct {
	Phone          string  `json:"phone" binding:"required,max=32" example:"0812345678"`
	Password       string  `json:"password" binding:"required"`
	Name           string  `json:"name" binding:"required,max=255" example:"Somchai"`
	CompanyName    string  `json:"company_name" binding:"omitempty,max=255" example:"Corner Cafe"`
	Address        *string `json:"address"`
	QRPaymentImage *string `json:"qr_payment_image"`
}

// UpdateClientRequest represents an update client request. Omitted fields are left unchanged.
type UpdateClientRequest struct {
	Phone          *string `json:"phone" binding:"omitempty,max=32"`
	Password       *string `json:"password"`
	Name           *string `json:"name" binding:"omitempty,max=255"`
	CompanyName    *string `json:"company_name" binding:"omitempty,max=255"`
	Address        *string `json:"address"`
	QRPaymentImage *string `json:"qr_payment_image"`
}

// CreateEmployeeRequest represents a create employee request
type CreateEmployeeRequest struct {
	Phone    string `json:"phone" binding:"required,max=32"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required,max=255"`
}

// UpdateEmployeeRequest represents an update employee request
type UpdateEmployeeRequest struct {
	Name     string  `json:"name" binding:"required,max=255"`
	Password *string `json:"password"`
}
