package dto

import "github.com/faroukh/office_mgmt_app/internal/core/domain"

// CreateClientRequest defines the payload for registering a client.
type CreateClientRequest struct {
	ClientType         string `json:"clientType" binding:"omitempty,oneof=ENG_OFFICE CLIENT"`
	ClientCode         string `json:"clientCode" binding:"required"` // e.g. CL-000001
	NameAr             string `json:"nameAr" binding:"required"`
	PhoneNumber        string `json:"phoneNumber"`
	Email              string `json:"email" binding:"omitempty,email"`
	CommercialRegister string `json:"commercialRegister"`
}

// UpdateClientRequest defines the payload for updating a client.
type UpdateClientRequest struct {
	NameAr             *string `json:"nameAr"`
	PhoneNumber        *string `json:"phoneNumber"`
	Email              *string `json:"email" binding:"omitempty,email"`
	CommercialRegister *string `json:"commercialRegister"`
}

// ClientResponse defines the data returned for a client.
type ClientResponse struct {
	ClientID           string `json:"clientID"`
	ClientType         string `json:"clientType"`
	ClientCode         string `json:"clientCode"`
	NameAr             string `json:"nameAr"`
	PhoneNumber        string `json:"phoneNumber"`
	Email              string `json:"email"`
	CommercialRegister string `json:"commercialRegister"`
}

// ToClientResponse converts a domain.Client to ClientResponse.
func ToClientResponse(c *domain.Client) ClientResponse {
	return ClientResponse{
		ClientID:           c.ClientID,
		ClientType:         string(c.ClientType),
		ClientCode:         c.ClientCode,
		NameAr:             c.NameAr,
		PhoneNumber:        c.PhoneNumber,
		Email:              c.Email,
		CommercialRegister: c.CommercialRegister,
	}
}

// CreateCategoryRequest defines the payload for a main category or a
// competent authority (both are code + name).
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

// CreateSubCategoryRequest defines the payload for a sub-category.
type CreateSubCategoryRequest struct {
	MainCategoryID string `json:"mainCategoryID" binding:"required"`
	Name           string `json:"name" binding:"required"`
	Code           string `json:"code" binding:"required"`
}
