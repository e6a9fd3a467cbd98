package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/lensflow/backend/internal/domain/client"
)

// CreateClientRequest is the payload for registering a client
type CreateClientRequest struct {
	BranchID uuid.UUID `json:"branch_id" binding:"required"`
	Name     string    `json:"name" binding:"required,max=100"`
	Phone    string    `json:"phone" binding:"required"`
	Email    string    `json:"email" binding:"omitempty,email"`
	Address  string    `json:"address"`
	Language string    `json:"language" binding:"omitempty,oneof=hi en"`
	Notes    string    `json:"notes"`
}

// UpdateClientRequest is the payload for updating a client. Only
// provided fields are changed.
type UpdateClientRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=100"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Address  *string `json:"address"`
	Language *string `json:"language" binding:"omitempty,oneof=hi en"`
	Notes    *string `json:"notes"`
}

// ClientResponse is the API representation of a client
type ClientResponse struct {
	ID            uuid.UUID  `json:"id"`
	BranchID      uuid.UUID  `json:"branch_id"`
	Name          string     `json:"name"`
	Phone         string     `json:"phone"`
	Email         string     `json:"email"`
	Address       string     `json:"address"`
	Language      string     `json:"language"`
	Status        string     `json:"status"`
	LastContactAt *time.Time `json:"last_contact_at"`
	Notes         string     `json:"notes"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ClientListFilter holds query parameters for listing clients
type ClientListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir"`
	Search   string `form:"search"`
	BranchID string `form:"branch_id"`
	Status   string `form:"status"`
}

// ToClientResponse converts a domain client to its API representation
func ToClientResponse(c *client.Client) *ClientResponse {
	return &ClientResponse{
		ID:            c.ID,
		BranchID:      c.BranchID,
		Name:          c.Name,
		Phone:         c.Phone,
		Email:         c.Email,
		Address:       c.Address,
		Language:      string(c.Language),
		Status:        string(c.Status),
		LastContactAt: c.LastContactAt,
		Notes:         c.Notes,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToClientResponses converts a slice of domain clients
func ToClientResponses(clients []client.Client) []ClientResponse {
	responses := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		responses = append(responses, *ToClientResponse(&clients[i]))
	}
	return responses
}
