package handler

import (
	"time"

	"github.com/crmlite/crm-api/internal/core/domain"
	"github.com/crmlite/crm-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createClientRequest, idempotencyKey string) ports.CreateClientInput {
	in := ports.CreateClientInput{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Address:        req.Address,
		Tags:           domain.ParseTags(req.Tags),
		Status:         domain.ClientStatus(req.Status),
		IdempotencyKey: idempotencyKey,
	}
	if req.NextContact != "" {
		// format already validated by the datetime tag
		if t, err := time.Parse(dateOnly, req.NextContact); err == nil {
			in.NextContact = &t
		}
	}
	return in
}

func toUpdateInput(req updateClientRequest) ports.UpdateClientInput {
	return ports.UpdateClientInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		Tags:    domain.ParseTags(req.Tags),
		Status:  domain.ClientStatus(req.Status),
	}
}

// --- Domain → HTTP response ---

func toClientResponse(c *domain.Client) clientResponse {
	resp := clientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Address:   c.Address,
		Tags:      domain.JoinTags(c.Tags),
		Status:    string(c.Status),
		OwnerID:   c.OwnerID,
		CreatedAt: c.CreatedAt.UTC(),
	}
	if c.NextContact != nil {
		s := c.NextContact.UTC().Format(dateOnly)
		resp.NextContact = &s
	}
	return resp
}

func toClientListResponse(clients []domain.Client) []clientResponse {
	out := make([]clientResponse, len(clients))
	for i := range clients {
		out[i] = toClientResponse(&clients[i])
	}
	return out
}
