package handler

import (
	"strings"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

// --- Request → Service input ---

func toCustomerInput(req customerRequest) ports.CustomerInput {
	return ports.CustomerInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		Address:    req.Address,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
		Company:    req.Company,
		Notes:      req.Notes,
	}
}

// --- Domain → Response ---

func toCustomerResponse(c *domain.Customer, mediaURL string) customerResponse {
	return customerResponse{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		FullName:   c.FullName(),
		Email:      c.Email,
		Phone:      c.Phone,
		Address:    c.Address,
		City:       c.City,
		State:      c.State,
		Country:    c.Country,
		PostalCode: c.PostalCode,
		Company:    c.Company,
		Notes:      c.Notes,
		Image:      c.Image,
		ImageURL:   mediaLink(mediaURL, c.Image),
		CreatedBy:  c.CreatedByID,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func toCustomerResponses(cs []*domain.Customer, mediaURL string) []customerResponse {
	out := make([]customerResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCustomerResponse(c, mediaURL))
	}
	return out
}

func toCustomerListResponse(p *ports.CustomerPage, search, mediaURL string) customerListResponse {
	return customerListResponse{
		Items:       toCustomerResponses(p.Items, mediaURL),
		Total:       p.Total,
		Page:        p.Page,
		PageSize:    p.PageSize,
		NumPages:    p.NumPages,
		HasNext:     p.HasNext,
		HasPrevious: p.HasPrevious,
		Search:      search,
	}
}

func toImportResponse(r *domain.ImportResult) importResponse {
	msgs := r.Messages()
	if msgs == nil {
		msgs = []string{}
	}
	return importResponse{
		SuccessCount: r.SuccessCount(),
		ErrorCount:   r.ErrorCount(),
		SkippedCount: r.SkippedCount(),
		Errors:       r.DisplayErrors(),
		Messages:     msgs,
	}
}

// mediaLink joins the public media prefix with a stored relative path.
func mediaLink(mediaURL, rel string) string {
	if rel == "" {
		return ""
	}
	return strings.TrimRight(mediaURL, "/") + "/" + strings.TrimLeft(rel, "/")
}
