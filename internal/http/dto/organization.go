package dto

import (
	"time"

	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/service"
)

type AdminPayload struct {
	Email     string `json:"email" binding:"required,email,max=255"`
	FirstName string `json:"first_name" binding:"max=255"`
	LastName  string `json:"last_name" binding:"max=255"`
	Contact   string `json:"contact" binding:"max=64"`
}

func (a AdminPayload) ToIdentity() service.AdminIdentity {
	return service.AdminIdentity{
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Contact:   a.Contact,
	}
}

type OrganizationPayload struct {
	Name      string `json:"name" binding:"required,min=1,max=255"`
	Type      string `json:"type" binding:"max=255"`
	Address   string `json:"address" binding:"max=512"`
	City      string `json:"city" binding:"max=255"`
	State     string `json:"state" binding:"max=255"`
	Country   string `json:"country" binding:"max=255"`
	RegNum    string `json:"reg_num" binding:"max=255"`
	VatID     string `json:"vat_id" binding:"max=255"`
	Website   string `json:"website" binding:"omitempty,url,max=2048"`
	Logo      string `json:"logo" binding:"max=2048"`
	DocUpload string `json:"doc_upload" binding:"max=2048"`
}

func (p OrganizationPayload) ToProfile() service.OrganizationProfile {
	return service.OrganizationProfile{
		Name:      p.Name,
		Type:      p.Type,
		Address:   p.Address,
		City:      p.City,
		State:     p.State,
		Country:   p.Country,
		RegNum:    p.RegNum,
		VatID:     p.VatID,
		Website:   p.Website,
		Logo:      p.Logo,
		DocUpload: p.DocUpload,
	}
}

type CreateOrganizationRequest struct {
	OrganizationPayload
	Admin AdminPayload `json:"admin" binding:"required"`
}

type UpdateOrganizationRequest struct {
	OrganizationPayload
	Admin AdminPayload `json:"admin" binding:"required"`
}

type OrganizationResponse struct {
	ID        int64     `json:"id,string"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Country   string    `json:"country"`
	RegNum    string    `json:"reg_num"`
	VatID     string    `json:"vat_id"`
	Website   string    `json:"website"`
	Logo      string    `json:"logo"`
	DocUpload string    `json:"doc_upload"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToOrganizationResponse(o *model.Organization) *OrganizationResponse {
	return &OrganizationResponse{
		ID:        o.ID,
		Name:      o.Name,
		Type:      o.Type,
		Address:   o.Address,
		City:      o.City,
		State:     o.State,
		Country:   o.Country,
		RegNum:    o.RegNum,
		VatID:     o.VatID,
		Website:   o.Website,
		Logo:      o.Logo,
		DocUpload: o.DocUpload,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

type AdminResponse struct {
	ID        int64  `json:"id,string"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Contact   string `json:"contact"`
	Role      string `json:"role"`
}

func ToAdminResponse(u *model.User) *AdminResponse {
	return &AdminResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Contact:   u.Contact,
		Role:      string(u.Role),
	}
}

type OrganizationViewResponse struct {
	Organization *OrganizationResponse `json:"organization"`
	Admin        *AdminResponse        `json:"admin"`
}

func ToOrganizationViewResponse(v *service.OrganizationView) *OrganizationViewResponse {
	return &OrganizationViewResponse{
		Organization: ToOrganizationResponse(v.Org),
		Admin:        ToAdminResponse(v.Admin),
	}
}

// ProvisionResponse answers a create. NotificationSent false flags the
// partial-success case where the entity exists but the credential email
// did not go out.
type ProvisionResponse struct {
	Organization     *OrganizationResponse `json:"organization,omitempty"`
	Community        *CommunityResponse    `json:"community,omitempty"`
	Admin            *AdminResponse        `json:"admin"`
	NotificationSent bool                  `json:"notification_sent"`
}

func ToProvisionResponse(r *service.ProvisionResult) *ProvisionResponse {
	resp := &ProvisionResponse{
		Admin:            ToAdminResponse(r.Admin),
		NotificationSent: r.NotificationSent,
	}
	if r.Org != nil {
		resp.Organization = ToOrganizationResponse(r.Org)
	}
	if r.Community != nil {
		resp.Community = ToCommunityResponse(r.Community)
	}
	return resp
}
