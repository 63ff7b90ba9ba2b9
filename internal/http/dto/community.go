package dto

import (
	"time"

	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/service"
)

type CommunityPayload struct {
	Name          string `json:"name" binding:"required,min=1,max=255"`
	Type          string `json:"type" binding:"max=255"`
	Blocks        int32  `json:"blocks" binding:"gte=0"`
	UnitsPerBlock int32  `json:"units_per_block" binding:"gte=0"`
	Address       string `json:"address" binding:"max=512"`
	City          string `json:"city" binding:"max=255"`
	State         string `json:"state" binding:"max=255"`
	Country       string `json:"country" binding:"max=255"`
	Features      string `json:"features" binding:"max=2048"`
}

func (p CommunityPayload) ToProfile() service.CommunityProfile {
	return service.CommunityProfile{
		Name:          p.Name,
		Type:          p.Type,
		Blocks:        p.Blocks,
		UnitsPerBlock: p.UnitsPerBlock,
		Address:       p.Address,
		City:          p.City,
		State:         p.State,
		Country:       p.Country,
		Features:      p.Features,
	}
}

type CreateCommunityRequest struct {
	CommunityPayload
	OrgID int64        `json:"org_id,string" binding:"required"`
	Admin AdminPayload `json:"admin" binding:"required"`
}

type UpdateCommunityRequest struct {
	CommunityPayload
	Admin AdminPayload `json:"admin" binding:"required"`
}

type CommunityResponse struct {
	ID            int64     `json:"id,string"`
	OrgID         int64     `json:"org_id,string"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Blocks        int32     `json:"blocks"`
	UnitsPerBlock int32     `json:"units_per_block"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Country       string    `json:"country"`
	Features      string    `json:"features"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func ToCommunityResponse(c *model.Community) *CommunityResponse {
	return &CommunityResponse{
		ID:            c.ID,
		OrgID:         c.OrgID,
		Name:          c.Name,
		Type:          c.Type,
		Blocks:        c.Blocks,
		UnitsPerBlock: c.UnitsPerBlock,
		Address:       c.Address,
		City:          c.City,
		State:         c.State,
		Country:       c.Country,
		Features:      c.Features,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

type CommunityViewResponse struct {
	Community *CommunityResponse `json:"community"`
	Admin     *AdminResponse     `json:"admin"`
}

func ToCommunityViewResponse(v *service.CommunityView) *CommunityViewResponse {
	return &CommunityViewResponse{
		Community: ToCommunityResponse(v.Community),
		Admin:     ToAdminResponse(v.Admin),
	}
}
