package dto

import "github.com/sonu0702/cozy-api/internal/domain/entity"

// BankDetailDTO mirrors entity.BankDetail on the wire.
type BankDetailDTO struct {
	BankName          string `json:"bank_name"`
	AccountNumber     string `json:"account_number"`
	IFSCCode          string `json:"ifsc_code"`
	AccountHolderName string `json:"account_holder_name"`
}

// CreateShopRequest body for POST /api/shops.
type CreateShopRequest struct {
	Name         string         `json:"name"`
	GSTIN        string         `json:"gstin,omitempty"`
	PAN          string         `json:"pan,omitempty"`
	CIN          string         `json:"cin,omitempty"`
	Address      string         `json:"address,omitempty"`
	State        string         `json:"state,omitempty"`
	StateCode    string         `json:"state_code,omitempty"`
	PIN          string         `json:"pin,omitempty"`
	BankDetail   *BankDetailDTO `json:"bank_detail,omitempty"`
	SignatureRef string         `json:"signature_ref,omitempty"`
}

// UpdateShopRequest body for PUT /api/shops/:id. Same shape as create.
type UpdateShopRequest = CreateShopRequest

// ShopResponse shop in responses, with the caller's role when known.
type ShopResponse struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	GSTIN        string         `json:"gstin,omitempty"`
	PAN          string         `json:"pan,omitempty"`
	CIN          string         `json:"cin,omitempty"`
	Address      string         `json:"address,omitempty"`
	State        string         `json:"state,omitempty"`
	StateCode    string         `json:"state_code,omitempty"`
	PIN          string         `json:"pin,omitempty"`
	BankDetail   *BankDetailDTO `json:"bank_detail,omitempty"`
	SignatureRef string         `json:"signature_ref,omitempty"`
	Role         string         `json:"role,omitempty"`
}

// AssociateUserRequest body for POST /api/shops/:id/users.
type AssociateUserRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// UpdateUserRoleRequest body for PUT /api/shops/:id/users/:userId.
type UpdateUserRoleRequest struct {
	Role string `json:"role"`
}

// ShopUserResponse one tenancy edge as seen by a shop admin.
type ShopUserResponse struct {
	UserID string `json:"user_id"`
	ShopID string `json:"shop_id"`
	Role   string `json:"role"`
}

// SetDefaultShopRequest body for POST /api/users/default-shop.
type SetDefaultShopRequest struct {
	ShopID string `json:"shop_id"`
}

// BankDetailFromEntity converts the optional entity form.
func BankDetailFromEntity(b *entity.BankDetail) *BankDetailDTO {
	if b == nil {
		return nil
	}
	return &BankDetailDTO{
		BankName:          b.BankName,
		AccountNumber:     b.AccountNumber,
		IFSCCode:          b.IFSCCode,
		AccountHolderName: b.AccountHolderName,
	}
}

// ToEntity converts the optional wire form.
func (b *BankDetailDTO) ToEntity() *entity.BankDetail {
	if b == nil {
		return nil
	}
	return &entity.BankDetail{
		BankName:          b.BankName,
		AccountNumber:     b.AccountNumber,
		IFSCCode:          b.IFSCCode,
		AccountHolderName: b.AccountHolderName,
	}
}

// ShopFromEntity builds the response shape; role may be empty.
func ShopFromEntity(s *entity.Shop, role entity.Role) ShopResponse {
	return ShopResponse{
		ID:           s.ID,
		Name:         s.Name,
		GSTIN:        s.GSTIN,
		PAN:          s.PAN,
		CIN:          s.CIN,
		Address:      s.Address,
		State:        s.State,
		StateCode:    s.StateCode,
		PIN:          s.PIN,
		BankDetail:   BankDetailFromEntity(s.BankDetail),
		SignatureRef: s.SignatureRef,
		Role:         string(role),
	}
}
