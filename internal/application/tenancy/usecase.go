package tenancy

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

// UseCase owns shop lifecycle, tenancy edges, authorization checks and the
// default-shop pointer. The UserShop edge is the only authorization truth:
// every capability check walks user -> edge -> role.
type UseCase struct {
	txRunner TxRunner
	userRepo repository.UserRepository
	shopRepo repository.ShopRepository
	edgeRepo repository.UserShopRepository
	log      *logger.Logger
}

func NewUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	shopRepo repository.ShopRepository,
	edgeRepo repository.UserShopRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		txRunner: txRunner,
		userRepo: userRepo,
		shopRepo: shopRepo,
		edgeRepo: edgeRepo,
		log:      log,
	}
}

// Authorize resolves the caller's role on the shop and checks the capability.
// ErrShopNotFound when the shop does not exist; ErrShopAccessDenied when it
// exists but the caller has no edge or the role lacks the capability.
func (uc *UseCase) Authorize(ctx context.Context, userID, shopID string, cap entity.Capability) (entity.Role, error) {
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return "", err
	}
	if shop == nil {
		return "", domain.ErrShopNotFound
	}
	edge, err := uc.edgeRepo.Get(ctx, userID, shopID)
	if err != nil {
		return "", err
	}
	if edge == nil || !edge.Role.Can(cap) {
		return "", domain.ErrShopAccessDenied
	}
	return edge.Role, nil
}

// CreateShop writes the shop and the creator's OWNER edge in one transaction.
func (uc *UseCase) CreateShop(ctx context.Context, userID string, in dto.CreateShopRequest) (*dto.ShopResponse, error) {
	if len(strings.TrimSpace(in.Name)) < 2 {
		return nil, domain.ErrValidation
	}
	now := time.Now().UTC()
	shop := &entity.Shop{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		GSTIN:        in.GSTIN,
		PAN:          in.PAN,
		CIN:          in.CIN,
		Address:      in.Address,
		State:        in.State,
		StateCode:    in.StateCode,
		PIN:          in.PIN,
		BankDetail:   in.BankDetail.ToEntity(),
		SignatureRef: in.SignatureRef,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := uc.txRunner.RunTenancy(ctx, func(
		_ repository.UserRepository,
		shopRepo repository.ShopRepository,
		edgeRepo repository.UserShopRepository,
	) error {
		if err := shopRepo.Create(ctx, shop); err != nil {
			return err
		}
		return edgeRepo.Create(ctx, &entity.UserShop{
			UserID:    userID,
			ShopID:    shop.ID,
			Role:      entity.RoleOwner,
			CreatedAt: now,
			UpdatedAt: now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("shop_id", shop.ID).Str("user_id", userID).Msg("shop created")
	resp := dto.ShopFromEntity(shop, entity.RoleOwner)
	return &resp, nil
}

// ListShops returns every shop the user is associated with, with their role.
func (uc *UseCase) ListShops(ctx context.Context, userID string) ([]dto.ShopResponse, error) {
	pairs, err := uc.shopRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ShopResponse, 0, len(pairs))
	for _, p := range pairs {
		resp = append(resp, dto.ShopFromEntity(p.Shop, p.Role))
	}
	return resp, nil
}

// GetShop returns one shop the caller can read.
func (uc *UseCase) GetShop(ctx context.Context, userID, shopID string) (*dto.ShopResponse, error) {
	role, err := uc.Authorize(ctx, userID, shopID, entity.CapRead)
	if err != nil {
		return nil, err
	}
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrShopNotFound
	}
	resp := dto.ShopFromEntity(shop, role)
	return &resp, nil
}

// UpdateShop rewrites the shop's registration data. Owner only.
func (uc *UseCase) UpdateShop(ctx context.Context, userID, shopID string, in dto.UpdateShopRequest) (*dto.ShopResponse, error) {
	role, err := uc.Authorize(ctx, userID, shopID, entity.CapManage)
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(in.Name)) < 2 {
		return nil, domain.ErrValidation
	}
	shop, err := uc.shopRepo.GetByID(ctx, shopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, domain.ErrShopNotFound
	}
	shop.Name = strings.TrimSpace(in.Name)
	shop.GSTIN = in.GSTIN
	shop.PAN = in.PAN
	shop.CIN = in.CIN
	shop.Address = in.Address
	shop.State = in.State
	shop.StateCode = in.StateCode
	shop.PIN = in.PIN
	shop.BankDetail = in.BankDetail.ToEntity()
	shop.SignatureRef = in.SignatureRef
	shop.UpdatedAt = time.Now().UTC()
	if err := uc.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	resp := dto.ShopFromEntity(shop, role)
	return &resp, nil
}

// DeleteShop removes the shop. Owner only; edges and invoices cascade.
func (uc *UseCase) DeleteShop(ctx context.Context, userID, shopID string) error {
	if _, err := uc.Authorize(ctx, userID, shopID, entity.CapDelete); err != nil {
		return err
	}
	return uc.shopRepo.Delete(ctx, shopID)
}

// AssociateUser adds a tenancy edge to the shop. Caller must hold the manage
// capability; a duplicate pair surfaces as ErrUserShopExists.
func (uc *UseCase) AssociateUser(ctx context.Context, callerID, shopID string, in dto.AssociateUserRequest) (*dto.ShopUserResponse, error) {
	if _, err := uc.Authorize(ctx, callerID, shopID, entity.CapManage); err != nil {
		return nil, err
	}
	role := entity.Role(in.Role)
	if in.UserID == "" || !role.Valid() {
		return nil, domain.ErrValidation
	}
	target, err := uc.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	now := time.Now().UTC()
	edge := &entity.UserShop{
		UserID:    in.UserID,
		ShopID:    shopID,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.edgeRepo.Create(ctx, edge); err != nil {
		return nil, err
	}
	uc.log.Info().Str("shop_id", shopID).Str("user_id", in.UserID).Str("role", in.Role).Msg("user associated with shop")
	return &dto.ShopUserResponse{UserID: edge.UserID, ShopID: edge.ShopID, Role: string(edge.Role)}, nil
}

// GetShopUsers lists every edge of the shop. Manage capability.
func (uc *UseCase) GetShopUsers(ctx context.Context, callerID, shopID string) ([]dto.ShopUserResponse, error) {
	if _, err := uc.Authorize(ctx, callerID, shopID, entity.CapManage); err != nil {
		return nil, err
	}
	edges, err := uc.edgeRepo.ListByShop(ctx, shopID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ShopUserResponse, 0, len(edges))
	for _, e := range edges {
		resp = append(resp, dto.ShopUserResponse{UserID: e.UserID, ShopID: e.ShopID, Role: string(e.Role)})
	}
	return resp, nil
}

// UpdateUserRole changes an existing edge's role. Manage capability.
func (uc *UseCase) UpdateUserRole(ctx context.Context, callerID, shopID, targetUserID string, in dto.UpdateUserRoleRequest) error {
	if _, err := uc.Authorize(ctx, callerID, shopID, entity.CapManage); err != nil {
		return err
	}
	role := entity.Role(in.Role)
	if !role.Valid() {
		return domain.ErrValidation
	}
	return uc.edgeRepo.UpdateRole(ctx, targetUserID, shopID, role)
}

// RemoveUser deletes an edge. Manage capability. A removed user's default-shop
// pointer may now dangle; it resolves to "no default" on the next read.
func (uc *UseCase) RemoveUser(ctx context.Context, callerID, shopID, targetUserID string) error {
	if _, err := uc.Authorize(ctx, callerID, shopID, entity.CapManage); err != nil {
		return err
	}
	return uc.edgeRepo.Delete(ctx, targetUserID, shopID)
}

// SetDefault points the user's default-shop pointer at shopID. The user must
// currently be associated with the shop; last write wins.
func (uc *UseCase) SetDefault(ctx context.Context, userID, shopID string) error {
	edge, err := uc.edgeRepo.Get(ctx, userID, shopID)
	if err != nil {
		return err
	}
	if edge == nil {
		return domain.ErrShopUpdate
	}
	return uc.userRepo.SetDefaultShop(ctx, userID, shopID)
}

// GetDefault resolves the default-shop pointer. Returns (nil, nil) when the
// pointer is unset, or when it dangles: the pointer is logical, not a foreign
// key, so the pointed-to shop may be gone or no longer associated.
func (uc *UseCase) GetDefault(ctx context.Context, userID string) (*dto.ShopResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.DefaultShopID == "" {
		return nil, nil
	}
	edge, err := uc.edgeRepo.Get(ctx, userID, user.DefaultShopID)
	if err != nil {
		return nil, err
	}
	if edge == nil {
		return nil, nil
	}
	shop, err := uc.shopRepo.GetByID(ctx, user.DefaultShopID)
	if err != nil {
		return nil, err
	}
	if shop == nil {
		return nil, nil
	}
	resp := dto.ShopFromEntity(shop, edge.Role)
	return &resp, nil
}
