package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
	"github.com/sonu0702/cozy-api/pkg/jwt"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase registration, login and profile.
type UseCase struct {
	userRepo repository.UserRepository
	tenancy  *tenancy.UseCase
	jwtCfg   JWTConfig
	log      *logger.Logger
}

func NewUseCase(userRepo repository.UserRepository, tenancyUC *tenancy.UseCase, jwtCfg JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, tenancy: tenancyUC, jwtCfg: jwtCfg, log: log}
}

// Register creates the account, then provisions "<username>'s Shop" as the
// default. The provisioning is best effort: the user row is already committed,
// so a failure there is logged and swallowed rather than failing the signup.
// Such a user simply starts with no shops and no default.
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if len(username) < 4 || len(in.Password) < 6 {
		return nil, domain.ErrValidation
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        strings.TrimSpace(in.Email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	uc.provisionDefaultShop(ctx, user)

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Login verifies the password and issues a token carrying only the user id.
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

// Profile returns the user, their shops with roles and the resolved default.
func (uc *UseCase) Profile(ctx context.Context, userID string) (*dto.ProfileResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	shops, err := uc.tenancy.ListShops(ctx, userID)
	if err != nil {
		return nil, err
	}
	defaultShop, err := uc.tenancy.GetDefault(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.ProfileResponse{
		User:        toUserResponse(user),
		Shops:       shops,
		DefaultShop: defaultShop,
	}, nil
}

func (uc *UseCase) provisionDefaultShop(ctx context.Context, user *entity.User) {
	shop, err := uc.tenancy.CreateShop(ctx, user.ID, dto.CreateShopRequest{
		Name: fmt.Sprintf("%s's Shop", user.Username),
	})
	if err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("default shop creation failed during registration")
		return
	}
	if err := uc.tenancy.SetDefault(ctx, user.ID, shop.ID); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Str("shop_id", shop.ID).Msg("default shop pointer not set during registration")
		return
	}
	user.DefaultShopID = shop.ID
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		DefaultShopID: u.DefaultShopID,
	}
}
