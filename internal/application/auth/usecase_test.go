package auth_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonu0702/cozy-api/internal/application/auth"
	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/infrastructure/memory"
	"github.com/sonu0702/cozy-api/pkg/jwt"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

const testSecret = "test-secret"

func newAuth(t *testing.T) (*auth.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	tenancyUC := tenancy.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewUserRepository(store),
		memory.NewShopRepository(store),
		memory.NewUserShopRepository(store),
		log,
	)
	cfg := auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "cozy-api-test"}
	return auth.NewUseCase(memory.NewUserRepository(store), tenancyUC, cfg, log), store
}

func TestRegister_ProvisionsDefaultShop(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	resp, err := uc.Register(ctx, dto.RegisterRequest{Username: "ramesh", Password: "secret1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	userID, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, userID)

	profile, err := uc.Profile(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Len(t, profile.Shops, 1)
	assert.Equal(t, "ramesh's Shop", profile.Shops[0].Name)
	assert.Equal(t, "OWNER", profile.Shops[0].Role)
	require.NotNil(t, profile.DefaultShop)
	assert.Equal(t, profile.Shops[0].ID, profile.DefaultShop.ID)
}

func TestRegister_ShopProvisioningFailureDoesNotFailSignup(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()

	store.FailEdgeCreate = fmt.Errorf("edge write failed")
	resp, err := uc.Register(ctx, dto.RegisterRequest{Username: "ramesh", Password: "secret1"})
	require.NoError(t, err, "signup must survive a failed default-shop provisioning")
	store.FailEdgeCreate = nil

	profile, err := uc.Profile(ctx, resp.User.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Shops)
	assert.Nil(t, profile.DefaultShop)
}

func TestRegister_Validation(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: " ab ", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "ramesh", Password: "short"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "ramesh", Password: "secret1"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Username: "ramesh", Password: "secret2"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Username: "ramesh", Password: "secret1"})
	require.NoError(t, err)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "ramesh", Password: "secret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "ramesh", resp.User.Username)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "ramesh", Password: "wrong-pass"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
