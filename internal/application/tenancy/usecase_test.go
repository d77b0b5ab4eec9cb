package tenancy_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sonu0702/cozy-api/internal/application/dto"
	"github.com/sonu0702/cozy-api/internal/application/tenancy"
	"github.com/sonu0702/cozy-api/internal/domain"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/infrastructure/memory"
	"github.com/sonu0702/cozy-api/pkg/logger"
)

func newTenancy(t *testing.T) (*tenancy.UseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := tenancy.NewUseCase(
		memory.NewTxRunner(store),
		memory.NewUserRepository(store),
		memory.NewShopRepository(store),
		memory.NewUserShopRepository(store),
		logger.New(logger.Config{Env: "development", Level: "error"}),
	)
	return uc, store
}

func seedUser(t *testing.T, store *memory.Store, id, username string) {
	t.Helper()
	now := time.Now().UTC()
	err := memory.NewUserRepository(store).Create(context.Background(), &entity.User{
		ID: id, Username: username, PasswordHash: "x", CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
}

func TestCreateShop_CreatorBecomesOwner(t *testing.T) {
	uc, store := newTenancy(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")

	shop, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "Alice Traders"})
	require.NoError(t, err)
	require.NotEmpty(t, shop.ID)
	assert.Equal(t, string(entity.RoleOwner), shop.Role)

	role, err := uc.Authorize(ctx, "u1", shop.ID, entity.CapManage)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleOwner, role)
}

func TestCreateShop_EdgeFailureRollsBackShop(t *testing.T) {
	uc, store := newTenancy(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")

	boom := errors.New("edge write failed")
	store.FailEdgeCreate = boom

	_, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "Alice Traders"})
	require.ErrorIs(t, err, boom)

	// The shop row must not survive the failed transaction.
	shops, err := uc.ListShops(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, shops)
}

func TestCreateShop_NameTooShort(t *testing.T) {
	uc, store := newTenancy(t)
	seedUser(t, store, "u1", "alice")

	_, err := uc.CreateShop(context.Background(), "u1", dto.CreateShopRequest{Name: " x "})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAssociateUser_DuplicatePairRejected(t *testing.T) {
	uc, store := newTenancy(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")
	seedUser(t, store, "u2", "bobby")

	shop, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "Alice Traders"})
	require.NoError(t, err)

	_, err = uc.AssociateUser(ctx, "u1", shop.ID, dto.AssociateUserRequest{UserID: "u2", Role: "EDITOR"})
	require.NoError(t, err)

	_, err = uc.AssociateUser(ctx, "u1", shop.ID, dto.AssociateUserRequest{UserID: "u2", Role: "VIEWER"})
	assert.ErrorIs(t, err, domain.ErrUserShopExists)

	// The original role survives the rejected second association.
	role, err := uc.Authorize(ctx, "u2", shop.ID, entity.CapWrite)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEditor, role)
}

func TestAuthorize_MissingShopVsDeniedAccess(t *testing.T) {
	uc, store := newTenancy(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")
	seedUser(t, store, "u2", "bobby")
	seedUser(t, store, "u3", "carol")

	shop, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "Alice Traders"})
	require.NoError(t, err)
	_, err = uc.AssociateUser(ctx, "u1", shop.ID, dto.AssociateUserRequest{UserID: "u2", Role: "VIEWER"})
	require.NoError(t, err)

	_, err = uc.Authorize(ctx, "u1", "no-such-shop", entity.CapRead)
	assert.ErrorIs(t, err, domain.ErrShopNotFound)

	// Member without the capability.
	_, err = uc.Authorize(ctx, "u2", shop.ID, entity.CapWrite)
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)

	// Non-member.
	_, err = uc.Authorize(ctx, "u3", shop.ID, entity.CapRead)
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)

	// Viewer can still read.
	role, err := uc.Authorize(ctx, "u2", shop.ID, entity.CapRead)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, role)
}

func TestDefaultShop_SetRequiresAssociation(t *testing.T) {
	uc, store := newTenancy(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")
	seedUser(t, store, "u2", "bobby")

	shop, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "Alice Traders"})
	require.NoError(t, err)

	// No edge for u2: the pointer must not move.
	err = uc.SetDefault(ctx, "u2", shop.ID)
	assert.ErrorIs(t, err, domain.ErrShopUpdate)

	got, err := uc.GetDefault(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDefaultShop_LastWriteWinsAndDanglingResolvesToNone(t *testing.T) {
	uc, store := newTenancy(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")

	first, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "First Shop"})
	require.NoError(t, err)
	second, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "Second Shop"})
	require.NoError(t, err)

	require.NoError(t, uc.SetDefault(ctx, "u1", first.ID))
	require.NoError(t, uc.SetDefault(ctx, "u1", second.ID))

	got, err := uc.GetDefault(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, second.ID, got.ID)

	// Deleting the pointed-to shop leaves the pointer dangling; reads see no
	// default rather than an error.
	require.NoError(t, uc.DeleteShop(ctx, "u1", second.ID))
	got, err = uc.GetDefault(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUpdateShop_OwnerOnly(t *testing.T) {
	uc, store := newTenancy(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")
	seedUser(t, store, "u2", "bobby")

	shop, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "Alice Traders", GSTIN: "27AAPFU0939F1ZV"})
	require.NoError(t, err)
	_, err = uc.AssociateUser(ctx, "u1", shop.ID, dto.AssociateUserRequest{UserID: "u2", Role: "EDITOR"})
	require.NoError(t, err)

	_, err = uc.UpdateShop(ctx, "u2", shop.ID, dto.UpdateShopRequest{Name: "Renamed"})
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)

	updated, err := uc.UpdateShop(ctx, "u1", shop.ID, dto.UpdateShopRequest{Name: "Renamed", GSTIN: "29AAPFU0939F1ZX"})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "29AAPFU0939F1ZX", updated.GSTIN)
}

func TestShopUsers_ManageLifecycle(t *testing.T) {
	uc, store := newTenancy(t)
	ctx := context.Background()
	seedUser(t, store, "u1", "alice")
	seedUser(t, store, "u2", "bobby")

	shop, err := uc.CreateShop(ctx, "u1", dto.CreateShopRequest{Name: "Alice Traders"})
	require.NoError(t, err)
	_, err = uc.AssociateUser(ctx, "u1", shop.ID, dto.AssociateUserRequest{UserID: "u2", Role: "VIEWER"})
	require.NoError(t, err)

	users, err := uc.GetShopUsers(ctx, "u1", shop.ID)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	// Non-owner cannot administer membership.
	_, err = uc.GetShopUsers(ctx, "u2", shop.ID)
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)

	require.NoError(t, uc.UpdateUserRole(ctx, "u1", shop.ID, "u2", dto.UpdateUserRoleRequest{Role: "EDITOR"}))
	role, err := uc.Authorize(ctx, "u2", shop.ID, entity.CapWrite)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleEditor, role)

	require.NoError(t, uc.RemoveUser(ctx, "u1", shop.ID, "u2"))
	_, err = uc.Authorize(ctx, "u2", shop.ID, entity.CapRead)
	assert.ErrorIs(t, err, domain.ErrShopAccessDenied)
}
