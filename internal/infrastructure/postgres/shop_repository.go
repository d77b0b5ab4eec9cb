package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sonu0702/cozy-api/internal/domain/entity"
	"github.com/sonu0702/cozy-api/internal/domain/repository"
)

var _ repository.ShopRepository = (*ShopRepo)(nil)

// ShopRepo implements ShopRepository (usable with pool or tx).
type ShopRepo struct {
	q Querier
}

// NewShopRepository builds the adapter. Pass a pool or tx (Querier).
func NewShopRepository(q Querier) *ShopRepo {
	return &ShopRepo{q: q}
}

const shopColumns = `id, name, gstin, pan, cin, address, state, state_code, pin, bank_detail, signature_ref, created_at, updated_at`

// Create persists a new shop.
func (r *ShopRepo) Create(ctx context.Context, shop *entity.Shop) error {
	if shop.ID == "" {
		shop.ID = uuid.New().String()
	}
	bank, err := marshalBankDetail(shop.BankDetail)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO shops (` + shopColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err = r.q.Exec(ctx, query,
		shop.ID, shop.Name, nullIfEmpty(shop.GSTIN), nullIfEmpty(shop.PAN), nullIfEmpty(shop.CIN),
		nullIfEmpty(shop.Address), nullIfEmpty(shop.State), nullIfEmpty(shop.StateCode), nullIfEmpty(shop.PIN),
		bank, nullIfEmpty(shop.SignatureRef), shop.CreatedAt, shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shop: %w", err)
	}
	return nil
}

// GetByID fetches a shop by id.
func (r *ShopRepo) GetByID(ctx context.Context, id string) (*entity.Shop, error) {
	query := `SELECT ` + shopColumns + ` FROM shops WHERE id = $1`
	row := r.q.QueryRow(ctx, query, id)
	shop, err := scanShop(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shop: %w", err)
	}
	return shop, nil
}

// Update rewrites the shop's mutable fields.
func (r *ShopRepo) Update(ctx context.Context, shop *entity.Shop) error {
	bank, err := marshalBankDetail(shop.BankDetail)
	if err != nil {
		return err
	}
	query := `
		UPDATE shops
		SET name = $2, gstin = $3, pan = $4, cin = $5, address = $6, state = $7,
		    state_code = $8, pin = $9, bank_detail = $10, signature_ref = $11, updated_at = $12
		WHERE id = $1`
	_, err = r.q.Exec(ctx, query,
		shop.ID, shop.Name, nullIfEmpty(shop.GSTIN), nullIfEmpty(shop.PAN), nullIfEmpty(shop.CIN),
		nullIfEmpty(shop.Address), nullIfEmpty(shop.State), nullIfEmpty(shop.StateCode), nullIfEmpty(shop.PIN),
		bank, nullIfEmpty(shop.SignatureRef), shop.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update shop: %w", err)
	}
	return nil
}

// Delete removes the shop; edges, invoices and products cascade in the schema.
func (r *ShopRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM shops WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shop: %w", err)
	}
	return nil
}

// ListByUser joins shops through the tenancy edges of one user.
func (r *ShopRepo) ListByUser(ctx context.Context, userID string) ([]*repository.ShopWithRole, error) {
	query := `
		SELECT s.id, s.name, s.gstin, s.pan, s.cin, s.address, s.state, s.state_code, s.pin,
		       s.bank_detail, s.signature_ref, s.created_at, s.updated_at, us.role
		FROM shops s
		JOIN user_shops us ON us.shop_id = s.id
		WHERE us.user_id = $1
		ORDER BY s.created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list shops by user: %w", err)
	}
	defer rows.Close()

	var list []*repository.ShopWithRole
	for rows.Next() {
		var s entity.Shop
		var gstin, pan, cin, address, state, stateCode, pin, signatureRef *string
		var bank []byte
		var role string
		if err := rows.Scan(
			&s.ID, &s.Name, &gstin, &pan, &cin, &address, &state, &stateCode, &pin,
			&bank, &signatureRef, &s.CreatedAt, &s.UpdatedAt, &role,
		); err != nil {
			return nil, fmt.Errorf("scan shop: %w", err)
		}
		fillShopStrings(&s, gstin, pan, cin, address, state, stateCode, pin, signatureRef)
		if s.BankDetail, err = unmarshalBankDetail(bank); err != nil {
			return nil, err
		}
		list = append(list, &repository.ShopWithRole{Shop: &s, Role: entity.Role(role)})
	}
	return list, rows.Err()
}

func scanShop(row pgx.Row) (*entity.Shop, error) {
	var s entity.Shop
	var gstin, pan, cin, address, state, stateCode, pin, signatureRef *string
	var bank []byte
	err := row.Scan(
		&s.ID, &s.Name, &gstin, &pan, &cin, &address, &state, &stateCode, &pin,
		&bank, &signatureRef, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	fillShopStrings(&s, gstin, pan, cin, address, state, stateCode, pin, signatureRef)
	if s.BankDetail, err = unmarshalBankDetail(bank); err != nil {
		return nil, err
	}
	return &s, nil
}

func fillShopStrings(s *entity.Shop, gstin, pan, cin, address, state, stateCode, pin, signatureRef *string) {
	s.GSTIN = derefStr(gstin)
	s.PAN = derefStr(pan)
	s.CIN = derefStr(cin)
	s.Address = derefStr(address)
	s.State = derefStr(state)
	s.StateCode = derefStr(stateCode)
	s.PIN = derefStr(pin)
	s.SignatureRef = derefStr(signatureRef)
}

func marshalBankDetail(b *entity.BankDetail) ([]byte, error) {
	if b == nil {
		return nil, nil
	}
	data, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal bank detail: %w", err)
	}
	return data, nil
}

func unmarshalBankDetail(data []byte) (*entity.BankDetail, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var b entity.BankDetail
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal bank detail: %w", err)
	}
	return &b, nil
}
