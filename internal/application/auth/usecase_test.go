package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DenisZev/wildberries-bot/internal/application/auth"
	"github.com/DenisZev/wildberries-bot/internal/application/dto"
	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/infrastructure/memory"
	"github.com/DenisZev/wildberries-bot/pkg/jwt"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

var jwtCfg = auth.JWTConfig{Secret: "s", ExpMinutes: 10, Issuer: "test"}

func TestRegister_IssuesToken(t *testing.T) {
	repo := memory.NewSellerRepository()
	uc := auth.NewSellerUseCase(repo, jwtCfg, "", logger.Nop())

	out, err := uc.Register(context.Background(), "", dto.RegisterSellerRequest{ID: 42, Username: "shop", WBToken: " tok ", ChatID: "42"})
	require.NoError(t, err)

	id, err := jwt.Parse("s", out.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	s, err := repo.GetByID(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "tok", s.WBToken)
}

func TestRegister_KeepsChatOnReRegister(t *testing.T) {
	repo := memory.NewSellerRepository()
	uc := auth.NewSellerUseCase(repo, jwtCfg, "", logger.Nop())
	ctx := context.Background()

	first, err := uc.Register(ctx, "", dto.RegisterSellerRequest{ID: 1, WBToken: "a", ChatID: "100"})
	require.NoError(t, err)
	second, err := uc.Register(ctx, "", dto.RegisterSellerRequest{ID: 1, WBToken: "b"})
	require.NoError(t, err)

	assert.Equal(t, "100", second.Seller.ChatID)
	assert.Equal(t, first.Seller.CreatedAt, second.Seller.CreatedAt)
	s, _ := repo.GetByID(ctx, 1)
	assert.Equal(t, "b", s.WBToken)
}

func TestRegister_RegistrationKey(t *testing.T) {
	uc := auth.NewSellerUseCase(memory.NewSellerRepository(), jwtCfg, "clave", logger.Nop())

	_, err := uc.Register(context.Background(), "otra", dto.RegisterSellerRequest{ID: 1, WBToken: "a"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.Register(context.Background(), "clave", dto.RegisterSellerRequest{ID: 1, WBToken: "a"})
	assert.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	uc := auth.NewSellerUseCase(memory.NewSellerRepository(), jwtCfg, "", logger.Nop())

	_, err := uc.Register(context.Background(), "", dto.RegisterSellerRequest{ID: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Register(context.Background(), "", dto.RegisterSellerRequest{WBToken: "a"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemove(t *testing.T) {
	repo := memory.NewSellerRepository()
	uc := auth.NewSellerUseCase(repo, jwtCfg, "", logger.Nop())
	ctx := context.Background()
	_, err := uc.Register(ctx, "", dto.RegisterSellerRequest{ID: 7, WBToken: "a"})
	require.NoError(t, err)

	require.NoError(t, uc.Remove(ctx, 7))
	assert.ErrorIs(t, uc.Remove(ctx, 7), domain.ErrNotFound)
	_, err = uc.Get(ctx, 7)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
