package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/DenisZev/wildberries-bot/internal/application/dto"
	"github.com/DenisZev/wildberries-bot/internal/domain"
	"github.com/DenisZev/wildberries-bot/internal/domain/entity"
	"github.com/DenisZev/wildberries-bot/internal/domain/repository"
	"github.com/DenisZev/wildberries-bot/pkg/jwt"
	"github.com/DenisZev/wildberries-bot/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// SellerUseCase registro y baja de vendedores.
type SellerUseCase struct {
	sellers         repository.SellerRepository
	jwtCfg          JWTConfig
	registrationKey string
	now             func() time.Time
	log             *logger.Logger
}

// NewSellerUseCase construye el caso de uso. Con registrationKey vacío el registro queda abierto.
func NewSellerUseCase(sellers repository.SellerRepository, jwtCfg JWTConfig, registrationKey string, log *logger.Logger) *SellerUseCase {
	return &SellerUseCase{
		sellers:         sellers,
		jwtCfg:          jwtCfg,
		registrationKey: registrationKey,
		now:             time.Now,
		log:             log,
	}
}

// Register crea o reemplaza el vendedor y devuelve un token para la API.
// Un registro repetido conserva la fecha de alta y, si no se envía, el chat.
func (uc *SellerUseCase) Register(ctx context.Context, key string, in dto.RegisterSellerRequest) (*dto.RegisterSellerResponse, error) {
	if uc.registrationKey != "" && subtle.ConstantTimeCompare([]byte(key), []byte(uc.registrationKey)) != 1 {
		return nil, domain.ErrForbidden
	}
	token := strings.TrimSpace(in.WBToken)
	if in.ID <= 0 || token == "" {
		return nil, fmt.Errorf("%w: id y wb_token son requeridos", domain.ErrInvalidInput)
	}

	seller := entity.Seller{
		ID:        in.ID,
		Username:  strings.TrimSpace(in.Username),
		WBToken:   token,
		ChatID:    strings.TrimSpace(in.ChatID),
		CreatedAt: uc.now().UTC(),
	}
	existing, err := uc.sellers.GetByID(ctx, in.ID)
	if err != nil {
		return nil, fmt.Errorf("auth: obtener vendedor: %w", err)
	}
	if existing != nil {
		seller.CreatedAt = existing.CreatedAt
		if seller.ChatID == "" {
			seller.ChatID = existing.ChatID
		}
		if seller.Username == "" {
			seller.Username = existing.Username
		}
	}
	if err := uc.sellers.Save(ctx, seller); err != nil {
		return nil, fmt.Errorf("auth: guardar vendedor: %w", err)
	}

	jwtToken, err := jwt.Generate(uc.jwtCfg.Secret, seller.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Int64("seller_id", seller.ID).Bool("new", existing == nil).Msg("vendedor registrado")
	return &dto.RegisterSellerResponse{Token: jwtToken, Seller: ToSellerResponse(seller)}, nil
}

// Get devuelve el vendedor o domain.ErrNotFound.
func (uc *SellerUseCase) Get(ctx context.Context, id int64) (*dto.SellerResponse, error) {
	s, err := uc.sellers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := ToSellerResponse(*s)
	return &out, nil
}

// Remove da de baja al vendedor; sus costos declarados se conservan.
func (uc *SellerUseCase) Remove(ctx context.Context, id int64) error {
	s, err := uc.sellers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	if err := uc.sellers.Delete(ctx, id); err != nil {
		return fmt.Errorf("auth: eliminar vendedor: %w", err)
	}
	uc.log.Info().Int64("seller_id", id).Msg("vendedor eliminado")
	return nil
}

// ToSellerResponse nunca incluye el token del marketplace.
func ToSellerResponse(s entity.Seller) dto.SellerResponse {
	return dto.SellerResponse{
		ID:        s.ID,
		Username:  s.Username,
		ChatID:    s.ChatID,
		CreatedAt: s.CreatedAt,
	}
}
