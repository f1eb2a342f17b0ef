package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
	"github.com/nmendes/servicos-api/internal/domain/repository"
	"github.com/nmendes/servicos-api/pkg/jwt"
)

// probeTimeout tope de espera para resolver la cuenta de una petición
// autenticada. Un almacén remoto que no responde no puede dejar la petición
// colgada: al vencer se responde error y el cliente decide.
const probeTimeout = 10 * time.Second

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y resolución de
// la cuenta autenticada.
type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(profileRepo repository.ProfileRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{profileRepo: profileRepo, jwtCfg: jwtCfg}
}

// Register crea una cuenta: valida la confirmación de contraseña antes de
// tocar el almacén, hashea con bcrypt y persiste. El rol queda fijo en el
// registro; no hay promoción posterior.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 6 {
		return nil, domain.ErrInvalidInput
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrInvalidInput
	}
	if in.UserType != entity.RoleAdmin && in.UserType != entity.RoleProfessional {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.profileRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	profile := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Name:         in.Name,
		UserType:     in.UserType,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profileRepo.Create(profile); err != nil {
		return nil, err
	}
	return toUserResponse(profile), nil
}

// Login verifica email/password, genera JWT y retorna token + cuenta.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.profileRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, profile.UserType, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *toUserResponse(profile),
	}, nil
}

// ResolveProfile obtiene la cuenta del token con tope de espera. Si el
// almacén no responde dentro del tope devuelve ErrAuthTimeout; nil sin error
// significa que la cuenta ya no existe.
func (uc *AuthUseCase) ResolveProfile(ctx context.Context, userID string) (*dto.UserResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	type result struct {
		profile *entity.Profile
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		p, err := uc.profileRepo.GetByID(userID)
		ch <- result{profile: p, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, domain.ErrAuthTimeout
	case res := <-ch:
		if res.err != nil {
			return nil, res.err
		}
		if res.profile == nil {
			return nil, nil
		}
		return toUserResponse(res.profile), nil
	}
}

func toUserResponse(p *entity.Profile) *dto.UserResponse {
	if p == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        p.ID,
		Email:     p.Email,
		Name:      p.Name,
		UserType:  p.UserType,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
