package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/nmendes/servicos-api/internal/application/auth"
	"github.com/nmendes/servicos-api/internal/application/dto"
	"github.com/nmendes/servicos-api/internal/domain"
	"github.com/nmendes/servicos-api/internal/domain/entity"
)

type fakeProfileRepo struct {
	items map[string]*entity.Profile
	// delay simula un almacén remoto que no responde.
	delay time.Duration
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{items: map[string]*entity.Profile{}}
}

func (r *fakeProfileRepo) Create(p *entity.Profile) error {
	for _, existing := range r.items {
		if existing.Email == p.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *p
	r.items[p.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	time.Sleep(r.delay)
	if p, ok := r.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	for _, p := range r.items {
		if p.Email == email {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

var testJWTCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "servicos-test"}

func registerRequest() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:           "ana@salon.com",
		Password:        "secreta1",
		ConfirmPassword: "secreta1",
		Name:            "Ana",
		UserType:        entity.RoleProfessional,
	}
}

func TestRegister_HasheaYPersiste(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	resp, err := uc.Register(registerRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleProfessional, resp.UserType)

	stored := repo.items[resp.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreta1", stored.PasswordHash, "la contraseña jamás se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreta1")))
}

func TestRegister_ConfirmacionNoCoincide(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeProfileRepo(), testJWTCfg)

	in := registerRequest()
	in.ConfirmPassword = "otra"
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_EmailDuplicado(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeProfileRepo(), testJWTCfg)

	_, err := uc.Register(registerRequest())
	require.NoError(t, err)
	_, err = uc.Register(registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_RolInvalido(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeProfileRepo(), testJWTCfg)

	in := registerRequest()
	in.UserType = "superadmin"
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := auth.NewAuthUseCase(repo, testJWTCfg)
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	resp, err := uc.Login(dto.LoginRequest{Email: "ana@salon.com", Password: "secreta1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "Ana", resp.User.Name)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeProfileRepo(), testJWTCfg)
	_, err := uc.Register(registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "ana@salon.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CuentaInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeProfileRepo(), testJWTCfg)

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@salon.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestResolveProfile_CuentaBorradaDevuelveNil(t *testing.T) {
	uc := auth.NewAuthUseCase(newFakeProfileRepo(), testJWTCfg)

	resp, err := uc.ResolveProfile(context.Background(), "ya-no-existe")
	require.NoError(t, err)
	assert.Nil(t, resp)
}

func TestResolveProfile_RespetaElContexto(t *testing.T) {
	repo := newFakeProfileRepo()
	repo.delay = 200 * time.Millisecond
	uc := auth.NewAuthUseCase(repo, testJWTCfg)

	// Contexto ya vencido: el tope de 10s nunca llega a aplicar, el
	// contexto del llamador manda primero.
	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	time.Sleep(5 * time.Millisecond)

	_, err := uc.ResolveProfile(ctx, "cualquiera")
	assert.ErrorIs(t, err, domain.ErrAuthTimeout)
}
