package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/storekeeper-api/internal/application/dto"
	"github.com/jhoicas/storekeeper-api/internal/application/ports"
	"github.com/jhoicas/storekeeper-api/internal/domain"
	"github.com/jhoicas/storekeeper-api/internal/domain/entity"
	"github.com/jhoicas/storekeeper-api/internal/domain/repository"
	"github.com/jhoicas/storekeeper-api/pkg/jwt"
	"github.com/jhoicas/storekeeper-api/pkg/logger"
)

const (
	// MinPasswordLength longitud mínima de contraseña en el registro.
	MinPasswordLength = 8
	// DefaultBcryptCost costo de bcrypt para contraseñas nuevas.
	DefaultBcryptCost = 12

	welcomeSubject = "Registration Completed!"
	welcomeText    = "Hi, Thanks for registering with our Inventory System!"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro (usuario + tienda por defecto) y login.
type AuthUseCase struct {
	userRepo   repository.UserRepository
	storeRepo  repository.StoreRepository
	publisher  ports.NotificationPublisher
	jwtCfg     JWTConfig
	log        *logger.Logger
	bcryptCost int
}

// Option ajusta el caso de uso.
type Option func(*AuthUseCase)

// WithBcryptCost cambia el costo de bcrypt (los tests usan bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(uc *AuthUseCase) { uc.bcryptCost = cost }
}

// NewAuthUseCase construye el caso de uso de auth. publisher puede ser nil.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	storeRepo repository.StoreRepository,
	publisher ports.NotificationPublisher,
	jwtCfg JWTConfig,
	log *logger.Logger,
	opts ...Option,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	uc := &AuthUseCase{
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		publisher:  publisher,
		jwtCfg:     jwtCfg,
		log:        log.Component("auth"),
		bcryptCost: DefaultBcryptCost,
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Register crea el usuario y su tienda por defecto. Si la tienda no puede crearse el usuario
// se elimina (compensación) y se devuelve un error interno. El correo de bienvenida es best-effort.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if len(in.Password) < MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), uc.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	store := &entity.Store{
		ID:          uuid.New().String(),
		UserID:      user.ID,
		Name:        entity.DefaultStoreName(email),
		Description: entity.DefaultStoreDescription,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.storeRepo.Create(ctx, store); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("no se pudo crear la tienda por defecto; revirtiendo usuario")
		if delErr := uc.userRepo.Delete(ctx, user.ID); delErr != nil {
			uc.log.Error().Err(delErr).Str("user_id", user.ID).Msg("falló la compensación del registro")
		}
		// %v corta la cadena: un fallo aquí es siempre error interno para el cliente
		return nil, fmt.Errorf("registro: crear tienda por defecto: %v", err)
	}

	uc.sendWelcome(ctx, email)

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.AuthResponse{
		User:    dto.UserSummary{ID: user.ID, Email: user.Email},
		Token:   token,
		StoreID: store.ID,
	}, nil
}

// Login verifica email/password y emite el JWT. Email desconocido y contraseña incorrecta
// devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("generar token: %w", err)
	}
	return &dto.AuthResponse{
		User:  dto.UserSummary{ID: user.ID, Email: user.Email},
		Token: token,
	}, nil
}

func (uc *AuthUseCase) sendWelcome(ctx context.Context, email string) {
	if uc.publisher == nil {
		return
	}
	err := uc.publisher.PublishEmail(ctx, ports.EmailNotification{
		To:      email,
		Subject: welcomeSubject,
		Text:    welcomeText,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("to", email).Msg("no se pudo publicar el correo de bienvenida")
	}
}
