package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/application/ports"
	"github.com/jhoicas/people360/internal/domain"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/domain/repository"
	"github.com/jhoicas/people360/pkg/jwt"
	"github.com/jhoicas/people360/pkg/labels"
	"github.com/jhoicas/people360/pkg/validator"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login, logout y perfil.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tx          ports.TxRunner
	tokens      ports.TokenStore // nil = logout sin revocación
	jwtCfg      JWTConfig
	now         func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	tx ports.TxRunner,
	tokens ports.TokenStore,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		tx:          tx,
		tokens:      tokens,
		jwtCfg:      jwtCfg,
		now:         time.Now,
	}
}

// RegisterUser crea un usuario en una empresa existente. El rol admin no se puede
// elegir aquí; sin rol se asigna employee.
func (uc *AuthUseCase) RegisterUser(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	company, err := uc.companyRepo.GetByID(ctx, in.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound // empresa no existe
	}
	role := in.Role
	if role == "" {
		role = entity.RoleEmployee
	}
	user, err := uc.newUser(in.CompanyID, in.Username, in.Email, in.Password, in.FirstName, in.LastName, role)
	if err != nil {
		return nil, err
	}
	user.Phone = strings.TrimSpace(in.Phone)
	if err := uc.checkAvailable(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	log.Info().Str("user_id", user.ID).Str("company_id", user.CompanyID).Str("role", user.Role).Msg("usuario registrado")
	return ToUserResponse(user), nil
}

// RegisterCompany crea la empresa y su primer usuario admin en una sola transacción.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterCompanyRequest) (*dto.RegisterCompanyResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.CompanyName),
		Email:     strings.ToLower(strings.TrimSpace(in.CompanyEmail)),
		Status:    entity.CompanyStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	user, err := uc.newUser(company.ID, in.Username, in.Email, in.Password, in.FirstName, in.LastName, entity.RoleAdmin)
	if err != nil {
		return nil, err
	}
	if err := uc.checkAvailable(ctx, user); err != nil {
		return nil, err
	}
	err = uc.tx.Run(ctx, func(repos repository.Repos) error {
		if err := repos.Companies.Create(ctx, company); err != nil {
			return err
		}
		return repos.Users.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	log.Info().Str("company_id", company.ID).Str("user_id", user.ID).Msg("empresa registrada")
	return &dto.RegisterCompanyResponse{
		Company: ToCompanyResponse(company),
		User:    *ToUserResponse(user),
	}, nil
}

// Login verifica email o username + password, genera JWT y registra el último acceso.
// Cualquier fallo de credenciales devuelve ErrUnauthorized sin emitir token.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	in.Normalize()
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	login := strings.TrimSpace(in.Login)
	var (
		user *entity.User
		err  error
	)
	if strings.Contains(login, "@") {
		user, err = uc.userRepo.FindByEmail(ctx, login)
	} else {
		user, err = uc.userRepo.FindByUsername(ctx, login)
	}
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	token, claims, err := jwt.GenerateWithClaims(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	if err := uc.userRepo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo registrar el último login")
	} else {
		user.LastLoginAt = &now
	}
	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: claims.ExpiresAt.Time,
		User:      *ToUserResponse(user),
	}, nil
}

// Logout revoca el token (jti) por el tiempo que le quedaba de vida.
func (uc *AuthUseCase) Logout(ctx context.Context, jti string, remaining time.Duration) error {
	if uc.tokens == nil || jti == "" {
		log.Debug().Msg("logout sin almacén de revocación")
		return nil
	}
	return uc.tokens.Revoke(ctx, jti, remaining)
}

// Me datos del usuario autenticado.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ChangePassword exige la contraseña actual.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	if err := validator.Struct(in); err != nil {
		return err
	}
	user, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.UpdatedAt = uc.now()
	return uc.userRepo.Update(ctx, user)
}

func (uc *AuthUseCase) newUser(companyID, username, email, password, first, last, role string) (*entity.User, error) {
	if !entity.IsValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	return &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Username:     strings.TrimSpace(username),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		FirstName:    labels.Name(first),
		LastName:     labels.Name(last),
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// checkAvailable adelanta el conflicto de email/username antes de abrir la transacción.
func (uc *AuthUseCase) checkAvailable(ctx context.Context, u *entity.User) error {
	existing, err := uc.userRepo.FindByEmail(ctx, u.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	existing, err = uc.userRepo.FindByUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrUsernameAlreadyExists
	}
	return nil
}

// ToUserResponse mapea la entidad a DTO (sin hash de password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		CompanyID:   u.CompanyID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		FullName:    u.FullName(),
		Phone:       u.Phone,
		Role:        u.Role,
		RoleLabel:   labels.Humanize(u.Role),
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToCompanyResponse mapea la empresa a DTO.
func ToCompanyResponse(c *entity.Company) dto.CompanyResponse {
	return dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
	}
}
