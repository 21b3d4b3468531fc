package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/people360/internal/application/auth"
	"github.com/jhoicas/people360/internal/application/dto"
	"github.com/jhoicas/people360/internal/domain/entity"
	"github.com/jhoicas/people360/internal/infrastructure/postgres"
)

type adminFlags struct {
	companyID   string
	companyName string
	username    string
	email       string
	password    string
}

func newCreateAdminCommand() *cobra.Command {
	var f adminFlags
	cmd := &cobra.Command{
		Use:   "create-admin",
		Short: "Crear un usuario administrador",
		Long: `Crea un administrador en una empresa existente (--company-id) o registra una
empresa nueva junto con su administrador (--company-name).`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCreateAdmin(cmd, f)
		},
	}
	cmd.Flags().StringVar(&f.companyID, "company-id", "", "ID de una empresa existente")
	cmd.Flags().StringVar(&f.companyName, "company-name", "", "nombre de la empresa a crear")
	cmd.Flags().StringVar(&f.username, "username", "admin", "username del administrador")
	cmd.Flags().StringVar(&f.email, "email", "", "email del administrador")
	cmd.Flags().StringVar(&f.password, "password", "", "contraseña (mínimo 8 caracteres)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	cmd.MarkFlagsMutuallyExclusive("company-id", "company-name")
	cmd.MarkFlagsOneRequired("company-id", "company-name")
	return cmd
}

func runCreateAdmin(cmd *cobra.Command, f adminFlags) error {
	if len(f.password) < 8 {
		return errors.New("la contraseña debe tener al menos 8 caracteres")
	}
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	repos := postgres.NewRepos(pool)

	if f.companyName != "" {
		authUC := auth.NewAuthUseCase(repos.Users, repos.Companies, postgres.NewTxRunner(pool), nil, auth.JWTConfig{})
		out, err := authUC.RegisterCompany(ctx, dto.RegisterCompanyRequest{
			CompanyName: f.companyName, Username: f.username, Email: f.email, Password: f.password,
		})
		if err != nil {
			return fmt.Errorf("registrar empresa: %w", err)
		}
		log.Info().Str("company_id", out.Company.ID).Str("user_id", out.User.ID).Msg("empresa y administrador creados")
		return nil
	}

	company, err := repos.Companies.GetByID(ctx, f.companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("la empresa %s no existe", f.companyID)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(f.password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    company.ID,
		Username:     strings.TrimSpace(f.username),
		Email:        strings.ToLower(strings.TrimSpace(f.email)),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := repos.Users.Create(ctx, user); err != nil {
		return fmt.Errorf("crear administrador: %w", err)
	}
	log.Info().Str("company_id", company.ID).Str("user_id", user.ID).Msg("administrador creado")
	return nil
}
