package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	appModels "github.com/lppm/research-portal/internal/app/models"
	"github.com/lppm/research-portal/internal/config"
	"github.com/lppm/research-portal/internal/pkg/apperrors"
	"github.com/lppm/research-portal/internal/pkg/auth"
)

// DefaultStudyPrograms are created on first start so authors can be registered right away.
var DefaultStudyPrograms = []string{
	"Teknik Informatika",
	"Sistem Informasi",
	"Manajemen",
	"Akuntansi",
}

// UserStore is the part of the user repository the seeder needs.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*appModels.User, error)
	Create(ctx context.Context, u *appModels.User) error
}

// StudyProgramStore is the part of the study program repository the seeder needs.
type StudyProgramStore interface {
	FirstOrCreate(ctx context.Context, name string) (*appModels.StudyProgram, error)
}

// CreateDefaultData creates the superadmin account and the default study programs if
// they don't exist. Every step runs even when an earlier one fails.
func CreateDefaultData(ctx context.Context, cfg *config.Config, users UserStore, studyPrograms StudyProgramStore, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (superadmin, study programs)...")
	var finalErr error

	if err := ensureSuperadmin(ctx, cfg, users, lgr); err != nil {
		lgr.Error().Err(err).Msg("Error creating superadmin")
		finalErr = errors.Join(finalErr, err)
	}

	for _, name := range DefaultStudyPrograms {
		if _, err := studyPrograms.FirstOrCreate(ctx, name); err != nil {
			lgr.Error().Err(err).Str("name", name).Msg("Error creating study program")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		lgr.Info().Msg("Default data check/creation completed.")
	}
	return finalErr
}

func ensureSuperadmin(ctx context.Context, cfg *config.Config, users UserStore, lgr zerolog.Logger) error {
	email := cfg.Seed.SuperadminEmail
	if email == "" {
		return nil
	}

	_, err := users.GetByEmail(ctx, email)
	if err == nil {
		lgr.Debug().Str("email", email).Msg("Superadmin already exists")
		return nil
	}
	if !errors.Is(err, apperrors.ErrResourceNotFound) {
		return fmt.Errorf("error looking up superadmin: %w", err)
	}

	if cfg.Seed.SuperadminPassword == "" {
		lgr.Warn().Str("email", email).Msg("No superadmin password configured, skipping superadmin creation")
		return nil
	}

	hashed, err := auth.HashPassword(cfg.Seed.SuperadminPassword)
	if err != nil {
		return err
	}

	if err := users.Create(ctx, &appModels.User{
		Name:     "Super Admin",
		Email:    email,
		Password: hashed,
		Role:     appModels.RoleSuperadmin,
	}); err != nil {
		return fmt.Errorf("error creating superadmin: %w", err)
	}

	lgr.Info().Str("email", email).Msg("Superadmin account created")
	return nil
}
