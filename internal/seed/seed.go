// Package seed bootstraps the minimum data a fresh install needs: one admin
// account and the default service catalog.
package seed

import (
	"context"
	"errors"
	"time"

	authdomain "github.com/artmafra/notas/internal/auth/domain"
	"github.com/artmafra/notas/internal/auth/password"
	servicedomain "github.com/artmafra/notas/internal/service/domain"
	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@notas.local"
	defaultAdminPassword = "admin123"
)

func rate(bp int64) *int64 { return &bp }

// EnsureAdminUser creates the bootstrap admin account when no user exists.
func EnsureAdminUser(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.WithContext(ctx).Model(&authdomain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hashed, err := password.Hash(defaultAdminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		user := authdomain.User{
			ID:           node.Generate(),
			Email:        defaultAdminEmail,
			PasswordHash: hashed,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		return tx.WithContext(ctx).Create(&user).Error
	})
}

// EnsureDefaultServices seeds the standard service catalog with the usual
// withholding rates per regime. Existing rows are left untouched.
func EnsureDefaultServices(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	defaults := []servicedomain.Service{
		{
			Code:         "SERVICOS_GERAIS",
			Description:  "Prestação de serviços gerais",
			DebitAccount: "3.1.1.01",
			// Normal regime: ISSQN 5%, INSS 11%, CS 4.65%, IRRF 1.5%.
			RateN: datatypes.NewJSONType(servicedomain.RateSet{
				ISSQN: rate(500),
				INSS:  rate(1100),
				CS:    rate(465),
				IRRF:  rate(150),
			}),
			RateSN:  datatypes.NewJSONType(servicedomain.RateSet{ISSQN: rate(500)}),
			RateMEI: datatypes.NewJSONType(servicedomain.RateSet{}),
		},
		{
			Code:         "LIMPEZA_CONSERVACAO",
			Description:  "Serviços de limpeza e conservação",
			DebitAccount: "3.1.1.02",
			RateN: datatypes.NewJSONType(servicedomain.RateSet{
				ISSQN: rate(500),
				INSS:  rate(1100),
				CS:    rate(465),
				IRRF:  rate(100),
			}),
			RateSN:  datatypes.NewJSONType(servicedomain.RateSet{ISSQN: rate(500)}),
			RateMEI: datatypes.NewJSONType(servicedomain.RateSet{}),
		},
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, svc := range defaults {
			var count int64
			err := tx.WithContext(ctx).
				Model(&servicedomain.Service{}).
				Where("code = ?", svc.Code).
				Count(&count).Error
			if err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			now := time.Now().UTC()
			svc.CreatedAt = now
			svc.UpdatedAt = now
			if err := tx.WithContext(ctx).Create(&svc).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
