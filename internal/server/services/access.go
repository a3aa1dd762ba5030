// Package services contains the application services of the backend:
// account access, checkout, promo redemption, status uploads and the
// daily reminder.
package services

import (
	"context"
	"database/sql"
	"errors"

	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/server/models"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/repomanager"
)

// AccessService reads and grants account entitlements. Every set it
// hands out is complete and has the free tier forced on.
type AccessService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAccessService(db *sql.DB, rm repomanager.RepositoryManager) *AccessService {
	return &AccessService{db: db, repomanager: rm}
}

// Get returns the account's entitlement set. found is false when the
// email has no record; the client treats that as "no new access".
func (s *AccessService) Get(ctx context.Context, email string) (models.Entitlements, bool, error) {
	a, err := s.repomanager.Access(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Entitlements{}, false, nil
		}
		return models.Entitlements{}, false, err
	}
	return a.Ent.Normalized(), true, nil
}

// Grant unlocks the product's volumes for the account, merging into
// whatever it already owns. The combo unlocks everything.
func (s *AccessService) Grant(ctx context.Context, email, sku string) (models.Entitlements, error) {
	repo := s.repomanager.Access(s.db)

	ent := models.Entitlements{}
	if a, err := repo.GetByEmail(ctx, email); err == nil {
		ent = a.Ent
	} else if !errors.Is(err, common.ErrorNotFound) {
		return models.Entitlements{}, err
	}

	switch sku {
	case "volume_2":
		ent.Volume2 = true
	case "volume_3":
		ent.Volume3 = true
	case "volume_4":
		ent.Volume4 = true
	case "combo_4":
		ent.Volume2 = true
		ent.Volume3 = true
		ent.Volume4 = true
		ent.Combo4 = true
	default:
		return models.Entitlements{}, common.ErrUnknownProduct
	}

	ent = ent.Normalized()
	if err := repo.Upsert(ctx, email, ent); err != nil {
		return models.Entitlements{}, err
	}
	return ent, nil
}

// GrantVolumes unlocks volumes 2 to 4 without the combo flag, the shape
// of a promo redemption.
func (s *AccessService) GrantVolumes(ctx context.Context, email string) (models.Entitlements, error) {
	repo := s.repomanager.Access(s.db)

	ent := models.Entitlements{}
	if a, err := repo.GetByEmail(ctx, email); err == nil {
		ent = a.Ent
	} else if !errors.Is(err, common.ErrorNotFound) {
		return models.Entitlements{}, err
	}

	ent.Volume2 = true
	ent.Volume3 = true
	ent.Volume4 = true
	ent = ent.Normalized()

	if err := repo.Upsert(ctx, email, ent); err != nil {
		return models.Entitlements{}, err
	}
	return ent, nil
}
