package services

import (
	"context"
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/dmelo-dev/luzpalavra/internal/server/models"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/repomanager"
)

// PromoService redeems single-use promo codes. Codes are stored only as
// bcrypt hashes, so redemption walks the unused set comparing the
// presented code against each hash.
type PromoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	access      *AccessService
	logger      logging.Logger
	now         func() time.Time
}

func NewPromoService(db *sql.DB, rm repomanager.RepositoryManager, access *AccessService, logger logging.Logger) *PromoService {
	return &PromoService{db: db, repomanager: rm, access: access, logger: logger, now: time.Now}
}

// Activate redeems the code for the account and returns the resulting
// entitlement set. A code that matches nothing yields ErrPromoRejected,
// a matching but expired one ErrPromoExpired, and a concurrent
// redemption of the same code ErrPromoUsed.
func (s *PromoService) Activate(ctx context.Context, email, code string) (models.Entitlements, error) {
	codes, err := s.repomanager.PromoCodes(s.db).ListUnused(ctx)
	if err != nil {
		return models.Entitlements{}, err
	}

	var match *models.PromoCode
	for i := range codes {
		if bcrypt.CompareHashAndPassword(codes[i].CodeHash, []byte(code)) == nil {
			match = &codes[i]
			break
		}
	}
	if match == nil {
		return models.Entitlements{}, common.ErrPromoRejected
	}
	if s.now().After(match.ExpiresAt) {
		return models.Entitlements{}, common.ErrPromoExpired
	}

	if err := s.repomanager.PromoCodes(s.db).MarkUsed(ctx, match.ID); err != nil {
		return models.Entitlements{}, err
	}

	ent, err := s.access.GrantVolumes(ctx, email)
	if err != nil {
		return models.Entitlements{}, err
	}

	s.logger.Info(ctx, "promo code redeemed", "code_id", match.ID)
	return ent, nil
}

// CreateCode hashes and stores a new code. Meant for operator tooling.
func (s *PromoService) CreateCode(ctx context.Context, code string, expiresAt time.Time) (*models.PromoCode, error) {
	if code == "" {
		return nil, common.ErrEmptyPromoCode
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return s.repomanager.PromoCodes(s.db).Create(ctx, &models.PromoCode{CodeHash: hash, ExpiresAt: expiresAt})
}
