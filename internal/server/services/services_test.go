package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/dmelo-dev/luzpalavra/internal/common"
	"github.com/dmelo-dev/luzpalavra/internal/dbx"
	"github.com/dmelo-dev/luzpalavra/internal/logging"
	"github.com/dmelo-dev/luzpalavra/internal/server/models"
	"github.com/dmelo-dev/luzpalavra/internal/server/push"
	accessrepo "github.com/dmelo-dev/luzpalavra/internal/server/repositories/access"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/promocodes"
	"github.com/dmelo-dev/luzpalavra/internal/server/repositories/pushtokens"
)

type testLogger struct{}

func (testLogger) Debug(context.Context, string, ...any) {}
func (testLogger) Info(context.Context, string, ...any)  {}
func (testLogger) Warn(context.Context, string, ...any)  {}
func (testLogger) Error(context.Context, string, ...any) {}
func (l testLogger) With(...any) logging.Logger          { return l }

type fakeAccessRepo struct {
	rows    map[string]models.Entitlements
	getErr  error
	saveErr error
}

func newFakeAccessRepo() *fakeAccessRepo {
	return &fakeAccessRepo{rows: map[string]models.Entitlements{}}
}

func (f *fakeAccessRepo) GetByEmail(ctx context.Context, email string) (*models.Access, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	ent, ok := f.rows[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &models.Access{Email: email, Ent: ent}, nil
}

func (f *fakeAccessRepo) Upsert(ctx context.Context, email string, ent models.Entitlements) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.rows[email] = ent
	return nil
}

type fakePushRepo struct {
	tokens  map[string]string
	listErr error
	delErr  error
}

func newFakePushRepo() *fakePushRepo {
	return &fakePushRepo{tokens: map[string]string{}}
}

func (f *fakePushRepo) Upsert(ctx context.Context, email, token string) error {
	f.tokens[token] = email
	return nil
}

func (f *fakePushRepo) ListAll(ctx context.Context) ([]models.PushToken, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.PushToken
	for token, email := range f.tokens {
		out = append(out, models.PushToken{Email: email, Token: token})
	}
	return out, nil
}

func (f *fakePushRepo) Delete(ctx context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.tokens, token)
	return nil
}

type fakePromoRepo struct {
	codes   []models.PromoCode
	used    map[string]bool
	listErr error
	markErr error
}

func newFakePromoRepo() *fakePromoRepo {
	return &fakePromoRepo{used: map[string]bool{}}
}

func (f *fakePromoRepo) ListUnused(ctx context.Context) ([]models.PromoCode, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.PromoCode
	for _, c := range f.codes {
		if !f.used[c.ID] {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakePromoRepo) MarkUsed(ctx context.Context, id string) error {
	if f.markErr != nil {
		return f.markErr
	}
	if f.used[id] {
		return common.ErrPromoUsed
	}
	f.used[id] = true
	return nil
}

func (f *fakePromoRepo) Create(ctx context.Context, code *models.PromoCode) (*models.PromoCode, error) {
	c := *code
	c.ID = "pc-1"
	c.CreatedAt = time.Now()
	f.codes = append(f.codes, c)
	return &c, nil
}

type fakeRepoManager struct {
	access *fakeAccessRepo
	push   *fakePushRepo
	promo  *fakePromoRepo
}

func newFakeRepoManager() *fakeRepoManager {
	return &fakeRepoManager{
		access: newFakeAccessRepo(),
		push:   newFakePushRepo(),
		promo:  newFakePromoRepo(),
	}
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Access(dbx.DBTX) accessrepo.Repository        { return m.access }
func (m *fakeRepoManager) PushTokens(dbx.DBTX) pushtokens.Repository    { return m.push }
func (m *fakeRepoManager) PromoCodes(dbx.DBTX) promocodes.Repository    { return m.promo }

type fakeSender struct {
	sent    []string
	errFor  map[string]error
	callsOn map[string]int
}

func newFakeSender() *fakeSender {
	return &fakeSender{errFor: map[string]error{}, callsOn: map[string]int{}}
}

func (f *fakeSender) Send(ctx context.Context, token string, msg push.Message) error {
	f.callsOn[token]++
	if err, ok := f.errFor[token]; ok {
		return err
	}
	f.sent = append(f.sent, token)
	return nil
}
