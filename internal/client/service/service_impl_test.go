package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/smallbiznis/backoffice/internal/client/domain"
	"github.com/smallbiznis/backoffice/internal/client/repository"
	historydomain "github.com/smallbiznis/backoffice/internal/history/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type historyStub struct {
	synced  []string
	removed []string
}

func (h *historyStub) SyncByEmail(_ context.Context, email string) (*historydomain.ClientHistory, error) {
	h.synced = append(h.synced, email)
	return &historydomain.ClientHistory{ClientEmail: email}, nil
}

func (h *historyStub) RemoveByEmail(_ context.Context, email string) error {
	h.removed = append(h.removed, email)
	return nil
}

func (h *historyStub) GetByEmail(context.Context, string) (*historydomain.ClientHistory, error) {
	return nil, historydomain.ErrNotFound
}

func (h *historyStub) RebuildAll(context.Context) (int, error) { return 0, nil }

func newTestService(t *testing.T) (domain.Service, *gorm.DB, *historyStub) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Client{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	history := &historyStub{}
	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		GenID:   node,
		Repo:    repository.Provide(),
		History: history,
	})
	return svc, db, history
}

func validCreateRequest() domain.CreateClientRequest {
	return domain.CreateClientRequest{
		Identification: "1712345678",
		FullName:       "Ana García",
		Email:          "Ana.Garcia@Example.com",
		Phone:          "0998765432",
		Address:        "Av. Amazonas N24-03",
	}
}

func TestCreate(t *testing.T) {
	svc, db, history := newTestService(t)

	client, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.NotZero(t, client.ID)
	assert.Equal(t, "ana.garcia@example.com", client.Email)
	assert.Equal(t, []string{"ana.garcia@example.com"}, history.synced)

	var stored domain.Client
	require.NoError(t, db.Take(&stored, "id = ?", client.ID).Error)
	assert.Equal(t, "Ana García", stored.FullName)
}

func TestCreate_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)

	tests := []struct {
		name    string
		mutate  func(*domain.CreateClientRequest)
		wantErr error
	}{
		{"missing identification", func(r *domain.CreateClientRequest) { r.Identification = " " }, domain.ErrInvalidIdentification},
		{"missing name", func(r *domain.CreateClientRequest) { r.FullName = "" }, domain.ErrInvalidFullName},
		{"missing email", func(r *domain.CreateClientRequest) { r.Email = "" }, domain.ErrInvalidEmail},
		{"malformed email", func(r *domain.CreateClientRequest) { r.Email = "not-an-email" }, domain.ErrInvalidEmail},
		{"email with spaces", func(r *domain.CreateClientRequest) { r.Email = "a b@example.com" }, domain.ErrInvalidEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(&req)
			_, err := svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_Duplicate(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	req := validCreateRequest()
	req.Email = "other@example.com" // identification still collides
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	req = validCreateRequest()
	req.Identification = "0912345678" // email still collides
	_, err = svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestGetByID(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	found, err := svc.GetByID(context.Background(), created.ID.String())
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = svc.GetByID(context.Background(), "999999999999999999")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidID)
}

func TestUpdate_Partial(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	phone := "022345678"
	updated, err := svc.Update(context.Background(), created.ID.String(), domain.UpdateClientRequest{
		Phone: &phone,
	})
	require.NoError(t, err)

	assert.Equal(t, "022345678", updated.Phone)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.FullName, updated.FullName)
}

func TestUpdate_EmptyRequest(t *testing.T) {
	svc, _, _ := newTestService(t)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), created.ID.String(), domain.UpdateClientRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)
}

func TestUpdate_EmailChangeRelocatesHistory(t *testing.T) {
	svc, _, history := newTestService(t)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	email := "Ana.New@Example.com"
	updated, err := svc.Update(context.Background(), created.ID.String(), domain.UpdateClientRequest{
		Email: &email,
	})
	require.NoError(t, err)

	assert.Equal(t, "ana.new@example.com", updated.Email)
	assert.Contains(t, history.removed, "ana.garcia@example.com")
	assert.Contains(t, history.synced, "ana.new@example.com")
}

func TestUpdate_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	name := "Luis"
	_, err := svc.Update(context.Background(), "999999999999999999", domain.UpdateClientRequest{
		FullName: &name,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, db, history := newTestService(t)

	created, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID.String()))

	var count int64
	require.NoError(t, db.Model(&domain.Client{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
	assert.Contains(t, history.removed, "ana.garcia@example.com")

	assert.ErrorIs(t, svc.Delete(context.Background(), created.ID.String()), domain.ErrNotFound)
}
