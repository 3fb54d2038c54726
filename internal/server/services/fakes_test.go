package services

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dmitrijs2005/hopekeeper/internal/common"
	"github.com/dmitrijs2005/hopekeeper/internal/dbx"
	"github.com/dmitrijs2005/hopekeeper/internal/entities"
	"github.com/dmitrijs2005/hopekeeper/internal/server/models"
	"github.com/dmitrijs2005/hopekeeper/internal/server/repositories/records"
	"github.com/dmitrijs2005/hopekeeper/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/hopekeeper/internal/server/repositories/users"
)

var errBoom = errors.New("boom")

type fakeUsersRepo struct {
	created   *models.User
	createErr error

	byEmail map[string]*models.User
	getErr  error
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	u.ID = "u-new"
	f.created = u
	return u, nil
}

func (f *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, common.ErrorNotFound
}

type fakeRefreshRepo struct {
	findOut *models.RefreshToken
	findErr error

	deleted   []string
	delErr    error
	created   []string
	createErr error
	expired   int64
}

func (f *fakeRefreshRepo) Create(_ context.Context, _ string, token string, _ time.Duration) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, token)
	return nil
}

func (f *fakeRefreshRepo) Find(context.Context, string) (*models.RefreshToken, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.findOut, nil
}

func (f *fakeRefreshRepo) Delete(_ context.Context, token string) error {
	if f.delErr != nil {
		return f.delErr
	}
	f.deleted = append(f.deleted, token)
	return nil
}

func (f *fakeRefreshRepo) DeleteExpired(context.Context, time.Time) (int64, error) {
	return f.expired, nil
}

type fakeRecordsRepo struct {
	rows map[string][]entities.Row

	insertedUser   string
	insertedValues map[string]any
	insertErr      error

	updatedSet map[string]any
	updateErr  error

	deleted     bool
	deletedUser string
}

func (f *fakeRecordsRepo) List(_ context.Context, _ string, collection string) ([]entities.Row, error) {
	return f.rows[collection], nil
}

func (f *fakeRecordsRepo) Insert(_ context.Context, userID, collection string, values map[string]any) (entities.Row, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	f.insertedUser = userID
	f.insertedValues = values
	row, _ := entities.NewRow(collection)
	return row, nil
}

func (f *fakeRecordsRepo) Update(_ context.Context, _ string, collection, id string, set map[string]any) (entities.Row, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.updatedSet = set
	return &entities.ErpSession{ID: id, Completed: true}, nil
}

func (f *fakeRecordsRepo) Delete(_ context.Context, userID, _, _ string) (bool, error) {
	f.deletedUser = userID
	return f.deleted, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	r *fakeRefreshRepo
	c *fakeRecordsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error    { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository                 { return m.u }
func (m *fakeRepoManager) RefreshTokens(dbx.DBTX) refreshtokens.Repository { return m.r }
func (m *fakeRepoManager) Records(dbx.DBTX) records.Repository             { return m.c }
