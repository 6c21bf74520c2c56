//go:build integration

package mongo

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketplace/marketplace-api/internal/core/domain"
	"github.com/marketplace/marketplace-api/internal/core/ports"
)

func newAccountRepo(t *testing.T) *AccountRepository {
	t.Helper()
	repo := NewAccountRepository(newTestDatabase(t))
	require.NoError(t, repo.EnsureIndexes(context.Background()))
	return repo
}

func TestAccountRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo(t)

	created, err := repo.Create(ctx, &domain.Account{
		Name: "Alice", Email: "alice@example.com", PasswordHash: "$2a$hash", Role: domain.RoleUser, CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.PasswordHash)

	byEmail, err := repo.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "$2a$hash", byEmail.PasswordHash, "login lookup must include the hash")

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice", byID.Name)
	assert.Empty(t, byID.PasswordHash, "default projection must exclude the hash")

	_, err = repo.FindByID(ctx, "not-an-object-id")
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepository_UniqueEmail(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo(t)

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(ctx, &domain.Account{Name: "Dup", Email: "dup@example.com", Role: domain.RoleUser, CreatedAt: time.Now()})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, conflicts int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrEmailExists):
			conflicts++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, conflicts)
}

func TestAccountRepository_UpdatePartial(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo(t)

	a, err := repo.Create(ctx, &domain.Account{Name: "Bob", Email: "bob@example.com", PasswordHash: "h1", Role: domain.RoleUser, CreatedAt: time.Now()})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Account{Name: "Eve", Email: "eve@example.com", PasswordHash: "h2", Role: domain.RoleUser, CreatedAt: time.Now()})
	require.NoError(t, err)

	name := "Robert"
	updated, err := repo.Update(ctx, a.ID, ports.AccountChanges{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@example.com", updated.Email)
	assert.Empty(t, updated.PasswordHash)

	stored, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, "h1", stored.PasswordHash)

	taken := "eve@example.com"
	_, err = repo.Update(ctx, a.ID, ports.AccountChanges{Email: &taken})
	assert.ErrorIs(t, err, domain.ErrEmailInUse)

	_, err = repo.Update(ctx, "65f000000000000000000000", ports.AccountChanges{Name: &name})
	assert.ErrorIs(t, err, domain.ErrAccountNotFound)
}

func TestAccountRepository_DeleteAndList(t *testing.T) {
	ctx := context.Background()
	repo := newAccountRepo(t)

	base := time.Now().UTC()
	older, err := repo.Create(ctx, &domain.Account{Name: "Old", Email: "old@example.com", Role: domain.RoleUser, CreatedAt: base.Add(-time.Hour)})
	require.NoError(t, err)
	newer, err := repo.Create(ctx, &domain.Account{Name: "New", Email: "new@example.com", Role: domain.RoleAdmin, CreatedAt: base})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, newer.ID, list[0].ID)
	assert.Equal(t, older.ID, list[1].ID)

	require.NoError(t, repo.Delete(ctx, older.ID))
	assert.ErrorIs(t, repo.Delete(ctx, older.ID), domain.ErrAccountNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
