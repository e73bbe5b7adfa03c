package relational

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relaycrm/crm-system/internal/core/domain"
	"github.com/relaycrm/crm-system/internal/core/ports"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "crm.db") + "?_foreign_keys=on"
	db, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn, MaxOpenConns: 1}, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	t.Cleanup(func() { _ = Close(db) })
	return db
}

func newCustomer(first, last, email string) *domain.Customer {
	return &domain.Customer{FirstName: first, LastName: last, Email: email}
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "oracle"}, zerolog.Nop())
	assert.Error(t, err)
}

func TestCustomerRepository_Create(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	t.Run("assigns id and timestamps", func(t *testing.T) {
		c := newCustomer("Ann", "Lee", "ann@x.com")
		c.City = "Paris"
		require.NoError(t, repo.Create(ctx, c))

		assert.NotZero(t, c.ID)
		assert.False(t, c.CreatedAt.IsZero())
		assert.False(t, c.UpdatedAt.Before(c.CreatedAt))

		got, err := repo.FindByID(ctx, c.ID)
		require.NoError(t, err)
		assert.Equal(t, "Paris", got.City)
		assert.Nil(t, got.CreatedByID)
	})

	t.Run("validation error", func(t *testing.T) {
		err := repo.Create(ctx, newCustomer("", "Lee", "broken"))
		var ve *domain.ValidationError
		require.ErrorAs(t, err, &ve)
		assert.Contains(t, ve.FieldMap(), "first_name")
		assert.Contains(t, ve.FieldMap(), "email")
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(ctx, newCustomer("Other", "Person", "ann@x.com"))
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
	})
}

func TestCustomerRepository_CreatedBy(t *testing.T) {
	db := newTestDB(t)
	users := NewUserRepository(db)
	customers := NewCustomerRepository(db)
	ctx := context.Background()

	u := &domain.User{Username: "staff", PasswordHash: "x", IsActive: true, DateJoined: time.Now()}
	require.NoError(t, users.Create(ctx, u))

	c := newCustomer("Ann", "Lee", "ann@x.com")
	c.CreatedByID = &u.ID
	require.NoError(t, customers.Create(ctx, c))

	got, err := customers.FindByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.CreatedByID)
	assert.Equal(t, u.ID, *got.CreatedByID)
}

func TestCustomerRepository_Update(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	c := newCustomer("Ann", "Lee", "ann@x.com")
	require.NoError(t, repo.Create(ctx, c))
	createdAt := c.CreatedAt

	c.FirstName = "Anne"
	c.Phone = "555"
	require.NoError(t, repo.Update(ctx, c))

	got, err := repo.FindByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anne", got.FirstName)
	assert.Equal(t, "555", got.Phone)
	assert.True(t, got.CreatedAt.Equal(createdAt), "created_at must not change")
	assert.False(t, got.UpdatedAt.Before(got.CreatedAt))

	missing := newCustomer("No", "One", "none@x.com")
	missing.ID = 9999
	assert.ErrorIs(t, repo.Update(ctx, missing), domain.ErrCustomerNotFound)

	other := newCustomer("Bo", "Ng", "bo@x.com")
	require.NoError(t, repo.Create(ctx, other))
	other.Email = "ann@x.com"
	assert.ErrorIs(t, repo.Update(ctx, other), domain.ErrDuplicateEmail)
}

func TestCustomerRepository_Delete(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	c := newCustomer("Ann", "Lee", "ann@x.com")
	require.NoError(t, repo.Create(ctx, c))

	require.NoError(t, repo.Delete(ctx, c.ID))
	_, err := repo.FindByID(ctx, c.ID)
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, c.ID), domain.ErrCustomerNotFound)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCustomerRepository_ListAndAll(t *testing.T) {
	repo := NewCustomerRepository(newTestDB(t))
	ctx := context.Background()

	for i := 1; i <= 12; i++ {
		c := newCustomer("First", fmt.Sprintf("Last%02d", i), fmt.Sprintf("c%02d@example.com", i))
		if i == 5 {
			c.Company = "ACME 100% Widgets"
		}
		require.NoError(t, repo.Create(ctx, c))
	}

	t.Run("newest first with total", func(t *testing.T) {
		items, total, err := repo.List(ctx, ports.CustomerFilter{Limit: 5})
		require.NoError(t, err)
		assert.EqualValues(t, 12, total)
		require.Len(t, items, 5)
		assert.Equal(t, "Last12", items[0].LastName)
		assert.Equal(t, "Last08", items[4].LastName)
	})

	t.Run("offset window", func(t *testing.T) {
		items, total, err := repo.List(ctx, ports.CustomerFilter{Offset: 10, Limit: 10})
		require.NoError(t, err)
		assert.EqualValues(t, 12, total)
		require.Len(t, items, 2)
		assert.Equal(t, "Last01", items[1].LastName)
	})

	t.Run("case insensitive search", func(t *testing.T) {
		items, total, err := repo.List(ctx, ports.CustomerFilter{Search: "acme"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, items, 1)
		assert.Equal(t, "Last05", items[0].LastName)
	})

	t.Run("wildcards are literal", func(t *testing.T) {
		_, total, err := repo.List(ctx, ports.CustomerFilter{Search: "100%"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		_, total, err = repo.List(ctx, ports.CustomerFilter{Search: "%"})
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)

		_, total, err = repo.List(ctx, ports.CustomerFilter{Search: "c_1"})
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("all in store order", func(t *testing.T) {
		all, err := repo.All(ctx)
		require.NoError(t, err)
		require.Len(t, all, 12)
		assert.Equal(t, "Last12", all[0].LastName)
		assert.Equal(t, "Last01", all[11].LastName)
	})
}

func TestUserRepository(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	older := &domain.User{Username: "older", PasswordHash: "h", IsActive: true, DateJoined: base}
	newer := &domain.User{Username: "newer", PasswordHash: "h", IsActive: false, DateJoined: base.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, older))
	require.NoError(t, repo.Create(ctx, newer))

	t.Run("duplicate username", func(t *testing.T) {
		err := repo.Create(ctx, &domain.User{Username: "older", PasswordHash: "h", DateJoined: base})
		assert.ErrorIs(t, err, domain.ErrUserExists)
	})

	t.Run("inactive flag persists", func(t *testing.T) {
		got, err := repo.FindByUsername(ctx, "newer")
		require.NoError(t, err)
		assert.False(t, got.IsActive)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		_, err = repo.FindByID(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})

	t.Run("list by date joined desc", func(t *testing.T) {
		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, "newer", users[0].Username)
	})

	t.Run("update keeps password hash", func(t *testing.T) {
		older.FirstName = "Olga"
		require.NoError(t, repo.Update(ctx, older))
		got, err := repo.FindByID(ctx, older.ID)
		require.NoError(t, err)
		assert.Equal(t, "Olga", got.FirstName)
		assert.Equal(t, "h", got.PasswordHash)
	})

	t.Run("count", func(t *testing.T) {
		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, n)
	})
}

func TestUserRepository_GetOrCreateProfile(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := &domain.User{Username: "alice", PasswordHash: "h", IsActive: true, DateJoined: time.Now()}
	require.NoError(t, repo.Create(ctx, u))

	first, err := repo.GetOrCreateProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, first.UserID)

	second, err := repo.GetOrCreateProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "profile must be created once")

	first.Phone = "555-0100"
	first.Address = "1 Loop"
	require.NoError(t, repo.UpdateProfile(ctx, first))

	third, err := repo.GetOrCreateProfile(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0100", third.Phone)

	_, err = repo.GetOrCreateProfile(ctx, 4242)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_GetOrCreateProfileConcurrent(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	ctx := context.Background()

	u := &domain.User{Username: "bob", PasswordHash: "h", IsActive: true, DateJoined: time.Now()}
	require.NoError(t, repo.Create(ctx, u))

	var wg sync.WaitGroup
	ids := make([]uint, 8)
	errs := make([]error, 8)
	for i := range ids {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := repo.GetOrCreateProfile(ctx, u.ID)
			errs[i] = err
			if p != nil {
				ids[i] = p.ID
			}
		}(i)
	}
	wg.Wait()

	for i := range ids {
		require.NoError(t, errs[i])
		assert.Equal(t, ids[0], ids[i])
	}
}
