package dummydb

import (
	"context"
	"sort"

	"github.com/vidyasetu/backend/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) CreateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	for _, u := range repo.db.users {
		if u.SchoolID == usr.SchoolID && u.Mobile == usr.Mobile {
			return user.User{}, user.ErrUserExists
		}
	}
	usr.ID = newID()
	repo.db.users[usr.ID] = usr
	return usr, nil
}

func (repo *userRepository) GetUser(_ context.Context, filter user.GetFilter) (user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if filter == (user.GetFilter{}) {
		return user.User{}, user.ErrNotFound
	}
	for _, u := range repo.db.users {
		if filter.ID != "" && u.ID != filter.ID {
			continue
		}
		if filter.SchoolID != "" && u.SchoolID != filter.SchoolID {
			continue
		}
		if filter.Mobile != "" && u.Mobile != filter.Mobile {
			continue
		}
		return u, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) QueryUsers(_ context.Context, filter user.QueryFilter) ([]user.User, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	users := make([]user.User, 0)
	for _, u := range repo.db.users {
		if u.SchoolID != filter.SchoolID {
			continue
		}
		if len(filter.Roles) > 0 && !hasRole(u, filter.Roles) {
			continue
		}
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].Name != users[j].Name {
			return users[i].Name < users[j].Name
		}
		return users[i].ID < users[j].ID
	})
	return users, nil
}

func (repo *userRepository) UpdateUser(_ context.Context, usr user.User) (user.User, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	// only save set fields
	orig, ok := repo.db.users[usr.ID]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	if usr.PasswordHash != nil {
		orig.PasswordHash = usr.PasswordHash
	}
	if usr.Role != "" {
		orig.Role = usr.Role
	}
	orig.Name = usr.Name
	orig.SubscriptionEnd = usr.SubscriptionEnd
	repo.db.users[usr.ID] = orig
	return orig, nil
}

func (repo *userRepository) DeleteUser(_ context.Context, id string) error {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.users[id]; !ok {
		return user.ErrNotFound
	}
	delete(repo.db.users, id)
	return nil
}

func hasRole(usr user.User, roles []user.Role) bool {
	for _, r := range roles {
		if usr.Role == r {
			return true
		}
	}
	return false
}
