package sqlxrepos

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"

	"github.com/vidyasetu/backend/core"
	"github.com/vidyasetu/backend/core/user"
)

type userRow struct {
	ID              string     `db:"id"`
	SchoolID        string     `db:"school_id"`
	Name            string     `db:"name"`
	Mobile          string     `db:"mobile"`
	Role            string     `db:"role"`
	PasswordHash    []byte     `db:"password_hash"`
	SubscriptionEnd *core.Date `db:"subscription_end_date"`
	CreatedAt       time.Time  `db:"created_at"`
}

var userColumns = []string{"id", "school_id", "name", "mobile", "role", "password_hash", "subscription_end_date", "created_at"}

func (r userRow) unboil() user.User {
	return user.User{
		ID:              r.ID,
		SchoolID:        r.SchoolID,
		Name:            r.Name,
		Mobile:          r.Mobile,
		Role:            user.Role(r.Role),
		PasswordHash:    r.PasswordHash,
		SubscriptionEnd: r.SubscriptionEnd,
		CreatedAt:       r.CreatedAt.UTC(),
	}
}

type userRepository struct {
	db core.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db core.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = newID()
	q := psql.Insert("users").Columns(userColumns...).Values(
		usr.ID, usr.SchoolID, usr.Name, usr.Mobile, usr.Role.String(), usr.PasswordHash, usr.SubscriptionEnd, usr.CreatedAt.UTC(),
	)
	if _, err := execQuery(ctx, repo.db, q); err != nil {
		if isUniqueViolation(err) {
			return user.User{}, user.ErrUserExists
		}
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) GetUser(ctx context.Context, filter user.GetFilter) (user.User, error) {
	if filter == (user.GetFilter{}) {
		return user.User{}, user.ErrNotFound
	}
	q := psql.Select(userColumns...).From("users").Limit(1)
	if filter.ID != "" {
		q = q.Where(sq.Eq{"id": filter.ID})
	}
	if filter.SchoolID != "" {
		q = q.Where(sq.Eq{"school_id": filter.SchoolID})
	}
	if filter.Mobile != "" {
		q = q.Where(sq.Eq{"mobile": filter.Mobile})
	}
	var row userRow
	if err := getQuery(ctx, repo.db, &row, q); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "getting user")
	}
	return row.unboil(), nil
}

func (repo userRepository) QueryUsers(ctx context.Context, filter user.QueryFilter) ([]user.User, error) {
	q := psql.Select(userColumns...).From("users").Where(sq.Eq{"school_id": filter.SchoolID}).OrderBy("name", "id")
	if len(filter.Roles) > 0 {
		roles := make([]string, 0, len(filter.Roles))
		for _, r := range filter.Roles {
			roles = append(roles, r.String())
		}
		q = q.Where(sq.Eq{"role": roles})
	}
	var rows []userRow
	if err := selectQuery(ctx, repo.db, &rows, q); err != nil {
		return nil, errors.Wrap(err, "querying users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.unboil())
	}
	return users, nil
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := psql.Update("users").SetMap(map[string]interface{}{
		"name":                  usr.Name,
		"role":                  usr.Role.String(),
		"password_hash":         usr.PasswordHash,
		"subscription_end_date": usr.SubscriptionEnd,
	}).Where(sq.Eq{"id": usr.ID})
	n, err := execQuery(ctx, repo.db, q)
	if err != nil {
		return user.User{}, errors.Wrap(err, "updating user")
	}
	if n == 0 {
		return user.User{}, user.ErrNotFound
	}
	return usr, nil
}

func (repo userRepository) DeleteUser(ctx context.Context, id string) error {
	n, err := execQuery(ctx, repo.db, psql.Delete("users").Where(sq.Eq{"id": id}))
	if err != nil {
		return errors.Wrap(err, "deleting user")
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}
