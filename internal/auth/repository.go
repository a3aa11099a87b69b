package auth

import (
	"context"
	"database/sql"

	"clinic-desk/internal/database"

	"github.com/google/uuid"
)

const (
	findUserByUUIDQuery     = "SELECT user_id, uuid, username, user_role, emp_id, patient_id FROM system_user WHERE uuid = $1 AND status = 'active'"
	findUserByUsernameQuery = "SELECT user_id, uuid, username, user_role, emp_id, patient_id FROM system_user WHERE username = $1 AND status = 'active'"
	checkUserPasswordQuery  = "SELECT user_id, password FROM system_user WHERE username = $1 AND status = 'active'"
)

// Repository provides access to system user data.
type Repository interface {

	// FindUserByUUID finds a user by its UUID.
	FindUserByUUID(ctx context.Context, uuid uuid.UUID) (*User, error)

	// FindUserByUsername finds a user by its username.
	FindUserByUsername(ctx context.Context, username string) (*User, error)

	// CheckUserPassword checks if the stored password is equals to the given password.
	CheckUserPassword(ctx context.Context, username string, password string) (bool, error)
}

type defaultRepository struct {
	dbConn database.Connection
}

// NewRepository creates a new Repository.
func newRepository(dbConn database.Connection) Repository {
	return &defaultRepository{dbConn: dbConn}
}

func (d defaultRepository) FindUserByUUID(ctx context.Context, uuid uuid.UUID) (*User, error) {
	params := make([]interface{}, 1)
	params[0] = uuid.String()
	rows, err := d.dbConn.DB().QueryContext(ctx, findUserByUUIDQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	user := new(User)
	for rows.Next() {
		if err = database.TransformRow(rows, user); err != nil {
			return nil, err
		}
		if user.ID > 0 {
			return user, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) FindUserByUsername(ctx context.Context, username string) (*User, error) {
	params := make([]interface{}, 1)
	params[0] = username
	rows, err := d.dbConn.DB().QueryContext(ctx, findUserByUsernameQuery, params...)
	if err != nil {
		return nil, err
	}
	defer database.CloseRows(rows)
	user := new(User)
	for rows.Next() {
		if err = database.TransformRow(rows, user); err != nil {
			return nil, err
		}
		if user.ID > 0 {
			return user, nil
		}
	}
	return nil, nil
}

func (d defaultRepository) CheckUserPassword(ctx context.Context, username string, password string) (bool, error) {
	params := make([]interface{}, 1)
	params[0] = username
	row := d.dbConn.DB().QueryRowContext(ctx, checkUserPasswordQuery, params...)
	if row.Err() != nil {
		return false, row.Err()
	}
	id := new(uint64)
	hashedPass := new(string)
	if err := row.Scan(id, hashedPass); err != nil && err != sql.ErrNoRows {
		return false, err
	}
	return ComparePasswords(*hashedPass, password), nil
}
