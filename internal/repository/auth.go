package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/atinyakov/FirmAdmin/internal/models"
)

// PostgresUserRepository stores console accounts in the users table.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

const selectAccount = `SELECT id, name, mail, password, update_time FROM users`

// FindByMail returns the account registered under mail.
func (r *PostgresUserRepository) FindByMail(ctx context.Context, mail string) (models.Account, error) {
	return r.scanAccount(r.DB.QueryRowContext(ctx, selectAccount+` WHERE mail = $1`, mail), "FindByMail")
}

// FindByID returns the account with the given id.
func (r *PostgresUserRepository) FindByID(ctx context.Context, id int) (models.Account, error) {
	return r.scanAccount(r.DB.QueryRowContext(ctx, selectAccount+` WHERE id = $1`, id), "FindByID")
}

func (r *PostgresUserRepository) scanAccount(row *sql.Row, op string) (models.Account, error) {
	var acc models.Account
	if err := row.Scan(&acc.ID, &acc.Name, &acc.Mail, &acc.PasswordHash, &acc.UpdateTime); err != nil {
		return models.Account{}, translate(op, err)
	}
	return acc, nil
}

// UpdatePassword stores a new password hash and moves update_time to at,
// which invalidates tokens carrying the previous ticker.
func (r *PostgresUserRepository) UpdatePassword(ctx context.Context, id int, hash string, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE users SET password = $1, update_time = $2 WHERE id = $3`,
		hash, at, id,
	)
	if err != nil {
		return translate("UpdatePassword", err)
	}
	return affected("UpdatePassword", res)
}
