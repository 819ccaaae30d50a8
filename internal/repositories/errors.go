package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// invalid_text_representation: Postgres не смог привести строку к uuid
const sqlStateInvalidText = "22P02"

// IsInvalidID - значение id не подходит по формату колонки (например, не uuid).
// Такой записи заведомо нет, это не сбой хранилища.
func IsInvalidID(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == sqlStateInvalidText
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == sqlStateInvalidText
	}
	return false
}

// isMissing - записи нет либо id не мог ей принадлежать
func isMissing(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound) || IsInvalidID(err)
}
