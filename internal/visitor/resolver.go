// Package visitor выдаёт анонимному посетителю стабильный идентификатор.
package visitor

import (
	"github.com/google/uuid"
)

// Store - клиентское хранилище идентификатора (cookie браузера)
type Store interface {
	Get() (string, bool)
	Set(id string) error
}

type Resolver struct {
	newID func() string
}

func NewResolver() *Resolver {
	return &Resolver{newID: func() string { return uuid.NewString() }}
}

// Resolve возвращает сохранённый идентификатор или создаёт и сохраняет новый.
// Без хранилища (nil store, пре-рендер) или при ошибке записи - ("", false).
func (r *Resolver) Resolve(store Store) (string, bool) {
	if store == nil {
		return "", false
	}

	if id, ok := store.Get(); ok && IsValidID(id) {
		return id, true
	}

	id := r.newID()
	if err := store.Set(id); err != nil {
		return "", false
	}
	return id, true
}

// IsValidID - мы выдаём только uuid, всё остальное считаем мусором
func IsValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
