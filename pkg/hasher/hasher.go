package hasher

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher хэширует пароли клиентов и владельцев
// Передается явно в сервисы, которым нужен (не глобальный синглтон)
type Hasher struct {
	cost int
}

// New создает Hasher с указанной стоимостью bcrypt
// При cost <= 0 используется bcrypt.DefaultCost
func New(cost int) *Hasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash возвращает bcrypt-хэш пароля
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hasher: failed to hash password: %w", err)
	}
	return string(hashed), nil
}
