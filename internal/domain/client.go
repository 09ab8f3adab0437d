package domain

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// Client — клиент магазина.
type Client struct {
	ID      int64
	Name    string
	Email   string
	Phone   string
	Address string
}

// ValidEmail проверяет, что строка похожа на адрес local@domain.tld.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidPhone проверяет телефон: необязательный ведущий «+» и 10–15 цифр.
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// NewClient обрезает пробелы во всех полях и проверяет email и телефон.
// Имя и адрес дополнительно не валидируются.
func NewClient(name, email, phone, address string) (Client, error) {
	email = strings.TrimSpace(email)
	if !ValidEmail(email) {
		return Client{}, fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	phone = strings.TrimSpace(phone)
	if !ValidPhone(phone) {
		return Client{}, fmt.Errorf("%w: %q", ErrInvalidPhone, phone)
	}

	return Client{
		Name:    strings.TrimSpace(name),
		Email:   email,
		Phone:   phone,
		Address: strings.TrimSpace(address),
	}, nil
}

func (c Client) String() string {
	return fmt.Sprintf("Client(%s, %s, %s, %s)", c.Name, c.Email, c.Phone, c.Address)
}
