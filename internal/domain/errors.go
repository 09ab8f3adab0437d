package domain

import "errors"

var (
	// Ошибка некорректного формата email.
	ErrInvalidEmail = errors.New("invalid email format")
	// Ошибка некорректного формата телефона.
	ErrInvalidPhone = errors.New("invalid phone format")
	// Ошибка, если цена товара не является числом.
	ErrInvalidPrice = errors.New("price must be a number")
	// Ошибка повторной регистрации email: колонка clients.email уникальна.
	ErrDuplicateEmail = errors.New("email already registered")
	// Ошибка пустой корзины при создании заказа.
	ErrEmptyCart = errors.New("order must contain at least one item")
	// Ошибка при некорректном количестве товара (<= 0).
	ErrInvalidQuantity = errors.New("item quantity must be greater than zero")
	// ErrProductNotFound возвращается, если товар из корзины отсутствует в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrClientNotFound возвращается, если клиент не найден в хранилище.
	ErrClientNotFound = errors.New("client not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// Ошибка скидки вне допустимого диапазона [0, 100].
	ErrInvalidDiscount = errors.New("discount must be between 0 and 100")
)

// IsValidation проверяет, относится ли ошибка к валидации входных полей.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrInvalidPhone) ||
		errors.Is(err, ErrInvalidPrice) ||
		errors.Is(err, ErrInvalidDiscount)
}

// IsCartError проверяет, является ли ошибка нарушением предусловий создания заказа.
func IsCartError(err error) bool {
	return errors.Is(err, ErrEmptyCart) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrProductNotFound)
}
