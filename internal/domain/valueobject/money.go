package valueobject

import (
	"fmt"

	"github.com/sokohub/rfq-backend/internal/pkg/apperror"
)

type Money struct {
	Amount   float64
	Currency string
}

func NewMoney(amount float64, currency string) (Money, error) {
	if amount <= 0 {
		return Money{}, apperror.New(apperror.ErrCodeValidation, "сумма должна быть положительной")
	}
	if currency == "" {
		currency = "KES"
	}
	return Money{Amount: amount, Currency: currency}, nil
}

func (m Money) String() string {
	return fmt.Sprintf("%s %.2f", m.Currency, m.Amount)
}
