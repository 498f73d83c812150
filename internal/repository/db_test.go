package repository

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	uniqueErr := &pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "orders_order_number_key"}

	assert.True(t, isUniqueViolation(uniqueErr, "orders_order_number_key"))
	assert.True(t, isUniqueViolation(uniqueErr, ""))
	assert.False(t, isUniqueViolation(uniqueErr, "users_email_key"))

	fkErr := &pgconn.PgError{Code: pgForeignKeyViolation}
	assert.False(t, isUniqueViolation(fkErr, ""))

	assert.False(t, isUniqueViolation(errors.New("plain error"), ""))
	assert.False(t, isUniqueViolation(nil, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: pgForeignKeyViolation}))
	assert.False(t, isForeignKeyViolation(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isForeignKeyViolation(errors.New("plain error")))
}

func TestDecimalNumericRoundTrip(t *testing.T) {
	tests := []string{"0.00", "19.99", "1234.50", "-5.25"}

	for _, s := range tests {
		t.Run(s, func(t *testing.T) {
			d, err := decimal.NewFromString(s)
			require.NoError(t, err)

			n := decimalToNumeric(d)
			require.True(t, n.Valid)

			got := numericToDecimal(n)
			assert.True(t, got.Equal(d), "want %s, got %s", d, got)
		})
	}
}

func TestNumericToDecimal_NullBecomesZero(t *testing.T) {
	var n = decimalToNumeric(decimal.Zero)
	n.Valid = false

	assert.True(t, numericToDecimal(n).IsZero())
}
