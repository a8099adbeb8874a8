package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCreateOrder_Valid(t *testing.T) {
	body := []byte(`{"orderProducts":{"p1":{"quantity":2},"p2":{"quantity":1}},"guest":false}`)

	p, err := ValidateCreateOrder(body)
	assert.NoError(t, err)
	assert.False(t, p.Guest)
	assert.Equal(t, int64(2), p.Quantities["p1"])
	assert.Equal(t, int64(1), p.Quantities["p2"])
}

func TestValidateCreateOrder_ValidGuest(t *testing.T) {
	body := []byte(`{"orderProducts":{"p1":{"quantity":1}},"guest":true}`)

	p, err := ValidateCreateOrder(body)
	assert.NoError(t, err)
	assert.True(t, p.Guest)
}

// 空のorderProductsは形としては正しい
func TestValidateCreateOrder_EmptyOrderProducts(t *testing.T) {
	body := []byte(`{"orderProducts":{},"guest":true}`)

	p, err := ValidateCreateOrder(body)
	assert.NoError(t, err)
	assert.Empty(t, p.Quantities)
}

func TestValidateCreateOrder_Invalid(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"JSONとして壊れている", `{"orderProducts":`},
		{"JSONのオブジェクトでない", `"hello"`},
		{"orderProducts欠落", `{"guest":true}`},
		{"orderProductsがオブジェクトでない", `{"orderProducts":[],"guest":true}`},
		{"guest欠落", `{"orderProducts":{"p1":{"quantity":1}}}`},
		{"guestがboolでない", `{"orderProducts":{"p1":{"quantity":1}},"guest":"yes"}`},
		{"quantity欠落", `{"orderProducts":{"p1":{}},"guest":true}`},
		{"quantityが0", `{"orderProducts":{"p1":{"quantity":0}},"guest":true}`},
		{"quantityが負", `{"orderProducts":{"p1":{"quantity":-1}},"guest":true}`},
		{"quantityが小数", `{"orderProducts":{"p1":{"quantity":1.5}},"guest":true}`},
		{"quantityが文字列", `{"orderProducts":{"p1":{"quantity":"2"}},"guest":true}`},
		{"複数のうち1つでも不正", `{"orderProducts":{"p1":{"quantity":1},"p2":{"quantity":0}},"guest":true}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ValidateCreateOrder([]byte(tc.body))
			assert.ErrorIs(t, err, ErrInvalidOrderFormat)
		})
	}
}
