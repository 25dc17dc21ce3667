package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func completeAddress() ShippingAddress {
	return ShippingAddress{
		FirstName:  "Test",
		LastName:   "User",
		Email:      "test@example.com",
		Phone:      "1234567890",
		Address:    "123 Test St",
		City:       "Test City",
		PostalCode: "12345",
	}
}

func TestShippingAddressIsComplete(t *testing.T) {
	require.True(t, completeAddress().IsComplete())

	// 任一必填欄位缺漏即不完整
	addr := completeAddress()
	addr.PostalCode = ""
	require.False(t, addr.IsComplete())

	require.False(t, ShippingAddress{}.IsComplete())
}

func TestShippingAddressMerge(t *testing.T) {
	addr := completeAddress()

	newCity := "New City"
	newPhone := "0987654321"
	merged := addr.Merge(ShippingAddressPatch{
		City:  &newCity,
		Phone: &newPhone,
	})

	require.Equal(t, "New City", merged.City)
	require.Equal(t, "0987654321", merged.Phone)
	// 沒給的欄位保留原值
	require.Equal(t, "123 Test St", merged.Address)
	require.Equal(t, "Test", merged.FirstName)

	// 原本的地址不受影響
	require.Equal(t, "Test City", addr.City)
}

func TestShippingAddressMerge_EmptyPatch(t *testing.T) {
	addr := completeAddress()
	merged := addr.Merge(ShippingAddressPatch{})
	require.Equal(t, addr, merged)
}
