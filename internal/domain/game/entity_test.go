package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g, err := New("Chess II", "turn based strategy", 39.99)
	require.NoError(t, err)
	assert.Equal(t, 39.99, g.Price)
	assert.Equal(t, 39.99, g.OriginalPrice)
	assert.Zero(t, g.Discount)
	assert.False(t, g.OnSale)

	_, err = New("", "no name", 10)
	assert.Error(t, err)

	_, err = New("Freebie", "", -0.01)
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestApplyDiscount(t *testing.T) {
	tests := []struct {
		name       string
		price      float64
		percentage int
		wantPrice  float64
		wantOnSale bool
		wantErr    error
	}{
		{name: "half off", price: 100, percentage: 50, wantPrice: 50, wantOnSale: true},
		{name: "quarter off", price: 39.99, percentage: 25, wantPrice: 29.9925, wantOnSale: true},
		{name: "full discount", price: 100, percentage: 100, wantPrice: 0, wantOnSale: true},
		{name: "zero discount keeps price", price: 100, percentage: 0, wantPrice: 100, wantOnSale: false},
		{name: "negative rejected", price: 100, percentage: -1, wantErr: ErrInvalidDiscount},
		{name: "over hundred rejected", price: 100, percentage: 101, wantErr: ErrInvalidDiscount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := New("Game", "", tt.price)
			require.NoError(t, err)

			err = g.ApplyDiscount(tt.percentage)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.price, g.Price)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantPrice, g.Price, 1e-9)
			assert.Equal(t, tt.price, g.OriginalPrice)
			assert.Equal(t, tt.percentage, g.Discount)
			assert.Equal(t, tt.wantOnSale, g.OnSale)
		})
	}
}

func TestRemoveDiscountRestoresOriginalPrice(t *testing.T) {
	g, err := New("Game", "", 59.99)
	require.NoError(t, err)
	require.NoError(t, g.ApplyDiscount(30))

	g.RemoveDiscount()
	assert.Equal(t, 59.99, g.Price)
	assert.Zero(t, g.Discount)
	assert.False(t, g.OnSale)
}

func TestUpdatePriceRecomputesActiveDiscount(t *testing.T) {
	g, err := New("Game", "", 100)
	require.NoError(t, err)
	require.NoError(t, g.ApplyDiscount(20))
	require.InDelta(t, 80, g.Price, 1e-9)

	require.NoError(t, g.UpdatePrice(50))
	assert.Equal(t, 50.0, g.OriginalPrice)
	assert.InDelta(t, 40, g.Price, 1e-9)
	assert.Equal(t, 20, g.Discount)

	assert.ErrorIs(t, g.UpdatePrice(-1), ErrNegativePrice)
}

func TestUpdateDetails(t *testing.T) {
	g, err := New("Old Name", "old description", 10)
	require.NoError(t, err)

	newName := "New Name"
	empty := ""
	g.UpdateDetails(&newName, &empty)
	assert.Equal(t, "New Name", g.Name)
	assert.Equal(t, "", g.Description)

	// Empty name is ignored, nil description leaves the field untouched.
	g.UpdateDetails(&empty, nil)
	assert.Equal(t, "New Name", g.Name)
}
