package ordering

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItem(t *testing.T, productID, quantity int, price float64) OrderItem {
	t.Helper()
	item, err := NewOrderItem(productID, quantity, decimal.NewFromFloat(price))
	require.NoError(t, err)
	return *item
}

func TestNewOrderItem(t *testing.T) {
	t.Run("computes sub total", func(t *testing.T) {
		item, err := NewOrderItem(1, 3, decimal.NewFromFloat(2.50))
		require.NoError(t, err)
		assert.True(t, item.SubTotalPrice.Equal(decimal.NewFromFloat(7.50)))
	})

	t.Run("fails with zero quantity", func(t *testing.T) {
		_, err := NewOrderItem(1, 0, decimal.NewFromFloat(2.50))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "quantity must be greater than zero")
	})

	t.Run("fails with non-positive price", func(t *testing.T) {
		_, err := NewOrderItem(1, 1, decimal.Zero)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "product price must be greater than zero")
	})
}

func TestNewOrder(t *testing.T) {
	t.Run("computes total from items", func(t *testing.T) {
		order, err := NewOrder(5, []OrderItem{
			makeItem(t, 1, 2, 5.00),
			makeItem(t, 2, 1, 3.50),
		})
		require.NoError(t, err)
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromFloat(13.50)))
		assert.Len(t, order.Items, 2)
	})

	t.Run("ignores caller-supplied totals", func(t *testing.T) {
		item := makeItem(t, 1, 2, 5.00)
		item.SubTotalPrice = decimal.NewFromFloat(999)

		order, err := NewOrder(5, []OrderItem{item})
		require.NoError(t, err)
		assert.True(t, order.Items[0].SubTotalPrice.Equal(decimal.NewFromFloat(10.00)))
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromFloat(10.00)))
	})

	t.Run("fails without items", func(t *testing.T) {
		_, err := NewOrder(5, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "at least one order item")
	})

	t.Run("fails with duplicate products", func(t *testing.T) {
		_, err := NewOrder(5, []OrderItem{
			makeItem(t, 1, 2, 5.00),
			makeItem(t, 1, 1, 5.00),
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "more than one order item with each product")
	})

	t.Run("fails with table number out of range", func(t *testing.T) {
		for _, table := range []int{0, -1, 201} {
			_, err := NewOrder(table, []OrderItem{makeItem(t, 1, 1, 5.00)})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "Table number must be between")
		}
	})

	t.Run("accepts boundary table numbers", func(t *testing.T) {
		for _, table := range []int{1, 200} {
			_, err := NewOrder(table, []OrderItem{makeItem(t, 1, 1, 5.00)})
			require.NoError(t, err)
		}
	})
}

func TestOrderAddItem(t *testing.T) {
	order, err := NewOrder(3, []OrderItem{makeItem(t, 1, 2, 5.00)})
	require.NoError(t, err)

	t.Run("rejects duplicate product", func(t *testing.T) {
		err := order.AddItem(makeItem(t, 1, 1, 5.00))
		require.Error(t, err)
		assert.Len(t, order.Items, 1)
	})

	t.Run("appends and recomputes total", func(t *testing.T) {
		require.NoError(t, order.AddItem(makeItem(t, 3, 1, 7.00)))
		assert.Len(t, order.Items, 2)
		assert.True(t, order.TotalPrice.Equal(decimal.NewFromFloat(17.00)))
	})
}

func TestOrderItemIDs(t *testing.T) {
	persisted := makeItem(t, 1, 1, 5.00)
	persisted.ID = 11
	fresh := makeItem(t, 2, 1, 4.00)

	order, err := NewOrder(3, []OrderItem{persisted, fresh})
	require.NoError(t, err)
	assert.Equal(t, []int{11}, order.ItemIDs())
}
