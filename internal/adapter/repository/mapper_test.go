package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gretastore/internal/domain/entity"
)

func TestOrderRecordUsesBackendColumnNames(t *testing.T) {
	order := entity.Order{
		ID:            "o-1",
		CustomerName:  "Ana",
		Email:         "ana@x.pe",
		Items:         []entity.CartItem{{Product: entity.Product{ID: 1, Name: "A", Price: 4, NutritionInfo: "90 kcal"}, Quantity: 2}},
		Total:         8,
		Status:        entity.OrderPending,
		PaymentStatus: entity.PaymentPaid,
		Date:          time.Date(2026, 10, 1, 4, 0, 0, 0, time.FixedZone("PET", -5*3600)),
	}

	raw, err := json.Marshal(toOrderRecord(order))
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Contains(t, fields, "customer_name")
	assert.Contains(t, fields, "payment_status")
	assert.NotContains(t, fields, "customerName")

	items := fields["items"].([]interface{})
	item := items[0].(map[string]interface{})
	assert.Equal(t, "90 kcal", item["nutrition_info"])
	assert.EqualValues(t, 2, item["quantity"])

	back := toOrderRecord(order).toEntity()
	assert.Equal(t, time.UTC, back.Date.Location())
	assert.True(t, order.Date.Equal(back.Date))
	assert.Equal(t, order.Items, back.Items)
}

func TestProductUpdateFieldsSkipsStoreOwnedColumns(t *testing.T) {
	fields := productUpdateFields(entity.Product{ID: 1, Name: "A", Rating: 5, Sales: 100})

	assert.NotContains(t, fields, "sales")
	assert.NotContains(t, fields, "rating")
	assert.NotContains(t, fields, "id")
	assert.Equal(t, []int64{}, fields[colRelated])
}

func TestProfileRecordRoundTrip(t *testing.T) {
	p := entity.Profile{ID: "u1", FullName: "Ana", Role: entity.RoleAdmin, Phone: "999"}
	assert.Equal(t, p, toProfileRecord(p).toEntity())
}
