package request

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotBlank(t *testing.T) {
	RegisterValidators()

	price := 1.0
	err := binding.Validator.ValidateStruct(&CreateProductRequest{Name: "  ", Price: &price})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "name", verrs[0].Field())
	assert.Equal(t, "notblank", verrs[0].Tag())

	assert.NoError(t, binding.Validator.ValidateStruct(&CreateProductRequest{Name: "Rice", Price: &price}))
}

func TestItemsAreValidated(t *testing.T) {
	RegisterValidators()

	long := make([]byte, 256)
	for i := range long {
		long[i] = 'x'
	}
	err := binding.Validator.ValidateStruct(&CreateBillRequest{
		CustomerName: "A",
		Items:        []ItemRequest{{Name: string(long)}},
	})

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs[0].Namespace(), "items[0].name")
	assert.Equal(t, "max", verrs[0].Tag())
}
