package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/storefront/pkg/validate"
)

type item struct {
	Name    string   `json:"name"    validate:"required,max=10"`
	Email   string   `json:"email"   validate:"omitempty,email"`
	Price   *float64 `json:"price"   validate:"required,gte=0"`
	Qty     int      `json:"qty"     validate:"omitempty,min=1,max=5"`
	Tags    []int64  `json:"tags"    validate:"required,min=1,unique,dive,gt=0"`
	Colour  string   `json:"colour"  validate:"omitempty,oneof=red green"`
	Private string   `json:"-"       validate:"omitempty,len=2"`
}

func price(f float64) *float64 { return &f }

func TestValidInput(t *testing.T) {
	errs := validate.Struct(item{
		Name:   "desk",
		Email:  "ops@example.com",
		Price:  price(0),
		Qty:    2,
		Tags:   []int64{1, 2},
		Colour: "red",
	})
	assert.Empty(t, errs)
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(item{})
	assert.Equal(t, "The name field is required.", errs["name"])
	assert.Equal(t, "The price field is required.", errs["price"])
	assert.Equal(t, "The tags field is required.", errs["tags"])
	assert.NotContains(t, errs, "email")
}

func TestMessagesByKind(t *testing.T) {
	errs := validate.Struct(item{
		Name:   "a very long name",
		Email:  "nope",
		Price:  price(-1),
		Qty:    9,
		Tags:   []int64{},
		Colour: "blue",
	})
	assert.Equal(t, map[string]string{
		"name":   "The name must not exceed 10 characters.",
		"email":  "The email must be a valid email address.",
		"price":  "The price must be greater than or equal to 0.",
		"qty":    "The qty must not be greater than 5.",
		"tags":   "The tags must have at least 1 items.",
		"colour": "The selected colour is invalid.",
	}, errs)
}

func TestDiveErrorsKeyedBySlice(t *testing.T) {
	errs := validate.Struct(item{Name: "x", Price: price(1), Tags: []int64{3, 0}})
	assert.Equal(t, map[string]string{"tags": "The tags.1 must be greater than 0."}, errs)
}

func TestUniqueSlice(t *testing.T) {
	errs := validate.Struct(item{Name: "x", Price: price(1), Tags: []int64{4, 4}})
	assert.Equal(t, "The tags must not contain duplicate values.", errs["tags"])
}

func TestUntaggedNameFallsBackToGoName(t *testing.T) {
	errs := validate.Struct(item{Name: "x", Price: price(1), Tags: []int64{1}, Private: "abc"})
	assert.Equal(t, "The Private must be exactly 2 characters.", errs["Private"])
}

func TestPartialSkipsAbsentFields(t *testing.T) {
	errs := validate.Partial(&item{Email: "ops@example.com"}, "Email")
	assert.Empty(t, errs)

	errs = validate.Partial(&item{Name: ""}, "Name")
	assert.Equal(t, map[string]string{"name": "The name field is required."}, errs)

	assert.Empty(t, validate.Partial(&item{}))
}

func TestNonStructInput(t *testing.T) {
	errs := validate.Struct(42)
	assert.Contains(t, errs, "_schema")
}
