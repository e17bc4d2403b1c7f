// Package resource provides Laravel-style API Resource transformers.
//
// A Transformer decides exactly what JSON shape the API returns for a
// model, independent of its storage tags:
//
//	type CustomerResource struct{}
//	func (CustomerResource) ToArray(c models.Customer) resource.Map {
//	    return resource.Map{"id": c.ID, "customer_name": c.CustomerName}
//	}
//
// Respond:
//
//	c.JSON(http.StatusOK, resource.New(CustomerResource{}, customer))
//	c.JSON(http.StatusOK, resource.CollectionOf(CustomerResource{}, customers))
package resource

import "encoding/json"

// Map is a convenient alias for the output of ToArray.
type Map = map[string]interface{}

// Transformer converts one model instance into a Map.
type Transformer[T any] interface {
	ToArray(v T) Map
}

// Func adapts a plain function to a Transformer.
type Func[T any] func(v T) Map

func (f Func[T]) ToArray(v T) Map { return f(v) }

// ------------------- Single resource -------------------

// Resource wraps a single model with its transformer.
type Resource[T any] struct {
	transformer Transformer[T]
	data        T
}

// New creates a Resource for a single model instance.
func New[T any](t Transformer[T], data T) Resource[T] {
	return Resource[T]{transformer: t, data: data}
}

// ToArray returns the transformed model.
func (r Resource[T]) ToArray() Map { return r.transformer.ToArray(r.data) }

// MarshalJSON implements json.Marshaler so a Resource can be nested.
func (r Resource[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.ToArray())
}

// ------------------- Collection resource -------------------

// Collection wraps a slice of models with a transformer.
type Collection[T any] struct {
	transformer Transformer[T]
	items       []T
}

// CollectionOf creates a Collection from a slice.
func CollectionOf[T any](t Transformer[T], items []T) Collection[T] {
	return Collection[T]{transformer: t, items: items}
}

// Len returns the number of items.
func (c Collection[T]) Len() int { return len(c.items) }

// ToArray returns every item transformed, in order. Never nil.
func (c Collection[T]) ToArray() []Map {
	out := make([]Map, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, c.transformer.ToArray(item))
	}
	return out
}

// MarshalJSON encodes the collection as a JSON array; an empty collection
// is [] rather than null.
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToArray())
}
