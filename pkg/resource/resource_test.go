package resource_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/storefront/pkg/resource"
)

type item struct {
	ID     int
	Name   string
	secret string
}

var itemResource = resource.Func[item](func(v item) resource.Map {
	return resource.Map{"id": v.ID, "name": strings.ToUpper(v.Name)}
})

func TestSingleResource(t *testing.T) {
	r := resource.New[item](itemResource, item{ID: 3, Name: "desk", secret: "x"})

	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":3,"name":"DESK"}`, string(b))
	assert.Equal(t, resource.Map{"id": 3, "name": "DESK"}, r.ToArray())
}

func TestCollectionKeepsOrder(t *testing.T) {
	c := resource.CollectionOf[item](itemResource, []item{{ID: 2, Name: "b"}, {ID: 1, Name: "a"}})
	assert.Equal(t, 2, c.Len())

	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":2,"name":"B"},{"id":1,"name":"A"}]`, string(b))
}

func TestEmptyCollectionIsArray(t *testing.T) {
	b, err := json.Marshal(resource.CollectionOf[item](itemResource, nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestNestedResource(t *testing.T) {
	b, err := json.Marshal(map[string]any{"item": resource.New[item](itemResource, item{ID: 1, Name: "x"})})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item":{"id":1,"name":"X"}}`, string(b))
}
