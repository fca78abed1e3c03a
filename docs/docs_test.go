package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestReadDoc(t *testing.T) {
	orig := SwaggerInfo.Host
	SwaggerInfo.Host = "apples.local:8080"
	defer func() { SwaggerInfo.Host = orig }()

	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Host  string                                `json:"host"`
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Equal(t, "apples.local:8080", parsed.Host)
	assert.Contains(t, parsed.Paths["/api/apples"], "get")
	assert.Contains(t, parsed.Paths["/api/apples"], "post")
	for _, method := range []string{"get", "put", "delete"} {
		assert.Contains(t, parsed.Paths["/api/apples/{id}"], method)
	}
}
