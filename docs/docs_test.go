package docs_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/storekeeper-api/docs"
)

func TestSwagger_RegistradoConRutasDeLaAPI(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed struct {
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))

	assert.Contains(t, parsed.Paths, "/api/products/{id}/stock")
	assert.Contains(t, parsed.Paths["/api/products/{id}"], "delete")
	assert.Contains(t, parsed.Paths, "/api/stores/{id}/inventory-report")
}
