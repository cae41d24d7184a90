package inventory_test

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/storekeeper-api/internal/domain/inventory"
)

func TestNewSKU_Formato(t *testing.T) {
	sku := inventory.NewSKU(time.UnixMilli(1700000000000))
	assert.Regexp(t, regexp.MustCompile(`^SKU-[0-9A-Z]+-[0-9A-Z]{3}$`), sku)
	assert.Contains(t, sku, "SKU-LOYW3V28-", "el timestamp va en base36 mayúscula")
}

func TestNewReferenceNumber_FormatoYUnicidad(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	a := inventory.NewReferenceNumber(now)
	b := inventory.NewReferenceNumber(now)
	assert.Regexp(t, regexp.MustCompile(`^TXN-1700000000123-[0-9A-F]{8}$`), a)
	assert.NotEqual(t, a, b, "dos referencias en el mismo milisegundo deben diferir")
}
