package inventory

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const base36 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewSKU genera un SKU con formato SKU-<timestamp base36>-<3 caracteres aleatorios>.
func NewSKU(now time.Time) string {
	ts := strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
	id := uuid.New()
	suffix := make([]byte, 3)
	for i := range suffix {
		suffix[i] = base36[int(id[i])%len(base36)]
	}
	return "SKU-" + ts + "-" + string(suffix)
}

// NewReferenceNumber genera el número de referencia único de un movimiento: TXN-<unix ms>-<8 hex>.
func NewReferenceNumber(now time.Time) string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return "TXN-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + short
}
