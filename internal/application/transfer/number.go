package transfer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// newTransferNumber genera un número legible de traslado con sufijo aleatorio
// no secuencial: TRF-20260901-3FA85F64. El sufijo sale de un UUID v4, así que
// no es adivinable ni se repite aunque el traslado se elimine.
func newTransferNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:8]
	return fmt.Sprintf("TRF-%s-%s", now.Format("20060102"), suffix)
}
