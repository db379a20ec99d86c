package collation

import (
	"strings"
	"sync"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Comparación de fuerza 2 (ignora mayúsculas, distingue letras base) para
// item_name y stock_unit, el mismo criterio que aplica el índice único en la
// base de datos. El collator de x/text no es seguro para uso concurrente, por
// eso el mutex.
var (
	mu  sync.Mutex
	col = collate.New(language.English, collate.IgnoreCase)
)

// Equal indica si a y b son iguales bajo colación inglesa sin distinguir
// mayúsculas.
func Equal(a, b string) bool {
	mu.Lock()
	defer mu.Unlock()
	return col.CompareString(a, b) == 0
}

// Key normaliza una cadena a su forma de búsqueda (trim + minúsculas), la
// misma que usa lower() en los índices de PostgreSQL.
func Key(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
