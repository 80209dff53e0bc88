package persistence

import (
	"strings"

	"github.com/foodcrm/backend/internal/domain/shared"
)

// sortColumns is the set of columns a listing may be ordered by.
type sortColumns map[string]struct{}

func sortable(names ...string) sortColumns {
	cols := make(sortColumns, len(names))
	for _, name := range names {
		cols[name] = struct{}{}
	}
	return cols
}

var (
	companySortColumns       = sortable("name", "country", "email", "created_at", "updated_at")
	contactSortColumns       = sortable("first_name", "last_name", "email", "created_at", "updated_at")
	dealSortColumns          = sortable("title", "stage", "value", "currency", "expected_close", "created_at", "updated_at")
	activitySortColumns      = sortable("subject", "type", "due_at", "completed_at", "created_at", "updated_at")
	itemSortColumns          = sortable("sku", "name", "unit", "category", "created_at", "updated_at")
	priceListSortColumns     = sortable("name", "currency", "valid_from", "valid_to", "created_at", "updated_at")
	quoteSortColumns         = sortable("number", "status", "currency", "doc_date", "valid_until", "created_at", "updated_at")
	purchaseOrderSortColumns = sortable("number", "status", "currency", "doc_date", "expected_date", "created_at", "updated_at")
	emailSortColumns         = sortable("subject", "sender", "direction", "sent_at", "created_at")
)

// orderClause builds the ORDER BY fragment for a listing query. The
// column must come from the table's sortColumns; anything else falls
// back to the table's default ordering so caller input never reaches
// SQL text.
func orderClause(filter shared.Filter, allowed sortColumns, fallback string) string {
	if _, ok := allowed[filter.OrderBy]; !ok {
		return fallback
	}
	dir := "ASC"
	if strings.ToLower(filter.OrderDir) == "desc" {
		dir = "DESC"
	}
	return filter.OrderBy + " " + dir
}
