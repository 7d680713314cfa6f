package store

import (
	"fmt"
	"strings"
)

const defaultListLimit = 50

// ToSQL builds the data and count SQL for a product listing query,
// along with the positional args shared by both.
func (q *ProductQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conds []string

	if q.Status != nil {
		args = append(args, string(*q.Status))
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if q.SellerID != nil {
		args = append(args, *q.SellerID)
		conds = append(conds, fmt.Sprintf("seller_id = $%d", len(args)))
	}

	where := ""
	if len(conds) > 0 {
		where = " WHERE " + strings.Join(conds, " AND ")
	}

	countSQL = "SELECT COUNT(*) FROM products" + where

	limit := q.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	dataSQL = fmt.Sprintf(`
SELECT id, title, description, price, condition, image_url,
       seller_id, seller_name, seller_email, status, created_at
FROM products%s
ORDER BY created_at DESC
LIMIT %d OFFSET %d`, where, limit, q.Offset)

	return dataSQL, countSQL, args
}
