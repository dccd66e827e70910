package query

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jengzang/taxi-dashboard/internal/models"
)

// FilteredView is a trips view restricted by a filter selection. It is a
// subquery with bound arguments; composing it with an aggregate never
// materializes the rows in between.
type FilteredView struct {
	query string
	args  []any
}

// SQL returns the view's SELECT statement
func (v FilteredView) SQL() string {
	return v.query
}

// Args returns a copy of the bound arguments in placeholder order
func (v FilteredView) Args() []any {
	return append([]any(nil), v.args...)
}

// From renders the view as a FROM item with the given alias
func (v FilteredView) From(alias string) string {
	return fmt.Sprintf("(%s) AS %s", v.query, alias)
}

// CountSQL returns the row count statement for the view
func (v FilteredView) CountSQL() string {
	return "SELECT COUNT(*) FROM " + v.From("f")
}

// Where further restricts the view with a predicate and its arguments
func (v FilteredView) Where(predicate string, args ...any) FilteredView {
	return FilteredView{
		query: fmt.Sprintf("SELECT * FROM %s WHERE %s", v.From("w"), predicate),
		args:  append(v.Args(), args...),
	}
}

const filterSQL = `SELECT * FROM %s
	WHERE CAST(tpep_pickup_datetime AS DATE) BETWEEN CAST(? AS DATE) AND CAST(? AS DATE)
	  AND pickup_hour BETWEEN ? AND ?
	  AND payment_type IN (?)`

// ApplyFilters restricts view to trips picked up within the selected dates
// and hours (both inclusive) and paid with a selected payment type. The
// caller guarantees a complete date range and a non-empty payment set.
func ApplyFilters(view TripView, sel models.FilterSelection) (FilteredView, error) {
	q, args, err := sqlx.In(
		fmt.Sprintf(filterSQL, view.Name),
		sel.StartDay(),
		sel.EndDay(),
		sel.HourStart,
		sel.HourEnd,
		sel.PaymentCodes(),
	)
	if err != nil {
		return FilteredView{}, fmt.Errorf("failed to expand payment types: %w", err)
	}

	return FilteredView{query: q, args: args}, nil
}
