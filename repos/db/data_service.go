// Package db implements the repos interfaces on top of MySQL.
package db

import (
	"github.com/mobile-directing-system/mds-store/repos"
	"github.com/mobile-directing-system/mds-store/sqlx"
)

type DataService struct {
	conn *sqlx.DB
}

func NewDataService(conn *sqlx.DB) *DataService {
	return &DataService{
		conn: conn,
	}
}

// pageClamp normalizes a page the same way every listing does: a
// non-positive amount falls back to the default, a negative offset to zero.
func pageClamp(page repos.Page) (offset, amount int) {
	offset = page.Offset
	if offset < 0 {
		offset = 0
	}
	amount = page.Amount
	if amount <= 0 {
		amount = repos.DefaultPageAmount
	}
	return offset, amount
}

// orderClause renders an Ordering against the entity's sortable columns. An
// unknown field leaves the select unordered apart from the stable id
// tiebreak.
func orderClause(order repos.Ordering, columns map[string]string) []string {
	clauses := []string{}

	if column, ok := columns[order.Field]; ok {
		direction := "ASC"
		if order.Desc {
			direction = "DESC"
		}
		clauses = append(clauses, column+" "+direction)
	}

	return append(clauses, "id ASC")
}
