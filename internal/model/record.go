package model

// Columns is the fixed header of the records table, in order.
// The captions match the files written by earlier deployments.
var Columns = []string{
	"Full Name",
	"Email",
	"Phone 📞",
	"PC Name/Brand 💻",
	"Price 💵",
	"Note 📝",
}

// Record is one trade-in transaction. It has no key; its identity is its row index.
type Record struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Device   string  `json:"device"`
	Price    float64 `json:"price"`
	Note     string  `json:"note"`
}

// Table is the in-memory records table
type Table []Record

// NewTable returns an empty table.
func NewTable() Table {
	return Table{}
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t) }

// Empty reports whether the table has no rows.
func (t Table) Empty() bool { return len(t) == 0 }

// Append returns a new table with r added as the last row.
func (t Table) Append(r Record) Table {
	out := make(Table, 0, len(t)+1)
	out = append(out, t...)
	return append(out, r)
}

// DropIndex returns a new table without row i; remaining rows keep their
// relative order and are re-indexed from 0. The caller checks bounds.
func (t Table) DropIndex(i int) Table {
	out := make(Table, 0, len(t)-1)
	out = append(out, t[:i]...)
	return append(out, t[i+1:]...)
}

// FilterByFullName returns the rows whose full name matches exactly, in order.
func (t Table) FilterByFullName(fullName string) Table {
	out := Table{}
	for _, r := range t {
		if r.FullName == fullName {
			out = append(out, r)
		}
	}
	return out
}
