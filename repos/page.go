package repos

// DefaultPageAmount is applied by list operations when the query does not set
// a positive Amount. Search operations are unlimited instead.
const DefaultPageAmount = 20

type Page struct {
	Offset int
	Amount int
}

// Ordering names the field list results are sorted by. Fields not known for
// the entity kind leave the backing order untouched.
type Ordering struct {
	Field string
	Desc  bool
}

const (
	OrderByUsername    = "username"
	OrderByFirstName   = "first_name"
	OrderByLastName    = "last_name"
	OrderByTitle       = "title"
	OrderByDescription = "description"
	OrderByStart       = "start"
	OrderByEnd         = "end"
)
