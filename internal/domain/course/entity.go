package course

// Entry is one course in the static catalog. Title is its identity.
type Entry struct {
	Title       string
	Provider    string
	Rating      float64
	Students    int
	Duration    string
	Level       string
	URL         string
	Price       string
	Description string
}

// Group is the course list associated with one skill key.
type Group struct {
	Key     string
	Courses []Entry
}
