// Package registry provides read access to the reference registry of
// licensed doctors. The RIZIV number is the unique key; first name may be
// missing for older rows.
package registry

// Entry is one doctor row from the registry. Read-only to the engine.
type Entry struct {
	RizivNumber string
	FirstName   string
	LastName    string
	City        string
}
