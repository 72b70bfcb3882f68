// Package forms validates submitted forms field by field.
//
// Each form keeps the raw submitted values so a page can be re-rendered with them, and
// collects problems in Errors keyed by field name. NonField holds errors that belong to the
// form as a whole.
package forms

const (
	NonField = "__all__"

	msgRequired = "This field is required."
)

// Errors maps a field name to its first validation message.
type Errors map[string]string

// Add keeps the first message reported for a field.
func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

func (e Errors) Get(field string) string {
	return e[field]
}

func (e Errors) Has(field string) bool {
	_, exists := e[field]
	return exists
}

func (e Errors) Valid() bool {
	return len(e) == 0
}
