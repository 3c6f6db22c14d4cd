package validator

// Validator validates a struct against its validate tags.
type Validator interface {
	// Validate returns nil when data passes all rules, or an error that
	// describes the failing fields.
	Validate(data any) error
}
