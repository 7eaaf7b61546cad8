package utils

// NewNullString returns a pointer to s, or nil when s is empty. Optional
// text fields that should end up as NULL in the database go through this.
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
