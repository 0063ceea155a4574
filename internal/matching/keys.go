package matching

// Record exposes field values by exact, case-sensitive name. Missing fields
// read as the empty string.
type Record interface {
	Value(field string) string
}

// Keys returns the linkage keys rec contributes under mode, email before
// phone. A key is the raw field value: keys share one namespace, so an email
// and a phone with identical text link their records. Empty values contribute
// nothing, so a record may yield no keys.
func Keys(rec Record, mode Mode) []string {
	if rec == nil {
		return nil
	}
	keys := make([]string, 0, 2)
	if mode.UsesEmail() {
		if v := rec.Value(FieldEmail); v != "" {
			keys = append(keys, v)
		}
	}
	if mode.UsesPhone() {
		if v := rec.Value(FieldPhone); v != "" {
			keys = append(keys, v)
		}
	}
	return keys
}

// Fields is a map-backed Record, convenient for callers that already hold
// rows as maps.
type Fields map[string]string

// Value implements Record.
func (f Fields) Value(field string) string {
	return f[field]
}
