package workflow

// ValidateUDID checks the submitted device identifier: 20 to 50
// characters, hexadecimal digits and hyphens only, any case. No lookup
// against a device registry happens here or anywhere else.
func ValidateUDID(udid string) bool {
	if len(udid) < 20 || len(udid) > 50 {
		return false
	}
	for i := 0; i < len(udid); i++ {
		c := udid[i]
		switch {
		case c >= '0' && c <= '9':
		case c >= 'a' && c <= 'f':
		case c >= 'A' && c <= 'F':
		case c == '-':
		default:
			return false
		}
	}
	return true
}
