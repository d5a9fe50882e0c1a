package password

import (
	"fmt"
	"strings"
)

// AdminMinLength is the minimum password length for accounts created from the admin CLI.
const AdminMinLength = 12

// weakPasswordList contains common weak passwords that must be rejected.
var weakPasswordList = []string{
	"admin",
	"password",
	"123456",
	"secret",
	"admin123",
	"password123",
	"123456789",
	"12345678",
	"qwerty",
	"abc123",
	"letmein",
	"welcome",
	"monkey",
	"1234567890",
	"password1",
	"admin1",
	"test",
	"test123",
	"default",
	"root",
}

var keyboardPatterns = []string{
	"qwertyuiop",
	"asdfghjkl",
	"zxcvbnm",
	"qwerty",
	"asdfgh",
	"zxcvb",
}

// ValidateStrength applies the stricter policy used for ADMIN accounts:
// at least AdminMinLength characters, no repeated or sequential digits,
// no keyboard rows, and nothing based on a common weak password.
func ValidateStrength(pass string) error {
	if len(pass) < AdminMinLength {
		return fmt.Errorf("password must be at least %d characters", AdminMinLength)
	}
	if isSimpleNumericPattern(pass) {
		return fmt.Errorf("password must not be a simple numeric pattern")
	}
	if isKeyboardPattern(pass) {
		return fmt.Errorf("password must not be a keyboard pattern")
	}

	lower := strings.ToLower(pass)
	for _, weak := range weakPasswordList {
		if lower == weak {
			return fmt.Errorf("password must not be a weak password")
		}
		// "admin1234567890" のような派生も弾く
		if strings.HasPrefix(lower, weak) && len(pass) < AdminMinLength+5 {
			return fmt.Errorf("password must not be based on common weak passwords")
		}
	}
	return nil
}

// isSimpleNumericPattern checks for a repeated character or an ascending or
// descending digit run such as "123456789012".
func isSimpleNumericPattern(pass string) bool {
	if isRepeatedChar(pass) {
		return true
	}
	for _, ch := range pass {
		if ch < '0' || ch > '9' {
			return false
		}
	}

	asc, desc := true, true
	for i := 1; i < len(pass); i++ {
		diff := int(pass[i]) - int(pass[i-1])
		if diff != 1 && diff != -9 {
			asc = false
		}
		if diff != -1 && diff != 9 {
			desc = false
		}
	}
	return asc || desc
}

func isRepeatedChar(pass string) bool {
	if pass == "" {
		return false
	}
	for i := 1; i < len(pass); i++ {
		if pass[i] != pass[0] {
			return false
		}
	}
	return true
}

func isKeyboardPattern(pass string) bool {
	lower := strings.ToLower(pass)
	for _, pattern := range keyboardPatterns {
		if strings.Contains(lower, pattern) || strings.Contains(lower, reverse(pattern)) {
			return true
		}
	}
	return false
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}
