package matching

import (
	"fmt"
	"strings"
)

// Mode selects which record fields contribute linkage keys.
type Mode int

const (
	ModeEmail Mode = iota + 1
	ModePhone
	ModeEmailOrPhone
)

const (
	FieldEmail = "email"
	FieldPhone = "phone"
)

var modeNames = map[Mode]string{
	ModeEmail:        "same_email",
	ModePhone:        "same_phone",
	ModeEmailOrPhone: "same_email_or_phone",
}

// Modes lists the accepted mode spellings in documentation order.
func Modes() []string {
	return []string{
		modeNames[ModeEmail],
		modeNames[ModePhone],
		modeNames[ModeEmailOrPhone],
	}
}

// ParseMode converts an external mode spelling (same_email, same_phone,
// same_email_or_phone) into a Mode. Matching is exact and case-sensitive, so
// padded or differently cased spellings are rejected.
func ParseMode(value string) (Mode, error) {
	for mode, name := range modeNames {
		if name == value {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("invalid matching type %q: valid types are %s", value, strings.Join(Modes(), ", "))
}

func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	_, ok := modeNames[m]
	return ok
}

// UsesEmail reports whether the email field contributes keys.
func (m Mode) UsesEmail() bool {
	return m == ModeEmail || m == ModeEmailOrPhone
}

// UsesPhone reports whether the phone field contributes keys.
func (m Mode) UsesPhone() bool {
	return m == ModePhone || m == ModeEmailOrPhone
}
