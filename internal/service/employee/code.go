package employee

import (
	"fmt"
	"unicode"
)

const codePrefix = "OI"

// BuildEmployeeCode derives the unique employee code from the employee's
// name, joining year and a 1-based serial within that year, e.g.
// "OIJADO20250004" for Jane Doe joining in 2025 as the fourth hire.
// Names shorter than two letters are padded with 'X' so the code keeps a
// fixed shape.
func BuildEmployeeCode(firstName, lastName string, year int, serial int) string {
	return fmt.Sprintf("%s%s%s%d%04d",
		codePrefix,
		nameInitials(firstName),
		nameInitials(lastName),
		year,
		serial,
	)
}

// nameInitials returns the first two letters of the name, uppercased, with
// non-letter characters skipped and 'X' padding.
func nameInitials(name string) string {
	initials := make([]rune, 0, 2)
	for _, r := range name {
		if !unicode.IsLetter(r) {
			continue
		}
		initials = append(initials, unicode.ToUpper(r))
		if len(initials) == 2 {
			break
		}
	}
	for len(initials) < 2 {
		initials = append(initials, 'X')
	}
	return string(initials)
}
