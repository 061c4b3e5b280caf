package utils

import "strings"

// TrimOrEmpty normalizes user input without turning nil into "nil".
func TrimOrEmpty(s string) string {
	return strings.TrimSpace(s)
}

// UsernameFromEmail derives a signup username from the email local part.
func UsernameFromEmail(email string) string {
	email = strings.TrimSpace(email)
	if at := strings.IndexByte(email, '@'); at > 0 {
		return email[:at]
	}
	return email
}

// JoinSeatLabels renders a sorted seat-label list for display.
func JoinSeatLabels(labels []string) string {
	if len(labels) == 0 {
		return "N/A"
	}
	return strings.Join(labels, ", ")
}
