package util

// PreviousMonth returns the year and month for the previous month
func PreviousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}

// IsValidMonth reports whether month is a calendar month number
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}
