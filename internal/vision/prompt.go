package vision

// BuildCheckPrompt returns the fixed extraction prompt for check images.
func BuildCheckPrompt() string {
	return `Extract the following information from this check image and return it as JSON:
- checkNumber: The check number (if visible)
- date: The date on the check (in YYYY-MM-DD format if possible)
- amount: The amount as a number (e.g., 1500.00 for $1,500.00)
- memo: Any memo or note on the check
- payor: The person/entity writing the check
- payee: The person/entity the check is made out to

Return only valid JSON with these fields. If a field is not found, omit it from the response.`
}
