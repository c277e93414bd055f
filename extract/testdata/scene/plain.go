package scene

// Plain has no directives and is never parsed.
type Plain struct{ A int }
