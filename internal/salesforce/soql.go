package salesforce

import "strings"

var literalEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\b", `\b`,
	"\f", `\f`,
)

// EscapeLiteral escapes a value for use inside a single-quoted SOQL string
// literal.
func EscapeLiteral(s string) string {
	return literalEscaper.Replace(s)
}

var wildcardEscaper = strings.NewReplacer(`%`, `\%`, `_`, `\_`)

// EscapeLike escapes a value for use inside a LIKE pattern, so the caller's
// % and _ match literally.
func EscapeLike(s string) string {
	return wildcardEscaper.Replace(EscapeLiteral(s))
}

var soslEscaper = strings.NewReplacer(
	`\`, `\\`,
	`?`, `\?`,
	`&`, `\&`,
	`|`, `\|`,
	`!`, `\!`,
	`{`, `\{`,
	`}`, `\}`,
	`[`, `\[`,
	`]`, `\]`,
	`(`, `\(`,
	`)`, `\)`,
	`^`, `\^`,
	`~`, `\~`,
	`*`, `\*`,
	`:`, `\:`,
	`"`, `\"`,
	`'`, `\'`,
	`+`, `\+`,
	`-`, `\-`,
)

// EscapeSearchTerm escapes the SOSL reserved characters of a FIND term.
func EscapeSearchTerm(s string) string {
	return soslEscaper.Replace(s)
}
