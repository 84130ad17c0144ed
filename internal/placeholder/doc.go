// Package placeholder finds and fills `[token]` and `<token>` placeholders in
// template text such as license bodies.
//
// Tokens are compared by normalized name (trimmed, lower-cased, whitespace
// runs replaced with a hyphen), so `[Full Name]`, `<full name>` and the
// parameter key `full-name` all refer to the same value. Each distinct token
// is resolved once: from supplied parameters, then from a Prompter if one is
// configured, otherwise it is left in place and reported as unfilled.
//
// Brackets do not nest: a token ends at the first closing bracket.
package placeholder
