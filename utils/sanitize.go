package utils

import (
	"github.com/microcosm-cc/bluemonday"
)

var bodyPolicy = bluemonday.UGCPolicy()

// Sanitize cleans user supplied HTML in bodies to prevent XSS attacks.
// Text is stored as submitted; this runs when a body is rendered as HTML.
func Sanitize(input string) string {
	return bodyPolicy.Sanitize(input)
}
