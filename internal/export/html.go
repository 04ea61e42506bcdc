package export

import (
	"fmt"
	"html"
	"strings"
)

// TextToHTML wraps rendered text in a standalone page.
func TextToHTML(text, title string) string {
	if title == "" {
		title = "pixtext"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	sb.WriteString(fmt.Sprintf("<title>%s</title>\n", html.EscapeString(title)))
	sb.WriteString("<style>body{background:#0a0a0a;color:#00ff00;margin:1em}pre{font-family:monospace;line-height:1.1}</style>\n")
	sb.WriteString("</head>\n<body>\n<pre>")
	sb.WriteString(html.EscapeString(text))
	sb.WriteString("</pre>\n</body>\n</html>\n")
	return sb.String()
}
