package transform

func Bold(s string) string { return "**" + s + "**" }
func Italic(s string) string { return "*" + s + "*" }
func Underline(s string) string { return "__" + s + "__" }
func Strikethrough(s string) string { return "~~" + s + "~~" }
func Spoiler(s string) string { return "||" + s + "||" }

// Code wraps s in a js-highlighted code fence
func Code(s string) string {
	return "```js\n" + s + "\n```"
}

// Block wraps s in a plain inline code fence
func Block(s string) string {
	return "```" + s + "```"
}
