package utils

import (
	"fmt"
	"hash/fnv"
	"net/url"
	"strings"
	"unicode"
)

// AvatarColors are the initials avatar background colors.
var AvatarColors = []string{
	"FF6B6B", "4ECDC4", "45B7D1", "96CEB4", "FFEAA7",
	"DDA0DD", "98D8C8", "F7DC6F", "BB8FCE", "85C1E9",
	"F8C471", "82E0AA", "F1948A", "D7BDE2", "A9DFBF",
}

// AvatarURL returns a DiceBear initials avatar for name. The background color
// is derived from the name so a profile keeps the same avatar.
func AvatarURL(name string) string {
	initials := GetInitialsFromName(name)

	h := fnv.New32a()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(name))))
	color := AvatarColors[h.Sum32()%uint32(len(AvatarColors))]

	return fmt.Sprintf("https://api.dicebear.com/7.x/initials/svg?seed=%s&backgroundColor=%s",
		url.QueryEscape(initials), color)
}

// GetInitialsFromName returns up to two upper-case initials, "U" for an empty name.
func GetInitialsFromName(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return unicode.IsSpace(r) || r == '-'
	})
	if len(words) == 0 {
		return "U"
	}

	first := []rune(words[0])[0]
	if len(words) == 1 {
		return strings.ToUpper(string(first))
	}
	last := []rune(words[len(words)-1])[0]
	return strings.ToUpper(string(first) + string(last))
}
