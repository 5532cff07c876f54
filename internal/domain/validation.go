package domain

import (
	"regexp"
	"strings"
)

var (
	// Имя файла: без путей и управляющих символов, с расширением.
	// Детальную проверку формата делает экстрактор тегов.
	filenameRe = regexp.MustCompile(`^[^/\\\x00-\x1f]+\.[A-Za-z0-9]{1,8}$`)
)

func ValidFilename(s string) bool {
	if s == "" || len(s) > 255 {
		return false
	}
	if strings.Contains(s, "..") {
		return false
	}
	return filenameRe.MatchString(s)
}
