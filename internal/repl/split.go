package repl

import (
	"fmt"
	"strings"
	"unicode"
)

// splitArgs разбивает строку команды на аргументы. Одинарные и двойные
// кавычки группируют слова с пробелами; сами кавычки в аргумент не входят.
func splitArgs(line string) ([]string, error) {
	var args []string
	var cur strings.Builder
	var quote rune
	inToken := false

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inToken = true
		case unicode.IsSpace(r):
			if inToken {
				args = append(args, cur.String())
				cur.Reset()
				inToken = false
			}
		default:
			cur.WriteRune(r)
			inToken = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("незакрытая кавычка")
	}
	if inToken {
		args = append(args, cur.String())
	}
	return args, nil
}
