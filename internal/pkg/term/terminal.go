// Package term обеспечивает интерактивный ввод команд через терминал.
package term

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"golang.org/x/xerrors"
)

// Prompt читает строки команд, печатая приглашение только когда ввод
// подключен к терминалу (при чтении из файла или канала приглашение
// замусорило бы вывод).
type Prompt struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
}

// NewPrompt создает Prompt поверх стандартного ввода/вывода.
func NewPrompt() *Prompt {
	return &Prompt{
		in:          bufio.NewReader(os.Stdin),
		out:         os.Stdout,
		interactive: term.IsTerminal(int(os.Stdin.Fd())),
	}
}

// NewPromptWith создает Prompt с явными потоками ввода/вывода.
func NewPromptWith(in io.Reader, out io.Writer, interactive bool) *Prompt {
	return &Prompt{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
	}
}

// ReadLine выводит приглашение и читает одну строку без завершающих
// пробельных символов. По исчерпании ввода возвращает io.EOF.
func (p *Prompt) ReadLine(prompt string) (string, error) {
	if p.interactive {
		fmt.Fprint(p.out, prompt)
	}

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			// Последняя строка файла может не заканчиваться переводом строки
			if trimmed := strings.TrimSpace(line); trimmed != "" {
				return trimmed, nil
			}
			return "", io.EOF
		}
		return "", xerrors.Errorf("failed to read command: %w", err)
	}

	return strings.TrimSpace(line), nil
}
