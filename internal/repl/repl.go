// Package repl реализует интерактивный цикл аналитических команд
// над загруженным экспортом чата.
package repl

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"sort"

	"telegram-chat-analyzer/internal/adapters/exporter"
	"telegram-chat-analyzer/internal/domain"
	"telegram-chat-analyzer/internal/pkg/config"
	"telegram-chat-analyzer/internal/pkg/term"
	"telegram-chat-analyzer/internal/ports"
)

const promptText = "(tganalyze) "

// App связывает загруженный чат, сервис запросов и терминал.
// Все команды только читают модель.
type App struct {
	chat   *domain.ChatExport
	query  ports.QueryService
	cfg    *config.Config
	prompt *term.Prompt
	out    io.Writer
}

// New создает новый экземпляр App.
func New(chat *domain.ChatExport, query ports.QueryService, cfg *config.Config, prompt *term.Prompt, out io.Writer) *App {
	return &App{
		chat:   chat,
		query:  query,
		cfg:    cfg,
		prompt: prompt,
		out:    out,
	}
}

// Run запускает цикл чтения и выполнения команд. Возвращается по команде
// q или по исчерпании ввода. Ошибка отдельной команды не прерывает цикл.
func (a *App) Run() error {
	for {
		line, err := a.prompt.ReadLine(promptText)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if line == "" {
			continue
		}

		args, err := splitArgs(line)
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			continue
		}

		quit, err := a.dispatch(args[0], args[1:])
		if err != nil {
			fmt.Fprintf(a.out, "%s: %v\n", args[0], err)
			continue
		}
		if quit {
			return nil
		}
	}
}

// dispatch выполняет одну команду. Возвращает true, если пора выходить.
func (a *App) dispatch(name string, args []string) (bool, error) {
	switch name {
	case "wcount":
		return false, a.runWordCount(args)
	case "wgrep":
		return false, a.runWordGrep(args)
	case "msgcount":
		return false, a.runMsgCount(args)
	case "export":
		return false, a.runExport(args)
	case "help":
		a.printHelp()
		return false, nil
	case "q", "quit":
		return true, nil
	default:
		return false, fmt.Errorf("неизвестная команда %q, введите help", name)
	}
}

// runWordCount считает вхождения слов по всему чату или по пользователям.
func (a *App) runWordCount(args []string) error {
	fs := flag.NewFlagSet("wcount", flag.ContinueOnError)
	fs.SetOutput(a.out)
	caseSensitive := fs.Bool("c", a.cfg.Analysis.CaseSensitive, "учитывать регистр")
	perUser := fs.Bool("u", false, "статистика по каждому пользователю")
	if err := fs.Parse(args); err != nil {
		return err
	}

	words, err := searchWords(fs.Args())
	if err != nil {
		return err
	}

	if !*perUser {
		counts := a.query.CountWords(a.chat, words, *caseSensitive)
		for _, word := range words {
			fmt.Fprintf(a.out, "%s: %d\n", word, counts[word])
		}
		return nil
	}

	perUserCounts := a.query.CountWordsPerUser(a.chat, words, *caseSensitive)
	users := make([]string, 0, len(perUserCounts))
	for user := range perUserCounts {
		users = append(users, user)
	}
	sort.Strings(users)

	for _, user := range users {
		fmt.Fprintln(a.out, user)
		wordCounts := perUserCounts[user]
		userWords := make([]string, 0, len(wordCounts))
		for word := range wordCounts {
			userWords = append(userWords, word)
		}
		sort.Strings(userWords)
		for _, word := range userWords {
			fmt.Fprintf(a.out, "- %s: %d\n", word, wordCounts[word])
		}
	}
	return nil
}

// runWordGrep выводит сообщения, содержащие хотя бы одно из слов.
func (a *App) runWordGrep(args []string) error {
	fs := flag.NewFlagSet("wgrep", flag.ContinueOnError)
	fs.SetOutput(a.out)
	caseSensitive := fs.Bool("c", a.cfg.Analysis.CaseSensitive, "учитывать регистр")
	if err := fs.Parse(args); err != nil {
		return err
	}

	words, err := searchWords(fs.Args())
	if err != nil {
		return err
	}

	matches := a.query.Grep(a.chat, words, *caseSensitive)
	limit := a.cfg.Analysis.GrepLimit
	for i, match := range matches {
		if limit > 0 && i == limit {
			fmt.Fprintf(a.out, "... показано %d из %d совпадений\n", limit, len(matches))
			return nil
		}
		fmt.Fprintf(a.out, "%s: [%s] %s\n", match.Word, match.Sender, match.Text)
	}
	return nil
}

// runMsgCount выводит общее число сообщений или таблицу по пользователям.
func (a *App) runMsgCount(args []string) error {
	fs := flag.NewFlagSet("msgcount", flag.ContinueOnError)
	fs.SetOutput(a.out)
	perUser := fs.Bool("u", false, "статистика по каждому пользователю")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if !*perUser {
		fmt.Fprintf(a.out, "%d\n", a.query.CountMessages(a.chat))
		return nil
	}

	for _, uc := range a.query.CountMessagesPerUser(a.chat) {
		fmt.Fprintf(a.out, "%s: %d\n", uc.User, uc.Count)
	}
	return nil
}

// runExport записывает сводную статистику чата в .xlsx файл.
func (a *App) runExport(args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(a.out)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("нужен ровно один аргумент: путь к .xlsx файлу")
	}

	path := fs.Arg(0)
	stats := a.query.Summarize(a.chat)
	if err := exporter.NewExcelExporter(path).Export([]domain.ChatStats{*stats}); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "статистика записана в %s\n", path)
	return nil
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `Команды:
  wcount [-c] [-u] WORD...   число вхождений слов (всего или по пользователям)
  wgrep [-c] WORD...         сообщения, содержащие слова
  msgcount [-u]              число сообщений (всего или по пользователям)
  export FILE.xlsx           записать сводную статистику в Excel-файл
  help                       эта справка
  q                          выход

Флаги:
  -c   учитывать регистр при поиске
  -u   разбивка по пользователям
`)
}

// searchWords проверяет позиционные аргументы команд поиска.
// Пустые слова отклоняются: их число вхождений не определено.
func searchWords(args []string) ([]string, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("нужно хотя бы одно слово")
	}
	for _, word := range args {
		if word == "" {
			return nil, fmt.Errorf("пустое слово поиска не поддерживается")
		}
	}
	return args, nil
}
