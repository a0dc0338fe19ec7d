package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fzft/go-probeset/config"
	"github.com/fzft/go-probeset/deps/linenoise"
	"github.com/fzft/go-probeset/hashset"
	"github.com/mattn/go-isatty"
	"github.com/peterh/liner"
	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

const defaultWidth = 80

var ErrQuit = errors.New("quit")

// Shell drives a HashSet[string] from typed commands.
type Shell struct {
	config   *config.Config
	set      *hashset.HashSet[string]
	acct     *hashset.Accounting
	registry *prom.Registry
	logger   *zap.Logger

	out   io.Writer
	width int
}

func NewShell(cfg *config.Config, out io.Writer, logger *zap.Logger) (*Shell, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	acct := &hashset.Accounting{}
	set, err := hashset.NewStrings(acct,
		hashset.WithOptions(cfg.Options()),
		hashset.WithLogger(logger.Named("set")))
	if err != nil {
		return nil, err
	}

	registry := prom.NewRegistry()
	if err := registry.Register(hashset.NewCollector("shell", set, acct)); err != nil {
		set.Destroy()
		return nil, err
	}

	return &Shell{
		config:   cfg,
		set:      set,
		acct:     acct,
		registry: registry,
		logger:   logger,
		out:      out,
		width:    defaultWidth,
	}, nil
}

// Close destroys the set; the shell is unusable afterwards.
func (sh *Shell) Close() {
	sh.set.Destroy()
}

func (sh *Shell) prompt() string {
	return fmt.Sprintf("%s[%d/%d]> ", sh.config.Shell.Prompt, sh.set.Len(), sh.set.Cap())
}

// Exec runs one input line. It returns ErrQuit for quit/exit; any other error
// has already been reported to the output.
func (sh *Shell) Exec(line string) error {
	argv := strings.Fields(line)
	if len(argv) == 0 {
		return nil
	}

	// check if we have a repeat command option and need to skip the first arg
	repeat := 1
	if n, err := strconv.Atoi(argv[0]); err == nil && len(argv) > 1 {
		if n <= 0 {
			fmt.Fprintln(sh.out, "Invalid repeat command option value.")
			return nil
		}
		repeat = n
		argv = argv[1:]
	}

	name := strings.ToLower(argv[0])
	if name == "quit" || name == "exit" {
		return ErrQuit
	}

	c, ok := commandTable[name]
	if !ok {
		sh.replyError(fmt.Errorf("ERR unknown command '%s'", argv[0]))
		return nil
	}
	args := argv[1:]
	if err := c.checkArity(len(args)); err != nil {
		sh.replyError(err)
		return nil
	}

	for i := 0; i < repeat; i++ {
		if err := c.proc(sh, args); err != nil {
			sh.replyError(err)
			sh.logger.Warn("command failed", zap.String("command", name), zap.Error(err))
			return err
		}
	}
	sh.logger.Debug("command executed",
		zap.String("command", name),
		zap.Int("args", len(args)),
		zap.Int("repeat", repeat),
		zap.Int("size", sh.set.Len()),
		zap.Int("capacity", sh.set.Cap()))
	return nil
}

func (sh *Shell) replyError(err error) {
	fmt.Fprintf(sh.out, "(error) %s\n", err)
}

// Run reads commands from in: with a line editor and history when in is a
// terminal, line by line otherwise.
func (sh *Shell) Run(in *os.File) error {
	if isatty.IsTerminal(in.Fd()) || isatty.IsCygwinTerminal(in.Fd()) {
		sh.width = terminalWidth(os.Stdout.Fd())
		return sh.repl()
	}
	return sh.Batch(in)
}

// Batch executes every line of r until EOF or quit.
func (sh *Shell) Batch(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		err := sh.Exec(scanner.Text())
		if errors.Is(err, ErrQuit) {
			return nil
		}
	}
	return scanner.Err()
}

func (sh *Shell) repl() error {
	line := linenoise.New(commandNames())
	defer line.Close()

	historyFile := sh.config.Shell.HistoryFile
	if historyFile == "/dev/null" {
		historyFile = ""
	}
	if historyFile != "" {
		if err := line.HistoryLoad(historyFile); err != nil && !os.IsNotExist(err) {
			sh.logger.Warn("failed to load history", zap.String("path", historyFile), zap.Error(err))
		}
	}

	for {
		input, err := line.Prompt(sh.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if strings.TrimSpace(input) == "" {
			continue
		}
		line.AppendHistory(input)
		if historyFile != "" {
			if err := line.HistorySave(historyFile); err != nil {
				sh.logger.Warn("failed to save history", zap.String("path", historyFile), zap.Error(err))
			}
		}

		if strings.EqualFold(strings.TrimSpace(input), "clearscreen") {
			line.ClearScreen(os.Stdout)
			continue
		}
		if err := sh.Exec(input); errors.Is(err, ErrQuit) {
			break
		}
	}
	return nil
}
