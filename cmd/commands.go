package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/fzft/go-probeset/hashset"
	"github.com/prometheus/common/expfmt"
)

var errNotInteger = errors.New("ERR value is not an integer or out of range")

// commandDocs documentation info used for help command.
type commandDocs struct {
	name    string
	params  string
	summary string
	// minArgs and maxArgs bound the argument count; maxArgs -1 is unbounded.
	minArgs int
	maxArgs int
	proc    func(sh *Shell, args []string) error
}

var commandTable map[string]*commandDocs

func init() {
	commands := []*commandDocs{
		{"add", "value [value ...]", "Insert values, reply with how many were new", 1, -1, addCommand},
		{"has", "value", "Reply 1 if the value is present, 0 otherwise", 1, 1, hasCommand},
		{"del", "value [value ...]", "Erase values, reply with how many were present", 1, -1, delCommand},
		{"clear", "", "Remove every value, keeping the capacity", 0, 0, clearCommand},
		{"at", "index", "Value stored in the slot at index", 1, 1, atCommand},
		{"count", "index", "Hash count of the slot at index", 1, 1, countCommand},
		{"len", "", "Number of stored values", 0, 0, lenCommand},
		{"cap", "", "Number of slots", 0, 0, capCommand},
		{"load", "", "Current load factor", 0, 0, loadCommand},
		{"dump", "", "Print the slot table", 0, 0, dumpCommand},
		{"stats", "", "Print set statistics", 0, 0, statsCommand},
		{"metrics", "", "Print the set's Prometheus metrics", 0, 0, metricsCommand},
		{"help", "", "Show this help", 0, 0, helpCommand},
	}
	commandTable = make(map[string]*commandDocs, len(commands))
	for _, c := range commands {
		commandTable[c.name] = c
	}
}

func commandNames() []string {
	names := make([]string, 0, len(commandTable)+2)
	for name := range commandTable {
		names = append(names, name)
	}
	names = append(names, "quit", "exit")
	sort.Strings(names)
	return names
}

func (c *commandDocs) checkArity(argc int) error {
	if argc < c.minArgs || (c.maxArgs >= 0 && argc > c.maxArgs) {
		return fmt.Errorf("ERR wrong number of arguments for '%s' command", c.name)
	}
	return nil
}

func parseIndex(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errNotInteger
	}
	return n, nil
}

func (sh *Shell) replyInt(n int) {
	fmt.Fprintf(sh.out, "(integer) %d\n", n)
}

func addCommand(sh *Shell, args []string) error {
	added := 0
	for _, v := range args {
		err := sh.set.Insert(v)
		switch {
		case err == nil:
			added++
		case errors.Is(err, hashset.ErrDuplicate):
		default:
			return err
		}
	}
	sh.replyInt(added)
	return nil
}

func hasCommand(sh *Shell, args []string) error {
	if sh.set.Contains(args[0]) {
		sh.replyInt(1)
	} else {
		sh.replyInt(0)
	}
	return nil
}

func delCommand(sh *Shell, args []string) error {
	removed := 0
	for _, v := range args {
		err := sh.set.Erase(v)
		switch {
		case err == nil:
			removed++
		case errors.Is(err, hashset.ErrNotFound):
		default:
			return err
		}
	}
	sh.replyInt(removed)
	return nil
}

func clearCommand(sh *Shell, args []string) error {
	sh.set.Clear()
	fmt.Fprintln(sh.out, "OK")
	return nil
}

func atCommand(sh *Shell, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	v, ok := sh.set.At(i)
	if !ok {
		fmt.Fprintln(sh.out, "(nil)")
		return nil
	}
	fmt.Fprintf(sh.out, "%q\n", v)
	return nil
}

func countCommand(sh *Shell, args []string) error {
	i, err := parseIndex(args[0])
	if err != nil {
		return err
	}
	sh.replyInt(sh.set.HashCount(i))
	return nil
}

func lenCommand(sh *Shell, args []string) error {
	sh.replyInt(sh.set.Len())
	return nil
}

func capCommand(sh *Shell, args []string) error {
	sh.replyInt(sh.set.Cap())
	return nil
}

func loadCommand(sh *Shell, args []string) error {
	fmt.Fprintf(sh.out, "(double) %s\n", strconv.FormatFloat(sh.set.LoadFactor(), 'f', -1, 64))
	return nil
}

// dumpCommand prints an occupancy map wrapped to the terminal width, then one
// line per occupied slot.
func dumpCommand(sh *Shell, args []string) error {
	width := sh.width
	if width <= 0 {
		width = defaultWidth
	}

	var line strings.Builder
	for i := 0; i < sh.set.Cap(); i++ {
		if _, ok := sh.set.At(i); ok {
			line.WriteByte('#')
		} else {
			line.WriteByte('.')
		}
		if line.Len() == width {
			fmt.Fprintln(sh.out, line.String())
			line.Reset()
		}
	}
	if line.Len() > 0 {
		fmt.Fprintln(sh.out, line.String())
	}

	for i := 0; i < sh.set.Cap(); i++ {
		v, ok := sh.set.At(i)
		if !ok {
			continue
		}
		fmt.Fprintf(sh.out, "%d) %q hash_count=%d\n", i, v, sh.set.HashCount(i))
	}
	return nil
}

func statsCommand(sh *Shell, args []string) error {
	st := sh.set.Stats()
	fmt.Fprintf(sh.out, "size:%d\n", st.Size)
	fmt.Fprintf(sh.out, "capacity:%d\n", st.Capacity)
	fmt.Fprintf(sh.out, "load_factor:%s\n", strconv.FormatFloat(st.LoadFactor, 'f', -1, 64))
	fmt.Fprintf(sh.out, "grows:%d\n", st.Grows)
	fmt.Fprintf(sh.out, "shrinks:%d\n", st.Shrinks)
	fmt.Fprintf(sh.out, "owned_bytes:%d\n", sh.acct.Used())
	return nil
}

func metricsCommand(sh *Shell, args []string) error {
	mfs, err := sh.registry.Gather()
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(&buf, mf); err != nil {
			return err
		}
	}
	_, err = io.Copy(sh.out, &buf)
	return err
}

func helpCommand(sh *Shell, args []string) error {
	for _, name := range commandNames() {
		c, ok := commandTable[name]
		if !ok {
			continue
		}
		fmt.Fprintf(sh.out, "%-8s %-20s %s\n", c.name, c.params, c.summary)
	}
	fmt.Fprintf(sh.out, "%-8s %-20s %s\n", "quit", "", "Leave the shell")
	fmt.Fprintln(sh.out, "Prefix a command with a number to repeat it, e.g. \"3 add x\".")
	return nil
}
