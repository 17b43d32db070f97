package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/benz9527/xtree/lib/tree"
	"github.com/benz9527/xtree/xlog"
)

const shellGreeting = `Please enter one of the actions:
  i <num> (insert integer num into the set)
  s <num> (print out if num is in the set)
  d <num> (delete num from the set)
  m (print out the minimum), n (print out the size)
  p (print out the tree), v (validate the tree)
You may enter as many commands as wanted. (Press ctrl-D to finish entering)

`

const finalTreeHeader = "________________________________\nFinal tree:\n"

type shell struct {
	set    tree.OrderedSet[int]
	out    io.Writer
	logger xlog.XLogger
	quiet  bool
}

// run consumes one command per line until EOF, then prints the final tree.
func (sh *shell) run(ctx context.Context, in io.Reader) error {
	if !sh.quiet {
		if _, err := io.WriteString(sh.out, shellGreeting); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if err := sh.exec(fields); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if _, err := io.WriteString(sh.out, finalTreeHeader); err != nil {
		return err
	}
	return sh.set.PrintOut(sh.out)
}

func (sh *shell) exec(fields []string) error {
	action := fields[0]
	switch action {
	case "i", "d", "s":
		if len(fields) != 2 {
			return sh.invalid(action, "expects one integer")
		}
		num, err := strconv.Atoi(fields[1])
		if err != nil {
			return sh.invalid(action, "expects one integer")
		}
		return sh.keyed(action, num)
	case "m", "n", "p", "v":
		if len(fields) != 1 {
			return sh.invalid(action, "takes no argument")
		}
		return sh.query(action)
	default:
	}
	return sh.invalid(action, "unknown action")
}

func (sh *shell) keyed(action string, num int) error {
	var line string
	switch action {
	case "i":
		if sh.set.Insert(num) {
			line = fmt.Sprintf("Inserted %d", num)
		} else {
			line = fmt.Sprintf("Already contains %d", num)
		}
	case "d":
		if sh.set.Remove(num) {
			line = fmt.Sprintf("Removed %d", num)
		} else {
			line = fmt.Sprintf("Does not contain %d", num)
		}
	case "s":
		if sh.set.Find(num) {
			line = fmt.Sprintf("Contains %d", num)
		} else {
			line = fmt.Sprintf("Does not contain %d", num)
		}
	}
	sh.logger.Debug("shell command", zap.String("action", action), zap.Int("num", num), zap.Int64("size", sh.set.Len()))
	_, err := fmt.Fprintln(sh.out, line)
	return err
}

func (sh *shell) query(action string) error {
	switch action {
	case "m":
		minKey, err := sh.set.Minimum()
		if err != nil {
			if !errors.Is(err, tree.ErrPreconditionViolation) {
				return err
			}
			_, err = fmt.Fprintln(sh.out, "The set is empty")
			return err
		}
		_, err = fmt.Fprintf(sh.out, "Minimum %d\n", minKey)
		return err
	case "n":
		_, err := fmt.Fprintf(sh.out, "Size %d\n", sh.set.Len())
		return err
	case "p":
		return sh.set.PrintOut(sh.out)
	case "v":
		if err := sh.set.Validate(); err != nil {
			sh.logger.Error(err, "tree validation failed")
			_, werr := fmt.Fprintf(sh.out, "Invalid: %v\n", err)
			return werr
		}
		_, err := fmt.Fprintln(sh.out, "Valid")
		return err
	}
	return nil
}

func (sh *shell) invalid(action, reason string) error {
	sh.logger.Warn("shell command ignored", zap.String("action", action), zap.String("reason", reason))
	_, err := fmt.Fprintf(sh.out, "Action %s is invalid and ignored\n", action)
	return err
}
