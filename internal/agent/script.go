package agent

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

var ErrBadScript = errors.New("agent: bad script")

type StepKind uint8

const (
	StepLoad StepKind = iota // SAVE_LOADED
	StepDown                 // KEY_DOWN
	StepUp                   // KEY_UP
	StepTap                  // KEY_DOWN + KEY_UP
	StepWait
)

// Step - одна строка сценария.
type Step struct {
	Kind   StepKind
	Button string
	Wait   time.Duration
}

func (s Step) String() string {
	switch s.Kind {
	case StepLoad:
		return "load"
	case StepDown:
		return "down " + s.Button
	case StepUp:
		return "up " + s.Button
	case StepTap:
		return "tap " + s.Button
	case StepWait:
		return "wait " + s.Wait.String()
	}
	return "unknown"
}

// ParseScript читает сценарий построчно:
//
//	load          # SAVE_LOADED
//	down LeftControl
//	tap PageDown
//	up LeftControl
//	wait 300ms
//
// Пустые строки и комментарии после # пропускаются.
func ParseScript(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if i := strings.IndexByte(text, '#'); i >= 0 {
			text = text[:i]
		}
		fields := strings.Fields(text)
		if len(fields) == 0 {
			continue
		}
		step, err := parseStep(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrBadScript, line, err)
		}
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseStep(fields []string) (Step, error) {
	verb := strings.ToLower(fields[0])
	if verb == "load" {
		if len(fields) != 1 {
			return Step{}, errors.New("load takes no arguments")
		}
		return Step{Kind: StepLoad}, nil
	}
	if len(fields) != 2 {
		return Step{}, fmt.Errorf("%s needs exactly one argument", verb)
	}

	arg := fields[1]
	switch verb {
	case "down":
		return Step{Kind: StepDown, Button: arg}, nil
	case "up":
		return Step{Kind: StepUp, Button: arg}, nil
	case "tap":
		return Step{Kind: StepTap, Button: arg}, nil
	case "wait":
		d, err := time.ParseDuration(arg)
		if err != nil || d < 0 {
			return Step{}, fmt.Errorf("bad duration %q", arg)
		}
		return Step{Kind: StepWait, Wait: d}, nil
	}
	return Step{}, fmt.Errorf("unknown verb %q", verb)
}
