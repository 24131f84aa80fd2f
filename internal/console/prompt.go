package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quiz-console/internal/domain"
)

// prompter reads answers from the terminal, re-asking until the input is valid.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

func (p *prompter) println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *prompter) printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// line prints prompt and returns the next line without its line ending.
// It returns io.EOF once input is exhausted.
func (p *prompter) line(prompt string) (string, error) {
	p.printf("%s", prompt)
	text, err := p.in.ReadString('\n')
	if err != nil {
		if err == io.EOF && text != "" {
			return strings.TrimRight(text, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(text, "\r\n"), nil
}

func (p *prompter) nonEmpty(prompt string) (string, error) {
	for {
		text, err := p.line(prompt)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(text) != "" {
			return text, nil
		}
		p.println("Input cannot be empty. Please try again.")
	}
}

// intInRange reads an integer in [min, max].
func (p *prompter) intInRange(prompt string, min, max int) (int, error) {
	for {
		text, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		n, convErr := strconv.Atoi(strings.TrimSpace(text))
		if convErr == nil && n >= min && n <= max {
			return n, nil
		}
		p.printf("Invalid input. Please enter a number from %d to %d.\n", min, max)
	}
}

func (p *prompter) date(prompt string) (domain.Date, error) {
	for {
		text, err := p.line(prompt)
		if err != nil {
			return domain.Date{}, err
		}
		d, parseErr := domain.ParseDate(text)
		if parseErr == nil {
			return d, nil
		}
		p.println("Invalid input. Please enter the date as yyyy-MM-dd.")
	}
}

func (p *prompter) boolean(prompt string) (bool, error) {
	for {
		text, err := p.line(prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(text)) {
		case "true", "yes", "y":
			return true, nil
		case "false", "no", "n":
			return false, nil
		}
		p.println("Invalid input. Please enter true or false.")
	}
}
