package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const clearSequence = "\033[H\033[2J"

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")). // amber
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 2)

	speakerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	failureStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)
)

type Options struct {
	Plain       bool
	ClearScreen bool
	WrapWidth   int
}

// Console is a line-oriented prompt/answer terminal.
type Console struct {
	out   io.Writer
	in    io.Reader
	opts  Options
	lines chan line
}

type line struct {
	text string
	err  error
}

func NewConsole(in io.Reader, out io.Writer, opts Options) *Console {
	if opts.WrapWidth <= 0 {
		opts.WrapWidth = 80
	}
	return &Console{in: in, out: out, opts: opts}
}

// Clear wipes the screen unless disabled or plain.
func (c *Console) Clear() {
	if c.opts.ClearScreen && !c.opts.Plain {
		fmt.Fprint(c.out, clearSequence)
	}
}

// Println writes text word-wrapped to the console width.
func (c *Console) Println(text string) {
	fmt.Fprintln(c.out, wordwrap.String(text, c.opts.WrapWidth))
}

func (c *Console) Blank() {
	fmt.Fprintln(c.out)
}

// Panel draws a bordered box with a title line.
func (c *Console) Panel(title, body string) {
	body = wordwrap.String(c.Markup(body), c.opts.WrapWidth-6)
	if c.opts.Plain {
		bar := strings.Repeat("=", min(len(title)+8, c.opts.WrapWidth))
		fmt.Fprintf(c.out, "%s\n    %s\n%s\n", bar, title, bar)
		if body != "" {
			fmt.Fprintln(c.out, body)
		}
		return
	}

	content := titleStyle.Render(title)
	if body != "" {
		content += "\n\n" + body
	}
	fmt.Fprintln(c.out, panelStyle.Render(content))
}

func (c *Console) Title(text string) string { return c.style(titleStyle, text) }
func (c *Console) Speaker(text string) string { return c.style(speakerStyle, text) }
func (c *Console) Dim(text string) string { return c.style(dimStyle, text) }
func (c *Console) Status(text string) string { return c.style(statusStyle, text) }
func (c *Console) Success(text string) string { return c.style(successStyle, text) }
func (c *Console) Failure(text string) string { return c.style(failureStyle, text) }

func (c *Console) style(s lipgloss.Style, text string) string {
	if c.opts.Plain {
		return text
	}
	return s.Render(text)
}

// Prompt prints label and reads one line. It returns io.EOF when input ends
// and the context error when ctx is cancelled first.
func (c *Console) Prompt(ctx context.Context, label string) (string, error) {
	fmt.Fprint(c.out, label)

	if c.lines == nil {
		c.lines = make(chan line)
		go c.read()
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", ctx.Err()
	case l, ok := <-c.lines:
		if !ok {
			return "", io.EOF
		}
		if l.err != nil {
			return "", l.err
		}
		return strings.TrimSpace(l.text), nil
	}
}

// WaitForEnter blocks until the player presses Enter.
func (c *Console) WaitForEnter(ctx context.Context, label string) error {
	_, err := c.Prompt(ctx, c.Dim(label))
	return err
}

func (c *Console) read() {
	defer close(c.lines)

	scanner := bufio.NewScanner(c.in)
	for scanner.Scan() {
		c.lines <- line{text: scanner.Text()}
	}
	if err := scanner.Err(); err != nil {
		c.lines <- line{err: err}
	}
}

var markupTag = regexp.MustCompile(`\[(/?)([a-z ]*)\]`)

var markupStyles = map[string]func(lipgloss.Style) lipgloss.Style{
	"bold":      func(s lipgloss.Style) lipgloss.Style { return s.Bold(true) },
	"italic":    func(s lipgloss.Style) lipgloss.Style { return s.Italic(true) },
	"underline": func(s lipgloss.Style) lipgloss.Style { return s.Underline(true) },
	"dim":       func(s lipgloss.Style) lipgloss.Style { return s.Faint(true) },
	"red":       func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("9")) },
	"green":     func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("10")) },
	"yellow":    func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("11")) },
	"blue":      func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("12")) },
	"magenta":   func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("13")) },
	"cyan":      func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("14")) },
	"white":     func(s lipgloss.Style) lipgloss.Style { return s.Foreground(lipgloss.Color("15")) },
}

// Markup renders rich-style tags such as [bold yellow]...[/bold yellow].
// Unknown bracketed text is left alone. Plain consoles drop the tags.
func (c *Console) Markup(text string) string {
	var b strings.Builder
	var stack [][]string

	last := 0
	for _, m := range markupTag.FindAllStringSubmatchIndex(text, -1) {
		closing := text[m[2]:m[3]] == "/"
		words := strings.Fields(text[m[4]:m[5]])
		if !isMarkup(words, closing) {
			continue
		}

		c.writeStyled(&b, text[last:m[0]], stack)
		last = m[1]

		if closing {
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		} else {
			stack = append(stack, words)
		}
	}
	c.writeStyled(&b, text[last:], stack)

	return b.String()
}

func (c *Console) writeStyled(b *strings.Builder, text string, stack [][]string) {
	if text == "" {
		return
	}
	if c.opts.Plain || len(stack) == 0 {
		b.WriteString(text)
		return
	}

	style := lipgloss.NewStyle()
	for _, words := range stack {
		for _, w := range words {
			style = markupStyles[w](style)
		}
	}

	// style each line so multi-line spans keep their layout
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = style.Render(l)
		}
	}
	b.WriteString(strings.Join(lines, "\n"))
}

func isMarkup(words []string, closing bool) bool {
	if len(words) == 0 {
		return closing
	}
	for _, w := range words {
		if _, ok := markupStyles[w]; !ok {
			return false
		}
	}
	return true
}
