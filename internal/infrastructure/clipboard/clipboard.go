// Package clipboard writes composed emails to the host clipboard through the
// platform's copy tool.
package clipboard

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/buzzhire/recruit-mailer/internal/core/domain"
)

// ErrNoTool is returned when no supported copy tool is installed.
var ErrNoTool = fmt.Errorf("%w: no copy tool installed", domain.ErrClipboardUnavailable)

// Tool describes one copy command. HTML is nil when the tool only accepts
// plain text.
type Tool struct {
	Name string
	Text []string
	HTML []string
}

// Tools are probed in order.
var Tools = []Tool{
	{Name: "wl-copy", Text: []string{}, HTML: []string{"--type", "text/html"}},
	{Name: "xclip", Text: []string{"-selection", "clipboard"}, HTML: []string{"-selection", "clipboard", "-t", "text/html"}},
	{Name: "pbcopy", Text: []string{}},
}

type runFunc func(ctx context.Context, name string, args []string, stdin string) error

// Clipboard implements ports.Clipboard.
type Clipboard struct {
	tool   *Tool
	run    runFunc
	logger zerolog.Logger
}

// New picks the first installed tool. A Clipboard without a tool still
// satisfies the port; every write fails with ErrNoTool.
func New(logger zerolog.Logger) *Clipboard {
	c := &Clipboard{run: runCommand, logger: logger}
	for i := range Tools {
		if _, err := exec.LookPath(Tools[i].Name); err == nil {
			c.tool = &Tools[i]
			break
		}
	}
	if c.tool == nil {
		logger.Warn().Msg("no clipboard tool installed; copy requests will only return the payload")
	} else {
		logger.Debug().Str("tool", c.tool.Name).Msg("clipboard tool selected")
	}
	return c
}

// WriteHTML stores html as the rich clipboard flavour. Tools without HTML
// support yield domain.ErrClipboardUnsupported so the caller can fall back
// to text.
func (c *Clipboard) WriteHTML(ctx context.Context, html, _ string) error {
	if c.tool == nil {
		return ErrNoTool
	}
	if c.tool.HTML == nil {
		return domain.ErrClipboardUnsupported
	}
	return c.exec(ctx, c.tool.HTML, html)
}

func (c *Clipboard) WriteText(ctx context.Context, text string) error {
	if c.tool == nil {
		return ErrNoTool
	}
	return c.exec(ctx, c.tool.Text, text)
}

func (c *Clipboard) exec(ctx context.Context, args []string, payload string) error {
	if err := c.run(ctx, c.tool.Name, args, payload); err != nil {
		return fmt.Errorf("clipboard %s: %w", c.tool.Name, err)
	}
	return nil
}

func runCommand(ctx context.Context, name string, args []string, stdin string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
