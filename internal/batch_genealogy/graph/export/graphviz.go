package export

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Render pipes DOT source through the Graphviz dot binary and returns the
// output in format (svg when empty).
func Render(ctx context.Context, dot, format, dotBin string) ([]byte, error) {
	if format == "" {
		format = "svg"
	}
	if dotBin == "" {
		dotBin = "dot"
	}
	if _, err := exec.LookPath(dotBin); err != nil {
		return nil, fmt.Errorf("graphviz: dot binary not found (%q): %w", dotBin, err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, dotBin, "-T"+format)
	cmd.Stdin = strings.NewReader(dot)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("graphviz: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
