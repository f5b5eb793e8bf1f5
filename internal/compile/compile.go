// Package compile turns a LaTeX content fragment into a PDF by invoking an
// external LaTeX toolchain. The fragment is wrapped in a fixed preamble,
// compiled in a scratch directory and the resulting PDF copied out; the
// scratch directory with all its aux files is removed afterwards.
package compile

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Document preamble shared by every report. Branding beyond fonts and
// margins lives in the class options, not in the content fragment.
const preamble = `\documentclass[11pt]{article}
\usepackage[margin=2.5cm]{geometry}
\usepackage{booktabs}
\usepackage[utf8]{inputenc}
\usepackage[T1]{fontenc}
\pagestyle{plain}
\begin{document}
`

const closing = "\\end{document}\n"

// Compiler runs a LaTeX engine. The zero value is not usable; use New.
type Compiler struct {
	engine string
}

// New creates a Compiler for the given engine binary. Empty engine selects
// pdflatex.
func New(engine string) *Compiler {
	if engine == "" {
		engine = "pdflatex"
	}
	return &Compiler{engine: engine}
}

// Wrap embeds a content fragment into a complete LaTeX document.
func Wrap(fragment string) string {
	return preamble + fragment + closing
}

// Compile renders fragment to a PDF at output. The engine runs in a fresh
// scratch directory with a fixed job name, so concurrent compilations never
// share state.
func (c *Compiler) Compile(ctx context.Context, fragment string, output string) error {
	tmpDir, err := os.MkdirTemp("", "reportkit-*")
	if err != nil {
		return fmt.Errorf("create scratch directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	texPath := filepath.Join(tmpDir, "report.tex")
	if err := os.WriteFile(texPath, []byte(Wrap(fragment)), 0o644); err != nil {
		return fmt.Errorf("write report source: %w", err)
	}

	if err := c.run(ctx, tmpDir, texPath); err != nil {
		return err
	}

	if err := copyFile(filepath.Join(tmpDir, "report.pdf"), output); err != nil {
		return fmt.Errorf("copy compiled report: %w", err)
	}
	return nil
}

func (c *Compiler) run(ctx context.Context, dir, texPath string) error {
	cmd := exec.CommandContext(ctx, c.engine,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", dir,
		texPath,
	)
	var stderr, stdout strings.Builder
	cmd.Stderr = &stderr
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		// pdflatex reports errors on stdout, not stderr.
		return fmt.Errorf("%s failed: %w\n%s%s", c.engine, err, tail(stdout.String(), 30), stderr.String())
	}
	return nil
}

// tail keeps the last n lines of engine output; the useful part of a LaTeX
// error log is always at the end.
func tail(s string, n int) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n") + "\n"
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
