package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

var (
	accentColor = lipgloss.Color("#D75F00")
	mutedColor  = lipgloss.Color("#888888")
	flagColor   = lipgloss.Color("#00AA00")
	argColor    = lipgloss.Color("#00AAAA")
)

type styles struct {
	title   lipgloss.Style
	section lipgloss.Style
	flag    lipgloss.Style
	arg     lipgloss.Style
	muted   lipgloss.Style
	value   lipgloss.Style
	err     lipgloss.Style
}

// newStyles returns the CLI styles. Without color every style renders plain
// text so piped output stays clean.
func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}

	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		section: lipgloss.NewStyle().Bold(true).Foreground(accentColor),
		flag:    lipgloss.NewStyle().Bold(true).Foreground(flagColor),
		arg:     lipgloss.NewStyle().Bold(true).Foreground(argColor),
		muted:   lipgloss.NewStyle().Italic(true).Foreground(mutedColor),
		value:   lipgloss.NewStyle().Bold(true),
		err:     lipgloss.NewStyle().Bold(true).Foreground(accentColor),
	}
}

func printError(err error) {
	st := newStyles(isTerminal(os.Stderr))
	fmt.Fprintf(os.Stderr, "%s %v\n", st.err.Render("Error:"), err)
}

func styledHelpPrinter(st styles) kong.HelpPrinter {
	return func(options kong.HelpOptions, ctx *kong.Context) error {
		node := ctx.Model.Node
		if sel := ctx.Selected(); sel != nil {
			node = sel
		}

		var sb strings.Builder

		sb.WriteString(st.title.Render("ampsim " + version))
		sb.WriteString("\n")

		if node.Help != "" {
			sb.WriteString(st.muted.Render(node.Help))
			sb.WriteString("\n")
		}

		sb.WriteString("\n")
		sb.WriteString(st.section.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(ctx.Model.Name)

		if node != ctx.Model.Node {
			sb.WriteString(" " + node.Name)
		}

		sb.WriteString(" " + node.Summary())
		sb.WriteString("\n")

		var commands []*kong.Node
		for _, child := range node.Children {
			if child.Type == kong.CommandNode && !child.Hidden {
				commands = append(commands, child)
			}
		}

		if len(commands) > 0 {
			sb.WriteString("\n")
			sb.WriteString(st.section.Render("Commands:"))
			sb.WriteString("\n")

			for _, cmd := range commands {
				fmt.Fprintf(&sb, "  %s  %s\n", st.arg.Render(fmt.Sprintf("%-8s", cmd.Name)), cmd.Help)
			}
		}

		if len(node.Positional) > 0 {
			sb.WriteString("\n")
			sb.WriteString(st.section.Render("Arguments:"))
			sb.WriteString("\n")

			for _, arg := range node.Positional {
				fmt.Fprintf(&sb, "  %s  %s\n", st.arg.Render(arg.Summary()), arg.Help)
			}
		}

		for _, group := range node.AllFlags(true) {
			if len(group) == 0 {
				continue
			}

			sb.WriteString("\n")
			sb.WriteString(st.section.Render("Flags:"))
			sb.WriteString("\n")

			for _, f := range group {
				sb.WriteString("  ")
				sb.WriteString(st.flag.Render(flagSummary(f)))

				if f.Help != "" {
					sb.WriteString("  " + f.Help)
				}

				if f.Default != "" && !f.IsBool() {
					sb.WriteString(" " + st.muted.Render("(default: "+f.Default+")"))
				}

				sb.WriteString("\n")
			}
		}

		fmt.Fprint(ctx.Stdout, sb.String())

		return nil
	}
}

func flagSummary(f *kong.Flag) string {
	s := "--" + f.Name
	if f.Short != 0 {
		s = fmt.Sprintf("-%c, %s", f.Short, s)
	}

	if !f.IsBool() {
		s += "=" + strings.ToUpper(f.FormatPlaceHolder())
	}

	return s
}
