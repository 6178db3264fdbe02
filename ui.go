package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"jdkswitch/internal/env"
	jerrors "jdkswitch/internal/errors"
	"jdkswitch/internal/java"
	"jdkswitch/internal/switcher"
	"jdkswitch/internal/theme"
)

const labelWidth = 12

func successLine(msg string) string { return theme.SuccessMessage(msg) }
func warningLine(msg string) string { return theme.WarningMessage(msg) }
func infoLine(msg string) string    { return theme.InfoMessage(msg) }
func faintLine(msg string) string   { return theme.Faint.Render("  " + msg) }

func (a *app) printLine(s string) {
	if a.quiet {
		return
	}
	fmt.Fprintln(a.stdout, s)
}

func (a *app) printErr(e *jerrors.ExitError) {
	fmt.Fprintln(a.stderr, theme.ErrorMessage(e.Error()))
	if e.Suggestion != "" {
		fmt.Fprintln(a.stderr, faintLine(e.Suggestion))
	}
}

func isCurrent(jdk java.JDK, current string) bool {
	return current != "" && strings.EqualFold(jdk.Path, current)
}

// renderList renders one line per JDK with its --set index. The JDK the
// home variable points at is marked with an arrow.
func renderList(jdks []java.JDK, current string) string {
	width := 0
	for _, j := range jdks {
		width = max(width, lipgloss.Width(j.Version))
	}

	var b strings.Builder
	for i, j := range jdks {
		marker, version := "  ", j.Version
		if isCurrent(j, current) {
			marker, version = "→ ", theme.CurrentStyle.Render(j.Version)
		}
		fmt.Fprintf(&b, "%s[%d] %s %s %s\n",
			marker, i, theme.PadRight(version, width), j.Path, theme.Faint.Render("("+j.Vendor+")"))
	}
	return b.String()
}

func (a *app) printList(jdks []java.JDK, current string) {
	if len(jdks) == 0 {
		a.printLine(warningLine("No JDKs found"))
		a.printLine(faintLine("Install one under Program Files or ~/.jdks, or add search_paths to the config"))
		return
	}
	a.printLine(theme.Title.Render("Installed JDKs"))
	a.printLine("")
	if !a.quiet {
		fmt.Fprint(a.stdout, renderList(jdks, current))
	}
	if current == "" {
		a.printLine("")
		a.printLine(warningLine(a.cfg.HomeVar + " is not set"))
		a.printLine(faintLine("Run 'jdkswitch --set <index>' or 'jdkswitch switch'"))
	}
}

// orderCurrentFirst moves the active JDK to the front, keeping the others
// in inventory order.
func orderCurrentFirst(jdks []java.JDK, current string) []java.JDK {
	ordered := make([]java.JDK, 0, len(jdks))
	for _, j := range jdks {
		if isCurrent(j, current) {
			ordered = append(ordered, j)
		}
	}
	for _, j := range jdks {
		if !isCurrent(j, current) {
			ordered = append(ordered, j)
		}
	}
	return ordered
}

func selectJDK(jdks []java.JDK, current string) (java.JDK, error) {
	ordered := orderCurrentFirst(jdks, current)

	width := 0
	for _, j := range ordered {
		width = max(width, lipgloss.Width(j.Version))
	}

	options := make([]huh.Option[int], len(ordered))
	for i, j := range ordered {
		version := j.Version
		if current == "" || isCurrent(j, current) {
			version = theme.CurrentStyle.Render(j.Version)
		}
		label := fmt.Sprintf("%s %s %s", theme.PadRight(version, width), j.Path, theme.Faint.Render("("+j.Vendor+")"))
		if isCurrent(j, current) {
			label += " " + theme.Faint.Render("[current]")
		}
		options[i] = huh.NewOption(label, i)
	}

	var idx int
	err := huh.NewSelect[int]().
		Title(theme.Subtitle.Render("Select JDK")).
		Description(theme.Faint.Render("Use arrow keys to navigate, Enter to select")).
		Options(options...).
		Value(&idx).
		Run()
	if err != nil {
		return java.JDK{}, err
	}
	return ordered[idx], nil
}

func confirm(title, description string) (bool, error) {
	var ok bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	return ok, err
}

func (a *app) printSwitched(jdk java.JDK, res switcher.Result) {
	a.printLine(successLine("Switched to " + jdk.Version))
	a.printLine(theme.KeyValue(a.cfg.HomeVar+":", theme.PathStyle.Render(res.Home), labelWidth))
	if res.Path.Changed() {
		a.printLine(theme.KeyValue("Path:", env.BinRef(env.Ref(a.cfg.HomeVar))+" moved to the front", labelWidth))
	}
	a.printLine(faintLine("Open a new terminal to pick up the change"))
}

func (a *app) printFixed(res switcher.Result) {
	a.printLine(successLine(a.cfg.HomeVar + " set to " + res.Home))
	if res.Path.Changed() {
		a.printLine(successLine("Path reconciled"))
	}
}

func (a *app) printChanges(changes []env.Change) {
	if len(changes) == 0 {
		a.printLine(infoLine("Dry run: nothing would change"))
		return
	}
	a.printLine(infoLine("Dry run, nothing was written:"))
	for _, c := range changes {
		a.printLine(fmt.Sprintf("  set %s = %s", theme.LabelStyle.Render(c.Name), c.Value))
	}
}

func (a *app) printReport(r switcher.Report) {
	var issues []string

	a.printLine(theme.Title.Render("jdkswitch diagnostics"))
	a.printLine("")

	switch {
	case r.Home == "":
		a.printLine(theme.KeyValue(r.HomeVar+":", theme.ErrorStyle.Render("not set"), labelWidth))
		issues = append(issues, r.HomeVar+" is not set")
	case r.Resolved != r.Home:
		a.printLine(theme.KeyValue(r.HomeVar+":", r.Home+" → "+theme.PathStyle.Render(r.Resolved), labelWidth))
	default:
		a.printLine(theme.KeyValue(r.HomeVar+":", theme.PathStyle.Render(r.Home), labelWidth))
	}

	if r.ProbeErr != nil {
		a.printLine(theme.KeyValue("java:", theme.ErrorStyle.Render("not found on PATH"), labelWidth))
		issues = append(issues, "java is not on PATH")
	} else {
		a.printLine(theme.KeyValue("java:", theme.PathStyle.Render(r.Launcher), labelWidth))
		if r.ActiveRoot != "" {
			a.printLine(theme.KeyValue("active:", r.ActiveRoot, labelWidth))
		}
	}

	a.printLine(theme.KeyValue("JDKs:", fmt.Sprint(r.JDKCount), labelWidth))

	admin := theme.WarningStyle.Render("no")
	if r.Admin {
		admin = theme.SuccessStyle.Render("yes")
	}
	a.printLine(theme.KeyValue("admin:", admin, labelWidth))
	a.printLine("")

	if r.NeedsFix {
		issues = append(issues, fmt.Sprintf("%s should be set to %s", r.HomeVar, r.Proposal))
	}
	if r.Path.Changed() {
		issues = append(issues, env.BinRef(env.Ref(r.HomeVar))+" is not first on Path")
	}
	if r.ValidateErr != nil && r.ProbeErr == nil {
		issues = append(issues, r.ValidateErr.Error())
	}

	if len(issues) == 0 {
		a.printLine(theme.SuccessBox.Render(theme.SuccessMessage("All checks passed")))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", theme.ErrorStyle.Render(fmt.Sprintf("Issues found: %d", len(issues))))
	for _, issue := range issues {
		b.WriteString(theme.ErrorMessage(issue) + "\n")
	}
	if r.NeedsFix || r.Path.Changed() {
		b.WriteString("\n" + theme.InfoMessage("Run 'jdkswitch doctor --fix' to apply the corrections"))
	}
	a.printLine(theme.Box.Render(strings.TrimRight(b.String(), "\n")))
}

func (a *app) printVersion() {
	fmt.Fprintf(a.stdout, "%s %s %s\n",
		theme.Subtitle.Render("jdkswitch"),
		theme.Faint.Render("version"),
		theme.Code.Render(Version))
}
