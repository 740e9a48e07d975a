package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
	"github.com/dodorz/glassdesk/internal/config"
	"github.com/dodorz/glassdesk/internal/desktop"
	"github.com/dodorz/glassdesk/internal/script"
	"github.com/dodorz/glassdesk/internal/theme"
)

// quietSettings resolves flags against the user config without touching the
// theme or printing warnings.
func quietSettings() config.Settings {
	userConfig, _, err := config.LoadUserConfig()
	if err != nil {
		userConfig = nil
	}
	return config.ApplyOverrides(overrides(), userConfig)
}

func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	keyStyle := cellStyle.Foreground(theme.CLITableKey())

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 0:
				return keyStyle
			default:
				return cellStyle
			}
		})
}

// printTable writes t downsampled to what w can display.
func printTable(w io.Writer, t *table.Table) error {
	cw := colorprofile.NewWriter(w, os.Environ())
	_, err := fmt.Fprintln(cw, t.Render())
	return err
}

func printConfigPath(w io.Writer) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	_, err = fmt.Fprintln(w, path)
	return err
}

func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano"} {
		if path, err := exec.LookPath(e); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no editor found; set $EDITOR")
}

func editConfigFile() error {
	// Loading creates the file with defaults when it is missing.
	if _, _, err := config.LoadUserConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	editor, err := findEditor()
	if err != nil {
		return err
	}

	// $EDITOR may carry arguments, e.g. "code --wait".
	fields := strings.Fields(editor)
	cmd := exec.Command(fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}

	if _, validation, err := config.LoadFile(path); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: config does not load: %v\n", err)
	} else if validation != nil {
		for _, w := range validation.Warnings {
			fmt.Fprintf(os.Stderr, "Warning: %s\n", w)
		}
	}
	return nil
}

func resetConfigToDefaults(in io.Reader, out io.Writer, yes bool) error {
	if !yes {
		path, err := config.GetConfigPath()
		if err != nil {
			return fmt.Errorf("failed to get config path: %w", err)
		}
		fmt.Fprintf(out, "This will overwrite %s with defaults. Continue? [y/N] ", path)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}
	path, err := config.ResetConfig()
	if err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	_, err = fmt.Fprintf(out, "Configuration reset: %s\n", path)
	return err
}

func printCatalog(w io.Writer) error {
	cat := quietSettings().Catalog

	icons := newTable("#", "Icon", "Opens")
	for i, ic := range cat.Icons {
		icons.Row(strconv.Itoa(i+1), ic.Label, string(ic.Type))
	}
	fmt.Fprintln(w, "Desktop icons")
	if err := printTable(w, icons); err != nil {
		return err
	}

	menu := newTable("Entry", "Kind", "Opens", "Column")
	for _, it := range cat.Menu {
		menu.Row(it.Label, string(it.Kind), string(it.Type), strconv.Itoa(it.Column))
	}
	fmt.Fprintln(w, "Start menu")
	return printTable(w, menu)
}

func listKeybindings(w io.Writer) error {
	t := newTable("Key", "Action")
	for _, kb := range quietSettings().Keymap.Help() {
		t.Row(kb.Key, kb.Description)
	}
	return printTable(w, t)
}

func listThemes(w io.Writer) error {
	for _, id := range theme.Available() {
		if _, err := fmt.Fprintln(w, id); err != nil {
			return err
		}
	}
	return nil
}

func runReplay(ctx context.Context, w io.Writer, path string, asJSON bool) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}

	settings := quietSettings()
	r := script.Runner{Options: desktop.Options{
		Grid:        settings.Grid,
		Catalog:     settings.Catalog,
		Mounter:     settings.Library.Mounter(),
		DoubleClick: settings.DoubleClick,
		ShowTray:    !settings.HideTray || !settings.HideClock,
	}}
	res, err := r.Run(ctx, s)
	if err != nil {
		return fmt.Errorf("replay %s: %w", path, err)
	}

	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	steps := newTable("#", "Line", "Step", "Target", "Changed")
	for _, sr := range res.Steps {
		steps.Row(strconv.Itoa(sr.Index+1), strconv.Itoa(sr.Line), sr.Kind, sr.Target, strconv.FormatBool(sr.Changed))
	}
	if err := printTable(w, steps); err != nil {
		return err
	}

	snap := res.Snapshot
	windows := newTable("ID", "Title", "Z", "Bounds", "State")
	for _, win := range snap.Windows {
		state := "open"
		if win.Minimized {
			state = "minimized"
		}
		b := win.Bounds
		windows.Row(win.ID, win.Title, strconv.Itoa(win.Z),
			fmt.Sprintf("%gx%g+%g+%g", b.Width, b.Height, b.X, b.Y), state)
	}
	if err := printTable(w, windows); err != nil {
		return err
	}
	if snap.ShutDown {
		fmt.Fprintln(w, "Desktop shut down.")
	}
	return nil
}
