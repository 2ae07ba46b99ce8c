package main

import (
	"fmt"

	"kazi/cmd/kazi/ui"
)

// printTable renders a table with the configured theme.
func printTable(t *ui.SimpleTable) {
	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	fmt.Print(t.View(styles))
}

func success(format string, args ...any) {
	styles := ui.NewStyles(ui.ThemeFor(cfg.UI.Theme))
	fmt.Println(styles.Success.Render(fmt.Sprintf(format, args...)))
}
