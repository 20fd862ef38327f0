package banner

import (
	"kantarabench/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

func GetString() string {
	renderer := lipgloss.DefaultRenderer()

	style := renderer.NewStyle().
		Foreground(styles.ColorBanner).
		Bold(true)

	ascii := `
   __ __            __
  / //_/___ _____  / /_____ __________ _
 / ,<  / __ '/ __ \/ __/ __ '/ ___/ __ '/
/ /| |/ /_/ / / / / /_/ /_/ / /  / /_/ /
/_/ |_|\__,_/_/ /_/\__/\__,_/_/   \__,_/
            b  e  n  c  h                `

	return "\n" + style.Render(ascii) + "\n"
}
