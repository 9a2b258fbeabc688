package view

import (
	"github.com/soocke/viewfinder-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// NewNoticeScreen fills the window with a static message and an exit
// button. Used when the camera cannot be used at all.
func NewNoticeScreen(title, message string, onExit func()) {
	p := theme.CurrentPalette()
	heading := Label(Txt(title), Background(p.AppBg), Foreground(p.Text), Wraplength("80m"))
	Grid(heading, Row(0), Column(0), Sticky("we"), Padx("4m"), Pady("8m"))
	body := Label(Txt(message), Background(p.AppBg), Foreground(p.TextMuted), Wraplength("80m"), Justify("center"))
	Grid(body, Row(1), Column(0), Sticky("we"), Padx("4m"), Pady("2m"))
	exit := Button(Txt("Close"), Command(onExit))
	Grid(exit, Row(2), Column(0), Pady("6m"))
	GridColumnConfigure(App, 0, Weight(1))
}
