package view

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"torlife/src/table"
	"torlife/src/universe"
)

const (
	fieldView  = "torus"
	statusView = "status"
	helpView   = "help"
	smallView  = "small"

	sideWidth = 30
	minHeight = 14
	minWidth  = sideWidth + 12
)

//command is a universe action bound to a key
type command struct {
	key   interface{}
	name  string
	descr string
	run   func()
}

//ConsoleUI is the interactive terminal view
//the table is tiled over the whole field view, so the wrapped neighbourhood of the border cells is visible
//and a click on any tile toggles the same cell
type ConsoleUI struct {
	u        universe.Universe
	g        *gocui.Gui
	commands []command
	//template is the index of the next template settled by the 'T' key
	template int
	glyphs   map[table.CellState]string
}

//NewViewTerminal creates the interactive terminal view, the terminal is taken over until Start returns
func NewViewTerminal() (*ConsoleUI, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, err
	}
	g.Mouse = true

	t := &ConsoleUI{
		g: g,
		glyphs: map[table.CellState]string{
			table.Alive: aurora.Green(string(table.Alive.Glyph())).BgBrightGreen().String(),
			table.Dead:  string(table.Dead.Glyph()),
		},
	}
	g.SetManagerFunc(t.layout)

	quit := func(*gocui.Gui, *gocui.View) error { return gocui.ErrQuit }
	if err = g.SetKeybinding("", gocui.KeyCtrlC, gocui.ModNone, quit); err == nil {
		err = g.SetKeybinding(fieldView, gocui.MouseLeft, gocui.ModNone, t.click)
	}
	if err != nil {
		g.Close()
		return nil, err
	}
	return t, nil
}

//Register binds the universe commands to the keys
func (t *ConsoleUI) Register(u universe.Universe) {
	t.u = u
	t.commands = []command{
		{'n', "N", "Step", u.Step},
		{'r', "R", "Run", u.Run},
		{'s', "S", "Stop", u.Stop},
		{'c', "C", "Clear", u.Clear},
		{'w', "W", "Random", u.SettleWithRandomData},
		{'t', "T", "Next template", t.nextTemplate},
	}
	for _, c := range t.commands {
		run := c.run
		err := t.g.SetKeybinding("", c.key, gocui.ModNone, func(*gocui.Gui, *gocui.View) error {
			run()
			return nil
		})
		if err != nil {
			log.Panicln(err)
		}
	}
}

func (t *ConsoleUI) Start() {
	if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
		log.Panicln(err)
	}
	t.g.Close()
}

//Refresh can be called from any goroutine, the views are redrawn by layout in the gui loop
func (t *ConsoleUI) Refresh() {
	t.g.Update(func(*gocui.Gui) error { return nil })
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxX < minWidth || maxY < minHeight {
		for _, name := range []string{fieldView, statusView, helpView} {
			_ = g.DeleteView(name)
		}
		v, err := setView(g, smallView, -1, -1, maxX, maxY)
		if err != nil {
			return err
		}
		v.Frame = false
		v.Clear()
		_, _ = fmt.Fprint(v, aurora.Red(fmt.Sprintf("Terminal is too small, need %dx%d", minWidth, minHeight)))
		return nil
	}
	_ = g.DeleteView(smallView)

	v, err := setView(g, statusView, 0, 0, sideWidth, maxY-3)
	if err != nil {
		return err
	}
	v.Title = "Status"
	v.Clear()
	_, _ = fmt.Fprint(v, statusText(t.u.Status(), t.u.Options()))

	if v, err = setView(g, fieldView, sideWidth+1, 0, maxX-1, maxY-3); err != nil {
		return err
	}
	gen := t.u.Generation()
	w, h := v.Size()
	v.Title = fieldTitle(gen, w, h)
	v.Clear()
	_, _ = fmt.Fprint(v, fieldText(gen, w, h, t.glyph))

	if v, err = setView(g, helpView, -1, maxY-3, maxX, maxY); err != nil {
		return err
	}
	v.Frame = false
	v.Clear()
	_, _ = fmt.Fprint(v, helpText(t.commands))
	return nil
}

//setView creates or moves the view, a newly created view is not an error
func setView(g *gocui.Gui, name string, x0, y0, x1, y1 int) (*gocui.View, error) {
	v, err := g.SetView(name, x0, y0, x1, y1)
	if err == gocui.ErrUnknownView {
		err = nil
	}
	return v, err
}

func (t *ConsoleUI) glyph(s table.CellState) string {
	return t.glyphs[s]
}

//fieldText draws the table tiled over w x h chars
func fieldText(gen *table.Table, w int, h int, glyph func(table.CellState) string) string {
	rows := gen.Rows().Collect()
	var b strings.Builder
	for y := 0; y < h; y++ {
		if y != 0 {
			b.WriteByte('\n')
		}
		row := rows[y%len(rows)]
		for x := 0; x < w; x++ {
			b.WriteString(glyph(row[x%len(row)]))
		}
	}
	return b.String()
}

func fieldTitle(gen *table.Table, w int, h int) string {
	title := fmt.Sprintf("Torus %dx%d", gen.Width(), gen.Height())
	switch {
	case gen.Width() > w || gen.Height() > h:
		return title + " (cropped)"
	case gen.Width() < w || gen.Height() < h:
		return title + " (tiled)"
	}
	return title
}

//wrapCursor maps the view cursor onto the torus
func wrapCursor(cx int, cy int, width int, height int) (x int, y int) {
	return (cx%width + width) % width, (cy%height + height) % height
}

func (t *ConsoleUI) click(_ *gocui.Gui, v *gocui.View) error {
	cx, cy := v.Cursor()
	ox, oy := v.Origin()
	o := t.u.Options()
	t.u.InverseCell(wrapCursor(cx+ox, cy+oy, o.Width, o.Height))
	return nil
}

func (t *ConsoleUI) nextTemplate() {
	names := t.u.Templates()
	if len(names) == 0 {
		return
	}
	name := names[t.template%len(names)]
	t.template++
	//names come from the universe itself
	_ = t.u.SettleTemplate(name)
}

func modeText(st universe.Status) string {
	switch st.RunningMode {
	case universe.RunningStateManual:
		return aurora.Blue(st.RunningMode).String()
	case universe.RunningStateRun:
		return aurora.Cyan(st.RunningMode).String()
	case universe.RunningStateFinished:
		return aurora.Red(fmt.Sprintf("%v (%v)", st.RunningMode, st.Reason)).String()
	}
	return st.RunningMode.String()
}

func statusText(st universe.Status, o universe.Options) string {
	var b strings.Builder
	prop := func(name string, format string, values ...interface{}) {
		_, _ = fmt.Fprintf(&b, " %s: "+format+"\n", append([]interface{}{aurora.Green(name)}, values...)...)
	}
	prop("Dimension", "%v x %v", o.Width, o.Height)
	prop("Interval", "%v", o.Interval)
	prop("Max steps", "%v", o.MaxSteps)
	prop("Seed", "%v", o.Seed)
	b.WriteByte('\n')
	prop("Generation", "%v", st.IterationNum)
	prop("Live cells", "%v", st.LiveCells)
	prop("Tick time", "%v", st.IterationTime.Round(time.Microsecond))
	prop("Mode", "%v", modeText(st))
	return b.String()
}

func helpText(commands []command) string {
	parts := make([]string, 0, len(commands)+2)
	for _, c := range commands {
		parts = append(parts, aurora.Green(c.name).String()+": "+c.descr)
	}
	parts = append(parts, aurora.Green("^C").String()+": Exit", aurora.Green("MOUSE").String()+": Toggle the cell")
	return "KEYBINDINGS: " + strings.Join(parts, ", ")
}
