package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/popover/pkg/clock"
	"github.com/matzehuels/popover/pkg/geom"
	"github.com/matzehuels/popover/pkg/placement"
	"github.com/matzehuels/popover/pkg/popover"
	"github.com/matzehuels/popover/pkg/render"
	"github.com/matzehuels/popover/pkg/scene"
	"github.com/matzehuels/popover/pkg/visibility"
)

const (
	playTick   = 50 * time.Millisecond
	playScroll = 20.0
	// playChrome is the number of rows used by the header and help lines.
	playChrome = 4
)

var (
	playStatusStyle = lipgloss.NewStyle().Foreground(colorGray)
	playHelpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

func (c *CLI) playCommand() *cobra.Command {
	var placement string

	cmd := &cobra.Command{
		Use:   "play <scene>",
		Short: "Explore a scene interactively in the terminal",
		Long: `Play draws the scene in the terminal and lets you move the trigger,
scroll the container and open the popover while placement updates live.

  arrows  move the trigger     s / S  scroll down / up
  enter   toggle               h      hover in / out
  esc     Escape key           q      quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadScene(args[0], placement)
			if err != nil {
				return err
			}
			m, err := newPlayModel(s)
			if err != nil {
				return err
			}
			defer m.pop.Destroy()

			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
	cmd.Flags().StringVarP(&placement, "placement", "p", "", "override the requested placement")
	return cmd
}

type playTickMsg struct{}

// playModel is shared by pointer: the popover host writes into it from
// inside Update.
type playModel struct {
	scene    *scene.Scene
	built    *scene.Built
	clk      *clock.Virtual
	pop      *popover.Popover
	view     popover.View
	hovering bool
	cols     int
	rows     int
	events   []string
}

func newPlayModel(s *scene.Scene) (*playModel, error) {
	b, err := s.Build()
	if err != nil {
		return nil, err
	}
	m := &playModel{scene: s, built: b, clk: clock.NewVirtual(time.Now()), cols: 80, rows: 24}

	cfg := b.Config
	cfg.Clock = m.clk
	cfg.Logger = log.New(io.Discard)
	if cfg.Controlled {
		// The playground owns the flag and grants every request.
		cfg.OnChange = func(open bool) { m.pop.SetOpen(open) }
	}
	m.pop, err = popover.New(cfg, b, popover.HostFunc(m.render))
	if err != nil {
		return nil, err
	}
	m.view = m.pop.View()
	return m, nil
}

func (m *playModel) render(v popover.View) {
	if v.State != m.view.State {
		m.note(fmt.Sprintf("%s -> %s", m.view.State, v.State))
	}
	m.view = v
}

func (m *playModel) note(s string) {
	m.events = append(m.events, s)
	if len(m.events) > 3 {
		m.events = m.events[len(m.events)-3:]
	}
}

func (m *playModel) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(playTick, func(time.Time) tea.Msg { return playTickMsg{} })
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case playTickMsg:
		m.clk.Advance(playTick)
		return m, tick()
	case tea.WindowSizeMsg:
		m.cols = max(msg.Width, 20)
		m.rows = max(msg.Height-playChrome, 5)
	case tea.KeyMsg:
		return m, m.key(msg.String())
	}
	return m, nil
}

func (m *playModel) key(k string) tea.Cmd {
	canvas := m.canvas()
	switch k {
	case "q", "ctrl+c":
		return tea.Quit
	case "up":
		m.moveTrigger(0, -canvas.CellHeight)
	case "down":
		m.moveTrigger(0, canvas.CellHeight)
	case "left":
		m.moveTrigger(-canvas.CellWidth, 0)
	case "right":
		m.moveTrigger(canvas.CellWidth, 0)
	case "s", "S":
		dy := playScroll
		if k == "S" {
			dy = -dy
		}
		applied := m.built.Container.ScrollBy(0, dy)
		m.note(fmt.Sprintf("scrolled %.0f", applied.Y))
		m.pop.Reposition()
	case "enter":
		m.pop.Toggle()
	case "h":
		pt := m.built.Trigger.Rect.Center()
		if m.hovering {
			pt = geom.Point{X: m.built.Root.Rect.Left - 1, Y: m.built.Root.Rect.Top - 1}
		}
		m.hovering = !m.hovering
		m.pop.HandleMove(pt)
	case "esc":
		m.pop.Handle(visibility.Event{Kind: visibility.KeyDown, Key: visibility.KeyEscape})
	}
	return nil
}

func (m *playModel) moveTrigger(dx, dy float64) {
	m.built.Trigger.Move(dx, dy)
	m.pop.Reposition()
}

func (m *playModel) canvas() render.Canvas {
	return render.NewCanvas(m.built.Root.Rect, m.cols, m.rows)
}

func (m *playModel) View() string {
	var b strings.Builder

	placed := render.Placed{Trigger: m.built.Trigger.Rect}
	if m.view.HasStyle {
		placed = render.Place(m.built, placement.Result{Placement: m.view.Placement, Style: m.view.Style})
	}

	state := m.view.State.String()
	if m.view.IsOpen {
		state = StyleSuccess.Render(state)
	}
	fmt.Fprintf(&b, "%s  %s  %s %s\n",
		StyleTitle.Render(m.scene.Name),
		state,
		playStatusStyle.Render("placement"),
		StyleHighlight.Render(string(m.view.Placement)))

	b.WriteString(m.canvas().Draw(m.built.Root, m.built.Container, placed, m.view.IsOpen))
	b.WriteString("\n")
	b.WriteString(playStatusStyle.Render(strings.Join(m.events, "  ·  ")))
	b.WriteString("\n")
	b.WriteString(playHelpStyle.Render("arrows move  s/S scroll  enter toggle  h hover  esc escape  q quit"))
	return b.String()
}
