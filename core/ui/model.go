package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"studio-quote/core/estimator"
	"studio-quote/core/flow"
	"studio-quote/core/output"
	"studio-quote/core/types"
)

const addOnHotkeys = "abcdef"

// Model is the bubbletea model for the studio site
type Model struct {
	est    *estimator.Estimator
	flow   *flow.Flow
	theme  Theme
	status string
	done   bool
}

// NewModel mounts est inside fl
func NewModel(est *estimator.Estimator, fl *flow.Flow, theme Theme) Model {
	return Model{est: est, flow: fl, theme: theme}
}

// Run starts the interactive program and blocks until the visitor quits
func Run(est *estimator.Estimator, fl *flow.Flow, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(est, fl, DefaultTheme()), opts...).Run()
	return err
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q":
		m.done = true
		return m, tea.Quit
	}

	m.status = ""
	switch m.flow.Current() {
	case types.PageHome:
		if key.String() == "enter" || key.String() == "p" {
			m.flow.NavigateTo(types.PagePricing)
		}
	case types.PagePricing:
		m.updatePricing(key.String())
	default:
		switch key.String() {
		case "esc", "b":
			m.flow.Back()
		case "p":
			m.flow.NavigateTo(types.PagePricing)
		}
	}
	return m, nil
}

func (m *Model) updatePricing(key string) {
	sel := m.est.Selection()

	switch key {
	case "1", "2", "3":
		m.report(m.est.SetServiceType(types.ServiceTypes[key[0]-'1']))
	case "tab", "shift+tab":
		keys := m.est.CurrentRates().Keys()
		if len(keys) == 0 {
			return
		}
		i := indexOf(keys, sel.Size)
		if key == "tab" {
			i = (i + 1) % len(keys)
		} else {
			i = (i - 1 + len(keys)) % len(keys)
		}
		m.report(m.est.SetProjectSize(keys[i]))
	case "left", "h", "-":
		m.est.SetSongCount(sel.Songs - 1)
	case "right", "l", "+":
		m.est.SetSongCount(sel.Songs + 1)
	case "enter":
		m.est.Proceed()
	case "esc", "b":
		m.est.Back()
	default:
		if len(key) == 1 {
			if i := strings.Index(addOnHotkeys, key); i >= 0 {
				addOns := m.est.Catalog().AddOns()
				if i < len(addOns) {
					_, err := m.est.ToggleAddOn(addOns[i].Key)
					m.report(err)
				}
			}
		}
	}
}

func (m *Model) report(err error) {
	if err != nil {
		m.status = err.Error()
	}
}

// View implements tea.Model
func (m Model) View() string {
	if m.done {
		return ""
	}
	switch m.flow.Current() {
	case types.PageHome:
		return m.viewHome()
	case types.PagePricing:
		return m.viewPricing()
	default:
		return m.viewPlaceholder(m.flow.Current())
	}
}

func (m Model) viewHome() string {
	t := m.theme
	var b strings.Builder
	b.WriteString(t.Title.Render("Studio Mixing & Mastering") + "\n\n")
	b.WriteString(t.Option.Render("Radio-ready mixes and masters, priced up front.") + "\n\n")
	b.WriteString(t.Help.Render("enter: get your quote • q: quit"))
	return t.Card.Render(b.String())
}

func (m Model) viewPricing() string {
	t := m.theme
	sel := m.est.Selection()
	q := m.est.Quote()
	cur := q.Currency

	var b strings.Builder
	b.WriteString(t.Title.Render("Get Your Quote") + "\n\n")

	var service strings.Builder
	service.WriteString(t.Heading.Render("Select Service") + "\n")
	for i, s := range types.ServiceTypes {
		line := fmt.Sprintf("[%d] %s", i+1, s.DisplayName())
		service.WriteString(m.option(s == sel.Service, line) + "\n")
	}
	b.WriteString(t.Card.Render(strings.TrimRight(service.String(), "\n")) + "\n")

	var size strings.Builder
	size.WriteString(t.Heading.Render("Project Size") + "  " + t.Muted.Render("(tab to cycle)") + "\n")
	for _, r := range m.est.CurrentRates().Rates() {
		price := cur.FormatAmount(r.Price)
		if r.PerSong {
			price += "/song"
		}
		line := fmt.Sprintf("%-22s %s  %s", r.Label, t.Price.Render(price), t.Muted.Render(r.Description))
		size.WriteString(m.option(r.Key == sel.Size, line) + "\n")
	}
	if sr := m.est.SongRange(); !sr.Fixed() {
		size.WriteString(fmt.Sprintf("\nNumber of Songs  ◀ %s ▶  %s\n",
			t.Selected.Render(fmt.Sprint(sel.Songs)),
			t.Muted.Render(fmt.Sprintf("(%d-%d)", sr.Min, sr.Max))))
	}
	b.WriteString(t.Card.Render(strings.TrimRight(size.String(), "\n")) + "\n")

	var addOns strings.Builder
	addOns.WriteString(t.Heading.Render("Add-ons") + "\n")
	for i, a := range m.est.Catalog().AddOns() {
		box := "[ ]"
		if sel.AddOns.Has(a.Key) {
			box = "[x]"
		}
		price := cur.FormatAmount(a.Price)
		if a.PerSong {
			price += "/song"
		}
		hotkey := "?"
		if i < len(addOnHotkeys) {
			hotkey = string(addOnHotkeys[i])
		}
		line := fmt.Sprintf("%s %s %-22s %s", hotkey, box, a.Label, t.Price.Render(price))
		addOns.WriteString(m.option(sel.AddOns.Has(a.Key), line) + "\n")
	}
	b.WriteString(t.Card.Render(strings.TrimRight(addOns.String(), "\n")) + "\n")

	total := t.Muted.Render("Estimated Total") + "\n" + t.Total.Render(q.FormattedTotal())
	if s := q.Summary(); s != "" {
		total += "\n" + t.Muted.Render(s)
	}
	total += "\n\n" + t.Muted.Render(output.Disclaimer)
	b.WriteString(t.Card.Render(total) + "\n")

	if m.status != "" {
		b.WriteString(t.Error.Render(m.status) + "\n")
	}
	b.WriteString(t.Help.Render("1-3 service • tab size • ←/→ songs • a-f add-ons • enter proceed • esc back • q quit"))
	return b.String()
}

func (m Model) viewPlaceholder(page types.Page) string {
	t := m.theme
	body := t.Title.Render(strings.ToUpper(page.String())) + "\n\n" +
		t.Option.Render("This step is handled by the studio team.") + "\n\n" +
		t.Help.Render("p: back to pricing • esc: home • q: quit")
	return t.Card.Render(body)
}

func (m Model) option(selected bool, line string) string {
	if selected {
		return m.theme.Selected.Render("› " + line)
	}
	return m.theme.Option.Render("  " + line)
}

func indexOf(keys []types.ProjectSize, size types.ProjectSize) int {
	for i, k := range keys {
		if k == size {
			return i
		}
	}
	return 0
}
