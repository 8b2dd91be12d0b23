package submission

import "sync"

// Region is a display area toggled between visible and hidden as a unit.
type Region interface {
	Show()
	Hide()
}

// TextSlot receives text output.
type TextSlot interface {
	SetText(text string)
}

// MessageRegion is a region that also displays a message.
type MessageRegion interface {
	Region
	TextSlot
}

// View holds the handles the controller drives.
type View struct {
	Loading  Region
	Error    MessageRegion
	Results  Region
	Category TextSlot
	Response TextSlot
}

// Panel is an in-memory Region and TextSlot. It is safe for concurrent use.
type Panel struct {
	name string

	mu      sync.RWMutex
	visible bool
	text    string
}

func NewPanel(name string) *Panel {
	return &Panel{name: name}
}

func (p *Panel) Name() string { return p.name }

func (p *Panel) Show() {
	p.mu.Lock()
	p.visible = true
	p.mu.Unlock()
}

func (p *Panel) Hide() {
	p.mu.Lock()
	p.visible = false
	p.mu.Unlock()
}

func (p *Panel) SetText(text string) {
	p.mu.Lock()
	p.text = text
	p.mu.Unlock()
}

func (p *Panel) Visible() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.visible
}

func (p *Panel) Text() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.text
}

// Panels bundles one Panel per region and output slot.
type Panels struct {
	Loading  *Panel
	Error    *Panel
	Results  *Panel
	Category *Panel
	Response *Panel
}

func NewPanels() *Panels {
	return &Panels{
		Loading:  NewPanel("loading"),
		Error:    NewPanel("error"),
		Results:  NewPanel("results"),
		Category: NewPanel("category"),
		Response: NewPanel("response"),
	}
}

// View exposes the panels as controller handles.
func (p *Panels) View() View {
	return View{
		Loading:  p.Loading,
		Error:    p.Error,
		Results:  p.Results,
		Category: p.Category,
		Response: p.Response,
	}
}
