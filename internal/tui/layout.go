package tui

type pageLayout struct {
	windowWidth  int
	windowHeight int
	contentWidth int
	emailHeight  int
}

func newPageLayout() pageLayout {
	return pageLayout{
		contentWidth: 76,
		emailHeight:  8,
	}
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	innerWidth := width - viewportHorizontalPadding
	if innerWidth < minViewportWidth {
		innerWidth = minViewportWidth
	}
	l.contentWidth = innerWidth
	// hero, status bar, headers, attachment, button, results and footer
	const chrome = 20
	usable := height - chrome
	l.emailHeight = usable / 2
	if l.emailHeight < 3 {
		l.emailHeight = 3
	}
	if l.emailHeight > 16 {
		l.emailHeight = 16
	}
}
