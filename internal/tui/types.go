package tui

import (
	"github.com/csheth/mailtriage/internal/classifier"
	"github.com/csheth/mailtriage/internal/submission"
)

type focusArea int

const (
	focusEmail focusArea = iota
	focusAttachment
	focusClassify
)

var focusOrder = []focusArea{
	focusEmail,
	focusAttachment,
	focusClassify,
}

type healthState int

const (
	healthUnknown healthState = iota
	healthOnline
	healthDegraded
	healthUnreachable
)

const heroTitle = "mailtriage"

const heroTagline = "Sort the inbox: productive or not, with a reply ready to send."

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
)

const (
	emailPlaceholder      = "Paste the e-mail body here…"
	attachmentPlaceholder = "Optional: path to a .txt file"
	loadingMessage        = "Analyzing e-mail…"
	readyMessage          = "Paste an e-mail or attach a .txt file, then press Ctrl+S."
)

type cycleResultMsg struct {
	outcome submission.Outcome
}

type healthResultMsg struct {
	health *classifier.Health
	err    error
}
