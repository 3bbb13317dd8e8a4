package widgets

import (
	fyneapp "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

var _ fyneapp.DoubleTappable = (*DoubleTapLabel)(nil)

// DoubleTapLabel is a label widget that responds to double-tap gestures.
// It is used in the library lists so a double tap on a row starts playback.
type DoubleTapLabel struct {
	widget.Label
	doubleTapped func(index int)
	index        int
}

// NewDoubleTapLabel creates a new DoubleTapLabel with the given callback.
// The callback receives the row index associated with the label.
func NewDoubleTapLabel(doubleTapped func(index int)) *DoubleTapLabel {
	label := &DoubleTapLabel{
		doubleTapped: doubleTapped,
	}
	label.ExtendBaseWidget(label)
	return label
}

// DoubleTapped implements the fyne.DoubleTappable interface.
func (l *DoubleTapLabel) DoubleTapped(_ *fyneapp.PointEvent) {
	if l.doubleTapped != nil {
		l.doubleTapped(l.index)
	}
}

// SetIndex sets the row index associated with this label.
func (l *DoubleTapLabel) SetIndex(index int) {
	l.index = index
}
