package layout

// StackStyle controls where a stacked box sits and how much space follows it.
type StackStyle struct {
	Alignment XPos
	Distance  Length
}

// StackItem is a box with an optional style; a nil Style uses the defaults.
type StackItem struct {
	Box   *Box
	Style *StackStyle
}

// Stack places boxes top to bottom onto pages taken from gen. A box whose
// bottom reaches the page bottom moves to a fresh page. It returns one
// parent box per page, pinned to the generated rectangle.
func Stack(items []StackItem, defaults StackStyle, gen RectangleGenerator) []*Box {
	page := ArrangementFromRect(gen.Next())
	pages := []*Box{page}

	bottomOfLast := page.Rectangle().HBorder(Top)
	for _, it := range items {
		style := defaults
		if it.Style != nil {
			style = *it.Style
		}
		place := func() {
			grid := page.Rectangle().Point(style.Alignment, Top).AlignVerticalWith(bottomOfLast)
			it.Box.SetPosition(At(style.Alignment, Top, grid))
		}
		place()
		if it.Box.Rectangle().Point(Left, Bottom).IsLowerOrEq(page.Rectangle().Point(Left, Bottom)) {
			page = ArrangementFromRect(gen.Next())
			pages = append(pages, page)
			bottomOfLast = page.Rectangle().HBorder(Top)
			place()
		}
		page.AppendChild(it.Box)
		bottomOfLast = it.Box.Rectangle().HBorder(Bottom).MoveDown(style.Distance)
	}
	return pages
}
