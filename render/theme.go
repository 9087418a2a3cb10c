package render

// Theme selects the color palette baked into a render. The palette is fixed
// for the lifetime of a renderer; switching theme means constructing a new
// renderer and re-rendering.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

type palette struct {
	Background string
	NodeFill   string
	NodeStroke string
	TitleFill  string
	Text       string
	Edge       string
	Label      string
}

func (t Theme) palette() palette {
	if t == ThemeDark {
		return palette{
			Background: "#1e1e2e",
			NodeFill:   "#2a2a3c",
			NodeStroke: "#7c7cf0",
			TitleFill:  "#34344e",
			Text:       "#e2e2f0",
			Edge:       "#9a9ab8",
			Label:      "#c2c2da",
		}
	}
	return palette{
		Background: "#ffffff",
		NodeFill:   "#f4f4fb",
		NodeStroke: "#5252c4",
		TitleFill:  "#e6e6f5",
		Text:       "#1f1f33",
		Edge:       "#52527a",
		Label:      "#3c3c5c",
	}
}
