package listing

type Screen string

const (
	ScreenMobile  Screen = "mobile"
	ScreenTablet  Screen = "tablet"
	ScreenDesktop Screen = "desktop"
)

// ClassifyScreen buckets a viewport width in CSS pixels.
func ClassifyScreen(width int) Screen {
	switch {
	case width <= 480:
		return ScreenMobile
	case width <= 768:
		return ScreenTablet
	default:
		return ScreenDesktop
	}
}
