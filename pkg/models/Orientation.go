package models

type Orientation string

const (
	OrientationLandscape Orientation = "L"
	OrientationPortrait  Orientation = "P"
	OrientationSquare    Orientation = "S"
)

/*
OrientationOf classifies an image by comparing its width and height.
*/
func OrientationOf(width, height int) Orientation {
	switch {
	case width > height:
		return OrientationLandscape
	case width < height:
		return OrientationPortrait
	default:
		return OrientationSquare
	}
}

func (o Orientation) String() string {
	switch o {
	case OrientationLandscape:
		return "landscape"
	case OrientationPortrait:
		return "portrait"
	case OrientationSquare:
		return "square"
	}

	return "unknown"
}
