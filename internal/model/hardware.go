package model

// HeadType is a tag for a bolt head style.
type HeadType string

// Head type constants stocked by the store.
const (
	HeadHex      HeadType = "hex"
	HeadAllen    HeadType = "allen"
	HeadPhillips HeadType = "phillips"
	HeadFlat     HeadType = "flat"
	HeadPan      HeadType = "pan"
	HeadCarriage HeadType = "carriage"
	HeadSquare   HeadType = "square"
)

// HeadTypeInfo describes a head type for display.
type HeadTypeInfo struct {
	Type            HeadType
	Name            string
	Description     string
	Tool            string
	Characteristics []string
}

// Washer is one row of the washer tables.
type Washer struct {
	Designation     string
	System          System
	InnerDiameterMm float64
	OuterDiameterMm float64
	ThicknessMm     float64
}
