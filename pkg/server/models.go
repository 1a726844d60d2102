package server

type Page struct {
	PID   string `json:"pid"`
	Page  string `json:"page"`
	Label string `json:"label"`

	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`

	Blocks []Block `json:"blocks"`
}

type Block struct {
	Index int    `json:"index"`
	Type  string `json:"type"`
	Text  string `json:"text"`

	Lines []Line `json:"lines"`

	// null when the block has no outline
	Polygon []*float64 `json:"polygon"`
}

type Line struct {
	X      *float64 `json:"x"`
	Y      *float64 `json:"y"`
	Width  *float64 `json:"width"`
	Height *float64 `json:"height"`

	Text string  `json:"text"`
	Type *string `json:"type"`
}
