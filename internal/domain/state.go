package domain

// DisplayState represents what the card currently shows
type DisplayState int

const (
	// StateHidden shows the word only; the action reveals the definition
	StateHidden DisplayState = iota
	// StateShown shows word and definition; the action moves to the next word
	StateShown
)

func (s DisplayState) String() string {
	switch s {
	case StateHidden:
		return "hidden"
	case StateShown:
		return "shown"
	default:
		return "unknown"
	}
}
