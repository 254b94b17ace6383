package entities

// WebDriver key codes understood by Element.SendKeys
const (
	ReturnKey = "\ue006"
	EnterKey  = "\ue007"
)
