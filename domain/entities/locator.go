package entities

import "fmt"

// Locator strategies, named the way WebDriver names them on the wire.
const (
	ByID              = "id"
	ByXPath           = "xpath"
	ByLinkText        = "link text"
	ByPartialLinkText = "partial link text"
	ByName            = "name"
	ByTagName         = "tag name"
	ByClassName       = "class name"
	ByCSSSelector     = "css selector"
)

// Locator is an immutable (strategy, selector) pair that identifies DOM nodes
type Locator struct {
	By    string `json:"by"`
	Value string `json:"value"`
}

// ID - locator matching the id attribute
func ID(value string) Locator { return Locator{By: ByID, Value: value} }

// XPath - locator evaluating an XPath expression
func XPath(value string) Locator { return Locator{By: ByXPath, Value: value} }

// CSS - locator evaluating a CSS selector
func CSS(value string) Locator { return Locator{By: ByCSSSelector, Value: value} }

// Name - locator matching the name attribute
func Name(value string) Locator { return Locator{By: ByName, Value: value} }

// ClassName - locator matching a single class
func ClassName(value string) Locator { return Locator{By: ByClassName, Value: value} }

// TagName - locator matching an element name
func TagName(value string) Locator { return Locator{By: ByTagName, Value: value} }

// LinkText - locator matching an anchor by its exact visible text
func LinkText(value string) Locator { return Locator{By: ByLinkText, Value: value} }

// Format - fills the %s verbs of a templated selector
func (l Locator) Format(args ...interface{}) Locator {
	return Locator{By: l.By, Value: fmt.Sprintf(l.Value, args...)}
}

func (l Locator) String() string {
	return fmt.Sprintf("(%s, %s)", l.By, l.Value)
}

// Point is an element position in CSS pixels
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}
