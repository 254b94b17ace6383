package htmldriver

import (
	"strconv"
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"

	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Element is a handle on one node of a Driver document
type Element struct {
	d *Driver
	n *html.Node
}

// Node - exposes the underlying parsed node
func (e *Element) Node() *html.Node {
	return e.n
}

// Parent - returns the enclosing element, nil at the document root
func (e *Element) Parent() *Element {
	for p := e.n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return &Element{d: e.d, n: p}
		}
	}
	return nil
}

// Find - returns the first descendant matching locator
func (e *Element) Find(locator entities.Locator) (*Element, error) {
	el, err := e.FindElement(locator.By, locator.Value)
	if err != nil {
		return nil, err
	}
	return el.(*Element), nil
}

// FindElement - returns the first descendant matching the locator
func (e *Element) FindElement(by, value string) (interfaces.Element, error) {
	if err := e.attached(); err != nil {
		return nil, err
	}
	nodes, err := e.d.query(e.n, by, value)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, errors.Wrapf(entities.ErrNoSuchElement, "%s=%q", by, value)
	}
	return &Element{d: e.d, n: nodes[0]}, nil
}

// FindElements - returns every descendant matching the locator
func (e *Element) FindElements(by, value string) ([]interfaces.Element, error) {
	if err := e.attached(); err != nil {
		return nil, err
	}
	nodes, err := e.d.query(e.n, by, value)
	if err != nil {
		return nil, err
	}
	elements := make([]interfaces.Element, 0, len(nodes))
	for _, n := range nodes {
		elements = append(elements, &Element{d: e.d, n: n})
	}
	return elements, nil
}

// Click - toggles checkable inputs and options, then fires click handlers
func (e *Element) Click() error {
	if err := e.interactable(); err != nil {
		return err
	}
	if _, disabled := attr(e.n, "disabled"); disabled {
		return nil
	}

	switch {
	case isInput(e.n, "checkbox"):
		if _, checked := attr(e.n, "checked"); checked {
			removeAttr(e.n, "checked")
		} else {
			setAttr(e.n, "checked", "checked")
		}
	case isInput(e.n, "radio"):
		name, _ := attr(e.n, "name")
		walk(root(e.n), func(n *html.Node) bool {
			if isInput(n, "radio") {
				if other, _ := attr(n, "name"); other == name {
					removeAttr(n, "checked")
				}
			}
			return true
		})
		setAttr(e.n, "checked", "checked")
	case e.n.Type == html.ElementNode && e.n.DataAtom == atom.Option:
		if sel := ancestor(e.n, atom.Select); sel != nil {
			walk(sel, func(n *html.Node) bool {
				if n.DataAtom == atom.Option {
					removeAttr(n, "selected")
				}
				return true
			})
		}
		setAttr(e.n, "selected", "selected")
	}

	return e.d.fire(Click, e)
}

// Clear - empties an editable field
func (e *Element) Clear() error {
	if err := e.interactable(); err != nil {
		return err
	}
	if !editable(e.n) {
		return errors.New("invalid element state: element is not editable")
	}
	setAttr(e.n, "value", "")
	return nil
}

// SendKeys - types into an editable field, honouring maxlength; Return and Enter fire enter handlers
func (e *Element) SendKeys(keys string) error {
	if err := e.interactable(); err != nil {
		return err
	}

	var typed strings.Builder
	flush := func() error {
		if typed.Len() == 0 {
			return nil
		}
		if editable(e.n) {
			value, _ := attr(e.n, "value")
			value += typed.String()
			if limit, err := strconv.Atoi(attrOr(e.n, "maxlength", "")); err == nil && limit >= 0 {
				if runes := []rune(value); len(runes) > limit {
					value = string(runes[:limit])
				}
			}
			setAttr(e.n, "value", value)
		}
		typed.Reset()
		return e.d.fire(Input, e)
	}

	for _, r := range keys {
		switch string(r) {
		case entities.ReturnKey, entities.EnterKey:
			if err := flush(); err != nil {
				return err
			}
			if err := e.d.fire(Enter, e); err != nil {
				return err
			}
		default:
			typed.WriteRune(r)
		}
	}
	return flush()
}

// MoveTo - fires hover handlers
func (e *Element) MoveTo(xOffset, yOffset int) error {
	if err := e.interactable(); err != nil {
		return err
	}
	return e.d.fire(Hover, e)
}

// Text - returns rendered text, empty when the element is hidden
func (e *Element) Text() (string, error) {
	if err := e.attached(); err != nil {
		return "", err
	}
	if !displayed(e.n) {
		return "", nil
	}
	return renderText(e.n), nil
}

// GetAttribute - returns the attribute, or the live property for value, textContent and boolean states
func (e *Element) GetAttribute(name string) (string, error) {
	if err := e.attached(); err != nil {
		return "", err
	}
	switch name {
	case "value", "valueAsNumber":
		return value(e.n), nil
	case "textContent":
		return rawText(e.n), nil
	case "innerText":
		return e.Text()
	case "checked", "selected", "disabled", "hidden", "readonly":
		if _, ok := attr(e.n, name); ok {
			return "true", nil
		}
		return "", nil
	}
	v, _ := attr(e.n, name)
	return v, nil
}

// IsDisplayed - false when the element or an ancestor is hidden
func (e *Element) IsDisplayed() (bool, error) {
	if err := e.attached(); err != nil {
		return false, err
	}
	return displayed(e.n), nil
}

// IsEnabled - false for disabled form controls
func (e *Element) IsEnabled() (bool, error) {
	if err := e.attached(); err != nil {
		return false, err
	}
	_, disabled := attr(e.n, "disabled")
	return !disabled, nil
}

// IsSelected - true for checked inputs and selected options
func (e *Element) IsSelected() (bool, error) {
	if err := e.attached(); err != nil {
		return false, err
	}
	_, checked := attr(e.n, "checked")
	_, selected := attr(e.n, "selected")
	return checked || selected, nil
}

// Location - reads data-x and data-y, the document has no layout
func (e *Element) Location() (*entities.Point, error) {
	if err := e.attached(); err != nil {
		return nil, err
	}
	x, _ := strconv.Atoi(attrOr(e.n, "data-x", "0"))
	y, _ := strconv.Atoi(attrOr(e.n, "data-y", "0"))
	return &entities.Point{X: x, Y: y}, nil
}

// SetAttribute - sets an attribute in place
func (e *Element) SetAttribute(name, value string) {
	setAttr(e.n, name, value)
}

// RemoveAttribute - deletes an attribute in place
func (e *Element) RemoveAttribute(name string) {
	removeAttr(e.n, name)
}

// SetText - replaces the children with a single text node
func (e *Element) SetText(text string) {
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	e.n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

// SetInnerHTML - replaces the children with parsed markup
func (e *Element) SetInnerHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.n)
	if err != nil {
		return errors.Wrap(err, "failed to parse fragment")
	}
	for c := e.n.FirstChild; c != nil; {
		next := c.NextSibling
		e.n.RemoveChild(c)
		c = next
	}
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// AppendHTML - parses markup and appends it after the existing children
func (e *Element) AppendHTML(markup string) error {
	nodes, err := html.ParseFragment(strings.NewReader(markup), e.n)
	if err != nil {
		return errors.Wrap(err, "failed to parse fragment")
	}
	for _, n := range nodes {
		e.n.AppendChild(n)
	}
	return nil
}

// Remove - detaches the element; handles held on it become stale
func (e *Element) Remove() {
	if e.n.Parent != nil {
		e.n.Parent.RemoveChild(e.n)
	}
}

// Value - returns the live value of a form control
func (e *Element) Value() string {
	return value(e.n)
}

func (e *Element) attached() error {
	if err := e.d.ensureLoaded(); err != nil {
		return err
	}
	if root(e.n) != e.d.root {
		return errors.Wrapf(entities.ErrStaleElement, "<%s> is not attached to the current document", e.n.Data)
	}
	return nil
}

func (e *Element) interactable() error {
	if err := e.attached(); err != nil {
		return err
	}
	if !displayed(e.n) {
		return errors.Errorf("element not interactable: <%s> is not displayed", e.n.Data)
	}
	return nil
}

var _ interfaces.Element = (*Element)(nil)
