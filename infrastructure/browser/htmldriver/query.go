package htmldriver

import (
	"strings"

	"ui_automation/domain/entities"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// query evaluates a WebDriver locator below scope. XPath is evaluated with
// scope as the document root, so absolute expressions stay inside it.
func (d *Driver) query(scope *html.Node, by, value string) ([]*html.Node, error) {
	switch by {
	case entities.ByCSSSelector:
		sel, err := cascadia.Compile(value)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid selector: %s", value)
		}
		return goquery.NewDocumentFromNode(scope).FindMatcher(sel).Nodes, nil
	case entities.ByXPath:
		nodes, err := htmlquery.QueryAll(scope, value)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid selector: %s", value)
		}
		elements := nodes[:0]
		for _, n := range nodes {
			if n.Type == html.ElementNode {
				elements = append(elements, n)
			}
		}
		return elements, nil
	case entities.ByID:
		return descendants(scope, func(n *html.Node) bool {
			id, _ := attr(n, "id")
			return id == value
		}), nil
	case entities.ByName:
		return descendants(scope, func(n *html.Node) bool {
			name, _ := attr(n, "name")
			return name == value
		}), nil
	case entities.ByClassName:
		return descendants(scope, func(n *html.Node) bool { return hasClass(n, value) }), nil
	case entities.ByTagName:
		return descendants(scope, func(n *html.Node) bool { return strings.EqualFold(n.Data, value) }), nil
	case entities.ByLinkText:
		return descendants(scope, func(n *html.Node) bool {
			return n.DataAtom == atom.A && renderText(n) == value
		}), nil
	case entities.ByPartialLinkText:
		return descendants(scope, func(n *html.Node) bool {
			return n.DataAtom == atom.A && strings.Contains(renderText(n), value)
		}), nil
	}
	return nil, errors.Errorf("invalid selector: unsupported strategy %q", by)
}
