package offline

import (
	"fmt"
	"strconv"
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/infrastructure/browser/htmldriver"

	"golang.org/x/net/html"
)

// GreenKartNumberOfItemsScript is the query the checkout page issues for its bare "No. of Items" text node
const GreenKartNumberOfItemsScript = `return document.evaluate("string(//*[@id='root']/div/div/div/div/text())", ` +
	`document, null, XPathResult.STRING_TYPE, null).stringValue;`

const greenKartConfirmation = `<span>Thank you, your order has been placed successfully<br>` +
	`You'll be redirected to Home page shortly!!</span><br><br><a href="#/">Home</a>`

type basketLine struct {
	name     string
	price    float64
	quantity float64
}

// greenKart is the react store: the cart survives navigation between its routes
type greenKart struct {
	cart []*basketLine
}

// GreenKart - registers the GreenKart main, cart and delivery routes
func GreenKart(d *htmldriver.Driver) error {
	for url, file := range map[string]string{
		GreenKartURL:         "greenkart_main.html",
		GreenKartCartURL:     "greenkart_cart.html",
		GreenKartDeliveryURL: "greenkart_delivery.html",
	} {
		if err := addPage(d, url, file); err != nil {
			return err
		}
	}
	g := &greenKart{}

	d.OnLoad(GreenKartURL, g.renderHeader)
	d.OnLoad(GreenKartCartURL, g.renderCart)
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.CSS(".product .increment"), func(d *htmldriver.Driver, el *htmldriver.Element) error {
		return step(el, 1)
	})
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.CSS(".product .decrement"), func(d *htmldriver.Driver, el *htmldriver.Element) error {
		return step(el, -1)
	})
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.CSS(".product-action button"), g.add)
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.CSS(".cart-icon"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		preview, err := d.Find(entities.CSS(".cart-preview"))
		if err != nil {
			return err
		}
		if class, _ := preview.GetAttribute("class"); class == "cart-preview active" {
			preview.SetAttribute("class", "cart-preview")
		} else {
			preview.SetAttribute("class", "cart-preview active")
		}
		return nil
	})
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.CSS(".cart-item .product-remove"), g.remove)
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.XPath("//button[text()='PROCEED TO CHECKOUT']"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return d.Get(GreenKartCartURL)
	})
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.XPath("//button[text()='Place Order']"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return d.Get(GreenKartDeliveryURL)
	})
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.XPath("//button[text()='Proceed']"), g.proceed)
	d.HandleOn(GreenKartURL, htmldriver.Click, entities.CSS(".chkAgree"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return setStyle(d, entities.CSS(".errorAlert"), "display: none;")
	})
	d.HandleScript(GreenKartNumberOfItemsScript, func(d *htmldriver.Driver, _ []interface{}) (interface{}, error) {
		return " " + strconv.Itoa(len(g.cart)), nil
	})
	return nil
}

// step moves the stepper next to a +/- button; the quantity never drops below one
func step(button *htmldriver.Element, delta float64) error {
	field, err := button.Parent().Find(entities.CSS(".quantity"))
	if err != nil {
		return err
	}
	quantity, err := strconv.ParseFloat(field.Value(), 64)
	if err != nil {
		quantity = 1
	}
	if quantity+delta >= 1 {
		quantity += delta
	}
	field.SetAttribute("value", amount(quantity))
	return nil
}

func (g *greenKart) add(d *htmldriver.Driver, button *htmldriver.Element) error {
	card := button.Parent().Parent()
	text := func(css string) (string, error) {
		el, err := card.Find(entities.CSS(css))
		if err != nil {
			return "", err
		}
		return el.Text()
	}
	name, err := text(".product-name")
	if err != nil {
		return err
	}
	priceText, err := text(".product-price")
	if err != nil {
		return err
	}
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return err
	}
	field, err := card.Find(entities.CSS(".quantity"))
	if err != nil {
		return err
	}
	quantity, err := strconv.ParseFloat(field.Value(), 64)
	if err != nil || quantity < 1 {
		quantity = 1
	}

	if l := g.line(name); l != nil {
		l.quantity += quantity
	} else {
		g.cart = append(g.cart, &basketLine{name: name, price: price, quantity: quantity})
	}
	return g.renderHeader(d)
}

func (g *greenKart) remove(d *htmldriver.Driver, button *htmldriver.Element) error {
	name, err := button.Parent().Find(entities.CSS(".product-name"))
	if err != nil {
		return err
	}
	text, err := name.Text()
	if err != nil {
		return err
	}
	for i, l := range g.cart {
		if l.name == text {
			g.cart = append(g.cart[:i], g.cart[i+1:]...)
			break
		}
	}
	return g.renderHeader(d)
}

// proceed confirms the order only once the terms are accepted
func (g *greenKart) proceed(d *htmldriver.Driver, _ *htmldriver.Element) error {
	terms, err := d.Find(entities.CSS("input[type='checkbox']"))
	if err != nil {
		return err
	}
	if accepted, _ := terms.IsSelected(); !accepted {
		alert, err := d.Find(entities.CSS(".errorAlert"))
		if err != nil {
			return err
		}
		alert.RemoveAttribute("style")
		return nil
	}

	wrapper, err := d.Find(entities.CSS(".wrapperTwo"))
	if err != nil {
		return err
	}
	g.cart = nil
	d.Redirect(GreenKartURL, RedirectDelay)
	return wrapper.SetInnerHTML(greenKartConfirmation)
}

func (g *greenKart) line(name string) *basketLine {
	for _, l := range g.cart {
		if l.name == name {
			return l
		}
	}
	return nil
}

func (g *greenKart) total() float64 {
	var total float64
	for _, l := range g.cart {
		total += l.price * l.quantity
	}
	return total
}

// renderHeader refreshes the cart summary and the preview list
func (g *greenKart) renderHeader(d *htmldriver.Driver) error {
	for row, value := range []float64{float64(len(g.cart)), g.total()} {
		cell, err := d.Find(entities.CSS(fmt.Sprintf(".cart-info tr:nth-child(%d) td:nth-child(3) strong", row+1)))
		if err != nil {
			return err
		}
		cell.SetText(amount(value))
	}

	var items strings.Builder
	for _, l := range g.cart {
		fmt.Fprintf(&items, `<li class="cart-item"><img class="product-image" alt="">`+
			`<div class="product-info"><p class="product-name">%s</p><p class="product-price">%s</p></div>`+
			`<div class="product-total"><p class="quantity">%s <span class="count">Nos.</span></p>`+
			`<p class="amount">%s</p></div><a class="product-remove" href="#">×</a></li>`,
			html.EscapeString(l.name), amount(l.price), amount(l.quantity), amount(l.price*l.quantity))
	}
	list, err := d.Find(entities.CSS("ul.cart-items"))
	if err != nil {
		return err
	}
	return list.SetInnerHTML(items.String())
}

// renderCart fills the checkout table and its summary
func (g *greenKart) renderCart(d *htmldriver.Driver) error {
	var rows strings.Builder
	for _, l := range g.cart {
		fmt.Fprintf(&rows, `<tr><td><img class="product-image" alt=""></td>`+
			`<td><p class="product-name">%s</p></td><td><p class="quantity">%s</p></td>`+
			`<td><p class="amount">%s</p></td><td><p class="amount">%s</p></td></tr>`,
			html.EscapeString(l.name), amount(l.quantity), amount(l.price), amount(l.price*l.quantity))
	}
	body, err := d.Find(entities.CSS("#productCartTables tbody"))
	if err != nil {
		return err
	}
	if err := body.SetInnerHTML(rows.String()); err != nil {
		return err
	}
	for _, css := range []string{".totAmt", ".discountAmt"} {
		el, err := d.Find(entities.CSS(css))
		if err != nil {
			return err
		}
		el.SetText(amount(g.total()))
	}
	return nil
}
