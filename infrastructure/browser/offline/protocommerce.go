package offline

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/infrastructure/browser/htmldriver"

	"golang.org/x/net/html"
)

// ShopSuccessMessage is the alert shown after a ProtoCommerce purchase
const ShopSuccessMessage = "Success! Thank you! Your order will be delivered in next few weeks :-)."

// Phone is one ProtoCommerce catalog entry
type Phone struct {
	Name  string
	Price float64
}

// Phones is the ProtoCommerce catalog, in display order
var Phones = []Phone{
	{Name: "iphone X", Price: 100000},
	{Name: "Samsung Note 8", Price: 85000},
	{Name: "Nokia Edge", Price: 65000},
	{Name: "Blackberry", Price: 50000},
}

// DeliveryCountries are suggested by the ProtoCommerce delivery form
var DeliveryCountries = []string{"India", "Indonesia", "Poland", "Portugal", "United States of America"}

type shopLine struct {
	phone    Phone
	quantity float64
}

// shop is the angular single page app: one URL, views swapped in #view
type shop struct {
	cart []*shopLine
}

// ProtoCommerce - registers the ProtoCommerce shop
func ProtoCommerce(d *htmldriver.Driver) error {
	if err := addPage(d, ShopURL, "shop.html"); err != nil {
		return err
	}
	s := &shop{}

	d.OnLoad(ShopURL, func(d *htmldriver.Driver) error {
		s.cart = nil
		return s.renderCards(d)
	})
	d.HandleOn(ShopURL, htmldriver.Click, entities.XPath("//div[@class='card h-100']/div/button"), s.add)
	d.HandleOn(ShopURL, htmldriver.Click, entities.CSS("a[class*='btn-primary']"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return s.renderCheckout(d)
	})
	d.HandleOn(ShopURL, htmldriver.Click, entities.CSS("button.btn-default"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return s.renderCards(d)
	})
	d.HandleOn(ShopURL, htmldriver.Enter, entities.CSS("input[class='form-control']"), s.setQuantity)
	d.HandleOn(ShopURL, htmldriver.Click, entities.CSS("button.btn-danger"), s.remove)
	d.HandleOn(ShopURL, htmldriver.Click, entities.CSS("button.btn-success"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return s.renderDelivery(d)
	})
	d.HandleOn(ShopURL, htmldriver.Input, entities.ID("country"), suggestDeliveryCountries)
	d.HandleOn(ShopURL, htmldriver.Click, entities.CSS("div.suggestions a"), func(d *htmldriver.Driver, el *htmldriver.Element) error {
		input, err := d.Find(entities.ID("country"))
		if err != nil {
			return err
		}
		text, err := el.Text()
		if err != nil {
			return err
		}
		input.SetAttribute("value", text)
		return empty(d, entities.CSS("div.suggestions ul"))
	})
	d.HandleOn(ShopURL, htmldriver.Click, entities.CSS("div.checkbox"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		box, err := d.Find(entities.ID("checkbox2"))
		if err != nil {
			return err
		}
		if checked, _ := box.IsSelected(); checked {
			box.RemoveAttribute("checked")
		} else {
			box.SetAttribute("checked", "checked")
		}
		return nil
	})
	d.HandleOn(ShopURL, htmldriver.Click, entities.CSS("input[type='submit']"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		area, err := d.Find(entities.ID("alert-area"))
		if err != nil {
			return err
		}
		s.cart = nil
		return area.SetInnerHTML(`<div class="alert alert-success alert-dismissible">` +
			`<a class="close" data-dismiss="alert" aria-label="close">×</a>` +
			`<strong>Success!</strong> Thank you! Your order will be delivered in next few weeks :-).</div>`)
	})
	d.HandleOn(ShopURL, htmldriver.Click, entities.CSS("a[data-dismiss='alert']"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return empty(d, entities.ID("alert-area"))
	})
	return nil
}

func (s *shop) line(name string) *shopLine {
	for _, l := range s.cart {
		if l.phone.Name == name {
			return l
		}
	}
	return nil
}

func (s *shop) total() float64 {
	var total float64
	for _, l := range s.cart {
		total += l.phone.Price * l.quantity
	}
	return total
}

func (s *shop) add(d *htmldriver.Driver, button *htmldriver.Element) error {
	card := button.Parent().Parent()
	title, err := card.Find(entities.XPath("div/h4/a"))
	if err != nil {
		return err
	}
	name, err := title.Text()
	if err != nil {
		return err
	}
	if l := s.line(name); l != nil {
		l.quantity++
		return s.renderCounter(d)
	}
	for _, phone := range Phones {
		if phone.Name == name {
			s.cart = append(s.cart, &shopLine{phone: phone, quantity: 1})
		}
	}
	return s.renderCounter(d)
}

// setQuantity accepts whole non-negative quantities only, as the number input's min and step do
func (s *shop) setQuantity(d *htmldriver.Driver, input *htmldriver.Element) error {
	row := input.Parent().Parent()
	l, err := s.rowLine(row)
	if err != nil {
		return err
	}
	quantity, err := strconv.ParseFloat(strings.TrimSpace(input.Value()), 64)
	if err != nil {
		quantity = l.quantity
	}
	l.quantity = math.Max(0, math.Floor(quantity))
	input.SetAttribute("value", amount(l.quantity))

	cell, err := row.Find(entities.CSS("td:nth-child(4) strong"))
	if err != nil {
		return err
	}
	cell.SetText("₹. " + amount(l.phone.Price*l.quantity))
	return s.renderTotal(d)
}

func (s *shop) remove(d *htmldriver.Driver, button *htmldriver.Element) error {
	row := button.Parent().Parent()
	l, err := s.rowLine(row)
	if err != nil {
		return err
	}
	for i, other := range s.cart {
		if other == l {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			break
		}
	}
	row.Remove()
	if err := s.renderCounter(d); err != nil {
		return err
	}
	return s.renderTotal(d)
}

func (s *shop) rowLine(row *htmldriver.Element) (*shopLine, error) {
	title, err := row.Find(entities.CSS(".media-body h4 a"))
	if err != nil {
		return nil, err
	}
	name, err := title.Text()
	if err != nil {
		return nil, err
	}
	if l := s.line(name); l != nil {
		return l, nil
	}
	return nil, fmt.Errorf("%q is not in the cart: %w", name, entities.ErrNotFound)
}

func (s *shop) renderCounter(d *htmldriver.Driver) error {
	button, err := d.Find(entities.CSS("a[class*='btn-primary']"))
	if err != nil {
		return err
	}
	return button.SetInnerHTML(fmt.Sprintf(`Checkout ( %d )<span class="sr-only">(current)</span>`, len(s.cart)))
}

func (s *shop) renderTotal(d *htmldriver.Driver) error {
	total, err := d.Find(entities.CSS("td[class='text-right'] h3 strong"))
	if err != nil {
		return err
	}
	total.SetText("₹. " + amount(s.total()))
	if len(s.cart) > 0 {
		return nil
	}
	checkout, err := d.Find(entities.CSS("button.btn-success"))
	if err != nil {
		return err
	}
	checkout.SetAttribute("disabled", "disabled")
	return nil
}

func (s *shop) renderCards(d *htmldriver.Driver) error {
	var b strings.Builder
	b.WriteString(`<div class="row">`)
	for _, phone := range Phones {
		fmt.Fprintf(&b, `<app-card class="col-lg-3 col-md-6 mb-3"><div class="card h-100">`+
			`<a href="#"><img class="card-img-top" alt=""></a>`+
			`<div class="card-body"><h4 class="card-title"><a href="#">%s</a></h4><h5>₹. %s</h5>`+
			`<p class="card-text">Lorem ipsum dolor sit amet, consectetur adipisicing elit!</p></div>`+
			`<div class="card-footer"><button class="btn btn-info">Add <i class="fa fa-shopping-cart"></i></button></div>`+
			`</div></app-card>`, html.EscapeString(phone.Name), amount(phone.Price))
	}
	b.WriteString(`</div>`)
	if err := s.setView(d, b.String()); err != nil {
		return err
	}
	return s.renderCounter(d)
}

func (s *shop) renderCheckout(d *htmldriver.Driver) error {
	var b strings.Builder
	b.WriteString(`<div class="row"><div class="col-sm-12 col-md-10 col-md-offset-1"><table class="table table-hover">` +
		`<thead><tr><th>Product</th><th>Quantity</th><th class="text-center">Price</th>` +
		`<th class="text-center">Total</th><th> </th></tr></thead><tbody>`)
	for _, l := range s.cart {
		fmt.Fprintf(&b, `<tr><td class="col-sm-8 col-md-6"><div class="media">`+
			`<a class="thumbnail pull-left" href="#"><img class="media-object" alt=""></a>`+
			`<div class="media-body"><h4 class="media-heading"><a href="#">%s</a></h4>`+
			`<h5 class="media-heading"> by <a href="#">Brand name</a></h5>`+
			`<span>Status: </span><span class="text-success"><strong>In Stock</strong></span></div></div></td>`+
			`<td class="col-sm-1 col-md-1" style="text-align: center">`+
			`<input class="form-control" id="exampleInputEmail1" type="number" value="%s"></td>`+
			`<td class="col-sm-1 col-md-1 text-center"><strong>₹. %s</strong></td>`+
			`<td class="col-sm-1 col-md-1 text-center"><strong>₹. %s</strong></td>`+
			`<td class="col-sm-1 col-md-1"><button class="btn btn-danger" type="button">Remove</button></td></tr>`,
			html.EscapeString(l.phone.Name), amount(l.quantity), amount(l.phone.Price), amount(l.phone.Price*l.quantity))
	}
	disabled := ""
	if len(s.cart) == 0 {
		disabled = " disabled"
	}
	fmt.Fprintf(&b, `<tr><td> </td><td> </td><td> </td><td><h3>Total</h3></td>`+
		`<td class="text-right"><h3><strong>₹. %s</strong></h3></td></tr>`+
		`<tr><td> </td><td> </td><td> </td>`+
		`<td><button class="btn btn-default" type="button">Continue Shopping</button></td>`+
		`<td><button class="btn btn-success" type="button"%s>Checkout</button></td></tr>`+
		`</tbody></table></div></div>`, amount(s.total()), disabled)
	return s.setView(d, b.String())
}

func (s *shop) renderDelivery(d *htmldriver.Driver) error {
	return s.setView(d, `<div class="row"><div class="col-md-12"><div id="alert-area"></div>`+
		`<form><div class="form-group">`+
		`<label>Please choose your delivery location. Then click on purchase button</label>`+
		`<input class="validate filter-input form-control ng-untouched" id="country" type="text" autocomplete="off">`+
		`<div class="suggestions"><ul></ul></div></div>`+
		`<div class="checkbox checkbox-primary"><input class="validate" id="checkbox2" type="checkbox">`+
		`<label for="checkbox2">I agree with the <a href="#">term &amp; Conditions</a></label></div>`+
		`<input class="btn btn-success btn-lg" type="submit" value="Purchase"></form></div></div>`)
}

func (s *shop) setView(d *htmldriver.Driver, markup string) error {
	view, err := d.Find(entities.ID("view"))
	if err != nil {
		return err
	}
	return view.SetInnerHTML(markup)
}

// suggestDeliveryCountries lists matches once three characters are typed
func suggestDeliveryCountries(d *htmldriver.Driver, input *htmldriver.Element) error {
	list, err := d.Find(entities.CSS("div.suggestions ul"))
	if err != nil {
		return err
	}
	typed := strings.ToLower(input.Value())
	if len([]rune(typed)) < 3 {
		return list.SetInnerHTML("")
	}
	var items strings.Builder
	for _, country := range DeliveryCountries {
		if strings.HasPrefix(strings.ToLower(country), typed) {
			fmt.Fprintf(&items, `<li><a>%s</a></li>`, html.EscapeString(country))
		}
	}
	return list.SetInnerHTML(items.String())
}

func amount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
