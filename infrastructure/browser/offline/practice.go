package offline

import (
	"strings"

	"ui_automation/domain/entities"
	"ui_automation/infrastructure/browser/htmldriver"

	"golang.org/x/net/html"
)

// Countries offered by the practice page auto-suggest
var Countries = []string{
	"Austria", "Australia", "British Indian Ocean Territory", "France", "French Polynesia",
	"Germany", "India", "Indonesia", "Poland", "Portugal", "Spain", "United Kingdom (UK)",
	"United States (USA)",
}

// Practice - registers the automation practice page and the academy page it embeds
func Practice(d *htmldriver.Driver) error {
	if err := addPage(d, PracticeURL, "practice.html"); err != nil {
		return err
	}
	if err := addPage(d, AcademyURL, "academy.html"); err != nil {
		return err
	}

	d.OnLoad(PracticeURL, func(d *htmldriver.Driver) error {
		d.SetDocumentSize(1280, 3200)
		return nil
	})
	d.HandleOn(PracticeURL, htmldriver.Input, entities.ID("autocomplete"), suggestCountries)
	d.HandleOn(PracticeURL, htmldriver.Click, entities.CSS("#ui-id-1 li div"), func(d *htmldriver.Driver, el *htmldriver.Element) error {
		input, err := d.Find(entities.ID("autocomplete"))
		if err != nil {
			return err
		}
		text, err := el.Text()
		if err != nil {
			return err
		}
		input.SetAttribute("value", text)
		return empty(d, entities.ID("ui-id-1"))
	})
	d.HandleOn(PracticeURL, htmldriver.Click, entities.ID("hide-textbox"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return setStyle(d, entities.ID("displayed-text"), "display: none;")
	})
	d.HandleOn(PracticeURL, htmldriver.Click, entities.ID("show-textbox"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return setStyle(d, entities.ID("displayed-text"), "")
	})
	d.HandleOn(PracticeURL, htmldriver.Hover, entities.ID("mousehover"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return setStyle(d, entities.ClassName("mouse-hover-content"), "")
	})
	d.HandleOn(PracticeURL, htmldriver.Click, entities.XPath("//a[text()='Top']"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		_, err := d.ExecuteScript("window.scrollTo(0, 0);", nil)
		return err
	})
	d.HandleOn(PracticeURL, htmldriver.Click, entities.XPath("//a[text()='Reload']"), func(d *htmldriver.Driver, _ *htmldriver.Element) error {
		return d.Get(PracticeURL)
	})
	return nil
}

// suggestCountries renders the jQuery UI menu once two characters are typed
func suggestCountries(d *htmldriver.Driver, el *htmldriver.Element) error {
	menu, err := d.Find(entities.ID("ui-id-1"))
	if err != nil {
		return err
	}
	typed := strings.ToLower(el.Value())
	if len([]rune(typed)) < 2 {
		return menu.SetInnerHTML("")
	}
	var items strings.Builder
	for _, country := range Countries {
		if strings.Contains(strings.ToLower(country), typed) {
			items.WriteString(`<li class="ui-menu-item"><div tabindex="-1" class="ui-menu-item-wrapper">`)
			items.WriteString(html.EscapeString(country))
			items.WriteString(`</div></li>`)
		}
	}
	return menu.SetInnerHTML(items.String())
}

func setStyle(d *htmldriver.Driver, locator entities.Locator, style string) error {
	el, err := d.Find(locator)
	if err != nil {
		return err
	}
	if style == "" {
		el.RemoveAttribute("style")
	} else {
		el.SetAttribute("style", style)
	}
	return nil
}

func empty(d *htmldriver.Driver, locator entities.Locator) error {
	el, err := d.Find(locator)
	if err != nil {
		return err
	}
	return el.SetInnerHTML("")
}
