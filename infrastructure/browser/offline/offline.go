// Package offline replays the practice storefronts on the in-memory driver.
// Every screen is served from embedded markup and the handlers registered
// here stand in for the sites' JavaScript, so journeys run without a browser.
package offline

import (
	"embed"
	"time"

	"ui_automation/infrastructure/browser/htmldriver"

	"github.com/pkg/errors"
)

//go:embed site/*.html
var site embed.FS

const (
	PracticeURL = "https://rahulshettyacademy.com/AutomationPractice/"
	AcademyURL  = "https://rahulshettyacademy.com/"
	ShopURL     = "https://rahulshettyacademy.com/angularpractice/shop"

	GreenKartURL         = "https://rahulshettyacademy.com/seleniumPractise/#/"
	GreenKartCartURL     = GreenKartURL + "cart"
	GreenKartDeliveryURL = GreenKartURL + "country"
)

// RedirectDelay is how long the GreenKart confirmation stays before returning to the shop
var RedirectDelay = time.Second

// New - creates a driver serving every site
func New() (*htmldriver.Driver, error) {
	d := htmldriver.New()
	if err := Install(d); err != nil {
		return nil, err
	}
	return d, nil
}

// Install - registers the pages and behaviour of every site on d
func Install(d *htmldriver.Driver) error {
	for _, install := range []func(*htmldriver.Driver) error{Practice, ProtoCommerce, GreenKart} {
		if err := install(d); err != nil {
			return err
		}
	}
	return nil
}

func addPage(d *htmldriver.Driver, url, file string) error {
	source, err := site.ReadFile("site/" + file)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s", file)
	}
	d.AddPage(url, string(source))
	return nil
}
