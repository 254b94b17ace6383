// Package practice models the Rahul Shetty Academy automation practice page
// and the academy landing page it embeds.
package practice

import (
	"ui_automation/application/controls"
	"ui_automation/application/pages"
	"ui_automation/domain/entities"
)

const (
	AutomationPracticeURL = "https://rahulshettyacademy.com/AutomationPractice/"
	AcademyURL            = "https://rahulshettyacademy.com/"
)

var practiceLocators = struct {
	Radiobutton        entities.Locator
	Countries          entities.Locator
	CountrySuggestions entities.Locator
	CountrySuggestion  entities.Locator
	Options            entities.Locator
	Checkbox           entities.Locator
	OpenWindowButton   entities.Locator
	OpenTabButton      entities.Locator
	AlertTextbox       entities.Locator
	AlertButton        entities.Locator
	ConfirmButton      entities.Locator
	CoursesTable       entities.Locator
	EmployeesTable     entities.Locator
	TotalAmountLabel   entities.Locator
	HideButton         entities.Locator
	ShowButton         entities.Locator
	HideShowTextbox    entities.Locator
	MouseHoverButton   entities.Locator
	MouseHoverTop      entities.Locator
	MouseHoverReload   entities.Locator
	CoursesFrame       entities.Locator
	BlinkingTextLink   entities.Locator
}{
	Radiobutton:        entities.CSS("input[value='radio%d']"),
	Countries:          entities.ID("autocomplete"),
	CountrySuggestions: entities.CSS("#ui-id-1 li"),
	CountrySuggestion:  entities.XPath("//li[@class='ui-menu-item']/div[text()='%s']"),
	Options:            entities.ID("dropdown-class-example"),
	Checkbox:           entities.ID("checkBoxOption%d"),
	OpenWindowButton:   entities.ID("openwindow"),
	OpenTabButton:      entities.ID("opentab"),
	AlertTextbox:       entities.ID("name"),
	AlertButton:        entities.ID("alertbtn"),
	ConfirmButton:      entities.ID("confirmbtn"),
	CoursesTable:       entities.CSS(".table-display"),
	EmployeesTable:     entities.CSS(".tableFixHead table"),
	TotalAmountLabel:   entities.CSS(".totalAmount"),
	HideButton:         entities.ID("hide-textbox"),
	ShowButton:         entities.ID("show-textbox"),
	HideShowTextbox:    entities.ID("displayed-text"),
	MouseHoverButton:   entities.ID("mousehover"),
	MouseHoverTop:      entities.XPath("//a[text()='Top']"),
	MouseHoverReload:   entities.XPath("//a[text()='Reload']"),
	CoursesFrame:       entities.ID("courses-iframe"),
	BlinkingTextLink:   entities.CSS(".blinkingText"),
}

// AutomationPracticePage is a sandbox with one example of every basic control
type AutomationPracticePage struct {
	pages.BasePage
}

// NewAutomationPracticePage - creates page bound to the public practice page
func NewAutomationPracticePage(scope controls.Scope) *AutomationPracticePage {
	return NewAutomationPracticePageAt(scope, AutomationPracticeURL)
}

// NewAutomationPracticePageAt - creates page bound to url
func NewAutomationPracticePageAt(scope controls.Scope, url string) *AutomationPracticePage {
	return &AutomationPracticePage{BasePage: pages.NewBasePage(scope, url)}
}

// Radiobutton - returns radio button n, counted from 1
func (p *AutomationPracticePage) Radiobutton(n int) *controls.Radiobutton {
	return controls.NewRadiobutton(p.Scope, practiceLocators.Radiobutton.Format(n))
}

// CountriesDropdown - returns the country auto-suggest field
func (p *AutomationPracticePage) CountriesDropdown() *controls.DropdownDynamic {
	return controls.NewDropdownDynamic(p.Scope,
		practiceLocators.Countries,
		practiceLocators.CountrySuggestions,
		practiceLocators.CountrySuggestion,
	)
}

// OptionsDropdown - returns the static option select
func (p *AutomationPracticePage) OptionsDropdown() *controls.DropdownStatic {
	return controls.NewDropdownStatic(p.Scope, practiceLocators.Options)
}

// Checkbox - returns checkbox n, counted from 1
func (p *AutomationPracticePage) Checkbox(n int) *controls.Checkbox {
	return controls.NewCheckbox(p.Scope, practiceLocators.Checkbox.Format(n))
}

func (p *AutomationPracticePage) OpenWindowButton() *controls.Button {
	return controls.NewButton(p.Scope, practiceLocators.OpenWindowButton)
}

func (p *AutomationPracticePage) OpenTabButton() *controls.Button {
	return controls.NewButton(p.Scope, practiceLocators.OpenTabButton)
}

func (p *AutomationPracticePage) AlertTextbox() *controls.Textbox {
	return controls.NewTextbox(p.Scope, practiceLocators.AlertTextbox)
}

func (p *AutomationPracticePage) AlertButton() *controls.Button {
	return controls.NewButton(p.Scope, practiceLocators.AlertButton)
}

func (p *AutomationPracticePage) ConfirmButton() *controls.Button {
	return controls.NewButton(p.Scope, practiceLocators.ConfirmButton)
}

// CoursesTable - returns the static table whose first row holds the headings
func (p *AutomationPracticePage) CoursesTable() *controls.Table {
	return controls.NewTable(p.Scope, practiceLocators.CoursesTable, controls.HeadingsTableStrategy{})
}

// EmployeesTable - returns the fixed header table split into thead and tbody
func (p *AutomationPracticePage) EmployeesTable() *controls.Table {
	return controls.NewTable(p.Scope, practiceLocators.EmployeesTable, controls.HeaderBodyTableStrategy{})
}

// TotalAmountLabel - returns the sum printed under the fixed header table
func (p *AutomationPracticePage) TotalAmountLabel() *controls.Label {
	return controls.NewLabel(p.Scope, practiceLocators.TotalAmountLabel)
}

func (p *AutomationPracticePage) HideButton() *controls.Button {
	return controls.NewButton(p.Scope, practiceLocators.HideButton)
}

func (p *AutomationPracticePage) ShowButton() *controls.Button {
	return controls.NewButton(p.Scope, practiceLocators.ShowButton)
}

func (p *AutomationPracticePage) HideShowTextbox() *controls.Textbox {
	return controls.NewTextbox(p.Scope, practiceLocators.HideShowTextbox)
}

func (p *AutomationPracticePage) MouseHoverButton() *controls.Button {
	return controls.NewButton(p.Scope, practiceLocators.MouseHoverButton)
}

// MouseHoverTopLink - returns the menu entry revealed by hovering
func (p *AutomationPracticePage) MouseHoverTopLink() *controls.Link {
	return controls.NewLink(p.Scope, practiceLocators.MouseHoverTop)
}

func (p *AutomationPracticePage) MouseHoverReloadLink() *controls.Link {
	return controls.NewLink(p.Scope, practiceLocators.MouseHoverReload)
}

// CoursesFrame - returns the iframe embedding the academy landing page
func (p *AutomationPracticePage) CoursesFrame() *controls.IFrame[*AcademyPage] {
	return controls.NewIFrame(p.Scope, practiceLocators.CoursesFrame, func(scope controls.Scope) *AcademyPage {
		return NewAcademyPageAt(scope, p.URL())
	})
}

func (p *AutomationPracticePage) BlinkingTextLink() *controls.Link {
	return controls.NewLink(p.Scope, practiceLocators.BlinkingTextLink)
}

// AcademyPage is the academy landing page, also rendered inside the practice page iframe
type AcademyPage struct {
	pages.BasePage
}

// NewAcademyPage - creates page bound to the academy landing page
func NewAcademyPage(scope controls.Scope) *AcademyPage {
	return NewAcademyPageAt(scope, AcademyURL)
}

// NewAcademyPageAt - creates page bound to url
func NewAcademyPageAt(scope controls.Scope, url string) *AcademyPage {
	return &AcademyPage{BasePage: pages.NewBasePage(scope, url)}
}

// CoursesLink - returns the navigation link to the course catalogue
func (p *AcademyPage) CoursesLink() *controls.Link {
	return controls.NewLink(p.Scope, entities.XPath("//a[text()='Courses']"))
}
