package practice

import (
	"context"
	"testing"
	"time"

	"ui_automation/application/controls"
	"ui_automation/domain/entities"
	"ui_automation/infrastructure/browser/htmldriver"
	"ui_automation/infrastructure/browser/offline"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPracticePage(t *testing.T) (*AutomationPracticePage, *htmldriver.Driver) {
	t.Helper()
	d, err := offline.New()
	require.NoError(t, err)

	scope := controls.NewScope(d, nil)
	scope.PresenceTimeout = 100 * time.Millisecond
	scope.SuggestionTimeout = 100 * time.Millisecond
	page := NewAutomationPracticePage(scope)
	require.NoError(t, page.GoTo(context.Background()))
	return page, d
}

func TestTitle(t *testing.T) {
	page, _ := newPracticePage(t)
	title, err := page.Title(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Practice Page", title)
}

func TestRadiobuttonsAreExclusive(t *testing.T) {
	page, _ := newPracticePage(t)
	ctx := context.Background()

	states := func() []bool {
		var got []bool
		for n := 1; n <= 3; n++ {
			checked, err := page.Radiobutton(n).IsChecked(ctx)
			require.NoError(t, err)
			got = append(got, checked)
		}
		return got
	}
	assert.Equal(t, []bool{false, false, false}, states())

	for n := 1; n <= 3; n++ {
		require.NoError(t, page.Radiobutton(n).Click(ctx))
		want := []bool{false, false, false}
		want[n-1] = true
		assert.Equal(t, want, states())
	}
}

func TestCountriesDropdown(t *testing.T) {
	page, _ := newPracticePage(t)
	ctx := context.Background()
	countries := page.CountriesDropdown()

	placeholder, err := countries.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Type to Select Countries", placeholder)

	require.NoError(t, countries.Select(ctx, "Poland"))
	text, err := countries.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Poland", text)

	require.NoError(t, countries.SelectByPartialValue(ctx, "India", 3))
	text, err = countries.Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "India", text)

	err = countries.Select(ctx, "123")
	assert.ErrorIs(t, err, entities.ErrNoSuchElement)
}

func TestOptionsDropdown(t *testing.T) {
	page, _ := newPracticePage(t)
	ctx := context.Background()

	text, err := page.OptionsDropdown().Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Select", text)

	require.NoError(t, page.OptionsDropdown().Select(ctx, "Option2"))
	text, err = page.OptionsDropdown().Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Option2", text)
}

func TestTables(t *testing.T) {
	page, _ := newPracticePage(t)
	ctx := context.Background()

	headers, err := page.CoursesTable().Headers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Instructor", "Course", "Price"}, headers)

	rows, err := page.CoursesTable().Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Price", rows[0][2])
	assert.Equal(t, "Appium (Selenium) - Mobile Automation Testing from Scratch", rows[3][1])

	employees, err := page.EmployeesTable().Rows(ctx)
	require.NoError(t, err)
	assert.Equal(t, "City", employees[0][2])
	assert.Equal(t, "Engineer", employees[5][1])

	label, err := page.TotalAmountLabel().Text(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Total Amount Collected: 296", label)
}

func TestHideShow(t *testing.T) {
	page, _ := newPracticePage(t)
	ctx := context.Background()
	box := page.HideShowTextbox()

	for _, step := range []struct {
		button *controls.Button
		want   bool
	}{
		{page.HideButton(), false},
		{page.ShowButton(), true},
	} {
		require.NoError(t, step.button.Click(ctx))
		displayed, err := box.IsDisplayed(ctx)
		require.NoError(t, err)
		assert.Equal(t, step.want, displayed)
	}
}

func TestMouseHover(t *testing.T) {
	page, d := newPracticePage(t)
	ctx := context.Background()

	top, err := page.MouseHoverTopLink().IsDisplayed(ctx)
	require.NoError(t, err)
	assert.False(t, top)

	require.NoError(t, page.Scroll(ctx, 0, 1800))
	require.NoError(t, page.MouseHoverButton().HoverOver(ctx))
	top, err = page.MouseHoverTopLink().IsDisplayed(ctx)
	require.NoError(t, err)
	assert.True(t, top)

	require.NoError(t, page.MouseHoverTopLink().Click(ctx))
	_, y := d.ScrollPosition()
	assert.Zero(t, y)

	require.NoError(t, page.Checkbox(3).Select(ctx))
	require.NoError(t, page.MouseHoverButton().HoverOver(ctx))
	require.NoError(t, page.MouseHoverReloadLink().Click(ctx))
	checked, err := page.Checkbox(3).IsChecked(ctx)
	require.NoError(t, err)
	assert.False(t, checked)
}

func TestCoursesFrame(t *testing.T) {
	page, _ := newPracticePage(t)
	ctx := context.Background()
	outside := NewAcademyPage(page.Scope)

	_, err := outside.CoursesLink().IsPresent(ctx)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	err = page.CoursesFrame().Within(ctx, func(academy *AcademyPage) error {
		href, err := academy.CoursesLink().Href(ctx)
		if err != nil {
			return err
		}
		assert.Equal(t, "https://courses.rahulshettyacademy.com/courses", href)
		return nil
	})
	require.NoError(t, err)

	_, err = outside.CoursesLink().IsPresent(ctx)
	assert.ErrorIs(t, err, entities.ErrNotFound)
}
