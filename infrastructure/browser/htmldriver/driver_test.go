package htmldriver

import (
	"strconv"
	"testing"
	"time"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `<!DOCTYPE html>
<html><head><title> Fixture Page </title></head>
<body>
  <form>
    <input type="radio" name="group" value="radio1">
    <input type="radio" name="group" value="radio2">
    <input type="checkbox" id="check" name="check">
    <input type="text" id="short" maxlength="3">
    <input type="text" id="name" name="name" value="preset">
    <input type="text" id="hidden-box" style="display: none">
    <input type="text" id="disabled-box" disabled>
    <select id="pick"><option value="">Select</option><option value="b">Beta</option></select>
  </form>
  <div class="menu" hidden><a href="#top">Top</a></div>
  <p id="para">  Hello
     <b>there</b>  <span style="display:none">ghost</span></p>
  <a id="link" href="https://example.com/doc">Free   Access</a>
  <table id="grid"><tr><th>A</th><th>B</th></tr><tr><td>1</td><td>2</td></tr></table>
  <iframe id="frame" srcdoc="&lt;a id=&quot;inner&quot; href=&quot;/x&quot;&gt;Inside&lt;/a&gt;"></iframe>
</body></html>`

func newLoaded(t *testing.T) *Driver {
	t.Helper()
	d := New()
	require.NoError(t, d.Load("https://fixture.test/", fixture))
	return d
}

func TestGetUnknownPage(t *testing.T) {
	d := New()
	assert.Error(t, d.Get("https://nowhere.test/"))
}

func TestTitleAndURL(t *testing.T) {
	d := newLoaded(t)

	title, err := d.Title()
	require.NoError(t, err)
	assert.Equal(t, "Fixture Page", title)

	url, err := d.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, "https://fixture.test/", url)
}

func TestFindByStrategy(t *testing.T) {
	d := newLoaded(t)

	tests := []struct {
		name  string
		by    string
		value string
		count int
	}{
		{"id", entities.ByID, "check", 1},
		{"name", entities.ByName, "group", 2},
		{"css", entities.ByCSSSelector, "input[value='radio2']", 1},
		{"xpath", entities.ByXPath, "//a[text()='Top']", 1},
		{"class", entities.ByClassName, "menu", 1},
		{"tag", entities.ByTagName, "option", 2},
		{"link text collapses whitespace", entities.ByLinkText, "Free Access", 1},
		{"partial link text", entities.ByPartialLinkText, "Free", 1},
		{"headings", entities.ByCSSSelector, "tr:first-child th", 2},
		{"body rows", entities.ByCSSSelector, "tr:nth-child(n+2) td", 2},
		{"missing", entities.ByID, "nope", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := d.FindElements(tt.by, tt.value)
			require.NoError(t, err)
			assert.Len(t, found, tt.count)
		})
	}
}

func TestFindElementMissing(t *testing.T) {
	d := newLoaded(t)

	_, err := d.FindElement(entities.ByID, "nope")
	assert.ErrorIs(t, err, entities.ErrNoSuchElement)
	assert.ErrorIs(t, err, entities.ErrNotFound)

	_, err = d.FindElement("shadow", "x")
	assert.Error(t, err)
}

func TestInvalidSelectorIsReported(t *testing.T) {
	d := newLoaded(t)

	for by, value := range map[string]string{
		entities.ByCSSSelector: "div[class=",
		entities.ByXPath:       "//div[@class=",
	} {
		_, err := d.FindElement(by, value)
		require.Error(t, err, by)
		assert.Contains(t, err.Error(), "invalid selector", by)
		assert.NotErrorIs(t, err, entities.ErrNoSuchElement, by)

		_, err = d.FindElements(by, value)
		assert.Error(t, err, by)
	}
}

func TestRadioClickIsExclusive(t *testing.T) {
	d := newLoaded(t)
	first, err := d.FindElement(entities.ByCSSSelector, "input[value='radio1']")
	require.NoError(t, err)
	second, err := d.FindElement(entities.ByCSSSelector, "input[value='radio2']")
	require.NoError(t, err)

	require.NoError(t, first.Click())
	require.NoError(t, second.Click())

	selected, err := first.IsSelected()
	require.NoError(t, err)
	assert.False(t, selected)
	selected, err = second.IsSelected()
	require.NoError(t, err)
	assert.True(t, selected)
}

func TestCheckboxToggles(t *testing.T) {
	d := newLoaded(t)
	box, err := d.FindElement(entities.ByID, "check")
	require.NoError(t, err)

	require.NoError(t, box.Click())
	checked, _ := box.IsSelected()
	assert.True(t, checked)

	require.NoError(t, box.Click())
	checked, _ = box.IsSelected()
	assert.False(t, checked)
}

func TestTypingHonoursMaxLength(t *testing.T) {
	d := newLoaded(t)
	box, err := d.FindElement(entities.ByID, "short")
	require.NoError(t, err)

	require.NoError(t, box.SendKeys("abcdef"))
	value, err := box.GetAttribute("value")
	require.NoError(t, err)
	assert.Equal(t, "abc", value)
}

func TestClearThenType(t *testing.T) {
	d := newLoaded(t)
	box, err := d.FindElement(entities.ByID, "name")
	require.NoError(t, err)

	require.NoError(t, box.Clear())
	require.NoError(t, box.SendKeys("Rahul"))
	value, _ := box.GetAttribute("value")
	assert.Equal(t, "Rahul", value)
}

func TestHiddenElementsAreNotInteractable(t *testing.T) {
	d := newLoaded(t)
	box, err := d.FindElement(entities.ByID, "hidden-box")
	require.NoError(t, err)

	shown, err := box.IsDisplayed()
	require.NoError(t, err)
	assert.False(t, shown)
	assert.Error(t, box.SendKeys("x"))

	top, err := d.FindElement(entities.ByXPath, "//a[text()='Top']")
	require.NoError(t, err)
	text, err := top.Text()
	require.NoError(t, err)
	assert.Empty(t, text)
	assert.Error(t, top.Click())
}

func TestDisabledElement(t *testing.T) {
	d := newLoaded(t)
	box, err := d.FindElement(entities.ByID, "disabled-box")
	require.NoError(t, err)

	enabled, err := box.IsEnabled()
	require.NoError(t, err)
	assert.False(t, enabled)
}

func TestTextRendering(t *testing.T) {
	d := newLoaded(t)
	para, err := d.FindElement(entities.ByID, "para")
	require.NoError(t, err)

	text, err := para.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello there", text)

	raw, err := para.GetAttribute("textContent")
	require.NoError(t, err)
	assert.Contains(t, raw, "ghost")
}

func TestSelectOption(t *testing.T) {
	d := newLoaded(t)
	sel, err := d.FindElement(entities.ByID, "pick")
	require.NoError(t, err)

	value, _ := sel.GetAttribute("value")
	assert.Equal(t, "", value)

	option, err := sel.FindElement(entities.ByXPath, "//option[text()='Beta']")
	require.NoError(t, err)
	require.NoError(t, option.Click())

	value, _ = sel.GetAttribute("value")
	assert.Equal(t, "b", value)
}

func TestHandlersMutateDocument(t *testing.T) {
	d := newLoaded(t)
	d.Handle(Click, entities.ID("check"), func(d *Driver, el *Element) error {
		menu, err := d.Find(entities.ClassName("menu"))
		if err != nil {
			return err
		}
		menu.RemoveAttribute("hidden")
		return nil
	})

	box, err := d.FindElement(entities.ByID, "check")
	require.NoError(t, err)
	require.NoError(t, box.Click())

	top, err := d.FindElement(entities.ByLinkText, "Top")
	require.NoError(t, err)
	shown, _ := top.IsDisplayed()
	assert.True(t, shown)
}

func TestHandleOnIsScopedToPage(t *testing.T) {
	d := newLoaded(t)
	fired := 0
	d.HandleOn("https://other.test/", Click, entities.ID("check"), func(d *Driver, el *Element) error {
		fired++
		return nil
	})

	box, err := d.FindElement(entities.ByID, "check")
	require.NoError(t, err)
	require.NoError(t, box.Click())
	assert.Zero(t, fired)

	d.HandleOn("https://fixture.test/", Click, entities.ID("check"), func(d *Driver, el *Element) error {
		fired++
		return nil
	})
	require.NoError(t, box.Click())
	assert.Equal(t, 1, fired)
}

func TestRemovedElementIsStale(t *testing.T) {
	d := newLoaded(t)
	link, err := d.Find(entities.ID("link"))
	require.NoError(t, err)

	link.Remove()
	_, err = link.Text()
	assert.ErrorIs(t, err, entities.ErrStaleElement)
}

func TestEnterKeyFiresHandler(t *testing.T) {
	d := newLoaded(t)
	submitted := ""
	d.Handle(Enter, entities.ID("name"), func(d *Driver, el *Element) error {
		submitted = el.Value()
		return nil
	})

	box, err := d.FindElement(entities.ByID, "name")
	require.NoError(t, err)
	require.NoError(t, box.Clear())
	require.NoError(t, box.SendKeys("2"+entities.ReturnKey))
	assert.Equal(t, "2", submitted)
}

func TestSwitchFrame(t *testing.T) {
	d := newLoaded(t)

	_, err := d.FindElement(entities.ByID, "inner")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	frame, err := d.FindElement(entities.ByID, "frame")
	require.NoError(t, err)
	require.NoError(t, d.SwitchFrame(frame))

	inner, err := d.FindElement(entities.ByID, "inner")
	require.NoError(t, err)
	text, _ := inner.Text()
	assert.Equal(t, "Inside", text)

	_, err = d.FindElement(entities.ByID, "link")
	assert.ErrorIs(t, err, entities.ErrNotFound)

	require.NoError(t, d.SwitchFrame(nil))
	_, err = d.FindElement(entities.ByID, "link")
	assert.NoError(t, err)

	_, err = inner.Text()
	assert.ErrorIs(t, err, entities.ErrStaleElement)
}

func TestSwitchFrameRejectsNonFrame(t *testing.T) {
	d := newLoaded(t)
	link, err := d.FindElement(entities.ByID, "link")
	require.NoError(t, err)
	assert.ErrorIs(t, d.SwitchFrame(link), entities.ErrNotFound)
}

func TestScripts(t *testing.T) {
	d := newLoaded(t)
	d.SetDocumentSize(800, 3000)

	height, err := d.ExecuteScript("return document.body.scrollHeight;", nil)
	require.NoError(t, err)
	assert.Equal(t, float64(3000), height)

	_, err = d.ExecuteScript("window.scrollTo(0, 5000);", nil)
	require.NoError(t, err)
	_, y := d.ScrollPosition()
	assert.Equal(t, 3000, y)

	d.HandleScript("return 'custom';", func(d *Driver, args []interface{}) (interface{}, error) {
		return "custom", nil
	})
	out, err := d.ExecuteScript("  return 'custom'  ", nil)
	require.NoError(t, err)
	assert.Equal(t, "custom", out)

	_, err = d.ExecuteScript("alert(1)", nil)
	assert.Error(t, err)
}

func TestWaitWithTimeout(t *testing.T) {
	d := newLoaded(t)

	calls := 0
	err := d.WaitWithTimeout(func(interfaces.Driver) (bool, error) {
		calls++
		return calls == 3, nil
	}, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)

	err = d.WaitWithTimeout(func(interfaces.Driver) (bool, error) {
		return false, nil
	}, 30*time.Millisecond)
	assert.Error(t, err)
}

func TestQuit(t *testing.T) {
	d := newLoaded(t)
	require.NoError(t, d.Quit())
	_, err := d.Title()
	assert.Error(t, err)
}

func TestRedirect(t *testing.T) {
	d := newLoaded(t)
	d.AddPage("https://fixture.test/home", `<html><head><title>Home</title></head><body></body></html>`)

	d.Redirect("https://fixture.test/home", 30*time.Millisecond)
	current, err := d.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, "https://fixture.test/", current)

	err = d.WaitWithTimeout(func(d interfaces.Driver) (bool, error) {
		url, err := d.CurrentURL()
		return url == "https://fixture.test/home", err
	}, time.Second)
	require.NoError(t, err)
	title, err := d.Title()
	require.NoError(t, err)
	assert.Equal(t, "Home", title)
}

func TestNavigationCancelsRedirect(t *testing.T) {
	d := newLoaded(t)
	d.AddPage("https://fixture.test/home", `<html><body></body></html>`)

	d.Redirect("https://fixture.test/home", 0)
	require.NoError(t, d.Get("https://fixture.test/"))
	current, err := d.CurrentURL()
	require.NoError(t, err)
	assert.Equal(t, "https://fixture.test/", current)
}

func TestParentAndAppendHTML(t *testing.T) {
	d := newLoaded(t)

	bold, err := d.Find(entities.TagName("b"))
	require.NoError(t, err)
	para := bold.Parent()
	require.NotNil(t, para)
	id, err := para.GetAttribute("id")
	require.NoError(t, err)
	assert.Equal(t, "para", id)

	require.NoError(t, para.AppendHTML(`<i id="added">again</i>`))
	text, err := para.Text()
	require.NoError(t, err)
	assert.Equal(t, "Hello there again", text)
}

func TestOnLoad(t *testing.T) {
	d := New()
	d.AddPage("https://fixture.test/", `<html><body><span id="visits">0</span></body></html>`)
	visits := 0
	d.OnLoad("https://fixture.test/", func(d *Driver) error {
		visits++
		el, err := d.Find(entities.ID("visits"))
		if err != nil {
			return err
		}
		el.SetText(strconv.Itoa(visits))
		return nil
	})

	for want := 1; want <= 2; want++ {
		require.NoError(t, d.Get("https://fixture.test/"))
		el, err := d.Find(entities.ID("visits"))
		require.NoError(t, err)
		text, err := el.Text()
		require.NoError(t, err)
		assert.Equal(t, strconv.Itoa(want), text)
	}
}
