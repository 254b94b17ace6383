package controls

import (
	"context"
	"fmt"

	"ui_automation/domain/entities"
	"ui_automation/domain/interfaces"
)

// Table reads a <table> through the strategy matching its markup
type Table struct {
	control
	strategy interfaces.TableStrategy
}

// NewTable - creates table control read with strategy
func NewTable(scope Scope, locator entities.Locator, strategy interfaces.TableStrategy) *Table {
	return &Table{control: newControl(scope, locator), strategy: strategy}
}

// Headers - returns the header cells
func (t *Table) Headers(ctx context.Context) ([]string, error) {
	el, err := t.element()
	if err != nil {
		return nil, err
	}
	return t.strategy.Headers(el)
}

// Body - returns the body cells row by row
func (t *Table) Body(ctx context.Context) ([][]string, error) {
	el, err := t.element()
	if err != nil {
		return nil, err
	}
	return t.strategy.Body(el)
}

// Rows - returns the header row followed by the body rows
func (t *Table) Rows(ctx context.Context) ([][]string, error) {
	headers, err := t.Headers(ctx)
	if err != nil {
		return nil, err
	}
	body, err := t.Body(ctx)
	if err != nil {
		return nil, err
	}
	if len(headers) == 0 {
		return body, nil
	}
	return append([][]string{headers}, body...), nil
}

// SimpleTableStrategy reads tables without header cells
type SimpleTableStrategy struct{}

func (SimpleTableStrategy) Headers(table interfaces.Element) ([]string, error) {
	return nil, nil
}

func (SimpleTableStrategy) Body(table interfaces.Element) ([][]string, error) {
	return rows(table, "tr")
}

// HeadingsTableStrategy reads tables whose first row holds <th> cells
type HeadingsTableStrategy struct{}

func (HeadingsTableStrategy) Headers(table interfaces.Element) ([]string, error) {
	cells, err := table.FindElements(entities.ByCSSSelector, "tr:first-child th")
	if err != nil {
		return nil, err
	}
	return texts(cells)
}

func (HeadingsTableStrategy) Body(table interfaces.Element) ([][]string, error) {
	return rows(table, "tr:nth-child(n+2)")
}

// HeaderBodyTableStrategy reads tables split into <thead> and <tbody>
type HeaderBodyTableStrategy struct{}

func (HeaderBodyTableStrategy) Headers(table interfaces.Element) ([]string, error) {
	head, err := table.FindElement(entities.ByTagName, "thead")
	if err != nil {
		return nil, fmt.Errorf("table header: %w", err)
	}
	cells, err := head.FindElements(entities.ByTagName, "th")
	if err != nil {
		return nil, err
	}
	return texts(cells)
}

func (HeaderBodyTableStrategy) Body(table interfaces.Element) ([][]string, error) {
	body, err := table.FindElement(entities.ByTagName, "tbody")
	if err != nil {
		return nil, fmt.Errorf("table body: %w", err)
	}
	return rows(body, "tr")
}

// MixedTableStrategy stands for tables mixing <th> and <td> rows, which are not supported
type MixedTableStrategy struct{}

func (MixedTableStrategy) Headers(table interfaces.Element) ([]string, error) {
	return nil, fmt.Errorf("mixed table headers: %w", entities.ErrNotImplemented)
}

func (MixedTableStrategy) Body(table interfaces.Element) ([][]string, error) {
	return nil, fmt.Errorf("mixed table body: %w", entities.ErrNotImplemented)
}

func rows(scope interfaces.Element, rowSelector string) ([][]string, error) {
	found, err := scope.FindElements(entities.ByCSSSelector, rowSelector)
	if err != nil {
		return nil, err
	}
	result := make([][]string, 0, len(found))
	for _, row := range found {
		cells, err := row.FindElements(entities.ByTagName, "td")
		if err != nil {
			return nil, err
		}
		values, err := texts(cells)
		if err != nil {
			return nil, err
		}
		result = append(result, values)
	}
	return result, nil
}

func texts(elements []interfaces.Element) ([]string, error) {
	values := make([]string, 0, len(elements))
	for _, el := range elements {
		text, err := el.Text()
		if err != nil {
			return nil, err
		}
		values = append(values, text)
	}
	return values, nil
}

var (
	_ interfaces.TableStrategy = SimpleTableStrategy{}
	_ interfaces.TableStrategy = HeadingsTableStrategy{}
	_ interfaces.TableStrategy = HeaderBodyTableStrategy{}
	_ interfaces.TableStrategy = MixedTableStrategy{}
	_ interfaces.Control       = (*Table)(nil)
)
