package interfaces

import "context"

// Control is the contract shared by every page control
type Control interface {
	IsDisplayed(ctx context.Context) (bool, error)
	IsEnabled(ctx context.Context) (bool, error)
	IsPresent(ctx context.Context) (bool, error)
	Click(ctx context.Context) error
	HoverOver(ctx context.Context) error
	String() string
}

// TableStrategy extracts headers and body cells from a table element.
// Strategies are stateless and chosen when the table control is built.
type TableStrategy interface {
	Headers(table Element) ([]string, error)
	Body(table Element) ([][]string, error)
}
