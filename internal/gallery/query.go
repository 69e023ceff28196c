package gallery

import (
	"strings"
	"time"
)

// EffectKind tells the caller what to do after a query transition
type EffectKind int

const (
	// EffectNone requires no action
	EffectNone EffectKind = iota
	// EffectDebounce asks the caller to deliver Expire(Tag) after Delay
	EffectDebounce
	// EffectSearch asks the caller to start a search right away
	EffectSearch
)

// String returns the effect name
func (k EffectKind) String() string {
	switch k {
	case EffectDebounce:
		return "debounce"
	case EffectSearch:
		return "search"
	default:
		return "none"
	}
}

// Effect is the outcome of a QueryController transition
type Effect struct {
	Kind      EffectKind
	Term      string
	IsDefault bool
	Tag       int
	Delay     time.Duration
}

// QueryController owns the live query and its single debounce timer.
//
// The timer itself is not held here. Each keystroke bumps a generation tag and
// only an Expire carrying the current tag may trigger a search, which gives the
// same effect as cancelling and restarting one timer.
type QueryController struct {
	query        string
	tag          int
	debounce     time.Duration
	defaultQuery string
}

// NewQueryController creates a controller with the given fallback term and quiet period
func NewQueryController(defaultQuery string, debounce time.Duration) *QueryController {
	return &QueryController{
		debounce:     debounce,
		defaultQuery: defaultQuery,
	}
}

// Mount returns the unconditional fallback search issued at startup
func (c *QueryController) Mount() Effect {
	return c.fallback()
}

// SetQuery records a new input value
func (c *QueryController) SetQuery(q string) Effect {
	if q == c.query {
		return Effect{Kind: EffectNone}
	}
	c.query = q
	c.tag++

	if strings.TrimSpace(q) == "" {
		return c.fallback()
	}

	return Effect{
		Kind:  EffectDebounce,
		Term:  strings.TrimSpace(q),
		Tag:   c.tag,
		Delay: c.debounce,
	}
}

// Expire is called when the debounce timer tagged with tag fires.
// Superseded timers produce no effect.
func (c *QueryController) Expire(tag int) Effect {
	term := strings.TrimSpace(c.query)
	if tag != c.tag || term == "" {
		return Effect{Kind: EffectNone}
	}
	return Effect{Kind: EffectSearch, Term: term}
}

// Cancel invalidates any pending timer, as on teardown
func (c *QueryController) Cancel() {
	c.tag++
}

// Query returns the live input value
func (c *QueryController) Query() string {
	return c.query
}

// Tag returns the current debounce generation
func (c *QueryController) Tag() int {
	return c.tag
}

func (c *QueryController) fallback() Effect {
	return Effect{Kind: EffectSearch, Term: c.defaultQuery, IsDefault: true}
}
