package exception

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bytedance/gg/gptr"
)

// Callback handles an error and returns the process exit code.
type Callback func(err error) int

// Entry is one validated (predicate, callback, priority) handler.
type Entry struct {
	Predicate Predicate
	Callback  Callback
	// Priority is nil when the handler was contributed without one.
	Priority *int
}

// Rank is the priority the chain is ordered by; an omitted priority
// ranks as 0.
func (e Entry) Rank() int {
	return gptr.Indirect(e.Priority)
}

func (e Entry) String() string {
	if e.Priority == nil {
		return fmt.Sprintf("%s (default priority)", e.Predicate)
	}
	return fmt.Sprintf("%s (priority %d)", e.Predicate, *e.Priority)
}

// Contribution is what a plugin's exception handler hook returns: a single
// handler built with Handle, or a list built with Handlers.
type Contribution interface {
	handlerContribution()
}

type rawHandler struct {
	predicate Predicate
	callback  Callback
	priority  *int
	// extra holds priorities beyond the first, which make the handler
	// malformed.
	extra []int
}

type handlerList []Contribution

func (rawHandler) handlerContribution()  {}
func (handlerList) handlerContribution() {}

// Handle contributes one handler. At most one priority may be given;
// without one the priority is 0. Higher priorities are consulted first.
func Handle(p Predicate, cb Callback, priority ...int) Contribution {
	h := rawHandler{predicate: p, callback: cb}
	if len(priority) > 0 {
		h.priority = gptr.Of(priority[0])
		h.extra = priority[1:]
	}
	return h
}

// Handlers contributes several handlers at once.
func Handlers(items ...Contribution) Contribution {
	return handlerList(items)
}

// ConfigError reports a malformed handler contribution.
type ConfigError struct {
	Index  int
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("exception handler #%d: %s", e.Index, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// ErrNestedHandlers is wrapped by a ConfigError when a handler list
// contains another list.
var ErrNestedHandlers = errors.New("handler lists may only be nested one level")

func flatten(raws []Contribution) ([]rawHandler, error) {
	var out []rawHandler
	for _, c := range raws {
		switch v := c.(type) {
		case nil:
		case rawHandler:
			out = append(out, v)
		case handlerList:
			for _, item := range v {
				switch h := item.(type) {
				case nil:
				case rawHandler:
					out = append(out, h)
				default:
					return nil, &ConfigError{Index: len(out), Reason: ErrNestedHandlers.Error(), Err: ErrNestedHandlers}
				}
			}
		default:
			panic(fmt.Sprintf("exception: unhandled contribution type %T", c))
		}
	}
	return out, nil
}

func validate(i int, h rawHandler) (*Entry, error) {
	if !h.predicate.Valid() {
		return nil, &ConfigError{Index: i, Reason: "predicate must be an error category or a function"}
	}
	if h.callback == nil {
		return nil, &ConfigError{Index: i, Reason: "callback must not be nil"}
	}
	if len(h.extra) > 0 {
		all := append([]int{gptr.Indirect(h.priority)}, h.extra...)
		return nil, &ConfigError{Index: i, Reason: fmt.Sprintf("at most one priority may be given, got %v", all)}
	}
	return &Entry{
		Predicate: h.predicate,
		Callback:  h.callback,
		Priority:  h.priority,
	}, nil
}

// Chain is the priority-ordered list of handlers.
type Chain struct {
	entries []Entry
}

// Compile flattens one level of handler lists, validates every handler and
// orders them by descending priority. Handlers of equal priority keep the
// order they were contributed in.
func Compile(raws []Contribution) (*Chain, error) {
	flat, err := flatten(raws)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(flat))
	for i, h := range flat {
		e, err := validate(i, h)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Rank() > entries[j].Rank()
	})
	return &Chain{entries: entries}, nil
}

// Resolve returns the callback of the first handler whose predicate
// matches err.
func (c *Chain) Resolve(err error) (Callback, bool) {
	if c == nil || err == nil {
		return nil, false
	}
	for _, e := range c.entries {
		if e.Predicate.Match(err) {
			return e.Callback, true
		}
	}
	return nil, false
}

// Entries returns a copy of the ordered chain.
func (c *Chain) Entries() []Entry {
	if c == nil {
		return nil
	}
	out := make([]Entry, len(c.entries))
	copy(out, c.entries)
	return out
}

// Len returns the number of handlers in the chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}
