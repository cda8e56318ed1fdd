package source

import (
	"math/bits"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/twtxwydavid/hibernate-orm/internal/common"
	"github.com/twtxwydavid/hibernate-orm/internal/match"
)

// CascadeStyle is one named cascade behavior.
type CascadeStyle uint16

const (
	CascadeNone CascadeStyle = 1 << iota
	CascadeAll
	CascadeAllDeleteOrphan
	CascadeSaveUpdate
	CascadePersist
	CascadeMerge
	CascadeDelete
	CascadeDeleteOrphan
	CascadeLock
	CascadeRefresh
	CascadeEvict
	CascadeReplicate
)

var cascadeStyleNames = []struct {
	style CascadeStyle
	name  string
}{
	{CascadeNone, "none"},
	{CascadeAll, "all"},
	{CascadeAllDeleteOrphan, "all-delete-orphan"},
	{CascadeSaveUpdate, "save-update"},
	{CascadePersist, "persist"},
	{CascadeMerge, "merge"},
	{CascadeDelete, "delete"},
	{CascadeDeleteOrphan, "delete-orphan"},
	{CascadeLock, "lock"},
	{CascadeRefresh, "refresh"},
	{CascadeEvict, "evict"},
	{CascadeReplicate, "replicate"},
}

// aliases accepted on input only
var cascadeStyleAliases = map[string]CascadeStyle{
	"remove": CascadeDelete,
}

// String returns the directive name of the style.
func (s CascadeStyle) String() string {
	for _, n := range cascadeStyleNames {
		if n.style == s {
			return n.name
		}
	}

	return common.UnknownStr
}

// CascadeStyleNames returns every recognized directive name.
func CascadeStyleNames() []string {
	names := make([]string, 0, len(cascadeStyleNames)+len(cascadeStyleAliases))
	for _, n := range cascadeStyleNames {
		names = append(names, n.name)
	}

	for alias := range cascadeStyleAliases {
		names = append(names, alias)
	}

	return names
}

// ParseCascadeStyle looks up a single directive name (case-insensitive).
func ParseCascadeStyle(name string) (CascadeStyle, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, n := range cascadeStyleNames {
		if n.name == name {
			return n.style, true
		}
	}

	s, ok := cascadeStyleAliases[name]

	return s, ok
}

// CascadeStyles is an unordered set of cascade styles. Adding a style twice
// has no effect.
type CascadeStyles uint16

// With returns the set plus s.
func (c CascadeStyles) With(s CascadeStyle) CascadeStyles {
	return c | CascadeStyles(s)
}

// Has reports whether s is in the set.
func (c CascadeStyles) Has(s CascadeStyle) bool {
	return c&CascadeStyles(s) != 0
}

// Len returns the number of styles in the set.
func (c CascadeStyles) Len() int {
	return bits.OnesCount16(uint16(c))
}

// Styles returns the members in declaration order of the constants.
func (c CascadeStyles) Styles() []CascadeStyle {
	out := make([]CascadeStyle, 0, c.Len())
	for _, n := range cascadeStyleNames {
		if c.Has(n.style) {
			out = append(out, n.style)
		}
	}

	return out
}

// Names returns the directive names of the members.
func (c CascadeStyles) Names() []string {
	styles := c.Styles()

	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}

	return names
}

func (c CascadeStyles) String() string {
	return strings.Join(c.Names(), ",")
}

// DefaultCascadeCacheSize bounds the number of distinct directives remembered
// by a CascadeInterpreter.
const DefaultCascadeCacheSize = 256

// CascadeInterpreter turns cascade directive strings into CascadeStyles.
// Successful interpretations are memoized; a metadata build sees the same few
// directives on hundreds of attributes.
type CascadeInterpreter struct {
	cache *lru.Cache[string, CascadeStyles]
}

// NewCascadeInterpreter creates an interpreter caching up to size directives.
func NewCascadeInterpreter(size int) (*CascadeInterpreter, error) {
	if size <= 0 {
		size = DefaultCascadeCacheSize
	}

	cache, err := lru.New[string, CascadeStyles](size)
	if err != nil {
		return nil, err
	}

	return &CascadeInterpreter{cache: cache}, nil
}

// Interpret parses a comma separated directive such as "save-update, delete".
// Unknown names fail with a MappingError located at origin. A nil
// interpreter works without memoization.
func (ci *CascadeInterpreter) Interpret(directive string, origin Origin) (CascadeStyles, error) {
	key := strings.ToLower(strings.TrimSpace(directive))
	if ci != nil {
		if styles, ok := ci.cache.Get(key); ok {
			return styles, nil
		}
	}

	var styles CascadeStyles

	for _, token := range common.SplitList(key) {
		s, ok := ParseCascadeStyle(token)
		if !ok {
			err := NewMappingError(origin, "Unsupported cascade style: %s", token)
			if hint := match.Closest(token, CascadeStyleNames()); hint != "" {
				err.Message += " (did you mean " + hint + "?)"
			}

			return 0, err
		}

		styles = styles.With(s)
	}

	if ci != nil {
		ci.cache.Add(key, styles)
	}

	return styles, nil
}
