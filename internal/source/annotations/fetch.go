package annotations

import (
	"maps"
	"slices"
	"strings"

	"github.com/twtxwydavid/hibernate-orm/internal/annotation"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

var (
	fetchTypes      = []string{"LAZY", "EAGER"}
	lazyToOneValues = []string{"FALSE", "PROXY", "NO_PROXY"}
	fetchModes      = []string{"JOIN", "SELECT"}
)

// jpaCascadeTypes maps association cascade types to cascade style names.
var jpaCascadeTypes = map[string]string{
	"ALL":     "all",
	"PERSIST": "persist",
	"MERGE":   "merge",
	"REMOVE":  "delete",
	"REFRESH": "refresh",
	"DETACH":  "evict",
}

// toOneFetchTiming: LazyToOne decides when present, then the association's
// Fetch type, then the laziness default.
func toOneFetchTiming(ctx source.BindingContext, assoc, lazyToOne *annotation.Instance) (source.FetchTiming, error) {
	if lazyToOne != nil {
		switch v := lazyToOne.Text(annotation.ValueKey); v {
		case "FALSE":
			return source.FetchImmediate, nil
		case "PROXY", "NO_PROXY":
			return source.FetchDelayed, nil
		default:
			return 0, unexpectedValue(ctx, lazyToOne, annotation.ValueKey, v, lazyToOneValues)
		}
	}

	switch v := assoc.Text("Fetch"); v {
	case "":
		if ctx.MappingDefaults().AssociationsLazy {
			return source.FetchDelayed, nil
		}

		return source.FetchImmediate, nil
	case "LAZY":
		return source.FetchDelayed, nil
	case "EAGER":
		return source.FetchImmediate, nil
	default:
		return 0, unexpectedValue(ctx, assoc, "Fetch", v, fetchTypes)
	}
}

// toOneFetchStyle: an explicit Fetch annotation wins, EAGER joins, anything
// else selects.
func toOneFetchStyle(ctx source.BindingContext, assoc, fetch *annotation.Instance) (source.FetchStyle, error) {
	if fetch != nil {
		switch v := fetch.Text(annotation.ValueKey); v {
		case "JOIN":
			return source.FetchStyleJoin, nil
		case "SELECT":
			return source.FetchStyleSelect, nil
		default:
			return 0, unexpectedValue(ctx, fetch, annotation.ValueKey, v, fetchModes)
		}
	}

	if assoc.Text("Fetch") == "EAGER" {
		return source.FetchStyleJoin, nil
	}

	return source.FetchStyleSelect, nil
}

func toOneFetchMode(fetch *annotation.Instance) source.FetchMode {
	switch fetch.Text(annotation.ValueKey) {
	case "JOIN":
		return source.FetchModeJoin
	case "SELECT":
		return source.FetchModeSelect
	default:
		return source.FetchModeDefault
	}
}

// cascadeDirective merges the association's cascade types with a Cascade
// annotation into one directive. "" leaves the default to the context.
func cascadeDirective(ctx source.BindingContext, assoc, cascade *annotation.Instance) (string, error) {
	var names []string

	for _, t := range assoc.Strings("Cascade") {
		name, ok := jpaCascadeTypes[t]
		if !ok {
			return "", unexpectedValue(ctx, assoc, "Cascade", t, slices.Sorted(maps.Keys(jpaCascadeTypes)))
		}

		names = append(names, name)
	}

	for _, t := range cascade.Strings(annotation.ValueKey) {
		names = append(names, strings.ReplaceAll(strings.ToLower(t), "_", "-"))
	}

	return strings.Join(names, ","), nil
}
