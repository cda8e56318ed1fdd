package hbm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twtxwydavid/hibernate-orm/internal/mapping"
	"github.com/twtxwydavid/hibernate-orm/internal/source"
)

func contextWithLazy(lazy bool) source.BindingContext {
	defaults := source.DefaultMappingDefaults()
	defaults.AssociationsLazy = lazy

	return source.NewBindingContext(source.Origin{Type: source.OriginMappingDocument, Name: "test.hbm.yaml"}, defaults, nil)
}

func TestToOneFetchTiming(t *testing.T) {
	tests := []struct {
		name      string
		lazy      mapping.Selector
		fetch     mapping.Selector
		outerJoin mapping.Selector
		lazyByDef bool
		expected  source.FetchTiming
	}{
		{name: "default lazy", lazyByDef: true, expected: source.FetchDelayed},
		{name: "default eager", lazyByDef: false, expected: source.FetchImmediate},
		{name: "fetch join", fetch: "join", lazyByDef: true, expected: source.FetchImmediate},
		{name: "fetch select", fetch: "select", lazyByDef: false, expected: source.FetchImmediate},
		{name: "outer-join true", outerJoin: "true", lazyByDef: true, expected: source.FetchImmediate},
		{name: "outer-join false", outerJoin: "false", lazyByDef: false, expected: source.FetchDelayed},
		{name: "outer-join auto", outerJoin: "auto", lazyByDef: true, expected: source.FetchDelayed},
		{name: "lazy extra beats join", lazy: "extra", fetch: "join", outerJoin: "true", expected: source.FetchExtraDelayed},
		{name: "lazy proxy", lazy: "proxy", expected: source.FetchDelayed},
		{name: "lazy true", lazy: "true", fetch: "join", expected: source.FetchDelayed},
		{name: "lazy false", lazy: "false", lazyByDef: true, expected: source.FetchImmediate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timing, err := toOneFetchTiming(contextWithLazy(tt.lazyByDef), "Order.customer", tt.lazy, tt.fetch, tt.outerJoin)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, timing)
		})
	}
}

func TestToOneFetchTiming_UnknownLazy(t *testing.T) {
	_, err := toOneFetchTiming(contextWithLazy(true), "Order.customer", "proxi", "", "")
	require.Error(t, err)

	assert.Contains(t, err.Error(), "Unexpected lazy selection [proxi] on 'Order.customer'")
	assert.Contains(t, err.Error(), "did you mean proxy?")
	assert.Contains(t, err.Error(), "MAPPING_DOCUMENT(test.hbm.yaml)")
}

func TestToOneFetchStyle(t *testing.T) {
	tests := []struct {
		name      string
		fetch     mapping.Selector
		outerJoin mapping.Selector
		lazyByDef bool
		expected  source.FetchStyle
	}{
		{name: "absent", expected: source.FetchStyleSelect},
		{name: "fetch join", fetch: "join", expected: source.FetchStyleJoin},
		{name: "fetch select wins over outer-join", fetch: "select", outerJoin: "true", expected: source.FetchStyleSelect},
		{name: "outer-join true", outerJoin: "true", expected: source.FetchStyleJoin},
		{name: "outer-join false", outerJoin: "false", expected: source.FetchStyleSelect},
		{name: "outer-join auto lazy", outerJoin: "auto", lazyByDef: true, expected: source.FetchStyleSelect},
		{name: "outer-join auto eager", outerJoin: "auto", lazyByDef: false, expected: source.FetchStyleJoin},
		{name: "outer-join unknown", outerJoin: "maybe", expected: source.FetchStyleSelect},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toOneFetchStyle(contextWithLazy(tt.lazyByDef), tt.fetch, tt.outerJoin))
		})
	}
}

func TestToOneFetchMode(t *testing.T) {
	ctx := contextWithLazy(true)

	mode, err := toOneFetchMode(ctx, "Order.customer", "")
	require.NoError(t, err)
	assert.Equal(t, source.FetchModeDefault, mode)

	mode, err = toOneFetchMode(ctx, "Order.customer", "join")
	require.NoError(t, err)
	assert.Equal(t, source.FetchModeJoin, mode)

	mode, err = toOneFetchMode(ctx, "Order.customer", "select")
	require.NoError(t, err)
	assert.Equal(t, source.FetchModeSelect, mode)

	_, err = toOneFetchMode(ctx, "Order.customer", "subselect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected fetch selection [subselect]")
}

func TestPluralFetch(t *testing.T) {
	tests := []struct {
		name           string
		collection     mapping.CollectionElement
		lazyByDef      bool
		expectedTiming source.FetchTiming
		expectedStyle  source.FetchStyle
	}{
		{
			name:           "defaults",
			lazyByDef:      true,
			expectedTiming: source.FetchDelayed,
			expectedStyle:  source.FetchStyleSelect,
		},
		{
			name:           "extra lazy",
			collection:     mapping.CollectionElement{Lazy: "extra"},
			expectedTiming: source.FetchExtraDelayed,
			expectedStyle:  source.FetchStyleSelect,
		},
		{
			name:           "join without lazy is eager",
			collection:     mapping.CollectionElement{Fetch: "join"},
			lazyByDef:      true,
			expectedTiming: source.FetchImmediate,
			expectedStyle:  source.FetchStyleJoin,
		},
		{
			name:           "join with explicit lazy",
			collection:     mapping.CollectionElement{Fetch: "join", Lazy: "true"},
			expectedTiming: source.FetchDelayed,
			expectedStyle:  source.FetchStyleJoin,
		},
		{
			name:           "subselect",
			collection:     mapping.CollectionElement{Fetch: "subselect", Lazy: "false"},
			lazyByDef:      true,
			expectedTiming: source.FetchImmediate,
			expectedStyle:  source.FetchStyleSubselect,
		},
		{
			name:           "batch",
			collection:     mapping.CollectionElement{BatchSize: 16},
			lazyByDef:      true,
			expectedTiming: source.FetchDelayed,
			expectedStyle:  source.FetchStyleBatch,
		},
		{
			name:           "batch size one stays select",
			collection:     mapping.CollectionElement{Fetch: "select", BatchSize: 1},
			lazyByDef:      false,
			expectedTiming: source.FetchImmediate,
			expectedStyle:  source.FetchStyleSelect,
		},
		{
			name:           "outer-join true",
			collection:     mapping.CollectionElement{OuterJoin: "true"},
			lazyByDef:      true,
			expectedTiming: source.FetchImmediate,
			expectedStyle:  source.FetchStyleJoin,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := contextWithLazy(tt.lazyByDef)

			timing, err := pluralFetchTiming(ctx, "Order.lines", &tt.collection)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedTiming, timing)

			style, err := pluralFetchStyle(ctx, "Order.lines", &tt.collection)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStyle, style)
		})
	}
}

func TestPluralFetch_UnknownSelectors(t *testing.T) {
	ctx := contextWithLazy(true)

	_, err := pluralFetchTiming(ctx, "Order.lines", &mapping.CollectionElement{Lazy: "proxy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unexpected lazy selection [proxy] on 'Order.lines'")

	_, err = pluralFetchStyle(ctx, "Order.lines", &mapping.CollectionElement{Fetch: "subselct"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean subselect?")
}
