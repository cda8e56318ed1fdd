package source

import "github.com/twtxwydavid/hibernate-orm/internal/common"

// FetchTiming describes when associated data is loaded relative to its owner.
type FetchTiming int

const (
	// FetchImmediate loads the association together with its owner.
	FetchImmediate FetchTiming = iota
	// FetchDelayed loads the association on first access.
	FetchDelayed
	// FetchExtraDelayed defers loading even further: size and contains
	// checks do not initialize a collection.
	FetchExtraDelayed
)

// String returns a human-readable representation of the FetchTiming.
func (t FetchTiming) String() string {
	switch t {
	case FetchImmediate:
		return "IMMEDIATE"
	case FetchDelayed:
		return "DELAYED"
	case FetchExtraDelayed:
		return "EXTRA_DELAYED"
	default:
		return common.UnknownStr
	}
}

// FetchStyle is the SQL strategy used to retrieve associated data.
type FetchStyle int

const (
	FetchStyleSelect FetchStyle = iota
	FetchStyleJoin
	FetchStyleSubselect
	FetchStyleBatch
)

// String returns a human-readable representation of the FetchStyle.
func (s FetchStyle) String() string {
	switch s {
	case FetchStyleSelect:
		return "SELECT"
	case FetchStyleJoin:
		return "JOIN"
	case FetchStyleSubselect:
		return "SUBSELECT"
	case FetchStyleBatch:
		return "BATCH"
	default:
		return common.UnknownStr
	}
}

// FetchMode mirrors the legacy fetch directive.
type FetchMode int

const (
	FetchModeDefault FetchMode = iota
	FetchModeJoin
	FetchModeSelect
)

// String returns a human-readable representation of the FetchMode.
func (m FetchMode) String() string {
	switch m {
	case FetchModeDefault:
		return "DEFAULT"
	case FetchModeJoin:
		return "JOIN"
	case FetchModeSelect:
		return "SELECT"
	default:
		return common.UnknownStr
	}
}

// NaturalIDMutability tells whether an attribute is part of the natural id
// and, if so, whether it may change after creation.
type NaturalIDMutability int

const (
	NotNaturalID NaturalIDMutability = iota
	NaturalIDMutable
	NaturalIDImmutable
)

// String returns a human-readable representation of the NaturalIDMutability.
func (m NaturalIDMutability) String() string {
	switch m {
	case NotNaturalID:
		return "NOT_NATURAL_ID"
	case NaturalIDMutable:
		return "MUTABLE"
	case NaturalIDImmutable:
		return "IMMUTABLE"
	default:
		return common.UnknownStr
	}
}

// AttributeNature is the kind of a mapped attribute.
type AttributeNature int

const (
	NatureBasic AttributeNature = iota
	NatureComposite
	NatureManyToOne
	NatureOneToOne
	NatureOneToMany
	NatureManyToMany
	NatureElementCollection
)

// String returns a human-readable representation of the AttributeNature.
func (n AttributeNature) String() string {
	switch n {
	case NatureBasic:
		return "BASIC"
	case NatureComposite:
		return "COMPOSITE"
	case NatureManyToOne:
		return "MANY_TO_ONE"
	case NatureOneToOne:
		return "ONE_TO_ONE"
	case NatureOneToMany:
		return "ONE_TO_MANY"
	case NatureManyToMany:
		return "MANY_TO_MANY"
	case NatureElementCollection:
		return "ELEMENT_COLLECTION"
	default:
		return common.UnknownStr
	}
}

// PluralNature is the collection semantics of a plural attribute.
type PluralNature int

const (
	PluralSet PluralNature = iota
	PluralBag
	PluralList
)

// String returns a human-readable representation of the PluralNature.
func (n PluralNature) String() string {
	switch n {
	case PluralSet:
		return "SET"
	case PluralBag:
		return "BAG"
	case PluralList:
		return "LIST"
	default:
		return common.UnknownStr
	}
}

// PropertyGeneration tells when the database generates an attribute's value.
type PropertyGeneration int

const (
	GenerationNever PropertyGeneration = iota
	GenerationInsert
	GenerationAlways
)

// String returns a human-readable representation of the PropertyGeneration.
func (g PropertyGeneration) String() string {
	switch g {
	case GenerationNever:
		return "never"
	case GenerationInsert:
		return "insert"
	case GenerationAlways:
		return "always"
	default:
		return common.UnknownStr
	}
}
