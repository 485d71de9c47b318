package patcher

import (
	"fmt"
	"math"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
	"git.home.luguber.info/inful/threadtable/internal/threaddoc"
	"git.home.luguber.info/inful/threadtable/internal/util/sets"
)

// SizeFilter decides whether threads under a given nominal size may be expanded.
type SizeFilter func(size threaddoc.Scalar) bool

// Options controls how a Designation is expanded.
type Options struct {
	Offsets         []float64
	HandleInternal  bool
	HandleExternal  bool
	ReserveOriginal bool

	// ClassSeparator is placed between the original Class and the signed offset.
	ClassSeparator string

	// SizeFilter restricts expansion to matching sizes; nil means every size.
	SizeFilter SizeFilter
}

// Validate rejects offsets the arithmetic cannot represent.
func (o Options) Validate() error {
	for i, off := range o.Offsets {
		if math.IsNaN(off) || math.IsInf(off, 0) {
			return tterrors.InvalidConfig("offsets", fmt.Sprintf("offset %d is not finite", i))
		}
	}
	return nil
}

// OnlySizes builds a SizeFilter matching numeric sizes from the list. An empty
// list yields nil, meaning every size is eligible.
func OnlySizes(sizes ...float64) SizeFilter {
	if len(sizes) == 0 {
		return nil
	}
	allowed := sets.New(sizes...)
	return func(size threaddoc.Scalar) bool {
		v, ok := size.Float()
		return ok && allowed.Has(v)
	}
}

func (o Options) sizeEligible(size threaddoc.Scalar) bool {
	return o.SizeFilter == nil || o.SizeFilter(size)
}

func (o Options) genderEligible(gender string) bool {
	switch gender {
	case threaddoc.GenderExternal:
		return o.HandleExternal
	case threaddoc.GenderInternal:
		return o.HandleInternal
	default:
		return false
	}
}
