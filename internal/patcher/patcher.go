// Package patcher expands the thread entries of a Designation into
// offset variants.
package patcher

import (
	"fmt"

	"git.home.luguber.info/inful/threadtable/internal/threaddoc"
)

// diameterTags are shifted by every offset.
var diameterTags = []string{threaddoc.TagMajorDia, threaddoc.TagMinorDia, threaddoc.TagPitchDia}

// Result describes what Patch did to one Designation.
type Result struct {
	Original  int
	Eligible  int
	Generated int
	Retained  int
	// GeneratedByGender counts generated entries per gender value.
	GeneratedByGender map[string]int
	// Warnings lists diameter fields that could not be shifted.
	Warnings []string
}

// Remaining is the number of Thread entries left in the Designation.
func (r Result) Remaining() int { return r.Retained + r.Generated }

// Dropped is the number of original entries removed.
func (r Result) Dropped() int { return r.Original - r.Retained }

// Patcher applies Options to designations.
type Patcher struct {
	opts Options
}

// New creates a Patcher for the given options.
func New(opts Options) *Patcher {
	return &Patcher{opts: opts}
}

// Patch rewrites the Thread sequence of d in place: eligible entries are
// expanded once per offset (entry order outer, offset order inner) and the
// generated entries follow the retained originals.
func (p *Patcher) Patch(d *threaddoc.Designation, size threaddoc.Scalar) Result {
	originals := d.Threads()
	res := Result{Original: len(originals), GeneratedByGender: map[string]int{}}

	sizeOK := p.opts.sizeEligible(size)
	var generated []*threaddoc.Thread
	for _, t := range originals {
		gender := t.Gender()
		if !sizeOK || !p.opts.genderEligible(gender) {
			continue
		}
		res.Eligible++
		for _, off := range p.opts.Offsets {
			generated = append(generated, p.variant(t, off, &res))
			res.GeneratedByGender[gender]++
		}
	}

	d.ReplaceThreads(generated, p.opts.ReserveOriginal)

	res.Generated = len(generated)
	if p.opts.ReserveOriginal {
		res.Retained = res.Original
	}
	return res
}

func (p *Patcher) variant(t *threaddoc.Thread, off float64, res *Result) *threaddoc.Thread {
	v := t.Clone()
	v.SetClass(t.Class() + p.opts.ClassSeparator + threaddoc.FormatSigned(off))
	for _, tag := range diameterTags {
		cur, ok := v.Field(tag)
		if !ok {
			continue
		}
		shifted, ok := cur.Add(off)
		if !ok {
			res.Warnings = append(res.Warnings, fmt.Sprintf("%s %q of class %s is not numeric", tag, cur.String(), t.Class()))
			continue
		}
		v.SetField(tag, shifted)
	}
	return v
}
