package threaddoc

import (
	"strings"

	"github.com/beevik/etree"
)

// Element names used by the thread-table schema.
const (
	TagName              = "Name"
	TagCustomName        = "CustomName"
	TagThreadSize        = "ThreadSize"
	TagSize              = "Size"
	TagDesignation       = "Designation"
	TagThreadDesignation = "ThreadDesignation"
	TagCTD               = "CTD"
	TagPitch             = "Pitch"
	TagThread            = "Thread"
	TagGender            = "Gender"
	TagClass             = "Class"
	TagMajorDia          = "MajorDia"
	TagPitchDia          = "PitchDia"
	TagMinorDia          = "MinorDia"
	TagTapDrill          = "TapDrill"
)

// Gender values.
const (
	GenderExternal = "external"
	GenderInternal = "internal"
)

// ThreadType is the named catalog at the document root.
type ThreadType struct {
	el *etree.Element
}

// Name returns the catalog name.
func (t *ThreadType) Name() string { return childText(t.el, TagName) }

// CustomName returns the catalog custom name.
func (t *ThreadType) CustomName() string { return childText(t.el, TagCustomName) }

// SetName overwrites both Name and CustomName. Missing elements are created
// at the top of the catalog, Name first.
func (t *ThreadType) SetName(name string) {
	nameEl := t.el.SelectElement(TagName)
	if nameEl == nil {
		nameEl = etree.NewElement(TagName)
		t.el.InsertChildAt(0, nameEl)
	}
	nameEl.SetText(name)

	custom := t.el.SelectElement(TagCustomName)
	if custom == nil {
		custom = etree.NewElement(TagCustomName)
		t.el.InsertChildAt(nameEl.Index()+1, custom)
	}
	custom.SetText(name)
}

// Sizes returns the ThreadSize entries in document order.
func (t *ThreadType) Sizes() []*ThreadSize {
	els := t.el.SelectElements(TagThreadSize)
	out := make([]*ThreadSize, 0, len(els))
	for _, el := range els {
		out = append(out, &ThreadSize{el: el})
	}
	return out
}

// RetainSizes keeps only the ThreadSize entries for which keep returns true and
// returns how many were removed. Removal happens after the full scan.
func (t *ThreadType) RetainSizes(keep func(*ThreadSize) bool) int {
	var drop []*etree.Element
	for _, s := range t.Sizes() {
		if !keep(s) {
			drop = append(drop, s.el)
		}
	}
	removeAll(t.el, drop)
	return len(drop)
}

// ThreadSize is one nominal size.
type ThreadSize struct {
	el *etree.Element
}

// Size returns the nominal size value.
func (s *ThreadSize) Size() Scalar { return childScalar(s.el, TagSize) }

// Designations returns the pitch families of this size in document order.
// A size with a single Designation yields a one-element slice.
func (s *ThreadSize) Designations() []*Designation {
	els := s.el.SelectElements(TagDesignation)
	out := make([]*Designation, 0, len(els))
	for _, el := range els {
		out = append(out, &Designation{el: el})
	}
	return out
}

// ThreadCount returns the total number of Thread entries across all designations.
func (s *ThreadSize) ThreadCount() int {
	n := 0
	for _, d := range s.Designations() {
		n += d.ThreadCount()
	}
	return n
}

// RetainDesignations keeps only the designations for which keep returns true
// and returns how many were removed.
func (s *ThreadSize) RetainDesignations(keep func(*Designation) bool) int {
	var drop []*etree.Element
	for _, d := range s.Designations() {
		if !keep(d) {
			drop = append(drop, d.el)
		}
	}
	removeAll(s.el, drop)
	return len(drop)
}

// Designation is one pitch family within a size.
type Designation struct {
	el *etree.Element
}

func (d *Designation) ThreadDesignation() string { return childText(d.el, TagThreadDesignation) }
func (d *Designation) CTD() string               { return childText(d.el, TagCTD) }
func (d *Designation) Pitch() Scalar             { return childScalar(d.el, TagPitch) }

// Threads returns the thread entries in document order.
func (d *Designation) Threads() []*Thread {
	els := d.el.SelectElements(TagThread)
	out := make([]*Thread, 0, len(els))
	for _, el := range els {
		out = append(out, &Thread{el: el})
	}
	return out
}

// ThreadCount returns the number of Thread entries.
func (d *Designation) ThreadCount() int {
	return len(d.el.SelectElements(TagThread))
}

// ReplaceThreads appends generated entries directly after the last existing
// Thread and, unless keepOriginal is set, removes the existing entries.
func (d *Designation) ReplaceThreads(generated []*Thread, keepOriginal bool) {
	originals := d.el.SelectElements(TagThread)

	at := len(d.el.Child)
	if n := len(originals); n > 0 {
		at = originals[n-1].Index() + 1
	}
	for i, t := range generated {
		d.el.InsertChildAt(at+i, t.el)
	}

	if !keepOriginal {
		removeAll(d.el, originals)
	}
}

// Thread is one concrete thread specification.
type Thread struct {
	el *etree.Element
}

// Gender returns the trimmed gender value.
func (t *Thread) Gender() string { return strings.TrimSpace(childText(t.el, TagGender)) }

func (t *Thread) Class() string { return childText(t.el, TagClass) }

// SetClass overwrites the tolerance-class label.
func (t *Thread) SetClass(class string) { setChildText(t.el, TagClass, class) }

// Field returns the scalar value of a child element and whether it exists.
func (t *Thread) Field(tag string) (Scalar, bool) {
	el := t.el.SelectElement(tag)
	if el == nil {
		return Scalar{}, false
	}
	return ParseScalar(el.Text()), true
}

// SetField overwrites an existing child element, creating it when missing.
func (t *Thread) SetField(tag string, v Scalar) { setChildText(t.el, tag, v.String()) }

// TapDrill returns the tap drill value; ok is false when absent or empty.
func (t *Thread) TapDrill() (Scalar, bool) {
	v, ok := t.Field(TagTapDrill)
	if !ok || strings.TrimSpace(v.String()) == "" {
		return Scalar{}, false
	}
	return v, true
}

// Clone returns a deep copy detached from the tree.
func (t *Thread) Clone() *Thread {
	return &Thread{el: t.el.Copy()}
}

func childText(parent *etree.Element, tag string) string {
	if el := parent.SelectElement(tag); el != nil {
		return el.Text()
	}
	return ""
}

func childScalar(parent *etree.Element, tag string) Scalar {
	return ParseScalar(childText(parent, tag))
}

func setChildText(parent *etree.Element, tag, text string) {
	el := parent.SelectElement(tag)
	if el == nil {
		el = parent.CreateElement(tag)
	}
	el.SetText(text)
}

func removeAll(parent *etree.Element, drop []*etree.Element) {
	for _, el := range drop {
		parent.RemoveChild(el)
	}
}
