package testing

import (
	"bytes"
	"encoding/xml"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ThreadSpec describes one <Thread> entry. Values are written verbatim.
type ThreadSpec struct {
	Gender   string
	Class    string
	MajorDia string
	PitchDia string
	MinorDia string
	TapDrill string
}

// External returns an external thread spec.
func External(class, major, pitch, minor string) ThreadSpec {
	return ThreadSpec{Gender: "external", Class: class, MajorDia: major, PitchDia: pitch, MinorDia: minor}
}

// Internal returns an internal thread spec with a tap drill.
func Internal(class, major, pitch, minor, tapDrill string) ThreadSpec {
	return ThreadSpec{Gender: "internal", Class: class, MajorDia: major, PitchDia: pitch, MinorDia: minor, TapDrill: tapDrill}
}

// DesignationSpec describes one <Designation> block.
type DesignationSpec struct {
	ThreadDesignation string
	CTD               string
	Pitch             string
	Threads           []ThreadSpec
}

// SizeSpec describes one <ThreadSize> block.
type SizeSpec struct {
	Size         string
	Designations []DesignationSpec
}

// DocumentBuilder provides a fluent interface for creating thread-table documents.
type DocumentBuilder struct {
	name        string
	unit        string
	declaration string
	sizes       []SizeSpec
}

// NewDocumentBuilder creates a builder for a catalog with the given name.
func NewDocumentBuilder(name string) *DocumentBuilder {
	return &DocumentBuilder{
		name:        name,
		unit:        "mm",
		declaration: `<?xml version="1.0" encoding="UTF-8"?>`,
	}
}

// WithDeclaration replaces the XML declaration line; empty omits it.
func (b *DocumentBuilder) WithDeclaration(decl string) *DocumentBuilder {
	b.declaration = decl
	return b
}

// WithUnit sets the <Unit> value.
func (b *DocumentBuilder) WithUnit(unit string) *DocumentBuilder {
	b.unit = unit
	return b
}

// WithSize appends a ThreadSize.
func (b *DocumentBuilder) WithSize(size string, designations ...DesignationSpec) *DocumentBuilder {
	b.sizes = append(b.sizes, SizeSpec{Size: size, Designations: designations})
	return b
}

// Designation is a shorthand for building a DesignationSpec.
func Designation(label, pitch string, threads ...ThreadSpec) DesignationSpec {
	return DesignationSpec{ThreadDesignation: label, CTD: label, Pitch: pitch, Threads: threads}
}

// Build renders the document text.
func (b *DocumentBuilder) Build() string {
	var sb strings.Builder
	if b.declaration != "" {
		sb.WriteString(b.declaration)
		sb.WriteString("\n")
	}
	sb.WriteString("<ThreadType>\n")
	leaf(&sb, 1, "Name", b.name)
	leaf(&sb, 1, "CustomName", b.name)
	leaf(&sb, 1, "Unit", b.unit)
	leaf(&sb, 1, "Angle", "60")
	leaf(&sb, 1, "SortOrder", "3")
	for _, s := range b.sizes {
		open(&sb, 1, "ThreadSize")
		leaf(&sb, 2, "Size", s.Size)
		for _, d := range s.Designations {
			open(&sb, 2, "Designation")
			leaf(&sb, 3, "ThreadDesignation", d.ThreadDesignation)
			leaf(&sb, 3, "CTD", d.CTD)
			leaf(&sb, 3, "Pitch", d.Pitch)
			for _, t := range d.Threads {
				open(&sb, 3, "Thread")
				leaf(&sb, 4, "Gender", t.Gender)
				leaf(&sb, 4, "Class", t.Class)
				leaf(&sb, 4, "MajorDia", t.MajorDia)
				leaf(&sb, 4, "PitchDia", t.PitchDia)
				leaf(&sb, 4, "MinorDia", t.MinorDia)
				if t.TapDrill != "" {
					leaf(&sb, 4, "TapDrill", t.TapDrill)
				}
				closeTag(&sb, 3, "Thread")
			}
			closeTag(&sb, 2, "Designation")
		}
		closeTag(&sb, 1, "ThreadSize")
	}
	sb.WriteString("</ThreadType>\n")
	return sb.String()
}

// WriteFile renders the document into dir/name and returns the path.
func (b *DocumentBuilder) WriteFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), testDirPermissions); err != nil {
		t.Fatalf("create fixture dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(b.Build()), testFilePermissions); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func indent(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
}

func open(sb *strings.Builder, depth int, tag string) {
	indent(sb, depth)
	sb.WriteString("<" + tag + ">\n")
}

func closeTag(sb *strings.Builder, depth int, tag string) {
	indent(sb, depth)
	sb.WriteString("</" + tag + ">\n")
}

func leaf(sb *strings.Builder, depth int, tag, value string) {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(value))
	indent(sb, depth)
	sb.WriteString("<" + tag + ">" + buf.String() + "</" + tag + ">\n")
}
