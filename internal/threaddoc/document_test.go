package threaddoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tterrors "git.home.luguber.info/inful/threadtable/internal/errors"
	th "git.home.luguber.info/inful/threadtable/internal/testing"
)

func metricFixture() *th.DocumentBuilder {
	return th.NewDocumentBuilder("ISO Metric profile").
		WithSize("2",
			th.Designation("M2x0.4", "0.4",
				th.External("6g", "1.981", "1.721", "1.548"),
				th.Internal("6H", "2", "1.74", "1.567", "1.6"),
			),
			th.Designation("M2x0.25", "0.25",
				th.External("6g", "1.982", "1.82", "1.68"),
			),
		).
		WithSize("3",
			th.Designation("M3x0.5", "0.5",
				th.External("6g", "2.98", "2.655", "2.439"),
			),
		)
}

func TestParse_Catalog(t *testing.T) {
	doc, err := Parse(metricFixture().Build())
	require.NoError(t, err)

	require.NotNil(t, doc.Declaration)
	assert.Equal(t, 1.0, doc.Declaration.Version)
	assert.Equal(t, "UTF-8", doc.Declaration.Encoding)

	tt := doc.ThreadType()
	assert.Equal(t, "ISO Metric profile", tt.Name())

	sizes := tt.Sizes()
	require.Len(t, sizes, 2)
	size, ok := sizes[0].Size().Float()
	require.True(t, ok)
	assert.Equal(t, 2.0, size)

	designations := sizes[0].Designations()
	require.Len(t, designations, 2)
	assert.Equal(t, "M2x0.4", designations[0].ThreadDesignation())
	assert.Equal(t, "M2x0.4", designations[0].CTD())
	pitch, ok := designations[0].Pitch().Float()
	require.True(t, ok)
	assert.Equal(t, 0.4, pitch)
	assert.Equal(t, 3, sizes[0].ThreadCount())

	threads := designations[0].Threads()
	require.Len(t, threads, 2)
	assert.Equal(t, GenderExternal, threads[0].Gender())
	assert.Equal(t, "6g", threads[0].Class())
	_, hasDrill := threads[0].TapDrill()
	assert.False(t, hasDrill)
	drill, hasDrill := threads[1].TapDrill()
	require.True(t, hasDrill)
	assert.Equal(t, "1.6", drill.String())

	// A size with a single Designation is still a sequence of one.
	assert.Len(t, sizes[1].Designations(), 1)
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"not markup", "thread table"},
		{"unclosed", "<ThreadType><ThreadSize>"},
		{"mismatched", "<ThreadType><Name>x</Size></ThreadType>"},
		{"wrong root", `<?xml version="1.0"?><Catalog></Catalog>`},
		{"unsupported version", `<?xml version="1.1" encoding="UTF-8"?><ThreadType></ThreadType>`},
		{"non numeric version", `<?xml version="one" encoding="UTF-8"?><ThreadType></ThreadType>`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := Parse(tc.input)
			require.Error(t, err)
			assert.Nil(t, doc)
			assert.True(t, tterrors.IsCategory(err, tterrors.CategoryDocument), "got %v", err)
		})
	}
}

func TestString_RoundTripIsByteIdentical(t *testing.T) {
	input := metricFixture().Build()
	doc, err := Parse(input)
	require.NoError(t, err)

	out, err := doc.String()
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestString_DeclarationVersionHasOneDecimal(t *testing.T) {
	doc, err := Parse(metricFixture().Build())
	require.NoError(t, err)
	require.NotNil(t, doc.Declaration)

	doc.Declaration.Version = 1
	out, err := doc.String()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`), out)

	decl := &Declaration{Version: 2, Encoding: "UTF-8", Standalone: "yes"}
	assert.Equal(t, `version="2.0" encoding="UTF-8" standalone="yes"`, decl.render())
}

func TestParse_DeclarationFields(t *testing.T) {
	doc, err := Parse(`<?xml version="1.0" encoding="UTF-8" standalone='no'?><ThreadType></ThreadType>`)
	require.NoError(t, err)
	require.NotNil(t, doc.Declaration)
	assert.InDelta(t, 1.0, doc.Declaration.Version, 0)
	assert.Equal(t, "UTF-8", doc.Declaration.Encoding)
	assert.Equal(t, "no", doc.Declaration.Standalone)
}

func TestString_MissingDeclarationStaysAbsent(t *testing.T) {
	doc, err := Parse(metricFixture().WithDeclaration("").Build())
	require.NoError(t, err)
	assert.Nil(t, doc.Declaration)

	out, err := doc.String()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "<ThreadType>"), out)
}

func TestString_ReindentsCompactInput(t *testing.T) {
	input := `<?xml version="1.0" encoding="UTF-8"?><ThreadType><Name>x</Name><ThreadSize><Size>2</Size></ThreadSize></ThreadType>`
	doc, err := Parse(input)
	require.NoError(t, err)

	out, err := doc.String()
	require.NoError(t, err)
	want := "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n" +
		"<ThreadType>\n" +
		"  <Name>x</Name>\n" +
		"  <ThreadSize>\n" +
		"    <Size>2</Size>\n" +
		"  </ThreadSize>\n" +
		"</ThreadType>\n"
	assert.Equal(t, want, out)
}

func TestSetName_OverwritesAndCreates(t *testing.T) {
	doc, err := Parse(metricFixture().Build())
	require.NoError(t, err)
	doc.ThreadType().SetName("Custom")
	assert.Equal(t, "Custom", doc.ThreadType().Name())
	assert.Equal(t, "Custom", doc.ThreadType().CustomName())

	bare, err := Parse(`<ThreadType><Unit>mm</Unit></ThreadType>`)
	require.NoError(t, err)
	bare.ThreadType().SetName("Fresh")
	out, err := bare.String()
	require.NoError(t, err)
	assert.Equal(t, "<ThreadType>\n  <Name>Fresh</Name>\n  <CustomName>Fresh</CustomName>\n  <Unit>mm</Unit>\n</ThreadType>\n", out)
}

func TestReplaceThreads_OrderAndRetention(t *testing.T) {
	doc, err := Parse(metricFixture().Build())
	require.NoError(t, err)
	d := doc.ThreadType().Sizes()[0].Designations()[0]
	originals := d.Threads()

	gen := originals[0].Clone()
	gen.SetClass("6g+1")
	d.ReplaceThreads([]*Thread{gen}, true)

	classes := threadClasses(d)
	assert.Equal(t, []string{"6g", "6H", "6g+1"}, classes)

	gen2 := originals[1].Clone()
	gen2.SetClass("6H-1")
	d.ReplaceThreads([]*Thread{gen2}, false)
	assert.Equal(t, []string{"6H-1"}, threadClasses(d))
}

func TestRetain_RemovesWithoutSkipping(t *testing.T) {
	doc, err := Parse(metricFixture().Build())
	require.NoError(t, err)
	tt := doc.ThreadType()

	removed := tt.RetainSizes(func(*ThreadSize) bool { return false })
	assert.Equal(t, 2, removed)
	assert.Empty(t, tt.Sizes())
}

func TestSummarize(t *testing.T) {
	doc, err := Parse(metricFixture().Build())
	require.NoError(t, err)

	s := Summarize(doc)
	assert.Equal(t, 2, s.Sizes)
	assert.Equal(t, 3, s.Designations)
	assert.Equal(t, 4, s.Threads)
	assert.Equal(t, 3, s.External)
	assert.Equal(t, 1, s.Internal)
	require.Len(t, s.PerSize, 2)
	assert.Equal(t, SizeSummary{Size: "2", Designations: 2, Threads: 3}, s.PerSize[0])
}

func threadClasses(d *Designation) []string {
	var out []string
	for _, t := range d.Threads() {
		out = append(out, t.Class())
	}
	return out
}
