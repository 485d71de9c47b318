package threaddoc

// Summary counts the entries of a thread catalog.
type Summary struct {
	Name         string        `yaml:"name"`
	CustomName   string        `yaml:"custom_name"`
	Sizes        int           `yaml:"sizes"`
	Designations int           `yaml:"designations"`
	Threads      int           `yaml:"threads"`
	External     int           `yaml:"external"`
	Internal     int           `yaml:"internal"`
	Other        int           `yaml:"other,omitempty"`
	PerSize      []SizeSummary `yaml:"per_size,omitempty"`
}

// SizeSummary counts the entries of one ThreadSize.
type SizeSummary struct {
	Size         string `yaml:"size"`
	Designations int    `yaml:"designations"`
	Threads      int    `yaml:"threads"`
}

// Summarize walks the catalog and counts sizes, designations and threads.
func Summarize(doc *Document) Summary {
	tt := doc.ThreadType()
	s := Summary{Name: tt.Name(), CustomName: tt.CustomName()}
	for _, size := range tt.Sizes() {
		ss := SizeSummary{Size: size.Size().String()}
		for _, d := range size.Designations() {
			ss.Designations++
			for _, t := range d.Threads() {
				ss.Threads++
				switch t.Gender() {
				case GenderExternal:
					s.External++
				case GenderInternal:
					s.Internal++
				default:
					s.Other++
				}
			}
		}
		s.Sizes++
		s.Designations += ss.Designations
		s.Threads += ss.Threads
		s.PerSize = append(s.PerSize, ss)
	}
	return s
}
