package scan

// Stats counts what a scan did. Values from several scans combine with Add.
type Stats struct {
	Platforms   int `json:"platforms"`
	Scanned     int `json:"scanned"`
	Added       int `json:"added"`
	Hashed      int `json:"hashed"`
	Skipped     int `json:"skipped"`
	Failed      int `json:"failed"`
	Unsupported int `json:"unsupported"`
}

// Add merges other into s.
func (s *Stats) Add(other Stats) {
	s.Platforms += other.Platforms
	s.Scanned += other.Scanned
	s.Added += other.Added
	s.Hashed += other.Hashed
	s.Skipped += other.Skipped
	s.Failed += other.Failed
	s.Unsupported += other.Unsupported
}
