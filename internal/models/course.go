package models

import "regexp"

// CourseCodePattern matches a course code: three uppercase letters followed by three digits.
var CourseCodePattern = regexp.MustCompile(`^[A-Z]{3}\d{3}$`)

// CourseRecord holds the availability of one course section as seen on the portal.
type CourseRecord struct {
	Code  string `json:"-"`
	Open  bool   `json:"open"`
	Seats int    `json:"seats"`
	// GoneNotified is set once the disappearance of the course has been reported.
	GoneNotified bool `json:"_gone_notified,omitempty"`
}

// NewCourseRecord builds a record from a freshly extracted seat count.
// Open is derived here and never recomputed afterwards.
func NewCourseRecord(code string, seats int) CourseRecord {
	return CourseRecord{
		Code:  code,
		Open:  seats > 0,
		Seats: seats,
	}
}

// SameAvailability reports whether two records carry the same open state and seat count.
func (r CourseRecord) SameAvailability(other CourseRecord) bool {
	return r.Open == other.Open && r.Seats == other.Seats
}

// IsValidCourseCode checks a code against CourseCodePattern.
func IsValidCourseCode(code string) bool {
	return CourseCodePattern.MatchString(code)
}

// Snapshot maps course codes to records and remembers the order in which
// codes were first inserted.
type Snapshot struct {
	records map[string]CourseRecord
	order   []string
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		records: make(map[string]CourseRecord),
	}
}

// Set inserts or replaces the record for record.Code. Replacing keeps the
// original position of the code.
func (s *Snapshot) Set(record CourseRecord) {
	if s.records == nil {
		s.records = make(map[string]CourseRecord)
	}
	if _, exists := s.records[record.Code]; !exists {
		s.order = append(s.order, record.Code)
	}
	s.records[record.Code] = record
}

// Get returns the record for code.
func (s *Snapshot) Get(code string) (CourseRecord, bool) {
	if s == nil {
		return CourseRecord{}, false
	}
	record, ok := s.records[code]
	return record, ok
}

// Has reports whether code is present.
func (s *Snapshot) Has(code string) bool {
	_, ok := s.Get(code)
	return ok
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// IsEmpty reports whether the snapshot has no records.
func (s *Snapshot) IsEmpty() bool {
	return s.Len() == 0
}

// Codes returns the codes in insertion order.
func (s *Snapshot) Codes() []string {
	if s == nil {
		return nil
	}
	codes := make([]string, len(s.order))
	copy(codes, s.order)
	return codes
}

// Records returns the records in insertion order.
func (s *Snapshot) Records() []CourseRecord {
	if s == nil {
		return nil
	}
	records := make([]CourseRecord, 0, len(s.order))
	for _, code := range s.order {
		records = append(records, s.records[code])
	}
	return records
}

// Merge copies every record of other into s; entries of other win.
func (s *Snapshot) Merge(other *Snapshot) {
	for _, record := range other.Records() {
		s.Set(record)
	}
}

// Clone returns an independent copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	clone := NewSnapshot()
	clone.Merge(s)
	return clone
}
