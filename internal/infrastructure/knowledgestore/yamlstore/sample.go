package yamlstore

import (
	"os"

	"github.com/cockroachdb/errors"

	"github.com/ersonp/theatre-core/internal/domain/entities"
)

// SampleYAML is a small hospital used by 'theatre init --sample'.
const SampleYAML = `surgeons:
  - name: Dr Silva
    is_present: true
    max_daily_hours: 8
    available_at: [Mon 0900, Mon 1400]
  - name: Dr Lee
    is_present: false
    max_daily_hours: 6
  - name: Dr Okafor
    is_present: true
    max_daily_hours: 10
patients:
  - name: John Doe
  - name: Jane Roe
operations:
  - name: Appendectomy
    duration_minutes: 60
    priority_level: elective
  - name: Emergency Laparotomy
    duration_minutes: 120
    priority_level: emergency
theatres:
  - name: Theatre A
    is_clean: true
    is_under_maintenance: false
  - name: Theatre B
    is_clean: true
    is_under_maintenance: true
  - name: Theatre C
    is_clean: false
    is_under_maintenance: false
timeslots:
  - name: Mon 0900
    start: 2025-03-10T09:00:00Z
    end: 2025-03-10T11:00:00Z
    conflicts_with: [Mon 0930]
  - name: Mon 0930
    start: 2025-03-10T09:30:00Z
    end: 2025-03-10T10:30:00Z
  - name: Mon 1400
    start: 2025-03-10T14:00:00Z
    end: 2025-03-10T16:00:00Z
schedules: []
`

// Create writes a new store file at path, either empty or holding the sample
// hospital. An existing file is left alone.
func Create(path string, sample bool, opts ...Option) (*Store, error) {
	if _, err := os.Stat(path); err == nil {
		return nil, errors.Mark(errors.Newf("knowledge store already exists: %s", path), entities.ErrConflict)
	}

	doc := &document{}
	if sample {
		var err error
		if doc, err = decode([]byte(SampleYAML)); err != nil {
			return nil, errors.Wrap(err, "decoding sample store")
		}
	}

	s := New(path, opts...)
	s.doc = doc
	if err := writeAtomic(path, doc); err != nil {
		return nil, err
	}
	return s, nil
}
