package classroom

import (
	"sync"

	"github.com/Narendra3579/ssvteachersapp/core"
)

// State holds this instance's in-memory mirrors of the persisted collections.
// Mirrors may go stale between writes; they are refreshed on own writes at
// the write site and on external changes via HandleChange. Class names are
// not a mirror: they are always derived from the students mirror.
type State struct {
	acc    *core.Accessor
	active func() bool // gates external-change reloads; nil means always active

	mu            sync.RWMutex
	students      []Student
	homeworks     []HomeworkAssignment
	attendance    []AttendanceRecord
	notifications NotificationMap
}

// NewState loads all mirrors from the store. active reports whether this
// instance should react to external data changes (i.e. is logged in).
func NewState(acc *core.Accessor, active func() bool) *State {
	s := &State{acc: acc, active: active}
	s.ReloadAll()
	return s
}

// ReloadAll refreshes every mirror from the store.
func (s *State) ReloadAll() {
	for _, key := range []string{StoreKeyStudents, StoreKeyHomeworks, StoreKeyAttendance, StoreKeyNotifications} {
		s.Reload(key)
	}
}

// Reload discards the mirror for key and re-reads it from the store.
// Unknown keys are ignored.
func (s *State) Reload(key string) {
	switch key {
	case StoreKeyStudents:
		students := core.ReadKey(s.acc, StoreKeyStudents, []Student{})
		s.mu.Lock()
		s.students = students
		s.mu.Unlock()
	case StoreKeyHomeworks:
		homeworks := core.ReadKey(s.acc, StoreKeyHomeworks, []HomeworkAssignment{})
		s.mu.Lock()
		s.homeworks = homeworks
		s.mu.Unlock()
	case StoreKeyAttendance:
		attendance := core.ReadKey(s.acc, StoreKeyAttendance, []AttendanceRecord{})
		s.mu.Lock()
		s.attendance = attendance
		s.mu.Unlock()
	case StoreKeyNotifications:
		notifs := core.ReadKey(s.acc, StoreKeyNotifications, NotificationMap{})
		s.mu.Lock()
		s.notifications = notifs
		s.mu.Unlock()
	}
}

// HandleChange is the cross-instance sync listener. Data keys are only
// reloaded while this instance is active; the login key is not handled here
// (see auth.Service.HandleChange).
func (s *State) HandleChange(evt core.Event) {
	switch evt.Key {
	case StoreKeyStudents, StoreKeyHomeworks, StoreKeyAttendance, StoreKeyNotifications:
		if s.active != nil && !s.active() {
			return
		}
		s.Reload(evt.Key)
	}
}

func (s *State) Students() []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Student, len(s.students))
	copy(res, s.students)
	return res
}

func (s *State) StudentsInClass(class string) []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var res []Student
	for _, stu := range s.students {
		if stu.Class == class {
			res = append(res, stu)
		}
	}
	return res
}

func (s *State) FindStudent(id int) (Student, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findStudent(id)
}

func (s *State) findStudent(id int) (Student, bool) {
	for _, stu := range s.students {
		if stu.ID == id {
			return stu, true
		}
	}
	return Student{}, false
}

// ClassNames returns the distinct class names across all students, in
// first-seen order. Always derived from the students mirror, never stored.
func (s *State) ClassNames() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool, len(s.students))
	names := make([]string, 0, len(s.students))
	for _, stu := range s.students {
		if !seen[stu.Class] {
			seen[stu.Class] = true
			names = append(names, stu.Class)
		}
	}
	return names
}

func (s *State) Homeworks() []HomeworkAssignment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]HomeworkAssignment, len(s.homeworks))
	copy(res, s.homeworks)
	return res
}

func (s *State) Attendance() []AttendanceRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]AttendanceRecord, len(s.attendance))
	copy(res, s.attendance)
	return res
}

// AttendanceFor returns the student's record for the given date, if any.
// The match is on (studentId, date) only, mirroring how the attendance sheet
// picks the preselected status.
func (s *State) AttendanceFor(studentID int, date string) (AttendanceRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.attendance {
		if rec.StudentID == studentID && rec.Date == date {
			return rec, true
		}
	}
	return AttendanceRecord{}, false
}

// Notifications returns the student's feed, newest first.
func (s *State) Notifications(studentID int) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]Notification, len(s.notifications[studentID]))
	copy(res, s.notifications[studentID])
	return res
}
