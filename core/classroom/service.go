package classroom

import (
	"fmt"
	"time"

	"github.com/Narendra3579/ssvteachersapp/core"
)

var nowFunc = time.Now // mockable

// Today is the current ISO date, the date attendance is marked against.
func Today() string {
	return nowFunc().UTC().Format(dateLayout)
}

type (
	// StudentStatus is one entry of an attendance save batch.
	StudentStatus struct {
		StudentID int    `json:"studentId"`
		Status    Status `json:"status"`
	}

	Service struct {
		state *State
		acc   *core.Accessor
		log   core.Logger
		dueIn time.Duration
	}
)

func NewService(state *State, acc *core.Accessor, log core.Logger, conf *core.Config) *Service {
	return &Service{
		state: state,
		acc:   acc,
		log:   log,
		dueIn: conf.HomeworkDueIn,
	}
}

// RecordAttendance merges a batch of per-student statuses for one class and
// one date into the attendance collection. All prior records for that exact
// (class, date) pair are replaced by the batch: a student present in an
// earlier save but omitted from this one loses their record for the date.
// Entries referencing an unknown student are skipped. One Attendance
// notification is emitted per recorded student, in batch order.
//
// The caller must ensure class is non-empty ("a class is selected").
func (svc *Service) RecordAttendance(class, date string, statuses []StudentStatus) error {
	svc.state.mu.Lock()
	records := make([]AttendanceRecord, 0, len(svc.state.attendance)+len(statuses))
	for _, rec := range svc.state.attendance {
		if rec.Class == class && rec.Date == date {
			continue
		}
		records = append(records, rec)
	}
	saved := make([]AttendanceRecord, 0, len(statuses))
	for _, st := range statuses {
		stu, ok := svc.state.findStudent(st.StudentID)
		if !ok {
			continue
		}
		rec := AttendanceRecord{
			StudentID: stu.ID,
			Name:      stu.Name,
			Class:     class,
			Date:      date,
			Status:    st.Status,
		}
		records = append(records, rec)
		saved = append(saved, rec)
	}
	svc.state.attendance = records
	svc.state.mu.Unlock()

	for _, rec := range saved {
		msg := fmt.Sprintf("Your attendance for %s is marked as %s.", rec.Date, rec.Status)
		if err := svc.AppendNotification(rec.StudentID, msg, NotificationAttendance); err != nil {
			svc.log.Error(fmt.Sprintf("attendance: notifying student %d: %v", rec.StudentID, err), err)
		}
	}
	return svc.acc.Write(StoreKeyAttendance, records)
}

// AssignHomework appends one homework assignment for a class, due
// Service.dueIn from now, and notifies every student currently in that class.
// Both inputs must be non-empty; on validation failure nothing is persisted
// and no notification goes out.
func (svc *Service) AssignHomework(nh NewHomework) (HomeworkAssignment, error) {
	if err := nh.Validate(); err != nil {
		return HomeworkAssignment{}, err
	}

	now := nowFunc()
	hw := HomeworkAssignment{
		ID:          now.UnixMilli(),
		Class:       nh.Class,
		Description: nh.Description,
		DueDate:     now.Add(svc.dueIn).Format(displayDateLayout),
	}

	svc.state.mu.Lock()
	svc.state.homeworks = append(svc.state.homeworks, hw)
	homeworks := make([]HomeworkAssignment, len(svc.state.homeworks))
	copy(homeworks, svc.state.homeworks)
	svc.state.mu.Unlock()

	if err := svc.acc.Write(StoreKeyHomeworks, homeworks); err != nil {
		return HomeworkAssignment{}, err
	}

	msg := fmt.Sprintf("New homework for %s: %q (Due: %s)", hw.Class, hw.Description, hw.DueDate)
	for _, stu := range svc.state.StudentsInClass(hw.Class) {
		if err := svc.AppendNotification(stu.ID, msg, NotificationHomework); err != nil {
			svc.log.Error(fmt.Sprintf("homework: notifying student %d: %v", stu.ID, err), err)
		}
	}
	return hw, nil
}

// AppendNotification is the single mutation point for the notification
// collection. It re-reads the full mapping from the store rather than using
// this instance's mirror; that merge-on-read narrows (but does not close)
// the lost-update window with concurrent writers in other instances. The new
// entry goes to the front of the student's feed. This instance's
// notification mirror is left stale on purpose: the teacher app never reads
// it back for display.
func (svc *Service) AppendNotification(studentID int, message string, typ NotificationType) error {
	now := nowFunc()
	notif := Notification{
		ID:        now.UnixMilli(),
		Message:   message,
		Type:      typ,
		Timestamp: now.Format(displayTimestampLayout),
		IsRead:    false,
	}
	all := core.ReadKey(svc.acc, StoreKeyNotifications, NotificationMap{})
	all[studentID] = append([]Notification{notif}, all[studentID]...)
	return svc.acc.Write(StoreKeyNotifications, all)
}

// StudentNotifications reads a student's feed fresh from the store, newest
// first. Display surfaces use this rather than the mirror, which only
// catches up on external-change signals.
func (svc *Service) StudentNotifications(studentID int) []Notification {
	all := core.ReadKey(svc.acc, StoreKeyNotifications, NotificationMap{})
	notifs := all[studentID]
	if notifs == nil {
		notifs = []Notification{}
	}
	return notifs
}
