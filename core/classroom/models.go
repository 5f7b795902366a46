package classroom

// Store keys shared with the student-facing app. The key names and the JSON
// field names below are a wire contract between cooperating instances;
// changing them strands data already persisted under the old names.
const (
	StoreKeyStudents      = "students"
	StoreKeyHomeworks     = "homeworks"
	StoreKeyAttendance    = "attendanceRecords"
	StoreKeyNotifications = "studentNotifications"
)

const (
	dateLayout = "2006-01-02"

	// Display formats follow the student app's rendering of dates.
	displayDateLayout      = "1/2/2006"
	displayTimestampLayout = "1/2/2006, 3:04:05 PM"
)

// Status is a student's attendance status for one day.
type Status string

const (
	StatusPresent Status = "Present"
	StatusAbsent  Status = "Absent"
)

// Student belongs to exactly one class. Students are created and removed by
// the admin tool; this package only reads them.
type Student struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Class string `json:"class"`
}

// HomeworkAssignment is immutable once created; the collection is append-only.
type HomeworkAssignment struct {
	ID          int64  `json:"id"` // unix ms at creation
	Class       string `json:"class"`
	Description string `json:"description"`
	DueDate     string `json:"dueDate"` // display-formatted
}

// AttendanceRecord holds one student's status for one date. At most one
// record exists per (studentId, date); see Service.RecordAttendance.
type AttendanceRecord struct {
	StudentID int    `json:"studentId"`
	Name      string `json:"name"`
	Class     string `json:"class"`
	Date      string `json:"date"` // YYYY-MM-DD
	Status    Status `json:"status"`
}

type NotificationType string

const (
	NotificationHomework   NotificationType = "Homework"
	NotificationAttendance NotificationType = "Attendance"
)

// Notification is one entry of a student's notification feed, newest first.
type Notification struct {
	ID        int64            `json:"id"` // unix ms at creation
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Timestamp string           `json:"timestamp"` // display-formatted
	IsRead    bool             `json:"isRead"`
}

// NotificationMap is keyed by student ID. It marshals to a JSON object with
// string keys, which is what the student app expects.
type NotificationMap map[int][]Notification
