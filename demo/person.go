package demo

// Student has a fixed name chosen at construction.
type Student struct {
	Name    string `inspect:"readonly"`
	Courses []string
}

// NewStudent returns a student named "ABC".
func NewStudent() *Student {
	return &Student{Name: "ABC"}
}

func (s *Student) Role() string { return "student" }

// Teacher has no constructor and starts as a zero value.
type Teacher struct {
	TeachID      float64
	StudentCount int
}

func (t *Teacher) Role() string { return "teacher" }
