package models

// Fixed contract tables. These mirror the classroom rules and are not
// configurable at runtime.

const (
	MinWeek = 1
	MaxWeek = 10
)

// Point awards applied through the service's point ledger.
const (
	PointsHomework     = 5
	PointsClasswork    = 3
	PointsQuiz         = 2
	PointsTopPerformer = 10
	PointsLatePenalty  = -2
)

// The privileged login that resolves to the instructor identity.
const (
	TeacherUsername = "admin"
	TeacherName     = "Mr. Teacher"
)

type SemesterOption struct {
	ID    Semester `json:"id"`
	Label string   `json:"label"`
}

var Semesters = []SemesterOption{
	{ID: Semester11, Label: "Semester 1.1"},
	{ID: Semester12, Label: "Semester 1.2"},
	{ID: Semester21, Label: "Semester 2.1"},
	{ID: Semester22, Label: "Semester 2.2"},
}

// Badge catalog. Awarding is a manual instructor action; nothing in the
// service evaluates these criteria automatically.
type Badge struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Desc  string `json:"desc"`
}

var BadgeCatalog = map[string]Badge{
	"on_fire":      {ID: "on_fire", Label: "🔥 On Fire", Desc: "3 activities in one day"},
	"speed_gecko":  {ID: "speed_gecko", Label: "⚡ Speed Gecko", Desc: "Submission before deadline"},
	"tech_brain":   {ID: "tech_brain", Label: "🧠 Tech Brain", Desc: "Highest quiz score"},
	"gecko_legend": {ID: "gecko_legend", Label: "🏆 Gecko Legend", Desc: "Grade A Achieved"},
}

// SeedRoster is the bootstrap cohort inserted on first use of an empty store.
func SeedRoster() []StudentProfile {
	bobCheckIn := "2023-11-20"
	return []StudentProfile{
		{Username: "student1", Name: "Alice Smith", Role: RoleStudent, Points: 12, Badges: BadgeList{}},
		{Username: "student2", Name: "Bob Jones", Role: RoleStudent, Points: 28, Badges: BadgeList{"speed_gecko"}, CheckInDate: &bobCheckIn},
		{Username: "student3", Name: "Charlie Day", Role: RoleStudent, Points: 42, Badges: BadgeList{"tech_brain"}},
	}
}
