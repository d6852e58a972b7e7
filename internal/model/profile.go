package model

// Placeholder values for rows created when an account is missing its
// student or warden record.
const (
	DefaultBlockName = "Default Block"
	UnassignedRoom   = "Unassigned"
)

// Block is a hostel building that students live in and wardens manage
type Block struct {
	ID   int    `json:"block_id"`
	Name string `json:"block_name"`
}

// Student is the student record keyed by the owning user's id
type Student struct {
	ID      int     `json:"student_id"`
	Room    string  `json:"room"`
	BlockID int     `json:"block_id"`
	USN     *string `json:"usn,omitempty"`
}

// Warden is the warden record keyed by the owning user's id
type Warden struct {
	ID      int `json:"warden_id"`
	BlockID int `json:"block_id"`
}

// Principal is the authenticated caller of a request. Exactly one of Student
// and Warden is set, matching Role.
type Principal struct {
	UserID  int
	Role    Role
	Student *Student
	Warden  *Warden
}
