package domain

// EmployeeType distinguishes office-based staff from remote staff.
type EmployeeType string

const (
	EmployeeLocal  EmployeeType = "local"
	EmployeeRemote EmployeeType = "remote"
)

// Capability is an opaque permission code granted to roles, checked by exact
// match (e.g. "PERM039").
type Capability struct {
	Code   string `json:"code"` // Primary key
	NameEn string `json:"nameEn"`
	NameAr string `json:"nameAr"`
}

// Well-known capability codes referenced by the services.
const (
	CapTransactionsViewAll  = "PERM039"
	CapTransactionsViewOwn  = "PERM040"
	CapTransactionsAssign   = "Transactions_Assign"
	CapInvoicesViewAll      = "PERM064"
	CapReportsGenerate      = "PERM144"
	CapLeaveReview          = "PERM101"
	CapPermissionReqsReview = "PERM110"
)

// Role groups a named set of capabilities.
type Role struct {
	RoleID       string   `json:"roleID"`
	Name         string   `json:"name"`
	Capabilities []string `json:"capabilities"` // Capability codes
}

// Department is an organisational unit employees belong to.
type Department struct {
	DepartmentID string `json:"departmentID"`
	Name         string `json:"name"`
}

// User represents an authenticated actor in the system.
type User struct {
	UserID       string       `json:"userID"` // Primary key (UUID)
	Username     string       `json:"username"`
	PasswordHash string       `json:"-"`
	FullNameAr   string       `json:"fullNameAr"`
	EmployeeType EmployeeType `json:"employeeType"`
	PhoneNumber  string       `json:"phoneNumber"`
	IsSuperuser  bool         `json:"isSuperuser"`
	RoleID       *string      `json:"roleID"`
	DepartmentID *string      `json:"departmentID"`
	IsActive     bool         `json:"isActive"`
	AuditFields
}

// Actor is a resolved user together with the capability set of their role.
// It is the unit the authorization layer reasons about.
type Actor struct {
	UserID       string
	IsSuperuser  bool
	RoleID       *string
	DepartmentID *string
	Capabilities map[string]struct{}
}

// Has reports whether the actor holds the given capability code. Superusers
// hold every capability implicitly.
func (a Actor) Has(code string) bool {
	if a.IsSuperuser {
		return true
	}
	_, ok := a.Capabilities[code]
	return ok
}
