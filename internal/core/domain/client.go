package domain

// ClientType distinguishes partner engineering offices from end clients.
type ClientType string

const (
	ClientEngOffice ClientType = "ENG_OFFICE"
	ClientRegular   ClientType = "CLIENT"
)

// Client is a customer of the office (or a partner engineering office).
type Client struct {
	ClientID           string     `json:"clientID"`
	ClientType         ClientType `json:"clientType"`
	ClientCode         string     `json:"clientCode"` // e.g. CL-000001 or EO-000001
	NameAr             string     `json:"nameAr"`
	PhoneNumber        string     `json:"phoneNumber"`
	Email              string     `json:"email"`
	CommercialRegister string     `json:"commercialRegister"`
	AuditFields
}

// TransactionMainCategory is the top level of the transaction taxonomy.
type TransactionMainCategory struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Code       string `json:"code"`
}

// TransactionSubCategory refines a main category; the sub-category code
// drives the required-document checklist.
type TransactionSubCategory struct {
	SubCategoryID  string `json:"subCategoryID"`
	MainCategoryID string `json:"mainCategoryID"`
	Name           string `json:"name"`
	Code           string `json:"code"`
}

// CompetentAuthority is the external body a transaction is filed with.
type CompetentAuthority struct {
	AuthorityID string `json:"authorityID"`
	Name        string `json:"name"`
	Code        string `json:"code"`
}
