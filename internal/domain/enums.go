package domain

import "strings"

// RequestStatus is the lifecycle state of a request. StatusExpired is never
// stored; it is derived by ComputeStatus.
type RequestStatus string

const (
	StatusActive    RequestStatus = "active"
	StatusCompleted RequestStatus = "completed"
	StatusClosed    RequestStatus = "closed"
	StatusExpired   RequestStatus = "expired"
)

func (s RequestStatus) String() string { return string(s) }

func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusClosed, StatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func (s RequestStatus) IsTerminal() bool {
	return s != StatusActive
}

// Category is the closed set of academic areas a request can belong to.
type Category string

const (
	CategoryMedicine    Category = "Medicina"
	CategoryEngineering Category = "Ingeniería"
	CategoryLaw         Category = "Derecho"
	CategoryEconomics   Category = "Economía"
	CategoryPsychology  Category = "Psicología"
	CategoryBiology     Category = "Biología"
	CategoryChemistry   Category = "Química"
	CategoryPhysics     Category = "Física"
	CategoryMathematics Category = "Matemáticas"
	CategorySocial      Category = "Ciencias Sociales"
	CategoryHumanities  Category = "Humanidades"
	CategoryTechnology  Category = "Tecnología"
	CategoryOther       Category = "Otro"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryMedicine,
	CategoryEngineering,
	CategoryLaw,
	CategoryEconomics,
	CategoryPsychology,
	CategoryBiology,
	CategoryChemistry,
	CategoryPhysics,
	CategoryMathematics,
	CategorySocial,
	CategoryHumanities,
	CategoryTechnology,
	CategoryOther,
}

func (c Category) String() string { return string(c) }

func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory matches s against the known categories ignoring case and
// surrounding whitespace, returning the canonical spelling.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, known := range Categories {
		if strings.EqualFold(s, string(known)) {
			return known, true
		}
	}
	return "", false
}

// subjectRules is evaluated in order; the first keyword hit wins.
var subjectRules = []struct {
	keywords []string
	category Category
}{
	{[]string{"medicine", "health", "clinical"}, CategoryMedicine},
	{[]string{"engineering"}, CategoryEngineering},
	{[]string{"law", "legal"}, CategoryLaw},
	{[]string{"economics", "business", "finance"}, CategoryEconomics},
	{[]string{"psychology"}, CategoryPsychology},
	{[]string{"biology", "life science"}, CategoryBiology},
	{[]string{"chemistry"}, CategoryChemistry},
	{[]string{"physics"}, CategoryPhysics},
	{[]string{"mathematics", "statistics"}, CategoryMathematics},
	{[]string{"social", "sociology", "political"}, CategorySocial},
	{[]string{"humanities", "history", "philosophy", "literature"}, CategoryHumanities},
	{[]string{"computer", "technology", "information"}, CategoryTechnology},
}

// CategoryFromSubject suggests a category for a bibliographic subject label.
func CategoryFromSubject(subject string) Category {
	lower := strings.ToLower(subject)
	for _, rule := range subjectRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

// ResponseKind tells which payload a response carries.
type ResponseKind string

const (
	ResponseKindFile ResponseKind = "file"
	ResponseKindLink ResponseKind = "link"
)

func (k ResponseKind) String() string { return string(k) }

// Rating is the owner's decision on a response.
type Rating string

const (
	RatingNone      Rating = "none"
	RatingBest      Rating = "best"
	RatingIncorrect Rating = "incorrect"
)

func (r Rating) String() string { return string(r) }

// IsDecided reports whether the owner has rated the response.
func (r Rating) IsDecided() bool {
	return r == RatingBest || r == RatingIncorrect
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleModerator UserRole = "moderator"
	UserRoleAdmin     UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleModerator, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// IsStaff reports whether the role can see moderation and analytics views.
func (r UserRole) IsStaff() bool {
	return r == UserRoleAdmin || r == UserRoleModerator
}

// NotificationType identifies the domain event behind a notification.
type NotificationType string

const (
	NotificationResponse NotificationType = "response"
	NotificationComment  NotificationType = "comment"
	NotificationPoints   NotificationType = "points"
	NotificationLike     NotificationType = "like"
)

func (t NotificationType) String() string { return string(t) }

func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationResponse, NotificationComment, NotificationPoints, NotificationLike:
		return true
	}
	return false
}

// LedgerReason is the only set of causes allowed to change a balance.
type LedgerReason string

const (
	LedgerCheckIn          LedgerReason = "checkin"
	LedgerRequestDebit     LedgerReason = "request_debit"
	LedgerBestAnswerCredit LedgerReason = "best_answer_credit"
)

func (r LedgerReason) String() string { return string(r) }

func (r LedgerReason) IsValid() bool {
	switch r {
	case LedgerCheckIn, LedgerRequestDebit, LedgerBestAnswerCredit:
		return true
	}
	return false
}
