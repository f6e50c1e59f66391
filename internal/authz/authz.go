package authz

// Action is one of the four CRUD verbs a module permission can grant.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Module names that carry permission rows. Unknown names always deny.
const (
	ModuleCustomers     = "customers"
	ModuleVehicles      = "vehicles"
	ModuleServiceOrders = "service_orders"
	ModuleInventory     = "inventory"
	ModulePurchases     = "purchases"
	ModuleSuppliers     = "suppliers"
	ModuleTeam          = "team"
	ModuleSettings      = "settings"
)

// AllModules lists every module that gets permission rows when an owner is
// initialized or an invitation carries a full grant.
func AllModules() []string {
	return []string{
		ModuleCustomers,
		ModuleVehicles,
		ModuleServiceOrders,
		ModuleInventory,
		ModulePurchases,
		ModuleSuppliers,
		ModuleTeam,
		ModuleSettings,
	}
}

// RoleOwner is the tenant's unconditional administrator. Every other role is
// scoped by its ModulePermission rows.
const (
	RoleOwner        = "owner"
	RoleManager      = "manager"
	RoleTechnician   = "technician"
	RoleAdmin        = "admin"
	RoleReceptionist = "receptionist"
	RoleOther        = "other"
)

// ValidRole reports whether role is one of the known role names.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleManager, RoleTechnician, RoleAdmin, RoleReceptionist, RoleOther:
		return true
	}
	return false
}

// ActionSet is the four CRUD grants for a single module.
type ActionSet struct {
	Create bool `json:"create"`
	Read   bool `json:"read"`
	Update bool `json:"update"`
	Delete bool `json:"delete"`
}

// FullAccess grants all four actions.
func FullAccess() ActionSet {
	return ActionSet{Create: true, Read: true, Update: true, Delete: true}
}

// Allows returns the grant boolean matching action. Unknown actions deny.
func (a ActionSet) Allows(action Action) bool {
	switch action {
	case ActionCreate:
		return a.Create
	case ActionRead:
		return a.Read
	case ActionUpdate:
		return a.Update
	case ActionDelete:
		return a.Delete
	}
	return false
}

type subjectKind int

const (
	subjectScoped subjectKind = iota
	subjectOwner
)

// Subject is the authorization identity of a caller: either the tenant owner,
// who passes every check without a row lookup, or a scoped user whose access
// is exactly the per-module action sets loaded for them. The HTTP gate and
// the service layer both reduce to Subject.Allows, so the two checks cannot
// drift apart.
type Subject struct {
	kind  subjectKind
	perms map[string]ActionSet
}

// Owner returns the subject that passes every check.
func Owner() Subject {
	return Subject{kind: subjectOwner}
}

// Scoped returns a subject limited to the given per-module action sets.
// A nil map means no access at all.
func Scoped(perms map[string]ActionSet) Subject {
	return Subject{kind: subjectScoped, perms: perms}
}

// SubjectForRole builds the subject for a role string and its permission
// grants. The owner role ignores the grants entirely.
func SubjectForRole(role string, perms map[string]ActionSet) Subject {
	if role == RoleOwner {
		return Owner()
	}
	return Scoped(perms)
}

// IsOwner reports whether the subject bypasses permission rows.
func (s Subject) IsOwner() bool {
	return s.kind == subjectOwner
}

// Allows is the single permission decision for (module, action). Owners are
// always allowed; scoped subjects need a granted entry for the module, and a
// missing entry or unknown module denies.
func (s Subject) Allows(module string, action Action) bool {
	switch s.kind {
	case subjectOwner:
		return true
	case subjectScoped:
		set, ok := s.perms[module]
		if !ok {
			return false
		}
		return set.Allows(action)
	}
	return false
}
